package domain

// User representa a identidade autenticada da sessão atual.
// É criada no login ou no registro, destruída no logout e
// imutável durante a sessão.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Token       string `json:"token"` // JWT assinado, usado como credencial da sessão
}
