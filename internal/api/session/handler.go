package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"freshstock/internal/domain"
	apperror "freshstock/internal/errors"
	"freshstock/internal/pkg/logger"
	"freshstock/internal/pkg/middleware"
)

// SessionService define o contrato que o Handler espera da camada de Serviço.
type SessionService interface {
	Login(ctx context.Context, email, password string) (domain.User, error)
	Register(ctx context.Context, displayName, email, password string) (domain.User, error)
	Logout(ctx context.Context)
	Current() *domain.User
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest representa o payload de entrada para o registro.
type RegisterRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
}

// Handler agrupa todos os métodos de Handler da sessão.
type Handler struct {
	Service  SessionService
	Validate *validator.Validate
	Logger   logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc SessionService, validate *validator.Validate, log logger.Logger) *Handler {
	return &Handler{
		Service:  svc,
		Validate: validate,
		Logger:   log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	})
}

// LoginHandler lida com a requisição POST /v1/auth/login.
// @Summary Autentica um usuário
// @Description Autentica a credencial de demonstração e retorna a identidade da sessão.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credenciais de acesso"
// @Success 200 {object} domain.User "Identidade autenticada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /auth/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("E-mail e senha são obrigatórios."), http.StatusBadRequest)
		return
	}

	user, err := h.Service.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, user, nil, http.StatusOK)
}

// RegisterHandler lida com a requisição POST /v1/auth/register.
// @Summary Registra um novo usuário
// @Description Fabrica uma nova identidade de sessão. O e-mail de demonstração é reservado.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body RegisterRequest true "Dados de registro"
// @Success 201 {object} domain.User "Identidade criada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "E-mail já registrado"
// @Router /auth/register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Nome de exibição, e-mail e senha são obrigatórios."), http.StatusBadRequest)
		return
	}

	user, err := h.Service.Register(ctx, req.DisplayName, req.Email, req.Password)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, user, nil, http.StatusCreated)
}

// LogoutHandler lida com a requisição POST /v1/auth/logout.
// @Summary Encerra a sessão atual
// @Description Limpa a identidade corrente e o estado persistido. Nunca falha.
// @Tags auth
// @Success 204 "Nenhum conteúdo"
// @Router /auth/logout [post]
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	h.Service.Logout(r.Context())
	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}

// CurrentUserHandler lida com a requisição GET /v1/auth/me.
// @Summary Retorna a identidade da sessão atual
// @Tags auth
// @Produce json
// @Success 200 {object} domain.User "Identidade atual"
// @Failure 401 {object} domain.ErrorResponse "Nenhuma sessão ativa"
// @Router /auth/me [get]
func (h *Handler) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		h.Logger.Debug("Consulta de identidade da sessão.", map[string]interface{}{"user_id": claims.UserID})
	}

	user := h.Service.Current()
	if user == nil {
		h.handleServiceResponse(w, r, nil, apperror.NewUnauthorizedError("Nenhuma sessão ativa."), http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, user, nil, http.StatusOK)
}
