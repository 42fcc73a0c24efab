package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"freshstock/internal/domain"
)

var statusNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

// TestProductStatus testa a classificação de vencimento nas fronteiras.
func TestProductStatus(t *testing.T) {
	tests := []struct {
		name       string
		expiryDate time.Time
		expected   domain.ProductStatus
	}{
		{"vencido ontem", statusNow.AddDate(0, 0, -1), domain.StatusExpired},
		{"vencido há um segundo", statusNow.Add(-time.Second), domain.StatusExpired},
		{"vence exatamente agora ainda não está vencido", statusNow, domain.StatusWarning},
		{"vence em 1 dia", statusNow.AddDate(0, 0, 1), domain.StatusWarning},
		{"vence em exatamente 7 dias", statusNow.AddDate(0, 0, 7), domain.StatusWarning},
		{"vence em 7 dias e um segundo", statusNow.AddDate(0, 0, 7).Add(time.Second), domain.StatusGood},
		{"vence em 30 dias", statusNow.AddDate(0, 0, 30), domain.StatusGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.Product{ExpiryDate: tt.expiryDate}
			assert.Equal(t, tt.expected, p.Status(statusNow))
		})
	}
}

// TestDaysUntilExpiry testa o arredondamento para cima da contagem de dias.
func TestDaysUntilExpiry(t *testing.T) {
	// 5 dias exatos
	p := domain.Product{ExpiryDate: statusNow.AddDate(0, 0, 5)}
	assert.Equal(t, 5, p.DaysUntilExpiry(statusNow))

	// 4 dias e meia hora arredonda para 5
	p = domain.Product{ExpiryDate: statusNow.AddDate(0, 0, 4).Add(30 * time.Minute)}
	assert.Equal(t, 5, p.DaysUntilExpiry(statusNow))

	// Produto vencido retorna valor negativo
	p = domain.Product{ExpiryDate: statusNow.AddDate(0, 0, -2)}
	assert.Equal(t, -2, p.DaysUntilExpiry(statusNow))
}

// TestProductFilters_Matches testa a combinação AND dos critérios de filtro.
func TestProductFilters_Matches(t *testing.T) {
	p := domain.Product{
		Quantity:   50,
		ExpiryDate: statusNow.AddDate(0, 0, 3), // warning
	}

	warning := domain.StatusWarning
	good := domain.StatusGood
	min10 := 10
	min51 := 51
	max50 := 50
	max49 := 49

	// Filtro vazio aceita qualquer produto
	assert.True(t, domain.ProductFilters{}.Matches(p, statusNow))

	// Critérios individuais
	assert.True(t, domain.ProductFilters{Status: &warning}.Matches(p, statusNow))
	assert.False(t, domain.ProductFilters{Status: &good}.Matches(p, statusNow))

	// Limites de quantidade são inclusivos
	assert.True(t, domain.ProductFilters{MinQuantity: &min10, MaxQuantity: &max50}.Matches(p, statusNow))
	assert.False(t, domain.ProductFilters{MinQuantity: &min51}.Matches(p, statusNow))
	assert.False(t, domain.ProductFilters{MaxQuantity: &max49}.Matches(p, statusNow))

	// Todos os critérios precisam passar (AND)
	assert.False(t, domain.ProductFilters{Status: &warning, MaxQuantity: &max49}.Matches(p, statusNow))
}

// TestProduct_JSONRoundTrip garante que a serialização usa snake_case e que
// todos os campos sobrevivem ao ciclo marshal/unmarshal.
func TestProduct_JSONRoundTrip(t *testing.T) {
	original := domain.Product{
		ID:          "7d6f4a8e-0000-4000-8000-000000000001",
		WarehouseID: "c69b8a29-4f0c-4bf2-9e15-51c7e9b7a001",
		Name:        "Leite pasteurizado",
		Quantity:    120,
		Marking:     "L-2024-06",
		ExpiryDate:  statusNow.AddDate(0, 0, 10),
		Description: "Integral, caixa de 1L",
		CreatedAt:   statusNow.AddDate(0, 0, -30),
		UpdatedAt:   statusNow.AddDate(0, 0, -1),
	}

	payload, err := json.Marshal(original)
	assert.NoError(t, err)
	assert.Contains(t, string(payload), `"warehouse_id"`)
	assert.Contains(t, string(payload), `"expiry_date"`)
	assert.Contains(t, string(payload), `"created_at"`)

	var decoded domain.Product
	assert.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, original, decoded)
}

// TestProductPatch_ApplyTo testa a atualização parcial de um produto.
func TestProductPatch_ApplyTo(t *testing.T) {
	created := time.Date(2023, time.May, 1, 8, 0, 0, 0, time.UTC)
	now := statusNow

	original := domain.Product{
		ID:          "p-1",
		WarehouseID: "w-1",
		Name:        "Leite pasteurizado",
		Quantity:    120,
		Marking:     "L-2023-05",
		ExpiryDate:  created.AddDate(0, 0, 10),
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	newQuantity := 80
	newMarking := ""
	updated := domain.ProductPatch{Quantity: &newQuantity, Marking: &newMarking}.ApplyTo(original, now)

	assert.Equal(t, 80, updated.Quantity)
	// Valor vazio explícito substitui o atual
	assert.Equal(t, "", updated.Marking)
	assert.Equal(t, original.Name, updated.Name)
	assert.Equal(t, original.WarehouseID, updated.WarehouseID)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, now, updated.UpdatedAt)
}
