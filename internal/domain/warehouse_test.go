package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"freshstock/internal/domain"
)

// TestOccupancyPercentage testa o cálculo de ocupação em relação à capacidade.
func TestOccupancyPercentage(t *testing.T) {
	tests := []struct {
		name          string
		capacity      int
		totalQuantity int
		expected      int
	}{
		{"armazém vazio", 1000, 0, 0},
		{"metade da capacidade", 100, 50, 50},
		{"ocupação parcial com arredondamento", 1000, 450, 45},
		{"arredondamento para cima", 1000, 455, 46},
		{"capacidade cheia", 500, 500, 100},
		{"acima da capacidade é limitado a 100", 100, 999, 100},
		{"capacidade zero é sempre 100", 0, 0, 100},
		{"capacidade zero com produtos", 0, 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := domain.Warehouse{Capacity: tt.capacity}
			assert.Equal(t, tt.expected, w.OccupancyPercentage(tt.totalQuantity))
		})
	}
}

// TestHasCapacity testa a verificação de espaço livre.
func TestHasCapacity(t *testing.T) {
	w := domain.Warehouse{Capacity: 100}

	assert.True(t, w.HasCapacity(0))
	assert.True(t, w.HasCapacity(99))
	// Na capacidade exata não há mais espaço
	assert.False(t, w.HasCapacity(100))
	assert.False(t, w.HasCapacity(150))

	empty := domain.Warehouse{Capacity: 0}
	assert.False(t, empty.HasCapacity(0))
}

// TestWarehouse_JSONRoundTrip garante que a serialização usa snake_case e que
// todos os campos, incluindo as datas, sobrevivem ao ciclo marshal/unmarshal.
func TestWarehouse_JSONRoundTrip(t *testing.T) {
	created := time.Date(2023, time.January, 15, 10, 0, 0, 0, time.UTC)
	original := domain.Warehouse{
		ID:          "c69b8a29-4f0c-4bf2-9e15-51c7e9b7a001",
		Name:        "Armazém Central",
		Address:     "Av. das Nações, 1000 - São Paulo",
		Capacity:    1000,
		Description: "Centro de distribuição principal",
		CreatedAt:   created,
		UpdatedAt:   created.AddDate(0, 3, 0),
	}

	payload, err := json.Marshal(original)
	assert.NoError(t, err)
	assert.Contains(t, string(payload), `"created_at"`)
	assert.Contains(t, string(payload), `"updated_at"`)
	assert.Contains(t, string(payload), `"capacity"`)

	var decoded domain.Warehouse
	assert.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, original, decoded)
}

// TestWarehousePatch_ApplyTo testa a atualização parcial de um armazém.
func TestWarehousePatch_ApplyTo(t *testing.T) {
	created := time.Date(2023, time.January, 15, 10, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	original := domain.Warehouse{
		ID:          "w-1",
		Name:        "Armazém Central",
		Address:     "Av. das Nações, 1000",
		Capacity:    1000,
		Description: "Centro de distribuição",
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	newName := "Armazém Central II"
	updated := domain.WarehousePatch{Name: &newName}.ApplyTo(original, now)

	assert.Equal(t, "Armazém Central II", updated.Name)
	// Campos ausentes do patch mantêm o valor atual
	assert.Equal(t, original.Address, updated.Address)
	assert.Equal(t, original.Capacity, updated.Capacity)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, now, updated.UpdatedAt)
	// O registro original não é modificado
	assert.Equal(t, "Armazém Central", original.Name)
}

// TestWarehousePatch_ApplyTo_ZeroCapacity garante que capacidade zero
// explícita no patch é aplicada, e não tratada como ausente.
func TestWarehousePatch_ApplyTo_ZeroCapacity(t *testing.T) {
	now := time.Now().UTC()
	original := domain.Warehouse{ID: "w-1", Capacity: 500}

	zero := 0
	updated := domain.WarehousePatch{Capacity: &zero}.ApplyTo(original, now)

	assert.Equal(t, 0, updated.Capacity)
	assert.Equal(t, 100, updated.OccupancyPercentage(0))
}
