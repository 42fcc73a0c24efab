package domain

import (
	"math"
	"time"
)

// Warehouse representa um armazém físico no sistema.
// Todos os produtos perecíveis pertencem a exatamente um armazém.
type Warehouse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Capacity    int       `json:"capacity"` // Capacidade total em unidades (sempre >= 0)
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasCapacity verifica se o armazém ainda tem espaço livre
// para a quantidade total de produtos informada.
func (w Warehouse) HasCapacity(totalQuantity int) bool {
	return totalQuantity < w.Capacity
}

// OccupancyPercentage calcula o percentual de ocupação do armazém (0..100).
// Um armazém com capacidade zero é considerado 100% ocupado.
// O resultado é arredondado e limitado a 100.
func (w Warehouse) OccupancyPercentage(totalQuantity int) int {
	if w.Capacity == 0 {
		return 100
	}
	pct := int(math.Round(float64(totalQuantity) / float64(w.Capacity) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// WarehousePatch representa uma atualização parcial de um armazém.
// Campos nil mantêm o valor atual; campos não-nil substituem o valor,
// inclusive quando o novo valor é zero ou vazio.
type WarehousePatch struct {
	Name        *string `json:"name,omitempty"`
	Address     *string `json:"address,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ApplyTo aplica o patch sobre um armazém existente e retorna a nova versão
// do registro. O registro original não é modificado: toda mutação substitui
// o registro por completo. CreatedAt é preservado e UpdatedAt recebe `now`.
func (p WarehousePatch) ApplyTo(w Warehouse, now time.Time) Warehouse {
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Address != nil {
		w.Address = *p.Address
	}
	if p.Capacity != nil {
		w.Capacity = *p.Capacity
	}
	if p.Description != nil {
		w.Description = *p.Description
	}
	w.UpdatedAt = now
	return w
}
