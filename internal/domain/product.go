package domain

import (
	"math"
	"time"
)

// ProductStatus classifica a urgência do vencimento de um produto.
type ProductStatus string

// Constantes de status de vencimento.
const (
	StatusExpired ProductStatus = "expired" // Prazo de validade já passou
	StatusWarning ProductStatus = "warning" // Vence em 7 dias ou menos
	StatusGood    ProductStatus = "good"    // Vence em mais de 7 dias
)

// warningThresholdDays é o limite (em dias) para um produto entrar em alerta.
const warningThresholdDays = 7

// Product representa um produto perecível armazenado em um armazém.
// O status de vencimento é um atributo derivado, nunca persistido.
type Product struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"` // Quantidade em unidades (sempre > 0)
	Marking     string    `json:"marking"`  // Código de lote (texto livre)
	ExpiryDate  time.Time `json:"expiry_date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsExpired verifica se o prazo de validade do produto já passou.
// A comparação é estrita: um produto que vence exatamente em `now`
// ainda não está vencido.
func (p Product) IsExpired(now time.Time) bool {
	return now.After(p.ExpiryDate)
}

// DaysUntilExpiry retorna o número de dias até o vencimento,
// arredondado para cima. Retorna valores negativos para produtos vencidos.
func (p Product) DaysUntilExpiry(now time.Time) int {
	return int(math.Ceil(p.ExpiryDate.Sub(now).Hours() / 24))
}

// Status retorna a classificação de vencimento do produto:
// expired (vencido), warning (vence em até 7 dias) ou good.
func (p Product) Status(now time.Time) ProductStatus {
	if p.IsExpired(now) {
		return StatusExpired
	}
	if p.DaysUntilExpiry(now) <= warningThresholdDays {
		return StatusWarning
	}
	return StatusGood
}

// ProductPatch representa uma atualização parcial de um produto.
// Campos nil mantêm o valor atual; campos não-nil substituem o valor,
// inclusive quando o novo valor é zero ou vazio.
type ProductPatch struct {
	WarehouseID *string    `json:"warehouse_id,omitempty"`
	Name        *string    `json:"name,omitempty"`
	Quantity    *int       `json:"quantity,omitempty"`
	Marking     *string    `json:"marking,omitempty"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// ApplyTo aplica o patch sobre um produto existente e retorna a nova versão
// do registro. CreatedAt é preservado e UpdatedAt recebe `now`.
func (p ProductPatch) ApplyTo(product Product, now time.Time) Product {
	if p.WarehouseID != nil {
		product.WarehouseID = *p.WarehouseID
	}
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Quantity != nil {
		product.Quantity = *p.Quantity
	}
	if p.Marking != nil {
		product.Marking = *p.Marking
	}
	if p.ExpiryDate != nil {
		product.ExpiryDate = *p.ExpiryDate
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	product.UpdatedAt = now
	return product
}

// ProductFilters define os critérios de filtragem de produtos dentro de um
// armazém. Todos os critérios presentes são combinados com AND;
// os limites de quantidade são inclusivos.
type ProductFilters struct {
	Status      *ProductStatus `json:"status,omitempty"`
	MinQuantity *int           `json:"min_quantity,omitempty"`
	MaxQuantity *int           `json:"max_quantity,omitempty"`
}

// Matches verifica se o produto satisfaz todos os critérios do filtro.
func (f ProductFilters) Matches(p Product, now time.Time) bool {
	if f.Status != nil && p.Status(now) != *f.Status {
		return false
	}
	if f.MinQuantity != nil && p.Quantity < *f.MinQuantity {
		return false
	}
	if f.MaxQuantity != nil && p.Quantity > *f.MaxQuantity {
		return false
	}
	return true
}

// ProductSortField enumera as chaves de ordenação suportadas.
type ProductSortField string

// Chaves de ordenação.
const (
	SortByName       ProductSortField = "name"
	SortByQuantity   ProductSortField = "quantity"
	SortByExpiryDate ProductSortField = "expiry_date"
	SortByCreatedAt  ProductSortField = "created_at"
)

// SortOrder enumera as direções de ordenação suportadas.
type SortOrder string

// Direções de ordenação.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)
