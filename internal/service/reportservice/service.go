package reportservice

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"freshstock/internal/domain"
	apperror "freshstock/internal/errors"
	"freshstock/internal/pkg/logger"
)

// WarehouseRepository é o recorte do repositório de armazéns usado pelos relatórios.
type WarehouseRepository interface {
	GetWarehouseByID(ctx context.Context, id string) (domain.Warehouse, error)
	GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error)
}

// ProductRepository é o recorte do repositório de produtos usado pelos relatórios.
type ProductRepository interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductsByWarehouse(ctx context.Context, warehouseID string) ([]domain.Product, error)
}

// InventorySummary agrega as estatísticas gerais do estoque: contagens por
// status de vencimento e totais de armazéns, produtos e unidades.
type InventorySummary struct {
	TotalWarehouses int `json:"total_warehouses"`
	TotalProducts   int `json:"total_products"`
	TotalUnits      int `json:"total_units"`
	ExpiredProducts int `json:"expired_products"`
	WarningProducts int `json:"warning_products"`
	GoodProducts    int `json:"good_products"`
	GoodPercentage  int `json:"good_percentage"` // Percentual de produtos com status good (0..100)
}

// WarehouseOccupancy descreve a ocupação de um armazém: soma das quantidades
// de seus produtos em relação à capacidade declarada.
type WarehouseOccupancy struct {
	WarehouseID         string `json:"warehouse_id"`
	Name                string `json:"name"`
	Capacity            int    `json:"capacity"`
	TotalQuantity       int    `json:"total_quantity"`
	OccupancyPercentage int    `json:"occupancy_percentage"`
	HasCapacity         bool   `json:"has_capacity"`
}

// Service implementa os relatórios agregados que cruzam armazéns e produtos.
type Service struct {
	warehouses WarehouseRepository
	products   ProductRepository
	logger     logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Relatórios.
func NewService(warehouses WarehouseRepository, products ProductRepository, logger logger.Logger) *Service {
	return &Service{warehouses: warehouses, products: products, logger: logger}
}

// Summary calcula as estatísticas gerais do estoque.
func (s *Service) Summary(ctx context.Context) (InventorySummary, error) {
	warehouses, err := s.warehouses.GetAllWarehouses(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar armazéns para o resumo.", err)
		return InventorySummary{}, apperror.NewInternalError("Falha interna ao montar o resumo do estoque.", err)
	}

	products, err := s.products.GetAllProducts(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar produtos para o resumo.", err)
		return InventorySummary{}, apperror.NewInternalError("Falha interna ao montar o resumo do estoque.", err)
	}

	summary := InventorySummary{
		TotalWarehouses: len(warehouses),
		TotalProducts:   len(products),
	}

	now := time.Now().UTC()
	for _, product := range products {
		summary.TotalUnits += product.Quantity
		switch product.Status(now) {
		case domain.StatusExpired:
			summary.ExpiredProducts++
		case domain.StatusWarning:
			summary.WarningProducts++
		default:
			summary.GoodProducts++
		}
	}

	if summary.TotalProducts > 0 {
		summary.GoodPercentage = int(math.Round(float64(summary.GoodProducts) / float64(summary.TotalProducts) * 100))
	}

	return summary, nil
}

// Occupancy calcula a ocupação de um armazém específico, somando as
// quantidades de todos os seus produtos.
func (s *Service) Occupancy(ctx context.Context, warehouseID string) (WarehouseOccupancy, error) {
	if _, err := uuid.Parse(warehouseID); err != nil {
		return WarehouseOccupancy{}, apperror.NewValidationError("O ID do armazém deve ser um UUID válido.")
	}

	warehouse, err := s.warehouses.GetWarehouseByID(ctx, warehouseID)
	if err != nil {
		// Erros do repositório já são NotFoundError ou DBError
		return WarehouseOccupancy{}, err
	}

	products, err := s.products.GetProductsByWarehouse(ctx, warehouseID)
	if err != nil {
		s.logger.Error("Falha ao buscar produtos para o cálculo de ocupação.", err)
		return WarehouseOccupancy{}, apperror.NewInternalError("Falha interna ao calcular a ocupação.", err)
	}

	total := 0
	for _, product := range products {
		total += product.Quantity
	}

	return WarehouseOccupancy{
		WarehouseID:         warehouse.ID,
		Name:                warehouse.Name,
		Capacity:            warehouse.Capacity,
		TotalQuantity:       total,
		OccupancyPercentage: warehouse.OccupancyPercentage(total),
		HasCapacity:         warehouse.HasCapacity(total),
	}, nil
}
