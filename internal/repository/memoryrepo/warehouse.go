package memoryrepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"freshstock/internal/domain"
	apperror "freshstock/internal/errors"
	"freshstock/internal/pkg/logger"
)

// WarehouseRepository é a implementação em memória do repositório de armazéns.
// A lista é propriedade exclusiva do repositório e cada operação roda até o fim
// sob o mutex, sem escritores concorrentes. A ordem de inserção é preservada.
type WarehouseRepository struct {
	mu         sync.Mutex
	seed       []domain.Warehouse
	warehouses []domain.Warehouse
	logger     logger.Logger
}

// NewWarehouseRepository cria um repositório em memória vazio.
// Os dados de `seed` só são carregados quando Reload é chamado
// (ou seja, quando uma identidade é autenticada).
func NewWarehouseRepository(seed []domain.Warehouse, log logger.Logger) *WarehouseRepository {
	return &WarehouseRepository{seed: seed, logger: log}
}

// Reload substitui a lista atual por uma cópia dos dados de demonstração.
func (r *WarehouseRepository) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.warehouses = make([]domain.Warehouse, len(r.seed))
	copy(r.warehouses, r.seed)

	r.logger.Info("Armazéns de demonstração carregados.", map[string]interface{}{"count": len(r.warehouses)})
	return nil
}

// Clear descarta todos os registros (chamado no logout).
func (r *WarehouseRepository) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.warehouses = nil
}

// CreateWarehouse insere um novo armazém com ID e timestamps novos.
func (r *WarehouseRepository) CreateWarehouse(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if warehouse.ID == "" {
		warehouse.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	warehouse.CreatedAt = now
	warehouse.UpdatedAt = now

	r.warehouses = append(r.warehouses, warehouse)

	r.logger.Debug("Armazém criado no repositório em memória.", map[string]interface{}{"id": warehouse.ID})
	return warehouse, nil
}

// GetWarehouseByID busca um armazém pelo ID.
func (r *WarehouseRepository) GetWarehouseByID(ctx context.Context, id string) (domain.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, warehouse := range r.warehouses {
		if warehouse.ID == id {
			return warehouse, nil
		}
	}
	return domain.Warehouse{}, apperror.NewNotFoundError(fmt.Sprintf("Armazém com ID %s não encontrado.", id))
}

// GetAllWarehouses retorna todos os armazéns em ordem de inserção.
func (r *WarehouseRepository) GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Warehouse, len(r.warehouses))
	copy(out, r.warehouses)
	return out, nil
}

// UpdateWarehouse aplica um patch sobre um armazém existente e substitui o
// registro por completo. A lógica de merge é definida uma única vez, no
// próprio patch (domain.WarehousePatch.ApplyTo). Diferente da remoção,
// um ID inexistente resulta em NotFoundError, não em no-op.
func (r *WarehouseRepository) UpdateWarehouse(ctx context.Context, id string, patch domain.WarehousePatch) (domain.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, warehouse := range r.warehouses {
		if warehouse.ID == id {
			updated := patch.ApplyTo(warehouse, time.Now().UTC())
			r.warehouses[i] = updated
			return updated, nil
		}
	}
	return domain.Warehouse{}, apperror.NewNotFoundError(fmt.Sprintf("Armazém com ID %s não encontrado para atualização.", id))
}

// DeleteWarehouse remove um armazém pelo ID. A remoção é idempotente:
// um ID inexistente é um no-op silencioso. Não há cascata para os produtos
// que referenciam o armazém.
func (r *WarehouseRepository) DeleteWarehouse(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, warehouse := range r.warehouses {
		if warehouse.ID == id {
			r.warehouses = append(r.warehouses[:i], r.warehouses[i+1:]...)
			return nil
		}
	}
	return nil
}
