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

// ProductRepository é a implementação em memória do repositório de produtos.
// Segue o mesmo modelo do repositório de armazéns: lista exclusiva,
// operações estritamente sequenciais, ordem de inserção preservada.
type ProductRepository struct {
	mu       sync.Mutex
	seed     []domain.Product
	products []domain.Product
	logger   logger.Logger
}

// NewProductRepository cria um repositório em memória vazio.
func NewProductRepository(seed []domain.Product, log logger.Logger) *ProductRepository {
	return &ProductRepository{seed: seed, logger: log}
}

// Reload substitui a lista atual por uma cópia dos dados de demonstração.
func (r *ProductRepository) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = make([]domain.Product, len(r.seed))
	copy(r.products, r.seed)

	r.logger.Info("Produtos de demonstração carregados.", map[string]interface{}{"count": len(r.products)})
	return nil
}

// Clear descarta todos os registros (chamado no logout).
func (r *ProductRepository) Clear(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = nil
}

// CreateProduct insere um novo produto com ID e timestamps novos.
func (r *ProductRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	r.products = append(r.products, product)

	r.logger.Debug("Produto criado no repositório em memória.", map[string]interface{}{"id": product.ID})
	return product, nil
}

// GetProductByID busca um produto pelo ID.
func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, product := range r.products {
		if product.ID == id {
			return product, nil
		}
	}
	return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não encontrado.", id))
}

// GetAllProducts retorna todos os produtos em ordem de inserção.
func (r *ProductRepository) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetProductsByWarehouse retorna os produtos de um armazém, em ordem de inserção.
func (r *ProductRepository) GetProductsByWarehouse(ctx context.Context, warehouseID string) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Product
	for _, product := range r.products {
		if product.WarehouseID == warehouseID {
			out = append(out, product)
		}
	}
	return out, nil
}

// UpdateProduct aplica um patch sobre um produto existente e substitui o
// registro por completo (domain.ProductPatch.ApplyTo). Diferente da remoção,
// um ID inexistente resulta em NotFoundError, não em no-op.
func (r *ProductRepository) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, product := range r.products {
		if product.ID == id {
			updated := patch.ApplyTo(product, time.Now().UTC())
			r.products[i] = updated
			return updated, nil
		}
	}
	return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não encontrado para atualização.", id))
}

// DeleteProduct remove um produto pelo ID. Idempotente: um ID inexistente
// é um no-op silencioso.
func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, product := range r.products {
		if product.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return nil
}
