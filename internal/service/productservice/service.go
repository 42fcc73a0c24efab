package productservice

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"freshstock/internal/domain"
	apperror "freshstock/internal/errors"
	"freshstock/internal/pkg/logger"
)

// ProductRepository define o contrato que o Serviço de Produtos espera da
// camada de Persistência (memória ou PostgreSQL).
type ProductRepository interface {
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductsByWarehouse(ctx context.Context, warehouseID string) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// WarehouseGetter é o recorte do repositório de armazéns de que o serviço
// precisa para validar a referência warehouse_id na criação de produtos.
type WarehouseGetter interface {
	GetWarehouseByID(ctx context.Context, id string) (domain.Warehouse, error)
}

// Service implementa a lógica de negócio de produtos: CRUD, busca textual,
// filtragem por critérios e ordenação estável.
type Service struct {
	repo       ProductRepository
	warehouses WarehouseGetter
	collator   *collate.Collator
	logger     logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produtos.
func NewService(repo ProductRepository, warehouses WarehouseGetter, logger logger.Logger) *Service {
	return &Service{
		repo:       repo,
		warehouses: warehouses,
		// Comparação de nomes sensível ao idioma (acentos, cedilha etc.)
		collator: collate.New(language.BrazilianPortuguese),
		logger:   logger,
	}
}

// CreateProduct cria um novo produto após validações de negócio.
// O warehouse_id precisa referenciar um armazém existente no momento da
// criação; exclusões posteriores do armazém não são verificadas.
func (s *Service) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	s.logger.Debug("Iniciando criação de produto no serviço.", map[string]interface{}{"name": product.Name, "warehouse_id": product.WarehouseID})

	if strings.TrimSpace(product.Name) == "" {
		return domain.Product{}, apperror.NewValidationError("O nome do produto não pode ser vazio.")
	}
	if product.Quantity <= 0 {
		return domain.Product{}, apperror.NewValidationError("A quantidade do produto deve ser positiva.")
	}
	if product.ExpiryDate.IsZero() {
		return domain.Product{}, apperror.NewValidationError("A data de validade do produto é obrigatória.")
	}

	if _, err := uuid.Parse(product.WarehouseID); err != nil {
		return domain.Product{}, apperror.NewValidationError("O ID do armazém deve ser um UUID válido.")
	}
	if _, err := s.warehouses.GetWarehouseByID(ctx, product.WarehouseID); err != nil {
		s.logger.Warn("Armazém inexistente referenciado na criação de produto.", map[string]interface{}{"warehouse_id": product.WarehouseID})
		return domain.Product{}, apperror.NewValidationError(fmt.Sprintf("O armazém %s não existe.", product.WarehouseID))
	}

	createdProduct, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		s.logger.Error("Falha ao criar produto no repositório.", err)
		return domain.Product{}, apperror.NewInternalError("Falha interna ao criar produto.", err)
	}

	s.logger.Info("Produto criado com sucesso.", map[string]interface{}{"id": createdProduct.ID, "name": createdProduct.Name})
	return createdProduct, nil
}

// GetProductByID busca um produto pelo ID após validações de formato.
func (s *Service) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Product{}, apperror.NewValidationError("O ID do produto deve ser um UUID válido.")
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		// Erros do repositório já são NotFoundError ou DBError
		return domain.Product{}, err
	}

	return product, nil
}

// GetAllProducts busca todos os produtos.
func (s *Service) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.GetAllProducts(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar todos os produtos no repositório.", err)
		return nil, apperror.NewInternalError("Falha interna ao buscar produtos.", err)
	}
	return products, nil
}

// GetProductsByWarehouse busca os produtos de um armazém, em ordem de inserção.
func (s *Service) GetProductsByWarehouse(ctx context.Context, warehouseID string) ([]domain.Product, error) {
	if _, err := uuid.Parse(warehouseID); err != nil {
		return nil, apperror.NewValidationError("O ID do armazém deve ser um UUID válido.")
	}

	products, err := s.repo.GetProductsByWarehouse(ctx, warehouseID)
	if err != nil {
		s.logger.Error("Falha ao buscar produtos do armazém no repositório.", err)
		return nil, apperror.NewInternalError("Falha interna ao buscar produtos do armazém.", err)
	}
	return products, nil
}

// UpdateProduct aplica uma atualização parcial sobre um produto existente.
func (s *Service) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	s.logger.Debug("Iniciando atualização de produto no serviço.", map[string]interface{}{"id": id})

	if _, err := uuid.Parse(id); err != nil {
		return domain.Product{}, apperror.NewValidationError("O ID do produto deve ser um UUID válido.")
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.Product{}, apperror.NewValidationError("O nome do produto não pode ser vazio.")
	}
	if patch.Quantity != nil && *patch.Quantity <= 0 {
		return domain.Product{}, apperror.NewValidationError("A quantidade do produto deve ser positiva.")
	}
	if patch.WarehouseID != nil {
		if _, err := s.warehouses.GetWarehouseByID(ctx, *patch.WarehouseID); err != nil {
			return domain.Product{}, apperror.NewValidationError(fmt.Sprintf("O armazém %s não existe.", *patch.WarehouseID))
		}
	}

	updatedProduct, err := s.repo.UpdateProduct(ctx, id, patch)
	if err != nil {
		// Erros do repositório já são NotFoundError ou DBError
		return domain.Product{}, err
	}

	s.logger.Info("Produto atualizado com sucesso.", map[string]interface{}{"id": updatedProduct.ID})
	return updatedProduct, nil
}

// DeleteProduct remove um produto. A operação é idempotente.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewValidationError("O ID do produto deve ser um UUID válido.")
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		s.logger.Error("Falha ao deletar produto no repositório.", err)
		return err
	}

	s.logger.Info("Produto deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// SearchProducts faz busca textual, sem distinção de maiúsculas, sobre o nome,
// o código de lote e a descrição de cada produto. Quando warehouseID não é
// vazio, a busca fica restrita àquele armazém.
func (s *Service) SearchProducts(ctx context.Context, query string, warehouseID string) ([]domain.Product, error) {
	products, err := s.scopedProducts(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	lowered := strings.ToLower(query)
	// Nunca nil: a resposta HTTP deve serializar como array mesmo vazia
	matched := []domain.Product{}
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.Name), lowered) ||
			strings.Contains(strings.ToLower(product.Marking), lowered) ||
			strings.Contains(strings.ToLower(product.Description), lowered) {
			matched = append(matched, product)
		}
	}

	s.logger.Debug("Busca de produtos concluída.", map[string]interface{}{"query": query, "matches": len(matched)})
	return matched, nil
}

// FilterProducts retorna os produtos de um armazém que satisfazem todos os
// critérios do filtro (AND). Critérios ausentes não restringem nada: um filtro
// vazio devolve todos os produtos do armazém na ordem original.
func (s *Service) FilterProducts(ctx context.Context, warehouseID string, filters domain.ProductFilters) ([]domain.Product, error) {
	products, err := s.GetProductsByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	// Nunca nil: a resposta HTTP deve serializar como array mesmo vazia
	matched := []domain.Product{}
	for _, product := range products {
		if filters.Matches(product, now) {
			matched = append(matched, product)
		}
	}
	return matched, nil
}

// SortProducts ordena uma lista de produtos por uma das chaves suportadas.
// A ordenação é estável: empates preservam a ordem relativa de entrada.
// A direção desc é exatamente a negação do comparador asc, sem chave
// secundária de desempate. A lista de entrada não é modificada.
func (s *Service) SortProducts(products []domain.Product, sortBy domain.ProductSortField, order domain.SortOrder) []domain.Product {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)

	compare := func(a, b domain.Product) int {
		switch sortBy {
		case domain.SortByName:
			return s.collator.CompareString(a.Name, b.Name)
		case domain.SortByQuantity:
			return a.Quantity - b.Quantity
		case domain.SortByExpiryDate:
			return a.ExpiryDate.Compare(b.ExpiryDate)
		case domain.SortByCreatedAt:
			return a.CreatedAt.Compare(b.CreatedAt)
		default:
			return 0
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := compare(sorted[i], sorted[j])
		if order == domain.SortDesc {
			cmp = -cmp
		}
		return cmp < 0
	})

	return sorted
}

// scopedProducts retorna todos os produtos ou apenas os de um armazém,
// conforme warehouseID esteja vazio ou não.
func (s *Service) scopedProducts(ctx context.Context, warehouseID string) ([]domain.Product, error) {
	if warehouseID == "" {
		return s.GetAllProducts(ctx)
	}
	return s.GetProductsByWarehouse(ctx, warehouseID)
}
