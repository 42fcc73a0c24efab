package productservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"freshstock/internal/domain"
	apperror "freshstock/internal/errors"
	"freshstock/internal/pkg/logger"
	"freshstock/internal/service/productservice"
)

// MockProductRepository é uma implementação mock da interface ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) GetProductsByWarehouse(ctx context.Context, warehouseID string) ([]domain.Product, error) {
	args := m.Called(ctx, warehouseID)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWarehouseGetter é uma implementação mock da interface WarehouseGetter
type MockWarehouseGetter struct {
	mock.Mock
}

func (m *MockWarehouseGetter) GetWarehouseByID(ctx context.Context, id string) (domain.Warehouse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Warehouse), args.Error(1)
}

func newTestService(repo *MockProductRepository, warehouses *MockWarehouseGetter) *productservice.Service {
	return productservice.NewService(repo, warehouses, logger.NewLogger("error"))
}

// TestCreateProduct_Success testa a criação de um produto válido.
func TestCreateProduct_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockWarehouses := new(MockWarehouseGetter)
	svc := newTestService(mockRepo, mockWarehouses)

	warehouseID := uuid.New().String()
	input := domain.Product{
		WarehouseID: warehouseID,
		Name:        "Leite pasteurizado",
		Quantity:    120,
		ExpiryDate:  time.Now().UTC().AddDate(0, 0, 30),
	}
	expected := input
	expected.ID = uuid.New().String()

	mockWarehouses.On("GetWarehouseByID", mock.Anything, warehouseID).Return(domain.Warehouse{ID: warehouseID}, nil)
	mockRepo.On("CreateProduct", mock.Anything, input).Return(expected, nil)

	created, err := svc.CreateProduct(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, expected, created)
	mockRepo.AssertExpectations(t)
	mockWarehouses.AssertExpectations(t)
}

// TestCreateProduct_Fail_Validation testa as rejeições de payload inválido.
func TestCreateProduct_Fail_Validation(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockWarehouses := new(MockWarehouseGetter)
	svc := newTestService(mockRepo, mockWarehouses)

	warehouseID := uuid.New().String()
	expiry := time.Now().UTC().AddDate(0, 0, 30)

	tests := []struct {
		name    string
		product domain.Product
	}{
		{"nome vazio", domain.Product{WarehouseID: warehouseID, Quantity: 10, ExpiryDate: expiry}},
		{"quantidade zero", domain.Product{WarehouseID: warehouseID, Name: "Queijo", ExpiryDate: expiry}},
		{"quantidade negativa", domain.Product{WarehouseID: warehouseID, Name: "Queijo", Quantity: -5, ExpiryDate: expiry}},
		{"sem data de validade", domain.Product{WarehouseID: warehouseID, Name: "Queijo", Quantity: 10}},
		{"warehouse_id malformado", domain.Product{WarehouseID: "nao-e-uuid", Name: "Queijo", Quantity: 10, ExpiryDate: expiry}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tt.product)

			var validationErr *apperror.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}

	mockRepo.AssertNotCalled(t, "CreateProduct")
}

// TestCreateProduct_Fail_WarehouseNotFound testa a rejeição de referência a
// armazém inexistente.
func TestCreateProduct_Fail_WarehouseNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockWarehouses := new(MockWarehouseGetter)
	svc := newTestService(mockRepo, mockWarehouses)

	warehouseID := uuid.New().String()
	mockWarehouses.On("GetWarehouseByID", mock.Anything, warehouseID).Return(domain.Warehouse{}, apperror.NewNotFoundError("Armazém não encontrado."))

	_, err := svc.CreateProduct(context.Background(), domain.Product{
		WarehouseID: warehouseID,
		Name:        "Queijo prato",
		Quantity:    10,
		ExpiryDate:  time.Now().UTC().AddDate(0, 0, 30),
	})

	var validationErr *apperror.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	mockRepo.AssertNotCalled(t, "CreateProduct")
}

// TestSearchProducts_Success testa a busca textual sem distinção de
// maiúsculas sobre nome, lote e descrição.
func TestSearchProducts_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockWarehouses := new(MockWarehouseGetter)
	svc := newTestService(mockRepo, mockWarehouses)

	products := []domain.Product{
		{ID: "p-1", Name: "Leite Pasteurizado", Marking: "L-001", Description: "Integral"},
		{ID: "p-2", Name: "Queijo prato", Marking: "Q-LEITE-77", Description: "Fatiado"},
		{ID: "p-3", Name: "Pão de forma", Marking: "P-003", Description: "Sem leite na composição"},
		{ID: "p-4", Name: "Café torrado", Marking: "C-004", Description: "Moído"},
	}
	mockRepo.On("GetAllProducts", mock.Anything).Return(products, nil)

	// "leite" aparece no nome de p-1, no lote de p-2 e na descrição de p-3
	matched, err := svc.SearchProducts(context.Background(), "LEITE", "")

	assert.NoError(t, err)
	assert.Len(t, matched, 3)
	assert.Equal(t, "p-1", matched[0].ID)
	assert.Equal(t, "p-2", matched[1].ID)
	assert.Equal(t, "p-3", matched[2].ID)
}

// TestSearchProducts_Success_ScopedToWarehouse testa a busca restrita a um armazém.
func TestSearchProducts_Success_ScopedToWarehouse(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockWarehouses := new(MockWarehouseGetter)
	svc := newTestService(mockRepo, mockWarehouses)

	warehouseID := uuid.New().String()
	products := []domain.Product{
		{ID: "p-1", WarehouseID: warehouseID, Name: "Leite pasteurizado"},
		{ID: "p-2", WarehouseID: warehouseID, Name: "Café torrado"},
	}
	mockRepo.On("GetProductsByWarehouse", mock.Anything, warehouseID).Return(products, nil)

	matched, err := svc.SearchProducts(context.Background(), "leite", warehouseID)

	assert.NoError(t, err)
	assert.Len(t, matched, 1)
	assert.Equal(t, "p-1", matched[0].ID)
	mockRepo.AssertNotCalled(t, "GetAllProducts")
}

// TestSearchProducts_Success_NoMatches garante que uma busca sem resultados
// devolve uma lista vazia, nunca nil, para serializar como array no JSON.
func TestSearchProducts_Success_NoMatches(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockWarehouses := new(MockWarehouseGetter)
	svc := newTestService(mockRepo, mockWarehouses)

	products := []domain.Product{
		{ID: "p-1", Name: "Leite pasteurizado"},
	}
	mockRepo.On("GetAllProducts", mock.Anything).Return(products, nil)

	matched, err := svc.SearchProducts(context.Background(), "inexistente", "")

	assert.NoError(t, err)
	assert.NotNil(t, matched)
	assert.Empty(t, matched)
}

// TestFilterProducts_Success testa a combinação AND dos critérios dentro
// de um armazém.
func TestFilterProducts_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockWarehouses := new(MockWarehouseGetter)
	svc := newTestService(mockRepo, mockWarehouses)

	warehouseID := uuid.New().String()
	now := time.Now().UTC()
	products := []domain.Product{
		{ID: "p-1", Quantity: 120, ExpiryDate: now.AddDate(0, 0, 30)}, // good
		{ID: "p-2", Quantity: 40, ExpiryDate: now.AddDate(0, 0, 3)},   // warning
		{ID: "p-3", Quantity: 60, ExpiryDate: now.AddDate(0, 0, -2)},  // expired
		{ID: "p-4", Quantity: 200, ExpiryDate: now.AddDate(0, 0, 60)}, // good
	}
	mockRepo.On("GetProductsByWarehouse", mock.Anything, warehouseID).Return(products, nil)

	good := domain.StatusGood
	min100 := 100
	max150 := 150
	matched, err := svc.FilterProducts(context.Background(), warehouseID, domain.ProductFilters{
		Status:      &good,
		MinQuantity: &min100,
		MaxQuantity: &max150,
	})

	assert.NoError(t, err)
	assert.Len(t, matched, 1)
	assert.Equal(t, "p-1", matched[0].ID)
}

// TestFilterProducts_Success_EmptyFilters garante que um filtro vazio devolve
// todos os produtos do armazém na ordem original.
func TestFilterProducts_Success_EmptyFilters(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockWarehouses := new(MockWarehouseGetter)
	svc := newTestService(mockRepo, mockWarehouses)

	warehouseID := uuid.New().String()
	now := time.Now().UTC()
	products := []domain.Product{
		{ID: "p-1", Quantity: 10, ExpiryDate: now.AddDate(0, 0, 30)},
		{ID: "p-2", Quantity: 20, ExpiryDate: now.AddDate(0, 0, 3)},
	}
	mockRepo.On("GetProductsByWarehouse", mock.Anything, warehouseID).Return(products, nil)

	matched, err := svc.FilterProducts(context.Background(), warehouseID, domain.ProductFilters{})

	assert.NoError(t, err)
	assert.Equal(t, products, matched)
}

// TestFilterProducts_Success_NoMatches garante que um filtro sem resultados
// devolve uma lista vazia, nunca nil.
func TestFilterProducts_Success_NoMatches(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockWarehouses := new(MockWarehouseGetter)
	svc := newTestService(mockRepo, mockWarehouses)

	warehouseID := uuid.New().String()
	now := time.Now().UTC()
	products := []domain.Product{
		{ID: "p-1", Quantity: 10, ExpiryDate: now.AddDate(0, 0, 30)},
	}
	mockRepo.On("GetProductsByWarehouse", mock.Anything, warehouseID).Return(products, nil)

	min100 := 100
	matched, err := svc.FilterProducts(context.Background(), warehouseID, domain.ProductFilters{MinQuantity: &min100})

	assert.NoError(t, err)
	assert.NotNil(t, matched)
	assert.Empty(t, matched)
}

// TestSortProducts testa a ordenação por cada chave suportada.
func TestSortProducts(t *testing.T) {
	svc := newTestService(new(MockProductRepository), new(MockWarehouseGetter))

	now := time.Now().UTC()
	products := []domain.Product{
		{ID: "p-1", Name: "Queijo", Quantity: 40, ExpiryDate: now.AddDate(0, 0, 10), CreatedAt: now.AddDate(0, 0, -1)},
		{ID: "p-2", Name: "Leite", Quantity: 120, ExpiryDate: now.AddDate(0, 0, 5), CreatedAt: now.AddDate(0, 0, -3)},
		{ID: "p-3", Name: "Pão", Quantity: 60, ExpiryDate: now.AddDate(0, 0, 20), CreatedAt: now.AddDate(0, 0, -2)},
	}

	byName := svc.SortProducts(products, domain.SortByName, domain.SortAsc)
	assert.Equal(t, []string{"p-2", "p-3", "p-1"}, ids(byName))

	byQuantity := svc.SortProducts(products, domain.SortByQuantity, domain.SortAsc)
	assert.Equal(t, []string{"p-1", "p-3", "p-2"}, ids(byQuantity))

	byExpiry := svc.SortProducts(products, domain.SortByExpiryDate, domain.SortAsc)
	assert.Equal(t, []string{"p-2", "p-1", "p-3"}, ids(byExpiry))

	byCreated := svc.SortProducts(products, domain.SortByCreatedAt, domain.SortAsc)
	assert.Equal(t, []string{"p-2", "p-3", "p-1"}, ids(byCreated))

	// A lista de entrada não é modificada
	assert.Equal(t, []string{"p-1", "p-2", "p-3"}, ids(products))
}

// TestSortProducts_DescMirrorsAsc garante que desc é exatamente a ordem
// inversa de asc para listas sem empates.
func TestSortProducts_DescMirrorsAsc(t *testing.T) {
	svc := newTestService(new(MockProductRepository), new(MockWarehouseGetter))

	products := []domain.Product{
		{ID: "p-1", Quantity: 40},
		{ID: "p-2", Quantity: 120},
		{ID: "p-3", Quantity: 60},
	}

	asc := svc.SortProducts(products, domain.SortByQuantity, domain.SortAsc)
	desc := svc.SortProducts(products, domain.SortByQuantity, domain.SortDesc)

	assert.Equal(t, []string{"p-1", "p-3", "p-2"}, ids(asc))
	assert.Equal(t, []string{"p-2", "p-3", "p-1"}, ids(desc))
}

// TestSortProducts_StableOnTies garante que empates preservam a ordem
// relativa de entrada, em ambas as direções.
func TestSortProducts_StableOnTies(t *testing.T) {
	svc := newTestService(new(MockProductRepository), new(MockWarehouseGetter))

	products := []domain.Product{
		{ID: "p-1", Quantity: 50},
		{ID: "p-2", Quantity: 50},
		{ID: "p-3", Quantity: 50},
	}

	asc := svc.SortProducts(products, domain.SortByQuantity, domain.SortAsc)
	desc := svc.SortProducts(products, domain.SortByQuantity, domain.SortDesc)

	assert.Equal(t, []string{"p-1", "p-2", "p-3"}, ids(asc))
	assert.Equal(t, []string{"p-1", "p-2", "p-3"}, ids(desc))
}

// TestSortProducts_Idempotent garante que ordenar uma lista já ordenada
// não muda nada.
func TestSortProducts_Idempotent(t *testing.T) {
	svc := newTestService(new(MockProductRepository), new(MockWarehouseGetter))

	products := []domain.Product{
		{ID: "p-1", Name: "Açaí"},
		{ID: "p-2", Name: "Café"},
		{ID: "p-3", Name: "Leite"},
	}

	once := svc.SortProducts(products, domain.SortByName, domain.SortAsc)
	twice := svc.SortProducts(once, domain.SortByName, domain.SortAsc)

	assert.Equal(t, once, twice)
}

// TestUpdateProduct_Fail_InvalidPatch testa as rejeições de patch inválido.
func TestUpdateProduct_Fail_InvalidPatch(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockWarehouses := new(MockWarehouseGetter)
	svc := newTestService(mockRepo, mockWarehouses)

	id := uuid.New().String()
	empty := ""
	zero := 0

	_, err := svc.UpdateProduct(context.Background(), id, domain.ProductPatch{Name: &empty})
	var validationErr *apperror.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.UpdateProduct(context.Background(), id, domain.ProductPatch{Quantity: &zero})
	assert.ErrorAs(t, err, &validationErr)

	mockRepo.AssertNotCalled(t, "UpdateProduct")
}

// TestDeleteProduct_Success testa a remoção idempotente.
func TestDeleteProduct_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockWarehouses := new(MockWarehouseGetter)
	svc := newTestService(mockRepo, mockWarehouses)

	id := uuid.New().String()
	mockRepo.On("DeleteProduct", mock.Anything, id).Return(nil)

	assert.NoError(t, svc.DeleteProduct(context.Background(), id))
	mockRepo.AssertExpectations(t)
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
