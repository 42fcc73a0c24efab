package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"freshstock/internal/domain"
	apperror "freshstock/internal/errors"
	"freshstock/internal/pkg/logger"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductsByWarehouse(ctx context.Context, warehouseID string) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	SearchProducts(ctx context.Context, query string, warehouseID string) ([]domain.Product, error)
	FilterProducts(ctx context.Context, warehouseID string, filters domain.ProductFilters) ([]domain.Product, error)
	SortProducts(products []domain.Product, sortBy domain.ProductSortField, order domain.SortOrder) []domain.Product
}

// CreateProductRequest representa o payload de criação de produto.
type CreateProductRequest struct {
	WarehouseID string    `json:"warehouse_id" validate:"required,uuid"`
	Name        string    `json:"name" validate:"required"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
	Marking     string    `json:"marking"`
	ExpiryDate  time.Time `json:"expiry_date" validate:"required"`
	Description string    `json:"description"`
}

// Handler agrupa todos os métodos de Handler de produtos.
type Handler struct {
	Service  ProductService
	Validate *validator.Validate
	Logger   logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, validate *validator.Validate, log logger.Logger) *Handler {
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

// CollectionHandler despacha GET (listar/consultar) e POST (criar) em /v1/products.
func (h *Handler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listProducts(w, r)
	case http.MethodPost:
		h.createProduct(w, r)
	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// ItemHandler despacha GET, PUT e DELETE em /v1/products/{id}.
func (h *Handler) ItemHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/products/")

	switch r.Method {
	case http.MethodGet:
		h.getProduct(w, r, id)
	case http.MethodPut:
		h.updateProduct(w, r, id)
	case http.MethodDelete:
		h.deleteProduct(w, r, id)
	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// createProduct lida com a requisição POST /v1/products.
// @Summary Cria um novo produto
// @Description Cria um produto perecível em um armazém existente.
// @Tags products
// @Accept json
// @Produce json
// @Param product body CreateProductRequest true "Dados do produto para criação"
// @Success 201 {object} domain.Product "Produto criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /products [post]
func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError(err.Error()), http.StatusBadRequest)
		return
	}

	createdProduct, err := h.Service.CreateProduct(ctx, domain.Product{
		WarehouseID: req.WarehouseID,
		Name:        req.Name,
		Quantity:    req.Quantity,
		Marking:     req.Marking,
		ExpiryDate:  req.ExpiryDate,
		Description: req.Description,
	})
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, createdProduct, nil, http.StatusCreated)
}

// listProducts lida com a requisição GET /v1/products.
// A consulta compõe busca textual (q), filtros (status, min_quantity,
// max_quantity, escopados por warehouse_id) e ordenação (sort_by, sort_order).
// @Summary Lista e consulta produtos
// @Description Lista produtos com busca textual, filtros por status/quantidade e ordenação.
// @Tags products
// @Produce json
// @Param warehouse_id query string false "Restringe a um armazém"
// @Param q query string false "Busca textual (nome, lote, descrição)"
// @Param status query string false "Filtro de status (expired, warning, good)"
// @Param min_quantity query int false "Quantidade mínima (inclusiva)"
// @Param max_quantity query int false "Quantidade máxima (inclusiva)"
// @Param sort_by query string false "Chave de ordenação (name, quantity, expiry_date, created_at)"
// @Param sort_order query string false "Direção (asc, desc)"
// @Success 200 {array} domain.Product "Lista de produtos"
// @Failure 400 {object} domain.ErrorResponse "Parâmetros inválidos"
// @Security ApiKeyAuth
// @Router /products [get]
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := r.URL.Query()
	warehouseID := params.Get("warehouse_id")

	var products []domain.Product
	var err error

	switch {
	case params.Get("q") != "":
		products, err = h.Service.SearchProducts(ctx, params.Get("q"), warehouseID)

	case hasFilterParams(params.Get("status"), params.Get("min_quantity"), params.Get("max_quantity")):
		if warehouseID == "" {
			h.handleServiceResponse(w, r, nil, apperror.NewValidationError("O parâmetro warehouse_id é obrigatório para filtrar produtos."), http.StatusBadRequest)
			return
		}
		var filters domain.ProductFilters
		filters, err = parseFilters(params.Get("status"), params.Get("min_quantity"), params.Get("max_quantity"))
		if err == nil {
			products, err = h.Service.FilterProducts(ctx, warehouseID, filters)
		}

	case warehouseID != "":
		products, err = h.Service.GetProductsByWarehouse(ctx, warehouseID)

	default:
		products, err = h.Service.GetAllProducts(ctx)
	}

	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	if sortBy := params.Get("sort_by"); sortBy != "" {
		field, order, parseErr := parseSort(sortBy, params.Get("sort_order"))
		if parseErr != nil {
			h.handleServiceResponse(w, r, nil, parseErr, http.StatusBadRequest)
			return
		}
		products = h.Service.SortProducts(products, field, order)
	}

	h.handleServiceResponse(w, r, products, nil, http.StatusOK)
}

// getProduct lida com a requisição GET /v1/products/{id}.
// @Summary Obtém um produto por ID
// @Tags products
// @Produce json
// @Param id path string true "ID do Produto"
// @Success 200 {object} domain.Product "Produto encontrado"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /products/{id} [get]
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request, id string) {
	product, err := h.Service.GetProductByID(r.Context(), id)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, product, nil, http.StatusOK)
}

// updateProduct lida com a requisição PUT /v1/products/{id}.
// @Summary Atualiza um produto
// @Description Aplica uma atualização parcial: campos ausentes mantêm o valor atual.
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID do Produto"
// @Param patch body domain.ProductPatch true "Campos a atualizar"
// @Success 200 {object} domain.Product "Produto atualizado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Security ApiKeyAuth
// @Router /products/{id} [put]
func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	var patch domain.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	updatedProduct, err := h.Service.UpdateProduct(ctx, id, patch)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, updatedProduct, nil, http.StatusOK)
}

// deleteProduct lida com a requisição DELETE /v1/products/{id}.
// @Summary Remove um produto
// @Description Remove um produto pelo ID. Idempotente.
// @Tags products
// @Param id path string true "ID do Produto"
// @Success 204 "Nenhum conteúdo"
// @Security ApiKeyAuth
// @Router /products/{id} [delete]
func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.Service.DeleteProduct(r.Context(), id); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}

// hasFilterParams indica se algum critério de filtragem foi informado.
func hasFilterParams(status, minQuantity, maxQuantity string) bool {
	return status != "" || minQuantity != "" || maxQuantity != ""
}

// parseFilters converte os parâmetros de query em domain.ProductFilters.
func parseFilters(status, minQuantity, maxQuantity string) (domain.ProductFilters, error) {
	var filters domain.ProductFilters

	if status != "" {
		parsed := domain.ProductStatus(status)
		switch parsed {
		case domain.StatusExpired, domain.StatusWarning, domain.StatusGood:
			filters.Status = &parsed
		default:
			return filters, apperror.NewValidationError("O status deve ser expired, warning ou good.")
		}
	}

	if minQuantity != "" {
		value, err := strconv.Atoi(minQuantity)
		if err != nil {
			return filters, apperror.NewValidationError("O parâmetro min_quantity deve ser um número inteiro.")
		}
		filters.MinQuantity = &value
	}

	if maxQuantity != "" {
		value, err := strconv.Atoi(maxQuantity)
		if err != nil {
			return filters, apperror.NewValidationError("O parâmetro max_quantity deve ser um número inteiro.")
		}
		filters.MaxQuantity = &value
	}

	return filters, nil
}

// parseSort converte os parâmetros de ordenação da query.
func parseSort(sortBy, sortOrder string) (domain.ProductSortField, domain.SortOrder, error) {
	field := domain.ProductSortField(sortBy)
	switch field {
	case domain.SortByName, domain.SortByQuantity, domain.SortByExpiryDate, domain.SortByCreatedAt:
	default:
		return "", "", apperror.NewValidationError("A chave de ordenação deve ser name, quantity, expiry_date ou created_at.")
	}

	order := domain.SortOrder(sortOrder)
	if sortOrder == "" {
		order = domain.SortAsc
	}
	if order != domain.SortAsc && order != domain.SortDesc {
		return "", "", apperror.NewValidationError("A direção de ordenação deve ser asc ou desc.")
	}

	return field, order, nil
}
