package warehouse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"freshstock/internal/domain"
	apperror "freshstock/internal/errors"
	"freshstock/internal/pkg/logger"
)

// WarehouseService define o contrato que o Handler espera da camada de Serviço.
type WarehouseService interface {
	CreateWarehouse(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error)
	GetWarehouseByID(ctx context.Context, id string) (domain.Warehouse, error)
	GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error)
	UpdateWarehouse(ctx context.Context, id string, patch domain.WarehousePatch) (domain.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id string) error
}

// CreateWarehouseRequest representa o payload de criação de armazém.
type CreateWarehouseRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Address     string `json:"address" validate:"required"`
	Capacity    int    `json:"capacity" validate:"gte=0"`
	Description string `json:"description"`
}

// Handler agrupa todos os métodos de Handler de armazéns.
type Handler struct {
	Service  WarehouseService
	Validate *validator.Validate
	Logger   logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc WarehouseService, validate *validator.Validate, log logger.Logger) *Handler {
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

// CollectionHandler despacha GET (listar) e POST (criar) em /v1/warehouses.
func (h *Handler) CollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listWarehouses(w, r)
	case http.MethodPost:
		h.createWarehouse(w, r)
	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// ItemHandler despacha GET, PUT e DELETE em /v1/warehouses/{id}.
func (h *Handler) ItemHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/warehouses/")

	switch r.Method {
	case http.MethodGet:
		h.getWarehouse(w, r, id)
	case http.MethodPut:
		h.updateWarehouse(w, r, id)
	case http.MethodDelete:
		h.deleteWarehouse(w, r, id)
	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// createWarehouse lida com a requisição POST /v1/warehouses.
// @Summary Cria um novo armazém
// @Description Cria um novo armazém no sistema.
// @Tags warehouses
// @Accept json
// @Produce json
// @Param warehouse body CreateWarehouseRequest true "Dados do armazém para criação"
// @Success 201 {object} domain.Warehouse "Armazém criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /warehouses [post]
func (h *Handler) createWarehouse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateWarehouseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError(err.Error()), http.StatusBadRequest)
		return
	}

	createdWarehouse, err := h.Service.CreateWarehouse(ctx, domain.Warehouse{
		Name:        req.Name,
		Address:     req.Address,
		Capacity:    req.Capacity,
		Description: req.Description,
	})
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, createdWarehouse, nil, http.StatusCreated)
}

// listWarehouses lida com a requisição GET /v1/warehouses.
// @Summary Lista todos os armazéns
// @Description Retorna uma lista de todos os armazéns cadastrados, em ordem de inserção.
// @Tags warehouses
// @Produce json
// @Success 200 {array} domain.Warehouse "Lista de armazéns"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /warehouses [get]
func (h *Handler) listWarehouses(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.Service.GetAllWarehouses(r.Context())
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, warehouses, nil, http.StatusOK)
}

// getWarehouse lida com a requisição GET /v1/warehouses/{id}.
// @Summary Obtém um armazém por ID
// @Tags warehouses
// @Produce json
// @Param id path string true "ID do Armazém"
// @Success 200 {object} domain.Warehouse "Armazém encontrado"
// @Failure 404 {object} domain.ErrorResponse "Armazém não encontrado"
// @Security ApiKeyAuth
// @Router /warehouses/{id} [get]
func (h *Handler) getWarehouse(w http.ResponseWriter, r *http.Request, id string) {
	warehouse, err := h.Service.GetWarehouseByID(r.Context(), id)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, warehouse, nil, http.StatusOK)
}

// updateWarehouse lida com a requisição PUT /v1/warehouses/{id}.
// @Summary Atualiza um armazém
// @Description Aplica uma atualização parcial: campos ausentes mantêm o valor atual.
// @Tags warehouses
// @Accept json
// @Produce json
// @Param id path string true "ID do Armazém"
// @Param patch body domain.WarehousePatch true "Campos a atualizar"
// @Success 200 {object} domain.Warehouse "Armazém atualizado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Armazém não encontrado"
// @Security ApiKeyAuth
// @Router /warehouses/{id} [put]
func (h *Handler) updateWarehouse(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	var patch domain.WarehousePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusBadRequest)
		return
	}

	updatedWarehouse, err := h.Service.UpdateWarehouse(ctx, id, patch)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, updatedWarehouse, nil, http.StatusOK)
}

// deleteWarehouse lida com a requisição DELETE /v1/warehouses/{id}.
// @Summary Remove um armazém
// @Description Remove um armazém pelo ID. Idempotente; não remove os produtos do armazém.
// @Tags warehouses
// @Param id path string true "ID do Armazém"
// @Success 204 "Nenhum conteúdo"
// @Security ApiKeyAuth
// @Router /warehouses/{id} [delete]
func (h *Handler) deleteWarehouse(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.Service.DeleteWarehouse(r.Context(), id); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}
