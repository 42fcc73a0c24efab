package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperror "freshstock/internal/errors"
	"freshstock/internal/pkg/logger"
	"freshstock/internal/service/reportservice"
)

// ReportService define o contrato que o Handler espera da camada de Serviço.
type ReportService interface {
	Summary(ctx context.Context) (reportservice.InventorySummary, error)
	Occupancy(ctx context.Context, warehouseID string) (reportservice.WarehouseOccupancy, error)
}

// Handler agrupa os métodos de Handler de relatórios.
type Handler struct {
	Service ReportService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ReportService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

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

// SummaryHandler lida com a requisição GET /v1/reports/summary.
// @Summary Resumo geral do inventário
// @Description Retorna totais de armazéns, produtos, unidades e distribuição por status de validade.
// @Tags reports
// @Produce json
// @Success 200 {object} reportservice.InventorySummary "Resumo do inventário"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /reports/summary [get]
func (h *Handler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, summary, nil, http.StatusOK)
}

// OccupancyHandler lida com a requisição GET /v1/reports/occupancy/{warehouseId}.
// @Summary Ocupação de um armazém
// @Description Retorna a ocupação percentual de um armazém em relação à sua capacidade.
// @Tags reports
// @Produce json
// @Param warehouseId path string true "ID do Armazém"
// @Success 200 {object} reportservice.WarehouseOccupancy "Ocupação do armazém"
// @Failure 404 {object} domain.ErrorResponse "Armazém não encontrado"
// @Security ApiKeyAuth
// @Router /reports/occupancy/{warehouseId} [get]
func (h *Handler) OccupancyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	warehouseID := strings.TrimPrefix(r.URL.Path, "/v1/reports/occupancy/")

	occupancy, err := h.Service.Occupancy(r.Context(), warehouseID)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, occupancy, nil, http.StatusOK)
}
