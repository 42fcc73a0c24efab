package warehouseservice

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"freshstock/internal/domain"
	apperror "freshstock/internal/errors"
	"freshstock/internal/pkg/logger"
)

// WarehouseRepository define o contrato que o Serviço de Armazéns espera da
// camada de Persistência (memória ou PostgreSQL).
type WarehouseRepository interface {
	CreateWarehouse(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error)
	GetWarehouseByID(ctx context.Context, id string) (domain.Warehouse, error)
	GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error)
	UpdateWarehouse(ctx context.Context, id string, patch domain.WarehousePatch) (domain.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id string) error
}

// Service implementa a lógica de negócio de armazéns.
type Service struct {
	repo   WarehouseRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Armazéns.
func NewService(repo WarehouseRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateWarehouse cria um novo armazém após validações de negócio.
func (s *Service) CreateWarehouse(ctx context.Context, warehouse domain.Warehouse) (domain.Warehouse, error) {
	s.logger.Debug("Iniciando criação de armazém no serviço.", map[string]interface{}{"name": warehouse.Name})

	if err := validateWarehouseName(warehouse.Name); err != nil {
		s.logger.Warn("Falha na validação do nome do armazém.", map[string]interface{}{"name": warehouse.Name, "error": err.Error()})
		return domain.Warehouse{}, err
	}
	if warehouse.Capacity < 0 {
		return domain.Warehouse{}, apperror.NewValidationError("A capacidade do armazém não pode ser negativa.")
	}

	createdWarehouse, err := s.repo.CreateWarehouse(ctx, warehouse)
	if err != nil {
		s.logger.Error("Falha ao criar armazém no repositório.", err)
		return domain.Warehouse{}, apperror.NewInternalError("Falha interna ao criar armazém.", err)
	}

	s.logger.Info("Armazém criado com sucesso.", map[string]interface{}{"id": createdWarehouse.ID, "name": createdWarehouse.Name})
	return createdWarehouse, nil
}

// GetWarehouseByID busca um armazém pelo ID após validações de formato.
func (s *Service) GetWarehouseByID(ctx context.Context, id string) (domain.Warehouse, error) {
	if _, err := uuid.Parse(id); err != nil {
		s.logger.Warn("ID de armazém inválido fornecido.", map[string]interface{}{"id": id, "error": err.Error()})
		return domain.Warehouse{}, apperror.NewValidationError("O ID do armazém deve ser um UUID válido.")
	}

	warehouse, err := s.repo.GetWarehouseByID(ctx, id)
	if err != nil {
		// Erros do repositório já são NotFoundError ou DBError
		return domain.Warehouse{}, err
	}

	return warehouse, nil
}

// GetAllWarehouses busca todos os armazéns.
func (s *Service) GetAllWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	warehouses, err := s.repo.GetAllWarehouses(ctx)
	if err != nil {
		s.logger.Error("Falha ao buscar todos os armazéns no repositório.", err)
		return nil, apperror.NewInternalError("Falha interna ao buscar armazéns.", err)
	}

	s.logger.Debug("Todos os armazéns encontrados com sucesso.", map[string]interface{}{"count": len(warehouses)})
	return warehouses, nil
}

// UpdateWarehouse aplica uma atualização parcial sobre um armazém existente.
// Campos ausentes no patch mantêm o valor atual; o registro resultante recebe
// um novo UpdatedAt e o CreatedAt original é preservado.
func (s *Service) UpdateWarehouse(ctx context.Context, id string, patch domain.WarehousePatch) (domain.Warehouse, error) {
	s.logger.Debug("Iniciando atualização de armazém no serviço.", map[string]interface{}{"id": id})

	if _, err := uuid.Parse(id); err != nil {
		s.logger.Warn("ID de armazém inválido fornecido para atualização.", map[string]interface{}{"id": id, "error": err.Error()})
		return domain.Warehouse{}, apperror.NewValidationError("O ID do armazém deve ser um UUID válido.")
	}

	if patch.Name != nil {
		if err := validateWarehouseName(*patch.Name); err != nil {
			s.logger.Warn("Falha na validação do nome do armazém para atualização.", map[string]interface{}{"error": err.Error()})
			return domain.Warehouse{}, err
		}
	}
	if patch.Capacity != nil && *patch.Capacity < 0 {
		return domain.Warehouse{}, apperror.NewValidationError("A capacidade do armazém não pode ser negativa.")
	}

	updatedWarehouse, err := s.repo.UpdateWarehouse(ctx, id, patch)
	if err != nil {
		// Erros do repositório já são NotFoundError ou DBError
		return domain.Warehouse{}, err
	}

	s.logger.Info("Armazém atualizado com sucesso.", map[string]interface{}{"id": updatedWarehouse.ID, "name": updatedWarehouse.Name})
	return updatedWarehouse, nil
}

// DeleteWarehouse remove um armazém. A operação é idempotente e não remove
// os produtos que referenciam o armazém.
func (s *Service) DeleteWarehouse(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		s.logger.Warn("ID de armazém inválido fornecido para exclusão.", map[string]interface{}{"id": id, "error": err.Error()})
		return apperror.NewValidationError("O ID do armazém deve ser um UUID válido.")
	}

	if err := s.repo.DeleteWarehouse(ctx, id); err != nil {
		s.logger.Error("Falha ao deletar armazém no repositório.", err)
		return err
	}

	s.logger.Info("Armazém deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// validateWarehouseName é uma função auxiliar para validar o nome do armazém.
func validateWarehouseName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperror.NewValidationError("O nome do armazém não pode ser vazio.")
	}
	if len(name) < 3 || len(name) > 100 {
		return apperror.NewValidationError("O nome do armazém deve ter entre 3 e 100 caracteres.")
	}
	return nil
}
