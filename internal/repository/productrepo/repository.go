package productrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"freshstock/internal/domain"
	"freshstock/internal/errors"
	"freshstock/internal/pkg/logger"
)

// ProductRepository implementa o repositório de produtos sobre PostgreSQL.
type ProductRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório de Produtos.
func NewProductRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

const productColumns = "id, warehouse_id, name, quantity, marking, expiry_date, description, created_at, updated_at"

// scanProduct mapeia uma linha do resultado para a entidade Product.
func scanProduct(row interface{ Scan(...interface{}) error }) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.WarehouseID, &p.Name, &p.Quantity, &p.Marking,
		&p.ExpiryDate, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// CreateProduct insere um novo produto no banco de dados.
func (r *ProductRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `
        INSERT INTO products (id, warehouse_id, name, quantity, marking, expiry_date, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + productColumns

	created, err := scanProduct(r.DB.QueryRowContext(ctxTimeout, query,
		product.ID, product.WarehouseID, product.Name, product.Quantity,
		product.Marking, product.ExpiryDate, product.Description,
		product.CreatedAt, product.UpdatedAt,
	))
	if err != nil {
		r.logger.Error("Falha ao inserir produto no DB.", err)
		return domain.Product{}, errors.NewDBError("Falha ao criar produto", err)
	}

	r.logger.Info("Produto criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// GetProductByID busca um produto pelo ID.
func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(ctxTimeout, query, id))
	if err == sql.ErrNoRows {
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar produto no DB.", err)
		return domain.Product{}, errors.NewDBError("Falha ao buscar produto", err)
	}

	return product, nil
}

// GetAllProducts busca todos os produtos em ordem de criação.
func (r *ProductRepository) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at`
	return r.queryProducts(ctx, query)
}

// GetProductsByWarehouse busca os produtos de um armazém em ordem de criação.
func (r *ProductRepository) GetProductsByWarehouse(ctx context.Context, warehouseID string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE warehouse_id = $1 ORDER BY created_at`
	return r.queryProducts(ctx, query, warehouseID)
}

// queryProducts executa uma consulta de lista e mapeia as linhas retornadas.
func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao executar consulta de produtos.", err)
		return nil, errors.NewDBError("Falha ao buscar produtos", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear produto na iteração.", err)
			return nil, errors.NewDBError("Falha ao mapear produtos do DB", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Erro após iteração das linhas de produtos.", err)
		return nil, errors.NewDBError("Erro após iteração de produtos", err)
	}

	return products, nil
}

// UpdateProduct lê o registro atual, aplica o patch (domain.ProductPatch.ApplyTo)
// e grava o registro inteiro de volta. Diferente da remoção, um ID
// inexistente resulta em NotFoundError, não em no-op.
func (r *ProductRepository) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	current, err := r.GetProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	updated := patch.ApplyTo(current, time.Now().UTC())

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE products
        SET warehouse_id = $1, name = $2, quantity = $3, marking = $4,
            expiry_date = $5, description = $6, updated_at = $7
        WHERE id = $8
        RETURNING ` + productColumns

	result, err := scanProduct(r.DB.QueryRowContext(ctxTimeout, query,
		updated.WarehouseID, updated.Name, updated.Quantity, updated.Marking,
		updated.ExpiryDate, updated.Description, updated.UpdatedAt, updated.ID,
	))
	if err == sql.ErrNoRows {
		return domain.Product{}, errors.NewNotFoundError(fmt.Sprintf("Produto com ID %s não encontrado para atualização.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar produto no DB.", err)
		return domain.Product{}, errors.NewDBError("Falha ao atualizar produto", err)
	}

	r.logger.Info("Produto atualizado com sucesso.", map[string]interface{}{"id": result.ID})
	return result, nil
}

// DeleteProduct remove um produto pelo ID. Idempotente: um ID inexistente
// é um no-op silencioso.
func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `DELETE FROM products WHERE id = $1`

	if _, err := r.DB.ExecContext(ctxTimeout, query, id); err != nil {
		r.logger.Error("Falha ao deletar produto do DB.", err)
		return errors.NewDBError("Falha ao deletar produto", err)
	}

	return nil
}
