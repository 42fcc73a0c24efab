package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"freshstock/config"
	"freshstock/internal/pkg/database"
	"freshstock/internal/pkg/logger"
	"freshstock/internal/pkg/seed"
)

// Popula o PostgreSQL com os dados de demonstração usados pelo driver em
// memória, preservando os IDs fixos do seed.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura: %v", err)
	}

	cfg := config.LoadConfig()
	if cfg.DatabaseURL == "" {
		log.Fatal("seed: DATABASE_URL deve ser definida para popular o banco")
	}

	appLog := logger.NewLogger(cfg.LogLevel)

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()

	ctx := context.Background()

	for _, w := range seed.Warehouses() {
		_, err := db.ExecContext(ctx, `
			INSERT INTO warehouses (id, name, address, capacity, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING`,
			w.ID, w.Name, w.Address, w.Capacity, w.Description, w.CreatedAt, w.UpdatedAt,
		)
		if err != nil {
			appLog.Fatal("Falha ao inserir armazém de demonstração.", err)
		}
	}

	for _, p := range seed.Products() {
		_, err := db.ExecContext(ctx, `
			INSERT INTO products (id, warehouse_id, name, quantity, marking, expiry_date, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO NOTHING`,
			p.ID, p.WarehouseID, p.Name, p.Quantity, p.Marking, p.ExpiryDate, p.Description, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			appLog.Fatal("Falha ao inserir produto de demonstração.", err)
		}
	}

	appLog.Info("Dados de demonstração inseridos com sucesso.", nil)
}
