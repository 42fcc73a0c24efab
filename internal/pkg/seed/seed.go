package seed

import (
	"time"

	"freshstock/internal/domain"
)

// Dados de demonstração usados pelo driver de armazenamento em memória e pelo
// utilitário cmd/seed. Os armazéns e produtos são carregados quando uma
// identidade é autenticada e descartados no logout.

// expiryIn retorna uma data de vencimento a N dias de agora.
func expiryIn(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, days)
}

// Warehouses retorna os armazéns de demonstração, em ordem de inserção.
func Warehouses() []domain.Warehouse {
	created := time.Date(2023, time.January, 15, 10, 0, 0, 0, time.UTC)
	return []domain.Warehouse{
		{
			ID:          "c69b8a29-4f0c-4bf2-9e15-51c7e9b7a001",
			Name:        "Armazém Central",
			Address:     "Av. das Nações, 1000 - São Paulo",
			Capacity:    1000,
			Description: "Centro de distribuição principal, com câmaras frias e área para produtos secos.",
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:          "c69b8a29-4f0c-4bf2-9e15-51c7e9b7a002",
			Name:        "Armazém Norte",
			Address:     "Rod. BR-101, km 42 - Recife",
			Capacity:    500,
			Description: "Armazém regional com sistema de refrigeração reforçado para estocagem prolongada.",
			CreatedAt:   created.AddDate(0, 1, 5),
			UpdatedAt:   created.AddDate(0, 1, 5),
		},
		{
			ID:          "c69b8a29-4f0c-4bf2-9e15-51c7e9b7a003",
			Name:        "Armazém Sul",
			Address:     "Rua da Logística, 15 - Porto Alegre",
			Capacity:    700,
			Description: "Centro de distribuição regional com controle de clima.",
			CreatedAt:   created.AddDate(0, 2, 0),
			UpdatedAt:   created.AddDate(0, 2, 0),
		},
	}
}

// Products retorna os produtos de demonstração, em ordem de inserção.
// As datas de vencimento são relativas ao momento da carga, para que os
// três status (expired, warning, good) apareçam na demonstração.
func Products() []domain.Product {
	warehouses := Warehouses()
	central, norte, sul := warehouses[0].ID, warehouses[1].ID, warehouses[2].ID

	created := time.Date(2023, time.May, 1, 8, 0, 0, 0, time.UTC)
	products := []domain.Product{
		{WarehouseID: central, Name: "Leite pasteurizado 3.2%", Quantity: 120, Marking: "LTE-2023-001", ExpiryDate: expiryIn(5), Description: "Leite pasteurizado em garrafas plásticas de 1 litro."},
		{WarehouseID: central, Name: "Queijo prato", Quantity: 50, Marking: "QJO-2023-001", ExpiryDate: expiryIn(30), Description: "Queijo prato embalado a vácuo, peças de 300 gramas."},
		{WarehouseID: central, Name: "Pão de forma", Quantity: 80, Marking: "PAO-2023-001", ExpiryDate: expiryIn(2), Description: "Pão de forma tradicional, pacotes de 500 gramas."},
		{WarehouseID: central, Name: "Presunto cozido", Quantity: 40, Marking: "PRS-2023-001", ExpiryDate: expiryIn(15), Description: "Presunto cozido fatiado, embalagens de 500 gramas."},
		{WarehouseID: central, Name: "Maçã gala", Quantity: 200, Marking: "FRT-2023-001", ExpiryDate: expiryIn(20), Description: "Maçãs gala em caixas de 5 kg."},
		{WarehouseID: central, Name: "Macarrão espaguete", Quantity: 150, Marking: "MCR-2023-001", ExpiryDate: expiryIn(180), Description: "Espaguete de sêmola, pacotes de 450 gramas."},
		{WarehouseID: norte, Name: "Requeijão cremoso", Quantity: 70, Marking: "REQ-2023-001", ExpiryDate: expiryIn(7), Description: "Requeijão cremoso em copos de 200 gramas."},
		{WarehouseID: norte, Name: "Iogurte natural", Quantity: 90, Marking: "IGT-2023-001", ExpiryDate: expiryIn(-2), Description: "Iogurte natural integral, potes de 170 gramas."},
		{WarehouseID: norte, Name: "Manteiga com sal", Quantity: 35, Marking: "MNT-2023-001", ExpiryDate: expiryIn(45), Description: "Manteiga de primeira qualidade, tabletes de 200 gramas."},
		{WarehouseID: sul, Name: "Filé de frango congelado", Quantity: 60, Marking: "FRG-2023-001", ExpiryDate: expiryIn(90), Description: "Filé de peito de frango congelado, bandejas de 1 kg."},
		{WarehouseID: sul, Name: "Suco de laranja integral", Quantity: 110, Marking: "SUC-2023-001", ExpiryDate: expiryIn(4), Description: "Suco de laranja integral em garrafas de 1 litro."},
		{WarehouseID: sul, Name: "Arroz branco tipo 1", Quantity: 250, Marking: "ARZ-2023-001", ExpiryDate: expiryIn(365), Description: "Arroz branco tipo 1, pacotes de 5 kg."},
	}

	for i := range products {
		products[i].ID = productIDs[i]
		products[i].CreatedAt = created.AddDate(0, 0, i)
		products[i].UpdatedAt = products[i].CreatedAt
	}
	return products
}

// productIDs são identificadores fixos, para que a demonstração seja
// determinística entre recargas.
var productIDs = []string{
	"7d6f4a8e-1c2b-4d3e-9f10-aa0000000001",
	"7d6f4a8e-1c2b-4d3e-9f10-aa0000000002",
	"7d6f4a8e-1c2b-4d3e-9f10-aa0000000003",
	"7d6f4a8e-1c2b-4d3e-9f10-aa0000000004",
	"7d6f4a8e-1c2b-4d3e-9f10-aa0000000005",
	"7d6f4a8e-1c2b-4d3e-9f10-aa0000000006",
	"7d6f4a8e-1c2b-4d3e-9f10-aa0000000007",
	"7d6f4a8e-1c2b-4d3e-9f10-aa0000000008",
	"7d6f4a8e-1c2b-4d3e-9f10-aa0000000009",
	"7d6f4a8e-1c2b-4d3e-9f10-aa0000000010",
	"7d6f4a8e-1c2b-4d3e-9f10-aa0000000011",
	"7d6f4a8e-1c2b-4d3e-9f10-aa0000000012",
}
