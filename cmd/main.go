package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	// Pacotes de infraestrutura e utilitários
	"freshstock/config"
	"freshstock/internal/pkg/cache"
	"freshstock/internal/pkg/database"
	"freshstock/internal/pkg/logger"
	"freshstock/internal/pkg/seed"
	"freshstock/internal/pkg/token"

	// Camadas da aplicação para Injeção de Dependências
	"freshstock/internal/api/product"
	"freshstock/internal/api/report"
	"freshstock/internal/api/router"
	"freshstock/internal/api/session"
	"freshstock/internal/api/warehouse"
	"freshstock/internal/repository/memoryrepo"
	"freshstock/internal/repository/productrepo"
	"freshstock/internal/repository/warehouserepo"
	"freshstock/internal/service/productservice"
	"freshstock/internal/service/reportservice"
	"freshstock/internal/service/sessionservice"
	"freshstock/internal/service/warehouseservice"
)

// @title FreshStock API
// @version 1.0
// @description API de gestão de inventário perecível: armazéns, produtos com validade e relatórios de ocupação.
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço FreshStock...")

	// O godotenv.Load() procura por um arquivo chamado .env na raiz.
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", map[string]interface{}{
		"store_driver": cfg.StoreDriver,
		"cache_driver": cfg.CacheDriver,
	})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Cache (sessão e rate limiting)
	var cacheClient cache.Client
	if cfg.CacheDriver == config.CacheDriverRedis {
		cacheClient = cache.NewRedisClient(cfg.RedisAddr)
		appLog.Info("Conexão Redis estabelecida.", nil)
	} else {
		cacheClient = cache.NewMemoryClient()
		appLog.Info("Cache em memória inicializado.", nil)
	}

	// B. Repositórios (Camada de Acesso a Dados)
	// O driver escolhe entre os repositórios em memória (modo demo, com seed
	// recarregado a cada login) e o PostgreSQL.
	var (
		warehouseRepo warehouseservice.WarehouseRepository
		productRepo   productservice.ProductRepository
		reloaders     []sessionservice.StoreReloader
	)

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			appLog.Fatal("Falha ao conectar ao banco de dados.", err)
		}
		defer db.Close()
		appLog.Info("Conexão PostgreSQL estabelecida.", nil)

		warehouseRepo = warehouserepo.NewWarehouseRepository(db, cfg.DBTimeout, appLog)
		productRepo = productrepo.NewProductRepository(db, cfg.DBTimeout, appLog)

	default:
		memWarehouses := memoryrepo.NewWarehouseRepository(seed.Warehouses(), appLog)
		memProducts := memoryrepo.NewProductRepository(seed.Products(), appLog)
		warehouseRepo = memWarehouses
		productRepo = memProducts
		reloaders = []sessionservice.StoreReloader{memWarehouses, memProducts}
		appLog.Info("Repositórios em memória inicializados (vazios até o login).", nil)
	}

	// 3. INJEÇÃO DE DEPENDÊNCIAS (Montagem da Clean Architecture)
	// Ordem: Repository -> Service -> Handler

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	appLog.Debug("Serviço de Tokens JWT inicializado.", nil)

	warehouseSvc := warehouseservice.NewService(warehouseRepo, appLog)
	productSvc := productservice.NewService(productRepo, warehouseRepo, appLog)
	reportSvc := reportservice.NewService(warehouseRepo, productRepo, appLog)
	appLog.Debug("Serviços de domínio inicializados.", nil)

	sessionSvc, err := sessionservice.NewService(
		cacheClient,
		tokenSvc,
		cfg.DemoEmail,
		cfg.DemoPassword,
		cfg.DemoDisplayName,
		cfg.SessionTTL,
		reloaders,
		appLog,
	)
	if err != nil {
		appLog.Fatal("Falha ao inicializar o serviço de sessão.", err)
	}

	// Restaura a sessão persistida, se houver. Em caso de sucesso os
	// repositórios em memória são recarregados com o seed.
	if user := sessionSvc.Restore(context.Background()); user != nil {
		appLog.Info("Sessão anterior restaurada.", map[string]interface{}{"email": user.Email})
	}

	// C. Handlers (Camada de Apresentação)
	validate := validator.New()
	sessionHandler := session.NewHandler(sessionSvc, validate, appLog)
	warehouseHandler := warehouse.NewHandler(warehouseSvc, validate, appLog)
	productHandler := product.NewHandler(productSvc, validate, appLog)
	reportHandler := report.NewHandler(reportSvc, appLog)
	appLog.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor

	r := router.NewRouter(router.Deps{
		SessionHandler:   sessionHandler,
		WarehouseHandler: warehouseHandler,
		ProductHandler:   productHandler,
		ReportHandler:    reportHandler,
		TokenService:     tokenSvc,
		CacheClient:      cacheClient,
		RateLimit:        cfg.RateLimitMaxRequests,
		RatePeriod:       cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor FreshStock ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
