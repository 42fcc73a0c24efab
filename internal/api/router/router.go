package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"freshstock/internal/api/product"
	"freshstock/internal/api/report"
	"freshstock/internal/api/session"
	"freshstock/internal/api/warehouse"
	"freshstock/internal/pkg/cache"
	"freshstock/internal/pkg/middleware"
)

// Deps agrupa os Handlers e colaboradores necessários para montar o roteador.
type Deps struct {
	SessionHandler   *session.Handler
	WarehouseHandler *warehouse.Handler
	ProductHandler   *product.Handler
	ReportHandler    *report.Handler
	TokenService     middleware.TokenService
	CacheClient      cache.Client
	RateLimit        int
	RatePeriod       time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/ping", PingHandler)

	// Documentação Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Rotas de sessão (públicas, exceto /me)
	auth := middleware.NewAuthMiddleware(deps.TokenService)

	mux.HandleFunc("/v1/auth/login", deps.SessionHandler.LoginHandler)
	mux.HandleFunc("/v1/auth/register", deps.SessionHandler.RegisterHandler)
	mux.HandleFunc("/v1/auth/logout", deps.SessionHandler.LogoutHandler)
	mux.HandleFunc("/v1/auth/me", auth(deps.SessionHandler.CurrentUserHandler))

	// Rotas de armazéns (protegidas)
	mux.HandleFunc("/v1/warehouses", auth(deps.WarehouseHandler.CollectionHandler))
	mux.HandleFunc("/v1/warehouses/", auth(deps.WarehouseHandler.ItemHandler))

	// Rotas de produtos (protegidas)
	mux.HandleFunc("/v1/products", auth(deps.ProductHandler.CollectionHandler))
	mux.HandleFunc("/v1/products/", auth(deps.ProductHandler.ItemHandler))

	// Rotas de relatórios (protegidas)
	mux.HandleFunc("/v1/reports/summary", auth(deps.ReportHandler.SummaryHandler))
	mux.HandleFunc("/v1/reports/occupancy/", auth(deps.ReportHandler.OccupancyHandler))

	// Middlewares globais
	rateLimiter := middleware.RateLimiter(deps.CacheClient, deps.RateLimit, deps.RatePeriod)
	return rateLimiter(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
