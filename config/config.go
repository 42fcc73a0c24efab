package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Drivers de armazenamento suportados.
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// Drivers de cache suportados.
const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

// Config armazena todas as configurações do aplicativo FreshStock.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Armazenamento
	// StoreDriver escolhe entre os repositórios em memória (modo demo,
	// populados a partir do seed) e o PostgreSQL.
	StoreDriver string
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache / persistência de sessão
	CacheDriver string
	RedisAddr   string
	SessionTTL  time.Duration

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Conta de demonstração
	DemoEmail       string
	DemoPassword    string
	DemoDisplayName string

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Armazenamento
		StoreDriver: getEnv("STORE_DRIVER", StoreDriverMemory),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		// 3. Cache / sessão
		CacheDriver: getEnv("CACHE_DRIVER", CacheDriverMemory),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		SessionTTL:  getDurationEnv("SESSION_TTL_HOURS", 24) * time.Hour,

		// 4. Segurança (JWT)
		JWTSecretKey: mustGetEnv("JWT_SECRET_KEY"),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute,

		// 5. Conta de demonstração
		DemoEmail:       getEnv("DEMO_EMAIL", "demo@example.com"),
		DemoPassword:    getEnv("DEMO_PASSWORD", "password"),
		DemoDisplayName: getEnv("DEMO_DISPLAY_NAME", "Usuário Demo"),

		// 6. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,
	}

	if cfg.StoreDriver != StoreDriverMemory && cfg.StoreDriver != StoreDriverPostgres {
		log.Fatalf("❌ Erro de Configuração: STORE_DRIVER deve ser '%s' ou '%s' (recebido: '%s').", StoreDriverMemory, StoreDriverPostgres, cfg.StoreDriver)
	}
	if cfg.StoreDriver == StoreDriverPostgres && cfg.DatabaseURL == "" {
		log.Fatalf("❌ Erro de Configuração: DATABASE_URL deve ser definida quando STORE_DRIVER=%s.", StoreDriverPostgres)
	}
	if cfg.CacheDriver != CacheDriverMemory && cfg.CacheDriver != CacheDriverRedis {
		log.Fatalf("❌ Erro de Configuração: CACHE_DRIVER deve ser '%s' ou '%s' (recebido: '%s').", CacheDriverMemory, CacheDriverRedis, cfg.CacheDriver)
	}

	return cfg
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Duration(defaultValue)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return time.Duration(defaultValue)
	}
	return time.Duration(value)
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
