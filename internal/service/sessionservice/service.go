package sessionservice

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"freshstock/internal/domain"
	apperror "freshstock/internal/errors"
	"freshstock/internal/pkg/cache"
	"freshstock/internal/pkg/logger"
)

// SessionKey é o slot único da superfície chave-valor onde a identidade
// da sessão é persistida entre reinícios.
const SessionKey = "freshstock:session"

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string, email string) (string, error)
}

// StoreReloader é implementado pelos repositórios em memória: eles recarregam
// os dados de demonstração quando uma identidade aparece e são esvaziados
// quando ela desaparece.
type StoreReloader interface {
	Reload(ctx context.Context) error
	Clear(ctx context.Context)
}

// Service implementa a lógica de sessão: login contra a credencial de
// demonstração, registro fabricado, logout e restauração da identidade
// persistida. A identidade corrente é imutável durante a sessão; login e
// logout a substituem por completo.
type Service struct {
	cache     cache.Client
	tokenSvc  TokenService
	reloaders []StoreReloader
	logger    logger.Logger

	demoEmail       string
	demoDisplayName string
	demoHash        []byte
	sessionTTL      time.Duration

	mu      sync.Mutex
	current *domain.User
}

// NewService cria uma nova instância do Serviço de Sessão. A senha de
// demonstração é transformada em hash bcrypt na construção; o texto puro
// não é retido.
func NewService(
	cacheClient cache.Client,
	tokenSvc TokenService,
	demoEmail, demoPassword, demoDisplayName string,
	sessionTTL time.Duration,
	reloaders []StoreReloader,
	log logger.Logger,
) (*Service, error) {
	demoHash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternalError("Falha ao gerar hash da senha de demonstração.", err)
	}

	return &Service{
		cache:           cacheClient,
		tokenSvc:        tokenSvc,
		reloaders:       reloaders,
		logger:          log,
		demoEmail:       strings.ToLower(demoEmail),
		demoDisplayName: demoDisplayName,
		demoHash:        demoHash,
		sessionTTL:      sessionTTL,
	}, nil
}

// Login autentica a credencial de demonstração. Qualquer outra combinação de
// e-mail e senha falha com UnauthorizedError. Em caso de sucesso, a identidade
// corrente é substituída, persistida e os repositórios são recarregados.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, error) {
	s.logger.Debug("Iniciando login no serviço de sessão.", map[string]interface{}{"email": email})

	if email == "" || password == "" {
		return domain.User{}, apperror.NewUnauthorizedError("E-mail e senha são obrigatórios.")
	}

	// A mesma mensagem é usada para e-mail desconhecido e senha incorreta,
	// para não revelar qual dos dois falhou.
	if strings.ToLower(email) != s.demoEmail {
		return domain.User{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}
	if err := bcrypt.CompareHashAndPassword(s.demoHash, []byte(password)); err != nil {
		s.logger.Warn("Tentativa de login com senha incorreta.", map[string]interface{}{"email": email})
		return domain.User{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	user := domain.User{
		ID:          uuid.New().String(),
		DisplayName: s.demoDisplayName,
		Email:       s.demoEmail,
	}

	tokenString, err := s.tokenSvc.GenerateToken(user.ID, user.Email)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}
	user.Token = tokenString

	if err := s.establishSession(ctx, user); err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Login realizado com sucesso.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// Register fabrica uma nova identidade. O e-mail de demonstração é reservado e
// resulta em ConflictError; não há cadastro real de usuários nem armazenamento
// de senha além da validação de presença.
func (s *Service) Register(ctx context.Context, displayName, email, password string) (domain.User, error) {
	s.logger.Debug("Iniciando registro no serviço de sessão.", map[string]interface{}{"email": email})

	if strings.TrimSpace(displayName) == "" {
		return domain.User{}, apperror.NewValidationError("O nome de exibição não pode ser vazio.")
	}
	if email == "" || password == "" {
		return domain.User{}, apperror.NewValidationError("E-mail e senha são obrigatórios.")
	}

	if strings.ToLower(email) == s.demoEmail {
		return domain.User{}, apperror.NewConflictError("Já existe um usuário registrado com este e-mail.")
	}

	user := domain.User{
		ID:          uuid.New().String(),
		DisplayName: displayName,
		Email:       strings.ToLower(email),
	}

	tokenString, err := s.tokenSvc.GenerateToken(user.ID, user.Email)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}
	user.Token = tokenString

	if err := s.establishSession(ctx, user); err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Registro realizado com sucesso.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// Logout encerra a sessão: limpa a identidade corrente, remove o slot
// persistido e esvazia os repositórios. Nunca falha.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.cache.Delete(ctx, SessionKey); err != nil {
		s.logger.Warn("Falha ao remover a sessão persistida.", map[string]interface{}{"error": err.Error()})
	}

	for _, reloader := range s.reloaders {
		reloader.Clear(ctx)
	}

	s.logger.Info("Sessão encerrada.", nil)
}

// Current retorna a identidade autenticada atual, ou nil se não houver sessão.
func (s *Service) Current() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

// Restore tenta restaurar uma identidade persistida na inicialização.
// Dados malformados são descartados silenciosamente (o slot é removido)
// e o serviço segue sem sessão — nenhum erro chega ao chamador.
func (s *Service) Restore(ctx context.Context) *domain.User {
	raw, err := s.cache.Get(ctx, SessionKey)
	if err == cache.ErrCacheMiss {
		return nil
	}
	if err != nil {
		s.logger.Warn("Falha ao ler a sessão persistida.", map[string]interface{}{"error": err.Error()})
		return nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		s.logger.Warn("Sessão persistida malformada; descartando.", nil)
		_ = s.cache.Delete(ctx, SessionKey)
		return nil
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()

	for _, reloader := range s.reloaders {
		if err := reloader.Reload(ctx); err != nil {
			s.logger.Error("Falha ao recarregar repositório após restauração de sessão.", err)
		}
	}

	s.logger.Info("Sessão restaurada.", map[string]interface{}{"user_id": user.ID})
	return &user
}

// establishSession substitui a identidade corrente, persiste o registro e
// recarrega os repositórios com os dados de demonstração.
func (s *Service) establishSession(ctx context.Context, user domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return apperror.NewInternalError("Falha ao serializar a identidade da sessão.", err)
	}
	if err := s.cache.Set(ctx, SessionKey, string(payload), s.sessionTTL); err != nil {
		return apperror.NewInternalError("Falha ao persistir a identidade da sessão.", err)
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()

	for _, reloader := range s.reloaders {
		if err := reloader.Reload(ctx); err != nil {
			s.logger.Error("Falha ao recarregar repositório após autenticação.", err)
		}
	}

	return nil
}
