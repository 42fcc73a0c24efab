package sessionservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperror "freshstock/internal/errors"
	"freshstock/internal/pkg/cache"
	"freshstock/internal/pkg/logger"
	"freshstock/internal/pkg/token"
	"freshstock/internal/service/sessionservice"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "password"
)

// fakeReloader registra as chamadas de Reload e Clear para verificação.
type fakeReloader struct {
	reloads int
	clears  int
}

func (f *fakeReloader) Reload(ctx context.Context) error {
	f.reloads++
	return nil
}

func (f *fakeReloader) Clear(ctx context.Context) {
	f.clears++
}

func newTestService(t *testing.T, cacheClient cache.Client, reloader *fakeReloader) *sessionservice.Service {
	t.Helper()

	tokenSvc := token.NewService("chave-de-teste", time.Hour)
	svc, err := sessionservice.NewService(
		cacheClient,
		tokenSvc,
		demoEmail,
		demoPassword,
		"Usuário Demo",
		time.Hour,
		[]sessionservice.StoreReloader{reloader},
		logger.NewLogger("error"),
	)
	assert.NoError(t, err)
	return svc
}

// TestLogin_Success testa o login com a credencial de demonstração.
func TestLogin_Success(t *testing.T) {
	reloader := &fakeReloader{}
	svc := newTestService(t, cache.NewMemoryClient(), reloader)
	ctx := context.Background()

	user, err := svc.Login(ctx, demoEmail, demoPassword)

	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.Token)
	assert.Equal(t, demoEmail, user.Email)
	assert.Equal(t, "Usuário Demo", user.DisplayName)

	// O login recarrega os repositórios e define a identidade corrente
	assert.Equal(t, 1, reloader.reloads)
	current := svc.Current()
	assert.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)
}

// TestLogin_Success_EmailCaseInsensitive testa o login com e-mail em
// maiúsculas.
func TestLogin_Success_EmailCaseInsensitive(t *testing.T) {
	svc := newTestService(t, cache.NewMemoryClient(), &fakeReloader{})

	user, err := svc.Login(context.Background(), "DEMO@Example.COM", demoPassword)

	assert.NoError(t, err)
	assert.Equal(t, demoEmail, user.Email)
}

// TestLogin_Fail_WrongCredentials garante que e-mail desconhecido e senha
// incorreta falham com a mesma mensagem.
func TestLogin_Fail_WrongCredentials(t *testing.T) {
	reloader := &fakeReloader{}
	svc := newTestService(t, cache.NewMemoryClient(), reloader)
	ctx := context.Background()

	_, errUnknownEmail := svc.Login(ctx, "outro@example.com", demoPassword)
	_, errWrongPassword := svc.Login(ctx, demoEmail, "senha-errada")

	var unauthorized *apperror.UnauthorizedError
	assert.ErrorAs(t, errUnknownEmail, &unauthorized)
	assert.ErrorAs(t, errWrongPassword, &unauthorized)
	assert.Equal(t, errUnknownEmail.Error(), errWrongPassword.Error())

	// Falha de autenticação não toca nos repositórios
	assert.Equal(t, 0, reloader.reloads)
	assert.Nil(t, svc.Current())
}

// TestRegister_Success testa o registro de uma nova identidade.
func TestRegister_Success(t *testing.T) {
	reloader := &fakeReloader{}
	svc := newTestService(t, cache.NewMemoryClient(), reloader)

	user, err := svc.Register(context.Background(), "Maria Silva", "maria@example.com", "segredo123")

	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.Token)
	assert.Equal(t, "Maria Silva", user.DisplayName)
	assert.Equal(t, "maria@example.com", user.Email)
	assert.Equal(t, 1, reloader.reloads)
}

// TestRegister_Fail_DemoEmailReserved garante que o e-mail de demonstração
// não pode ser registrado.
func TestRegister_Fail_DemoEmailReserved(t *testing.T) {
	svc := newTestService(t, cache.NewMemoryClient(), &fakeReloader{})

	_, err := svc.Register(context.Background(), "Outro Nome", demoEmail, "segredo123")

	var conflict *apperror.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

// TestRegister_Fail_MissingFields testa a rejeição de campos obrigatórios vazios.
func TestRegister_Fail_MissingFields(t *testing.T) {
	svc := newTestService(t, cache.NewMemoryClient(), &fakeReloader{})
	ctx := context.Background()

	var validationErr *apperror.ValidationError

	_, err := svc.Register(ctx, "", "maria@example.com", "segredo123")
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.Register(ctx, "Maria Silva", "", "segredo123")
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.Register(ctx, "Maria Silva", "maria@example.com", "")
	assert.ErrorAs(t, err, &validationErr)
}

// TestLogout_ClearsSessionAndStores testa o encerramento completo da sessão.
func TestLogout_ClearsSessionAndStores(t *testing.T) {
	reloader := &fakeReloader{}
	cacheClient := cache.NewMemoryClient()
	svc := newTestService(t, cacheClient, reloader)
	ctx := context.Background()

	_, err := svc.Login(ctx, demoEmail, demoPassword)
	assert.NoError(t, err)

	svc.Logout(ctx)

	assert.Nil(t, svc.Current())
	assert.Equal(t, 1, reloader.clears)

	// O slot persistido também é removido
	_, err = cacheClient.Get(ctx, sessionservice.SessionKey)
	assert.Equal(t, cache.ErrCacheMiss, err)
}

// TestLogout_Idempotent garante que o logout sem sessão ativa não falha.
func TestLogout_Idempotent(t *testing.T) {
	svc := newTestService(t, cache.NewMemoryClient(), &fakeReloader{})

	svc.Logout(context.Background())
	svc.Logout(context.Background())

	assert.Nil(t, svc.Current())
}

// TestRestore_Success testa a restauração de uma sessão persistida por outra
// instância do serviço.
func TestRestore_Success(t *testing.T) {
	cacheClient := cache.NewMemoryClient()
	ctx := context.Background()

	first := newTestService(t, cacheClient, &fakeReloader{})
	logged, err := first.Login(ctx, demoEmail, demoPassword)
	assert.NoError(t, err)

	reloader := &fakeReloader{}
	second := newTestService(t, cacheClient, reloader)
	restored := second.Restore(ctx)

	assert.NotNil(t, restored)
	assert.Equal(t, logged.ID, restored.ID)
	assert.Equal(t, logged.Email, restored.Email)
	assert.Equal(t, 1, reloader.reloads)
}

// TestRestore_MalformedPayloadDiscarded garante que dados corrompidos no slot
// de sessão são descartados silenciosamente.
func TestRestore_MalformedPayloadDiscarded(t *testing.T) {
	cacheClient := cache.NewMemoryClient()
	ctx := context.Background()

	assert.NoError(t, cacheClient.Set(ctx, sessionservice.SessionKey, "{não é json", time.Hour))

	reloader := &fakeReloader{}
	svc := newTestService(t, cacheClient, reloader)
	restored := svc.Restore(ctx)

	assert.Nil(t, restored)
	assert.Equal(t, 0, reloader.reloads)

	// O slot corrompido é removido
	_, err := cacheClient.Get(ctx, sessionservice.SessionKey)
	assert.Equal(t, cache.ErrCacheMiss, err)
}

// TestRestore_EmptySlot garante que a ausência de sessão persistida não é erro.
func TestRestore_EmptySlot(t *testing.T) {
	svc := newTestService(t, cache.NewMemoryClient(), &fakeReloader{})

	assert.Nil(t, svc.Restore(context.Background()))
}
