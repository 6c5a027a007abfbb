package services

import (
	"context"
	"database/sql"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/iKaueMatos/twitter-microservices/internal/common"
	"github.com/iKaueMatos/twitter-microservices/internal/dbx"
	"github.com/iKaueMatos/twitter-microservices/internal/logging"
	"github.com/iKaueMatos/twitter-microservices/internal/server/models"
	accountsrepo "github.com/iKaueMatos/twitter-microservices/internal/server/repositories/accounts"
	codesrepo "github.com/iKaueMatos/twitter-microservices/internal/server/repositories/activationcodes"
	tokensrepo "github.com/iKaueMatos/twitter-microservices/internal/server/repositories/tokens"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

// --- in-memory repositories ---

type memAccountsRepo struct {
	mu      sync.Mutex
	byID    map[string]*models.Account
	byEmail map[string]string
	seq     int

	// hideFromExists simulates a concurrent registration landing between
	// the existence pre-check and the insert: the check misses the row but
	// the unique constraint still fires.
	hideFromExists bool
}

func newMemAccountsRepo() *memAccountsRepo {
	return &memAccountsRepo{byID: map[string]*models.Account{}, byEmail: map[string]string{}}
}

func (r *memAccountsRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[a.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	r.seq++
	a.ID = "acc-" + strconv.Itoa(r.seq)
	a.CreatedAt = time.Now()
	copied := *a
	r.byID[a.ID] = &copied
	r.byEmail[a.Email] = a.ID
	return a, nil
}

func (r *memAccountsRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hideFromExists {
		return false, nil
	}
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *memAccountsRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *r.byID[id]
	return &copied, nil
}

func (r *memAccountsRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memAccountsRepo) Enable(ctx context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byID[accountID]; ok {
		a.Enabled = true
	}
	return nil
}

type memCodesRepo struct {
	mu    sync.Mutex
	byKey map[string]*models.ActivationCode
	seq   int

	// raceLoser makes the next DeleteByID report that another caller
	// consumed the row first.
	raceLoser bool
}

func newMemCodesRepo() *memCodesRepo {
	return &memCodesRepo{byKey: map[string]*models.ActivationCode{}}
}

func (r *memCodesRepo) Create(ctx context.Context, accountID, key string, validity time.Duration) (*models.ActivationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	code := &models.ActivationCode{
		ID:        "code-" + strconv.Itoa(r.seq),
		Key:       key,
		AccountID: accountID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(validity),
	}
	r.byKey[key] = code
	copied := *code
	return &copied, nil
}

func (r *memCodesRepo) FindByKey(ctx context.Context, key string) (*models.ActivationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code, ok := r.byKey[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *code
	return &copied, nil
}

func (r *memCodesRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raceLoser {
		r.raceLoser = false
		return false, nil
	}
	for key, code := range r.byKey {
		if code.ID == id {
			delete(r.byKey, key)
			return true, nil
		}
	}
	return false, nil
}

func (r *memCodesRepo) DeleteByAccount(ctx context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, code := range r.byKey {
		if code.AccountID == accountID {
			delete(r.byKey, key)
		}
	}
	return nil
}

func (r *memCodesRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byKey)
}

func (r *memCodesRepo) anyKey() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.byKey {
		return key
	}
	return ""
}

type memTokensRepo struct {
	mu        sync.Mutex
	byAccount map[string]*models.Token
	seq       int
}

func newMemTokensRepo() *memTokensRepo {
	return &memTokensRepo{byAccount: map[string]*models.Token{}}
}

func (r *memTokensRepo) Create(ctx context.Context, accountID, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byAccount[accountID]; ok {
		return common.ErrAlreadyExists
	}
	r.seq++
	r.byAccount[accountID] = &models.Token{
		ID:        "tok-" + strconv.Itoa(r.seq),
		AccountID: accountID,
		Value:     value,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *memTokensRepo) FindByAccount(ctx context.Context, accountID string) (*models.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.byAccount[accountID]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *token
	return &copied, nil
}

func (r *memTokensRepo) DeleteByAccount(ctx context.Context, accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byAccount, accountID)
	return nil
}

func (r *memTokensRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byAccount)
}

// --- repository manager over the in-memory repos ---

type fakeRepoManager struct {
	accounts *memAccountsRepo
	codes    *memCodesRepo
	tokens   *memTokensRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		accounts: newMemAccountsRepo(),
		codes:    newMemCodesRepo(),
		tokens:   newMemTokensRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Accounts(dbx.DBTX) accountsrepo.Repository     { return m.accounts }
func (m *fakeRepoManager) ActivationCodes(dbx.DBTX) codesrepo.Repository { return m.codes }
func (m *fakeRepoManager) Tokens(dbx.DBTX) tokensrepo.Repository         { return m.tokens }

// --- collaborators ---

type fakeProfileClient struct {
	err   error
	calls int
}

func (f *fakeProfileClient) CreateProfile(ctx context.Context, username, email string, registrationDate time.Time) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "profile-1", nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	fail error
}

func (f *fakeNotifier) SendActivationCode(ctx context.Context, email, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, key)
	return nil
}
