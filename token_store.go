package client

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

var _ TokenStore = (*BunTokenStore)(nil)
var _ TokenStore = (*MemoryTokenStore)(nil)

// sessionToken is the single-slot row backing BunTokenStore.
type sessionToken struct {
	bun.BaseModel `bun:"table:session_tokens,alias:tok"`
	ID            int64     `bun:"id,pk"`
	Token         string    `bun:"token,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

const tokenSlotID = 1

// BunTokenStore keeps the bearer token in a local SQLite database so the
// session survives a full process restart. Expiry is never evaluated here;
// a stale token is only discovered when an authenticated call fails.
type BunTokenStore struct {
	db *bun.DB
}

// NewBunTokenStore opens (or creates) the SQLite database at path and makes
// sure the backing table exists. Use "file::memory:?cache=shared" for an
// ephemeral store.
func NewBunTokenStore(ctx context.Context, path string) (*BunTokenStore, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open token database")
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.NewCreateTable().
		Model((*sessionToken)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		_ = db.Close()
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to initialize token table")
	}

	return &BunTokenStore{db: db}, nil
}

func (s *BunTokenStore) Get(ctx context.Context) (string, error) {
	row := new(sessionToken)
	err := s.db.NewSelect().
		Model(row).
		Where("id = ?", tokenSlotID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read token")
	}
	return row.Token, nil
}

func (s *BunTokenStore) Set(ctx context.Context, token string) error {
	row := &sessionToken{
		ID:        tokenSlotID,
		Token:     token,
		UpdatedAt: time.Now(),
	}

	_, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("token = EXCLUDED.token").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist token")
	}
	return nil
}

func (s *BunTokenStore) Clear(ctx context.Context) error {
	_, err := s.db.NewDelete().
		Model((*sessionToken)(nil)).
		Where("id = ?", tokenSlotID).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear token")
	}
	return nil
}

func (s *BunTokenStore) Close() error {
	return s.db.Close()
}

// MemoryTokenStore is an in-process TokenStore for tests and short-lived
// tools that do not need the session to outlive them.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Get(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Set(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
