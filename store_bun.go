package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// StoredToken is the single-row persistence model for the bun-backed store
type StoredToken struct {
	bun.BaseModel `bun:"table:auth_tokens,alias:tok"`

	Key       string     `bun:"key,pk" json:"key"`
	Token     string     `bun:"token,notnull" json:"token"`
	UpdatedAt *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// BunTokenStore persists the token in the shared local state database.
// Useful when the client already keeps a sqlite cache and wants the
// credential to live alongside it.
type BunTokenStore struct {
	db  *bun.DB
	key string
}

var _ TokenStore = (*BunTokenStore)(nil)

// NewBunTokenStore stores the token under the given fixed key
func NewBunTokenStore(db *bun.DB, key string) *BunTokenStore {
	if key == "" {
		key = "appquilar_token"
	}
	return &BunTokenStore{db: db, key: key}
}

func (b *BunTokenStore) Write(token string) error {
	now := time.Now()
	rec := &StoredToken{
		Key:       b.key,
		Token:     token,
		UpdatedAt: &now,
	}

	_, err := b.db.NewInsert().
		Model(rec).
		On("CONFLICT (key) DO UPDATE").
		Set("token = EXCLUDED.token").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(context.Background())
	return err
}

func (b *BunTokenStore) Read() (string, bool, error) {
	rec := &StoredToken{}
	err := b.db.NewSelect().
		Model(rec).
		Where("key = ?", b.key).
		Scan(context.Background())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}

	return rec.Token, true, nil
}

func (b *BunTokenStore) Delete() error {
	_, err := b.db.NewDelete().
		Model((*StoredToken)(nil)).
		Where("key = ?", b.key).
		Exec(context.Background())
	return err
}
