package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CachedUser is the persistence model for locally cached user snapshots.
// The user is stored as its JSON payload so the cache schema never chases
// the domain model.
type CachedUser struct {
	bun.BaseModel `bun:"table:cached_users,alias:cus"`

	ID       uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Payload  []byte     `bun:"payload,notnull" json:"payload"`
	CachedAt *time.Time `bun:"cached_at,nullzero,default:current_timestamp" json:"cached_at,omitempty"`
}

// CachedUserRepository is the generic repository over cached snapshots
type CachedUserRepository = repository.Repository[*CachedUser]

// NewCachedUsersRepository builds the bun repository for user snapshots
func NewCachedUsersRepository(db *bun.DB) CachedUserRepository {
	handlers := repository.ModelHandlers[*CachedUser]{
		NewRecord: func() *CachedUser { return &CachedUser{} },
		GetID: func(record *CachedUser) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *CachedUser, id uuid.UUID) {
			if record != nil {
				record.ID = id
			}
		},
	}
	return repository.NewRepository(db, handlers)
}

// CachingUserRepository is a read-through UserRepository: fetches go to the
// remote repository and successful results are snapshotted locally; when
// the remote is unreachable the last snapshot is served so a restart
// without connectivity can still restore a session.
type CachingUserRepository struct {
	remote UserRepository
	cache  CachedUserRepository
	logger Logger
	now    func() time.Time
}

var _ UserRepository = (*CachingUserRepository)(nil)

// CachingUserRepositoryOption customizes the caching repository
type CachingUserRepositoryOption func(*CachingUserRepository)

// WithCacheLogger overrides the logger for absorbed cache failures
func WithCacheLogger(logger Logger) CachingUserRepositoryOption {
	return func(c *CachingUserRepository) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCacheClock injects a custom clock (useful for tests)
func WithCacheClock(clock func() time.Time) CachingUserRepositoryOption {
	return func(c *CachingUserRepository) {
		if clock != nil {
			c.now = clock
		}
	}
}

// NewCachingUserRepository wraps remote with the local snapshot cache
func NewCachingUserRepository(remote UserRepository, cache CachedUserRepository, opts ...CachingUserRepositoryOption) *CachingUserRepository {
	c := &CachingUserRepository{
		remote: remote,
		cache:  cache,
		logger: defLogger{},
		now:    time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// GetByID resolves a user remotely and falls back to the local snapshot
// when the remote call fails. Cache failures are logged, never surfaced.
func (c *CachingUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	user, err := c.remote.GetByID(ctx, id)
	if err == nil && user != nil {
		c.snapshot(ctx, user)
		return user, nil
	}

	if cached, ok := c.lookup(ctx, id); ok {
		c.logger.Info("serving cached user snapshot", "user_id", id)
		return cached, nil
	}

	if err != nil {
		return nil, err
	}
	return nil, ErrUserNotFound
}

func (c *CachingUserRepository) snapshot(ctx context.Context, user *User) {
	payload, err := json.Marshal(user)
	if err != nil {
		c.logger.Warn("user cache marshal failed: %v", err)
		return
	}

	now := c.now()
	rec := &CachedUser{
		ID:       user.ID,
		Payload:  payload,
		CachedAt: &now,
	}

	if _, err := c.cache.Upsert(ctx, rec); err != nil {
		c.logger.Warn("user cache upsert failed: %v", err)
	}
}

func (c *CachingUserRepository) lookup(ctx context.Context, id string) (*User, bool) {
	rec, err := c.cache.GetByID(ctx, id)
	if err != nil {
		if !repository.IsRecordNotFound(err) {
			c.logger.Warn("user cache read failed: %v", err)
		}
		return nil, false
	}

	user := &User{}
	if err := json.Unmarshal(rec.Payload, user); err != nil {
		c.logger.Warn("user cache unmarshal failed: %v", err)
		return nil, false
	}

	return user, true
}
