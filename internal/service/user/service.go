package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chessnet/dataserver/internal/domain"
)

// reservedFragment is the identity used for the automated opponent; no
// account may contain it, in any casing.
const reservedFragment = "stockfishai"

type Repository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListUsersByUsernameContaining(ctx context.Context, substr string) ([]domain.User, error)
}

// CacheRepository is the optional lookup cache. A nil cache disables it.
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type Service struct {
	repo     Repository
	cache    CacheRepository
	cacheTTL time.Duration
}

func NewService(repo Repository, cache CacheRepository, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// Create validates and persists a new account. Rules run in order: reserved
// username, email uniqueness (case-insensitive), username uniqueness (exact).
func (s *Service) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if strings.Contains(strings.ToLower(user.Username), reservedFragment) {
		return nil, domain.NewValidationError("usernames containing stockfishai are not allowed")
	}

	existing, err := s.repo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("this email is already in use")
	}

	existing, err = s.repo.GetUserByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("this username is already in use")
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		// The checks above are not atomic against concurrent creates; the
		// table's unique constraints catch the race.
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewValidationError("this username or email is already in use")
		}
		return nil, err
	}

	s.invalidateCache(ctx, user.Username)
	return user, nil
}

// Login authenticates credentials against the stored account. The email
// lookup is case-insensitive; the password is compared as an opaque string.
func (s *Service) Login(ctx context.Context, creds domain.LoginRequest) (*domain.User, error) {
	existing, err := s.repo.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NewValidationError("this user does not exist")
	}
	if existing.Password != creds.Password {
		return nil, domain.NewValidationError("incorrect credentials")
	}
	return existing, nil
}

// List returns all users in storage order.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

// ListByUsernameContaining returns users whose username contains substr,
// case-sensitively, at any position.
func (s *Service) ListByUsernameContaining(ctx context.Context, substr string) ([]domain.User, error) {
	return s.repo.ListUsersByUsernameContaining(ctx, substr)
}

// GetByUsername returns the user with the exact username, or nil when
// absent. Lookups go through the cache when one is configured.
func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey(username))
		if err == nil && cached != "" {
			var user domain.User
			if err := json.Unmarshal([]byte(cached), &user); err == nil {
				return &user, nil
			}
		}
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if user != nil && s.cache != nil {
		if data, err := json.Marshal(user); err == nil {
			_ = s.cache.Set(ctx, cacheKey(username), data, s.cacheTTL)
		}
	}
	return user, nil
}

func (s *Service) invalidateCache(ctx context.Context, username string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, cacheKey(username))
}

func cacheKey(username string) string {
	return fmt.Sprintf("user:%s", username)
}
