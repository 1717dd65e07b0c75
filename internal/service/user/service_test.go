package user

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessnet/dataserver/internal/domain"
)

type mockRepo struct {
	users []domain.User
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: []domain.User{}}
}

func (m *mockRepo) CreateUser(ctx context.Context, user *domain.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("insert user %q: %w", user.Username, domain.ErrDuplicate)
		}
	}
	m.users = append(m.users, *user)
	return nil
}

func (m *mockRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	for i := range m.users {
		if m.users[i].Username == username {
			return &m.users[i], nil
		}
	}
	return nil, nil
}

func (m *mockRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for i := range m.users {
		if strings.EqualFold(m.users[i].Email, email) {
			return &m.users[i], nil
		}
	}
	return nil, nil
}

func (m *mockRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	return append([]domain.User{}, m.users...), nil
}

func (m *mockRepo) ListUsersByUsernameContaining(ctx context.Context, substr string) ([]domain.User, error) {
	result := []domain.User{}
	for _, u := range m.users {
		if strings.Contains(u.Username, substr) {
			result = append(result, u)
		}
	}
	return result, nil
}

func newTestService(t *testing.T) (*Service, *mockRepo) {
	t.Helper()
	repo := newMockRepo()
	return NewService(repo, nil, time.Minute), repo
}

func seedUser(t *testing.T, svc *Service) *domain.User {
	t.Helper()
	created, err := svc.Create(context.Background(), &domain.User{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "password",
		Role:     "admin",
	})
	require.NoError(t, err)
	return created
}

func TestCreateRejectsReservedUsername(t *testing.T) {
	svc, repo := newTestService(t)

	for _, username := range []string{"stockfishai", "StockfishAI", "mrstockfishai99"} {
		_, err := svc.Create(context.Background(), &domain.User{
			Email:    username + "@example.com",
			Username: username,
			Password: "password",
		})
		assert.True(t, domain.IsValidationError(err), "username %q should be rejected", username)
	}
	assert.Empty(t, repo.users, "no record should be persisted")
}

func TestCreateRejectsDuplicateEmailCaseInsensitive(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, svc)

	_, err := svc.Create(context.Background(), &domain.User{
		Email:    "ALICE@Example.Com",
		Username: "alice2",
		Password: "password",
	})
	assert.True(t, domain.IsValidationError(err))
	assert.EqualError(t, err, "this email is already in use")
	assert.Len(t, repo.users, 1)
}

func TestCreateRejectsDuplicateUsername(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, svc)

	_, err := svc.Create(context.Background(), &domain.User{
		Email:    "other@example.com",
		Username: "alice",
		Password: "password",
	})
	assert.True(t, domain.IsValidationError(err))
	assert.EqualError(t, err, "this username is already in use")
	assert.Len(t, repo.users, 1)
}

func TestCreateUsernameCheckIsCaseSensitive(t *testing.T) {
	svc, _ := newTestService(t)
	seedUser(t, svc)

	created, err := svc.Create(context.Background(), &domain.User{
		Email:    "other@example.com",
		Username: "Alice",
		Password: "password",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", created.Username)
}

func TestCreateReturnsStoredRecord(t *testing.T) {
	svc, _ := newTestService(t)

	input := domain.User{
		Email:    "bob@example.com",
		Username: "bob",
		Password: "hunter2",
		Role:     "player",
	}
	created, err := svc.Create(context.Background(), &input)
	require.NoError(t, err)
	assert.Equal(t, input, *created)
}

func TestCreateMapsConstraintRaceToValidationError(t *testing.T) {
	_, repo := newTestService(t)

	// Simulate a concurrent create that won the race after our uniqueness
	// checks passed.
	repo.users = append(repo.users, domain.User{Email: "x@example.com", Username: "racer"})
	svc2 := NewService(&racingRepo{mockRepo: repo}, nil, time.Minute)

	_, err := svc2.Create(context.Background(), &domain.User{
		Email:    "y@example.com",
		Username: "racer2",
		Password: "password",
	})
	assert.True(t, domain.IsValidationError(err))
}

// racingRepo passes the lookup phase but fails the insert with a duplicate
// error, as a raced unique constraint would.
type racingRepo struct {
	*mockRepo
}

func (r *racingRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return nil, nil
}

func (r *racingRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, nil
}

func (r *racingRepo) CreateUser(ctx context.Context, user *domain.User) error {
	return fmt.Errorf("insert user %q: %w", user.Username, domain.ErrDuplicate)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	stored := seedUser(t, svc)

	logged, err := svc.Login(context.Background(), domain.LoginRequest{Email: "alice@example.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, stored.Email, logged.Email)

	// Email lookup is case-insensitive
	_, err = svc.Login(context.Background(), domain.LoginRequest{Email: "ALICE@EXAMPLE.COM", Password: "password"})
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), domain.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.True(t, domain.IsValidationError(err))
	assert.EqualError(t, err, "incorrect credentials")

	_, err = svc.Login(context.Background(), domain.LoginRequest{Email: "nobody@example.com", Password: "password"})
	assert.True(t, domain.IsValidationError(err))
	assert.EqualError(t, err, "this user does not exist")
}

func TestListUsers(t *testing.T) {
	svc, _ := newTestService(t)

	for _, u := range []domain.User{
		{Email: "a@x", Username: "alice", Password: "p"},
		{Email: "b@x", Username: "bob", Password: "p"},
		{Email: "c@x", Username: "livestock", Password: "p"},
	} {
		u := u
		_, err := svc.Create(context.Background(), &u)
		require.NoError(t, err)
	}

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := svc.ListByUsernameContaining(context.Background(), "al")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "alice", filtered[0].Username)

	// Substring matches at any position
	filtered, err = svc.ListByUsernameContaining(context.Background(), "stock")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "livestock", filtered[0].Username)
}

func TestGetByUsername(t *testing.T) {
	svc, _ := newTestService(t)
	seedUser(t, svc)

	found, err := svc.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "alice", found.Username)

	// Exact, case-sensitive match; absence is not an error
	found, err = svc.GetByUsername(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Nil(t, found)
}
