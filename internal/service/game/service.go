package game

import (
	"context"

	"github.com/chessnet/dataserver/internal/domain"
)

type Repository interface {
	CreateGame(ctx context.Context, game *domain.Game) (int64, error)
	GetGameByID(ctx context.Context, gameID int64) (*domain.Game, error)
	ListGames(ctx context.Context) ([]domain.Game, error)
	ListGamesByCreator(ctx context.Context, creator string) ([]domain.Game, error)
}

// UserDirectory resolves the user references named in a game creation
// request. Satisfied by the user service.
type UserDirectory interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type Service struct {
	repo  Repository
	users UserDirectory
}

func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{repo: repo, users: users}
}

// Create resolves the three participants and persists the game. Resolution
// fails fast in order creator, player white, player black, naming the role
// that was missing.
func (s *Service) Create(ctx context.Context, req domain.CreateGameRequest) (*domain.Game, error) {
	if !req.GameType.Valid() {
		return nil, domain.NewValidationError("invalid game type")
	}
	if !req.GameOutcome.Valid() {
		return nil, domain.NewValidationError("invalid game outcome")
	}
	if req.TimeControlDurationSeconds < 0 || req.TimeControlIncrementSeconds < 0 {
		return nil, domain.NewValidationError("time control values must not be negative")
	}

	creator, err := s.resolve(ctx, req.Creator, "creator")
	if err != nil {
		return nil, err
	}
	playerWhite, err := s.resolve(ctx, req.PlayerWhite, "player white")
	if err != nil {
		return nil, err
	}
	playerBlack, err := s.resolve(ctx, req.PlayerBlack, "player black")
	if err != nil {
		return nil, err
	}

	game := &domain.Game{
		Creator:                     creator,
		PlayerWhite:                 playerWhite,
		PlayerBlack:                 playerBlack,
		GameType:                    req.GameType,
		TimeControlDurationSeconds:  req.TimeControlDurationSeconds,
		TimeControlIncrementSeconds: req.TimeControlIncrementSeconds,
		GameOutcome:                 req.GameOutcome,
	}

	gameID, err := s.repo.CreateGame(ctx, game)
	if err != nil {
		return nil, err
	}
	game.GameID = gameID
	return game, nil
}

func (s *Service) resolve(ctx context.Context, username, role string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewValidationError(role + " does not exist")
	}
	return user, nil
}

// List returns all games.
func (s *Service) List(ctx context.Context) ([]domain.Game, error) {
	return s.repo.ListGames(ctx)
}

// ListByCreator returns the games created by the given user, matched
// exactly.
func (s *Service) ListByCreator(ctx context.Context, creator string) ([]domain.Game, error) {
	return s.repo.ListGamesByCreator(ctx, creator)
}

// GetByGameID returns the game with the given id, or nil when absent.
func (s *Service) GetByGameID(ctx context.Context, gameID int64) (*domain.Game, error) {
	return s.repo.GetGameByID(ctx, gameID)
}
