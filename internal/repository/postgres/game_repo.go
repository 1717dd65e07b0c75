package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chessnet/dataserver/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// The three user references are stored as username foreign keys; reads join
// the users table three times to rebuild the embedded records.
const gameSelectFields = `
	g.game_id, g.game_type, g.time_control_duration_seconds, g.time_control_increment_seconds, COALESCE(g.game_outcome, ''),
	c.email, c.username, c.password, COALESCE(c.role, ''),
	w.email, w.username, w.password, COALESCE(w.role, ''),
	b.email, b.username, b.password, COALESCE(b.role, '')`

const gameFromClause = `
	FROM games g
	JOIN users c ON c.username = g.creator
	JOIN users w ON w.username = g.player_white
	JOIN users b ON b.username = g.player_black`

// CreateGame inserts a game and returns the database-assigned id
func (r *GameRepo) CreateGame(ctx context.Context, game *domain.Game) (int64, error) {
	var outcome any
	if game.GameOutcome != domain.OutcomeOngoing {
		outcome = string(game.GameOutcome)
	}

	query := `
	INSERT INTO games (creator, player_white, player_black, game_type, time_control_duration_seconds, time_control_increment_seconds, game_outcome)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING game_id;
	`
	var gameID int64
	err := r.DB.QueryRowContext(ctx, query,
		game.Creator.Username,
		game.PlayerWhite.Username,
		game.PlayerBlack.Username,
		string(game.GameType),
		game.TimeControlDurationSeconds,
		game.TimeControlIncrementSeconds,
		outcome,
	).Scan(&gameID)
	if err != nil {
		return 0, fmt.Errorf("failed to create game: %v", err)
	}
	return gameID, nil
}

func scanGame(row interface{ Scan(dest ...any) error }) (*domain.Game, error) {
	var game domain.Game
	var creator, white, black domain.User
	err := row.Scan(
		&game.GameID,
		&game.GameType,
		&game.TimeControlDurationSeconds,
		&game.TimeControlIncrementSeconds,
		&game.GameOutcome,
		&creator.Email, &creator.Username, &creator.Password, &creator.Role,
		&white.Email, &white.Username, &white.Password, &white.Role,
		&black.Email, &black.Username, &black.Password, &black.Role,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	game.Creator = &creator
	game.PlayerWhite = &white
	game.PlayerBlack = &black
	return &game, nil
}

// GetGameByID retrieves a game by its numeric id
func (r *GameRepo) GetGameByID(ctx context.Context, gameID int64) (*domain.Game, error) {
	query := `SELECT ` + gameSelectFields + gameFromClause + ` WHERE g.game_id = $1;`
	game, err := scanGame(r.DB.QueryRowContext(ctx, query, gameID))
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %v", err)
	}
	return game, nil
}

// ListGames retrieves all games
func (r *GameRepo) ListGames(ctx context.Context) ([]domain.Game, error) {
	query := `SELECT ` + gameSelectFields + gameFromClause + ` ORDER BY g.game_id;`
	return r.queryGames(ctx, query)
}

// ListGamesByCreator retrieves games whose creator matches exactly
func (r *GameRepo) ListGamesByCreator(ctx context.Context, creator string) ([]domain.Game, error) {
	query := `SELECT ` + gameSelectFields + gameFromClause + ` WHERE g.creator = $1 ORDER BY g.game_id;`
	return r.queryGames(ctx, query, creator)
}

func (r *GameRepo) queryGames(ctx context.Context, query string, args ...any) ([]domain.Game, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %v", err)
	}
	defer rows.Close()

	games := make([]domain.Game, 0)
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %v", err)
		}
		games = append(games, *game)
	}
	return games, rows.Err()
}
