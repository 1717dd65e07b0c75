package domain

type GameType string

const (
	GameTypeAI     GameType = "AI"
	GameTypeFriend GameType = "FRIEND"
	GameTypeRandom GameType = "RANDOM"
)

func (t GameType) Valid() bool {
	switch t {
	case GameTypeAI, GameTypeFriend, GameTypeRandom:
		return true
	}
	return false
}

// GameOutcome is empty while a game is ongoing.
type GameOutcome string

const (
	OutcomeWhiteWin GameOutcome = "WHITE_WIN"
	OutcomeBlackWin GameOutcome = "BLACK_WIN"
	OutcomeDraw     GameOutcome = "DRAW"
	OutcomeOngoing  GameOutcome = ""
)

func (o GameOutcome) Valid() bool {
	switch o {
	case OutcomeWhiteWin, OutcomeBlackWin, OutcomeDraw, OutcomeOngoing:
		return true
	}
	return false
}

// Game is a stored game record. The id is assigned by the database on
// insert; the three user references are resolved before a game is created.
type Game struct {
	GameID                      int64       `json:"gameId"`
	Creator                     *User       `json:"creator"`
	PlayerWhite                 *User       `json:"playerWhite"`
	PlayerBlack                 *User       `json:"playerBlack"`
	GameType                    GameType    `json:"gameType"`
	TimeControlDurationSeconds  int         `json:"timeControlDurationSeconds"`
	TimeControlIncrementSeconds int         `json:"timeControlIncrementSeconds"`
	GameOutcome                 GameOutcome `json:"gameOutcome"`
}

// CreateGameRequest carries the payload of POST /games. Players are
// referenced by username.
type CreateGameRequest struct {
	Creator                     string      `json:"creator"`
	PlayerWhite                 string      `json:"playerWhite"`
	PlayerBlack                 string      `json:"playerBlack"`
	GameType                    GameType    `json:"gameType"`
	TimeControlDurationSeconds  int         `json:"timeControlDurationSeconds"`
	TimeControlIncrementSeconds int         `json:"timeControlIncrementSeconds"`
	GameOutcome                 GameOutcome `json:"gameOutcome"`
}
