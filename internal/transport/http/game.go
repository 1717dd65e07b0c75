package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chessnet/dataserver/internal/domain"
	"github.com/chessnet/dataserver/internal/service/game"
)

type GameHandler struct {
	Games *game.Service
}

func NewGameHandler(games *game.Service) *GameHandler {
	return &GameHandler{Games: games}
}

// Create handles POST /games
func (h *GameHandler) Create(c *gin.Context) {
	var req domain.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.Games.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// List handles GET /games. Games are filtered by creator whenever the
// creator query key is present, and listed in full otherwise.
func (h *GameHandler) List(c *gin.Context) {
	var (
		games []domain.Game
		err   error
	)
	if creator, ok := c.GetQuery("creator"); ok {
		games, err = h.Games.ListByCreator(c.Request.Context(), creator)
	} else {
		games, err = h.Games.List(c.Request.Context())
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetByGameID handles GET /games/:gameId. An unassigned id is a 200 with a
// null body, not an error.
func (h *GameHandler) GetByGameID(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("gameId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	found, err := h.Games.GetByGameID(c.Request.Context(), gameID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}
