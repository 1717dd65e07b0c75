package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chessnet/dataserver/internal/domain"
	"github.com/chessnet/dataserver/internal/service/user"
)

type UserHandler struct {
	Users *user.Service
}

func NewUserHandler(users *user.Service) *UserHandler {
	return &UserHandler{Users: users}
}

// Create handles POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req domain.User
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.Users.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// Login handles POST /login
func (h *UserHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	logged, err := h.Users.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, logged)
}

// List handles GET /users with an optional username substring filter. The
// filter applies whenever the username query key is present.
func (h *UserHandler) List(c *gin.Context) {
	var (
		users []domain.User
		err   error
	)
	if substr, ok := c.GetQuery("username"); ok {
		users, err = h.Users.ListByUsernameContaining(c.Request.Context(), substr)
	} else {
		users, err = h.Users.List(c.Request.Context())
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetByUsername handles GET /users/:username. An absent user is a 200 with
// a null body, not an error.
func (h *UserHandler) GetByUsername(c *gin.Context) {
	found, err := h.Users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// writeError maps a service error onto the response: validation failures are
// client errors with their reason, anything else is an opaque 500.
func writeError(c *gin.Context, err error) {
	if domain.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[HTTP] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
