package http

import (
	"github.com/gin-gonic/gin"

	"github.com/chessnet/dataserver/internal/transport/http/middleware"
)

// NewRouter builds the gin engine with the full route table.
func NewRouter(userHandler *UserHandler, gameHandler *GameHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware())

	router.POST("/users", userHandler.Create)
	router.POST("/login", userHandler.Login)
	router.GET("/users", userHandler.List)
	router.GET("/users/:username", userHandler.GetByUsername)

	router.POST("/games", gameHandler.Create)
	router.GET("/games", gameHandler.List)
	router.GET("/games/:gameId", gameHandler.GetByGameID)

	return router
}
