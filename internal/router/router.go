package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/grinstore/atendebot/config"
	"github.com/grinstore/atendebot/internal/handler"
)

func Setup(
	cfg *config.Config,
	classifyHandler *handler.ClassifyHandler,
	answerHandler *handler.AnswerHandler,
	chatHandler *handler.ChatHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Atendimento Grinstore no ar"})
	})

	r.POST("/classificar", classifyHandler.Classify)
	r.POST("/responder", answerHandler.SubmitAnswer)
	r.POST("/chat", chatHandler.Chat)

	return r
}
