package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learning-advisor/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	chatH *ChatHandler,
	advisorH *AdvisorHandler,
	tokens *service.SessionTokenService,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/session", chatH.CreateSession)

	// Rutas de chat: con SESSION_TOKEN_SECRET exigen el bearer de la sesión.
	chat := r.Group("", SessionAuthMiddleware(tokens))
	chat.POST("/webhooks/rest/webhook", chatH.Webhook)
	chat.GET("/session/:id/profile", chatH.GetProfile)
	chat.GET("/session/:id/messages", chatH.ListMessages)
	chat.DELETE("/session/:id", chatH.DeleteSession)

	r.POST("/slots/:slot/validate", advisorH.ValidateSlot)
	r.POST("/timeline", advisorH.Timeline)

	domains := r.Group("/domains")
	domains.GET("", advisorH.ListDomains)
	domains.GET("/:domain/path", advisorH.LearningPath)
	domains.GET("/:domain/courses", advisorH.Courses)
	domains.GET("/:domain/projects", advisorH.Projects)
	domains.GET("/:domain/careers", advisorH.Careers)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
