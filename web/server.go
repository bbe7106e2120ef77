package web

import (
	"context"
	"net/http"

	"concept-graph/config"
	"concept-graph/store"
	"concept-graph/web/handlers"
	"concept-graph/web/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router   *gin.Engine
	sessions *store.SessionStore
	limiter  *middleware.SessionRateLimiter
	logger   *zap.Logger
	config   *config.Config
}

func NewServer(sessions *store.SessionStore, logger *zap.Logger, cfg *config.Config) *Server {
	// Set Gin mode based on environment
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(func(c *gin.Context) {
		// Add logger to context
		c.Set("logger", logger)
		c.Next()
	})

	limiter := middleware.NewSessionRateLimiter(middleware.RateLimiterConfig{
		MutationsPerMinute: cfg.RateLimitMutationsPerMin,
		ImportsPerHour:     cfg.RateLimitImportsPerHour,
		BurstSize:          cfg.RateLimitBurstSize,
		CleanupInterval:    cfg.CleanupInterval,
	}, logger)

	server := &Server{
		router:   router,
		sessions: sessions,
		limiter:  limiter,
		logger:   logger,
		config:   cfg,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	graphHandler := handlers.NewGraphHandler(s.sessions, s.logger, s.config.AdminMode)

	s.router.POST("/sessions", graphHandler.CreateSession)

	session := s.router.Group("/sessions/:session")
	session.Use(middleware.SessionMiddleware(s.sessions))
	{
		session.DELETE("", graphHandler.DeleteSession)
		session.GET("/graph", graphHandler.GetGraph)
		session.PUT("/viewport", graphHandler.SetViewport)

		session.GET("/export", graphHandler.Export)
		session.POST("/import", middleware.RateLimitMiddleware(s.limiter, "import"), graphHandler.Import)

		mutate := session.Group("")
		mutate.Use(middleware.RateLimitMiddleware(s.limiter, "mutation"))
		{
			mutate.POST("/nodes", graphHandler.AddNode)
			mutate.DELETE("/nodes/:node", graphHandler.RemoveNode)
			mutate.POST("/nodes/:node/select", graphHandler.SelectNode)
			mutate.POST("/edges", graphHandler.Connect)
			mutate.POST("/edges/drop", graphHandler.ConnectAt)
			mutate.POST("/edges/:edge/select", graphHandler.SelectEdge)
			mutate.DELETE("/selection/node", graphHandler.CloseNodeInspector)
			mutate.DELETE("/selection/edge", graphHandler.CloseEdgeInspector)

			mutate.PATCH("/inspector/concept", graphHandler.UpdateConcept)
			mutate.POST("/inspector/resources", graphHandler.AddResource)
			mutate.DELETE("/inspector/resources/:resource", graphHandler.RemoveResource)
			mutate.POST("/inspector/questions", graphHandler.AddQuestion)
			mutate.DELETE("/inspector/questions/:question", graphHandler.RemoveQuestion)
			mutate.POST("/inspector/progress", graphHandler.ToggleCorrect)
			mutate.PATCH("/inspector/edge", graphHandler.UpdateEdge)
			mutate.DELETE("/inspector/edge", graphHandler.DeleteEdge)
		}
	}
}

func (s *Server) Start(ctx context.Context, addr string) error {
	s.logger.Info("Starting web server", zap.String("address", addr))

	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Web server failed to start", zap.Error(err))
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()

	s.limiter.Stop()
	s.logger.Info("Shutting down web server")
	return srv.Shutdown(context.Background())
}
