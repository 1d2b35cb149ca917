package server

import (
	"context"
	"ctchen222/Book-Review/internal/api/controller"
	"ctchen222/Book-Review/internal/api/middleware"
	"ctchen222/Book-Review/internal/api/repository"
	"ctchen222/Book-Review/internal/api/service"
	"ctchen222/Book-Review/internal/metrics"
	"ctchen222/Book-Review/internal/session"
	"ctchen222/Book-Review/internal/web"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const healthTimeout = 2 * time.Second

// Dependencies are the long-lived resources the server is built from.
type Dependencies struct {
	DB          *sqlx.DB
	Sessions    *session.Manager
	Ratings     service.RatingLookup
	Metrics     *metrics.Metrics
	ServiceName string
}

// Server owns the gin engine serving the book review site.
type Server struct {
	engine *gin.Engine
	db     *sqlx.DB
}

// NewServer wires repositories, services and controllers and registers the
// routes.
func NewServer(deps Dependencies) (*Server, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	userRepo := repository.NewUserRepository(deps.DB)
	bookRepo := repository.NewBookRepository(deps.DB)
	reviewRepo := repository.NewReviewRepository(deps.DB)

	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(bookRepo)
	reviewService := service.NewReviewService(reviewRepo)
	bookService := service.NewBookService(catalogService, reviewService, reviewRepo, deps.Ratings)

	pages := controller.NewPageController(catalogService)
	users := controller.NewUserController(userService, deps.Sessions)
	books := controller.NewBookController(bookService)

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)
	engine.Use(gin.Recovery())
	if deps.ServiceName != "" {
		engine.Use(otelgin.Middleware(deps.ServiceName))
	}
	engine.Use(middleware.Logging())
	if deps.Metrics != nil {
		engine.Use(deps.Metrics.Middleware())
		engine.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	s := &Server{engine: engine, db: deps.DB}
	engine.GET("/health", s.health)

	site := engine.Group("/", middleware.Session(deps.Sessions))
	site.GET("/register", users.RegisterPage)
	site.POST("/register", users.Register)
	site.GET("/login", users.LoginPage)
	site.POST("/login", users.Login)
	site.GET("/logout", users.Logout)

	private := site.Group("/", middleware.RequireLogin())
	private.GET("/", pages.Index)
	private.POST("/", pages.Search)
	private.GET("/book/:isbn", books.Show)
	private.POST("/book/:isbn", books.Review)
	private.GET("/api/:isbn", books.API)

	return s, nil
}

// Engine returns the http.Handler serving all routes.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		slog.WarnContext(ctx, "Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
