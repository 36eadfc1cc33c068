// Package httpapi exposes the itemkeeper services over HTTP/JSON. All
// error responses use the shape {"detail": "..."} so clients can surface
// the message directly.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dverbis/itemkeeper/internal/logging"
	"github.com/dverbis/itemkeeper/internal/server/services"
)

type Server struct {
	echo   *echo.Echo
	users  *services.UserService
	items  *services.ItemService
	logger logging.Logger
}

type customValidator struct {
	validator *validator.Validate
}

func (cv *customValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

func NewServer(users *services.UserService, items *services.ItemService, logger logging.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &customValidator{validator: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	s := &Server{
		echo:   e,
		users:  users,
		items:  items,
		logger: logger.With("component", "httpapi"),
	}

	e.GET("/", s.root)
	e.POST("/auth/register", s.register)
	e.POST("/auth/login", s.login)

	protected := e.Group("", s.auth)
	protected.GET("/auth/me", s.me)
	protected.GET("/items", s.listItems)
	protected.POST("/items", s.createItem)
	protected.GET("/items/:id", s.getItem)
	protected.PUT("/items/:id", s.updateItem)
	protected.DELETE("/items/:id", s.deleteItem)

	return s
}

// Handler exposes the routing tree for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}

// detailJSON writes the uniform error body.
func detailJSON(c echo.Context, status int, detail string) error {
	return c.JSON(status, map[string]string{"detail": detail})
}
