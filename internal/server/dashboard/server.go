// Package dashboard exposes the read-only HTTP view of the ledger.
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dmitrijs2005/filebot/internal/common"
	"github.com/dmitrijs2005/filebot/internal/logging"
	"github.com/dmitrijs2005/filebot/internal/server/services"
)

// Server serves the dashboard JSON API. Strictly read-only: every handler
// goes through DashboardService.Summarize and nothing else.
type Server struct {
	address string
	service *services.DashboardService
	logger  logging.Logger
}

// NewServer constructs the dashboard server.
func NewServer(address string, service *services.DashboardService, logger logging.Logger) *Server {
	return &Server{
		address: address,
		service: service,
		logger:  logger.With("module", "dashboard"),
	}
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/", s.home)
	e.GET("/dashboard/:id", s.view)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping dashboard server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(ctx, "dashboard shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting dashboard server", "address", s.address)

	if err := e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) home(c echo.Context) error {
	return c.String(http.StatusOK, "FileBot dashboard. Use /dashboard/<account_id> to view your storage.")
}

func (s *Server) view(c echo.Context) error {
	view, err := s.service.Summarize(c.Request().Context(), c.Param("id"), 0)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "account not found"})
		case errors.Is(err, common.ErrorUsageUnknown), errors.Is(err, common.ErrorInvalidCredential):
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "usage unavailable"})
		default:
			s.logger.Error(c.Request().Context(), "summarize failed", "error", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, view)
}
