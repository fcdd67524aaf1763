package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Public registration (rate limited per IP)
	s.echo.POST("/api/staff/register", s.handleRegisterStaff, s.registrationThrottle)

	// Admin auth
	s.echo.POST("/api/admin/login", s.handleAdminLogin)
	s.echo.POST("/api/admin/logout", s.handleAdminLogout, s.requireAdmin)

	// Admin API
	s.echo.GET("/api/staff", s.handleListStaff, s.requireAdmin)
	s.echo.GET("/api/analytics", s.handleAnalytics, s.requireAdmin)
	s.echo.POST("/api/staff/:id/spin", s.handleSpin, s.requireAdmin)
	s.echo.GET("/api/staff/:id/spins", s.handleSpinHistory, s.requireAdmin)

	// Hall display feed (public, read-only)
	s.echo.GET("/ws/hall", s.handleHallWebSocket)
}
