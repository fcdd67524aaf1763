package server

import (
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	apperrors "github.com/a-thamaraiselvan/Spin-wheel/internal/errors"
)

// Session keys
const (
	sessionName     = "spinwheel-session"
	sessionKeyAdmin = "admin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleAdminLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	// Constant-time comparison so the response time leaks nothing about
	// which field was wrong.
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.config.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.config.AdminPassword)) == 1
	if !userOK || !passOK {
		slog.Warn("Admin login failed", "ip", c.RealIP())
		return apperrors.UnauthorizedError("invalid credentials")
	}

	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		// A stale or tampered cookie still yields a fresh session value;
		// log and continue.
		slog.Debug("failed to decode existing session, issuing new one", "error", err)
	}
	session.Values[sessionKeyAdmin] = true
	if err := session.Save(c.Request(), c.Response()); err != nil {
		return apperrors.InternalError("failed to save session", err)
	}

	slog.Info("Admin logged in", "ip", c.RealIP())
	if err := c.JSON(200, map[string]string{"status": "ok"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleAdminLogout(c echo.Context) error {
	session, _ := s.sessionStore.Get(c.Request(), sessionName)
	session.Values = map[any]any{}
	session.Options.MaxAge = -1
	if err := session.Save(c.Request(), c.Response()); err != nil {
		return apperrors.InternalError("failed to clear session", err)
	}

	if err := c.JSON(200, map[string]string{"status": "ok"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// requireAdmin gates the wheel control and staff listing endpoints behind the
// admin session.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := s.sessionStore.Get(c.Request(), sessionName)
		if err != nil {
			return apperrors.UnauthorizedError("admin session required")
		}

		isAdmin, ok := session.Values[sessionKeyAdmin].(bool)
		if !ok || !isAdmin {
			return apperrors.UnauthorizedError("admin session required")
		}

		return next(c)
	}
}
