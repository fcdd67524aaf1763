package server

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/a-thamaraiselvan/Spin-wheel/internal/domain"
	apperrors "github.com/a-thamaraiselvan/Spin-wheel/internal/errors"
)

type registerRequest struct {
	Name           string   `json:"name"`
	Department     string   `json:"department"`
	FavoriteThings []string `json:"favoriteThings"`
}

func (s *Server) handleRegisterStaff(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	ctx := c.Request().Context()
	staff, err := s.app.RegisterStaff(ctx, req.Name, req.Department, req.FavoriteThings)
	if err != nil {
		return err
	}

	slog.Info("Staff registered", "staff_id", staff.ID, "department", staff.Department)
	if err := c.JSON(201, staff); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListStaff(c echo.Context) error {
	listings, err := s.app.ListStaff(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to list staff", err)
	}

	if err := c.JSON(200, listings); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleAnalytics(c echo.Context) error {
	analytics, err := s.app.Analytics(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to compute analytics", err)
	}

	if err := c.JSON(200, analytics); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSpin(c echo.Context) error {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid staff ID").WithField("id", c.Param("id"))
	}

	ticket, err := s.app.Spin(c.Request().Context(), staffID)
	if errors.Is(err, domain.ErrStaffNotFound) {
		return apperrors.NotFoundError("staff not found").WithField("staff_id", staffID.String())
	}
	if errors.Is(err, domain.ErrSpinInProgress) {
		// Pressing spin while the wheel runs is a no-op, not an error.
		if err := c.JSON(200, map[string]string{"status": "spinning"}); err != nil {
			return fmt.Errorf("failed to send JSON response: %w", err)
		}
		return nil
	}
	if err != nil {
		return apperrors.InternalError("failed to start spin", err).WithField("staff_id", staffID.String())
	}

	if err := c.JSON(200, ticket); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSpinHistory(c echo.Context) error {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid staff ID").WithField("id", c.Param("id"))
	}

	history, err := s.app.SpinHistory(c.Request().Context(), staffID)
	if errors.Is(err, domain.ErrStaffNotFound) {
		return apperrors.NotFoundError("staff not found").WithField("staff_id", staffID.String())
	}
	if err != nil {
		return apperrors.InternalError("failed to load spin history", err).WithField("staff_id", staffID.String())
	}

	if err := c.JSON(200, history); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
