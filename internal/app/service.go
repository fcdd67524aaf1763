// Package app holds the application service tying the wheel, the quote
// coordinator, and the stores together behind the HTTP layer.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/a-thamaraiselvan/Spin-wheel/internal/celebration"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/domain"
	apperrors "github.com/a-thamaraiselvan/Spin-wheel/internal/errors"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/metrics"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/wheel"
)

// SpinTicket is what the admin receives when a spin is accepted. The outcome
// is not in here; it reaches displays through the event feed once the wheel
// settles.
type SpinTicket struct {
	SpinID         uuid.UUID `json:"spinId"`
	TargetRotation float64   `json:"targetRotation"`
	DurationMs     int64     `json:"durationMs"`
}

// Service implements the application's use cases.
type Service struct {
	staff       domain.StaffRepository
	results     domain.CelebrationRepository
	planner     *wheel.Planner
	driver      *wheel.Driver
	coordinator *celebration.Coordinator
	events      domain.EventPublisher
	clock       clockwork.Clock

	spinGroup singleflight.Group
}

func NewService(
	staff domain.StaffRepository,
	results domain.CelebrationRepository,
	planner *wheel.Planner,
	driver *wheel.Driver,
	coordinator *celebration.Coordinator,
	events domain.EventPublisher,
	clock clockwork.Clock,
) *Service {
	return &Service{
		staff:       staff,
		results:     results,
		planner:     planner,
		driver:      driver,
		coordinator: coordinator,
		events:      events,
		clock:       clock,
	}
}

// RegisterStaff validates and stores a new registration.
func (s *Service) RegisterStaff(ctx context.Context, name, department string, favoriteThings []string) (*domain.Staff, error) {
	name = strings.TrimSpace(name)
	department = strings.TrimSpace(department)

	if name == "" {
		return nil, apperrors.ValidationError("name is required")
	}
	if department == "" {
		return nil, apperrors.ValidationError("department is required")
	}
	if len(favoriteThings) != domain.FavoriteThingsCount {
		return nil, apperrors.ValidationError(fmt.Sprintf("exactly %d favorite things are required", domain.FavoriteThingsCount))
	}

	var favorites [domain.FavoriteThingsCount]string
	for i, thing := range favoriteThings {
		thing = strings.TrimSpace(thing)
		if thing == "" {
			return nil, apperrors.ValidationError(fmt.Sprintf("favorite thing %d must not be empty", i+1))
		}
		favorites[i] = thing
	}

	staff, err := s.staff.Register(ctx, name, department, favorites)
	if err != nil {
		return nil, apperrors.InternalError("failed to register staff", err)
	}

	metrics.RegistrationsTotal.Inc()
	return staff, nil
}

func (s *Service) GetStaff(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	return s.staff.GetByID(ctx, id)
}

func (s *Service) ListStaff(ctx context.Context) ([]domain.StaffListing, error) {
	return s.staff.List(ctx)
}

func (s *Service) Analytics(ctx context.Context) (*domain.Analytics, error) {
	return s.staff.CountsByStatus(ctx)
}

// SpinHistory returns a staff member's past spins, most recent first.
func (s *Service) SpinHistory(ctx context.Context, staffID uuid.UUID) ([]domain.Celebration, error) {
	if _, err := s.staff.GetByID(ctx, staffID); err != nil {
		return nil, err
	}
	return s.results.ListForStaff(ctx, staffID)
}

// spinResult pairs a ticket with the staff member it was issued for, so
// callers collapsed onto another caller's plan can tell the ticket is not
// theirs.
type spinResult struct {
	ticket  *SpinTicket
	staffID uuid.UUID
}

// Spin plans and starts a wheel run for the given staff member. There is one
// physical wheel, so while it is running every further spin request returns
// domain.ErrSpinInProgress. Concurrent presses for the same staff member
// collapse onto a single plan; a collapsed caller for a different staff member
// is refused, never handed someone else's ticket.
func (s *Service) Spin(ctx context.Context, staffID uuid.UUID) (*SpinTicket, error) {
	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}

	v, err, _ := s.spinGroup.Do("spin", func() (any, error) {
		session := s.planner.Plan(s.driver.Rotation())

		onFrame := func(sess wheel.Session, rotation float64) {
			s.events.PublishWheelFrame(context.Background(), domain.WheelFrame{
				SpinID:   sess.ID,
				Rotation: rotation,
			})
		}
		onSettled := func(sess wheel.Session) {
			s.coordinator.OnSpinSettled(context.Background(), sess.ID, *staff, sess.Outcome)
		}

		if err := s.driver.Play(session, onFrame, onSettled); err != nil {
			metrics.SpinsRejectedTotal.Inc()
			return nil, err
		}

		metrics.SpinsTotal.Inc()
		metrics.SpinOutcomesTotal.WithLabelValues(session.Outcome).Inc()

		s.events.PublishSpinStarted(ctx, domain.SpinStarted{
			SpinID:         session.ID,
			StaffID:        staff.ID,
			StaffName:      staff.Name,
			TargetRotation: session.TargetRotation(),
			DurationMs:     session.Duration.Milliseconds(),
		})

		ticket := &SpinTicket{
			SpinID:         session.ID,
			TargetRotation: session.TargetRotation(),
			DurationMs:     session.Duration.Milliseconds(),
		}
		return &spinResult{ticket: ticket, staffID: staff.ID}, nil
	})
	if err != nil {
		return nil, err
	}

	result := v.(*spinResult)
	if result.staffID != staffID {
		// The wheel was claimed for someone else while this request was in
		// flight. Same answer as pressing spin mid-run.
		metrics.SpinsRejectedTotal.Inc()
		return nil, domain.ErrSpinInProgress
	}

	return result.ticket, nil
}

// Shutdown abandons a running wheel and waits for in-flight quote requests to
// finish persisting.
func (s *Service) Shutdown() {
	s.driver.Reset()
	s.coordinator.Wait()
}
