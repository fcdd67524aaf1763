// Package celebration coordinates what happens after a spin settles: an
// immediate provisional quote, one text-generation request, and a best-effort
// write of the final record.
package celebration

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/a-thamaraiselvan/Spin-wheel/internal/domain"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/logging"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/metrics"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const (
	defaultQuoteTimeout = 8 * time.Second
	persistTimeout      = 5 * time.Second
)

// Coordinator owns a celebration from the settle event until the final record
// is handed to the result store. The provisional record is always observable
// before the final one; the displayed state never depends on the text service
// or the store being reachable.
type Coordinator struct {
	quotes  domain.QuoteGenerator
	results domain.CelebrationRepository
	events  domain.EventPublisher
	clock   clockwork.Clock
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewCoordinator(quotes domain.QuoteGenerator, results domain.CelebrationRepository, events domain.EventPublisher, clock clockwork.Clock, timeout time.Duration) *Coordinator {
	if timeout <= 0 {
		timeout = defaultQuoteTimeout
	}
	return &Coordinator{
		quotes:  quotes,
		results: results,
		events:  events,
		clock:   clock,
		timeout: timeout,
	}
}

// FallbackQuote is the deterministic template shown immediately and kept as
// final when the text service fails.
func FallbackQuote(staffName, outcome string) string {
	return fmt.Sprintf("Congratulations %s! %s is celebrating with you today! 🎉", staffName, outcome)
}

// UsableQuote reports whether a text service response can be shown. Empty
// payloads and degenerate model outputs that carry no letters (a bare number
// like "0.01", stray punctuation) are rejected in favour of the fallback.
func UsableQuote(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	return strings.IndexFunc(trimmed, unicode.IsLetter) >= 0
}

// OnSpinSettled synchronously publishes a provisional celebration for the
// committed outcome and starts the asynchronous quote request. The returned
// record is the provisional one; the final record supersedes it via the event
// publisher and the result store.
func (c *Coordinator) OnSpinSettled(ctx context.Context, spinID uuid.UUID, staff domain.Staff, outcome string) domain.Celebration {
	provisional := domain.Celebration{
		ID:          uuid.New(),
		StaffID:     staff.ID,
		StaffName:   staff.Name,
		Outcome:     outcome,
		Quote:       FallbackQuote(staff.Name, outcome),
		Provisional: true,
		SpunAt:      c.clock.Now(),
	}
	c.events.PublishCelebration(ctx, announced(spinID, provisional))

	c.wg.Add(1)
	go c.finish(spinID, staff, provisional)

	return provisional
}

// Wait blocks until all in-flight celebrations have reached their final,
// persisted state. Used on shutdown.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// finish runs detached from the request context: an admin navigating away does
// not abort the quote or the write. The staff value is captured per spin, so a
// late response can never touch another staff member's record.
func (c *Coordinator) finish(spinID uuid.UUID, staff domain.Staff, provisional domain.Celebration) {
	defer c.wg.Done()

	final := provisional
	final.Provisional = false

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	start := c.clock.Now()
	text, err := c.quotes.Generate(ctx, domain.QuoteRequest{
		StaffName:      staff.Name,
		Department:     staff.Department,
		FavoriteThings: staff.FavoriteThings[:],
		Outcome:        provisional.Outcome,
	})
	metrics.QuoteRequestDuration.Observe(c.clock.Since(start).Seconds())

	log := logging.WithSpin(spinID.String())
	switch {
	case err != nil:
		metrics.QuoteRequestsTotal.WithLabelValues("fallback_error").Inc()
		log.Warn("Quote generation failed, keeping fallback text",
			"staff_id", staff.ID, "outcome", provisional.Outcome, "error", err)
	case !UsableQuote(text):
		metrics.QuoteRequestsTotal.WithLabelValues("fallback_degenerate").Inc()
		log.Warn("Quote generation returned degenerate text, keeping fallback",
			"staff_id", staff.ID, "outcome", provisional.Outcome, "text", text)
	default:
		metrics.QuoteRequestsTotal.WithLabelValues("success").Inc()
		final.Quote = strings.TrimSpace(text)
	}

	final.SpunAt = c.clock.Now()
	c.persist(&final)
	c.events.PublishCelebration(context.Background(), announced(spinID, final))
}

// persist is a single best-effort write. A failure is logged and swallowed:
// the displayed celebration is already final and must not be blocked or
// reverted by the store.
func (c *Coordinator) persist(final *domain.Celebration) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := c.results.Append(ctx, final); err != nil {
		metrics.CelebrationPersistFailuresTotal.Inc()
		logging.WithStaff(final.StaffID.String()).Error("Failed to persist celebration record",
			"outcome", final.Outcome, "error", err)
	}
}

func announced(spinID uuid.UUID, c domain.Celebration) domain.CelebrationAnnounced {
	return domain.CelebrationAnnounced{
		SpinID:      spinID,
		StaffID:     c.StaffID,
		StaffName:   c.StaffName,
		Outcome:     c.Outcome,
		Quote:       c.Quote,
		Provisional: c.Provisional,
	}
}
