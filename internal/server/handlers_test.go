package server

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/a-thamaraiselvan/Spin-wheel/internal/app"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/celebration"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/config"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/domain"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/hall"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/wheel"
)

// --- Mocks ---

type fakeStaffRepo struct {
	mu    sync.Mutex
	staff map[uuid.UUID]domain.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: make(map[uuid.UUID]domain.Staff)}
}

func (m *fakeStaffRepo) Register(_ context.Context, name, department string, favoriteThings [domain.FavoriteThingsCount]string) (*domain.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := domain.Staff{ID: uuid.New(), Name: name, Department: department, FavoriteThings: favoriteThings, CreatedAt: time.Now()}
	m.staff[s.ID] = s
	return &s, nil
}

func (m *fakeStaffRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.staff[id]
	if !ok {
		return nil, domain.ErrStaffNotFound
	}
	return &s, nil
}

func (m *fakeStaffRepo) List(_ context.Context) ([]domain.StaffListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	listings := make([]domain.StaffListing, 0, len(m.staff))
	for _, s := range m.staff {
		listings = append(listings, domain.StaffListing{Staff: s, Status: domain.StatusPending})
	}
	return listings, nil
}

func (m *fakeStaffRepo) CountsByStatus(_ context.Context) (*domain.Analytics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &domain.Analytics{TotalStaff: len(m.staff), PendingStaff: len(m.staff)}, nil
}

type fakeResultStore struct {
	mu      sync.Mutex
	results []domain.Celebration
}

func (m *fakeResultStore) Append(_ context.Context, c *domain.Celebration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, *c)
	return nil
}

func (m *fakeResultStore) ListForStaff(_ context.Context, staffID uuid.UUID) ([]domain.Celebration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Celebration, 0)
	for i := len(m.results) - 1; i >= 0; i-- {
		if m.results[i].StaffID == staffID {
			out = append(out, m.results[i])
		}
	}
	return out, nil
}

type fakePublisher struct{}

func (fakePublisher) PublishSpinStarted(context.Context, domain.SpinStarted) {}
func (fakePublisher) PublishWheelFrame(context.Context, domain.WheelFrame) {}
func (fakePublisher) PublishCelebration(context.Context, domain.CelebrationAnnounced) {}

type fakeQuotes struct{}

func (fakeQuotes) Generate(context.Context, domain.QuoteRequest) (string, error) {
	return "You make school a better place!", nil
}

// --- Fixture ---

type serverFixture struct {
	server *Server
	staff  *fakeStaffRepo
	clock  *clockwork.FakeClock
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	cfg := &config.Config{
		AppEnv:        "test",
		Port:          "8080",
		SessionSecret: "test-session-secret",
		AdminUsername: "admin",
		AdminPassword: "correct-password",
	}

	w, err := wheel.New(wheel.DefaultSegments)
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	staff := newFakeStaffRepo()
	results := &fakeResultStore{}
	publisher := fakePublisher{}

	planner := wheel.NewPlanner(w, rand.New(rand.NewSource(7)), 4*time.Second, 9*time.Second)
	driver := wheel.NewDriver(clock)
	coordinator := celebration.NewCoordinator(fakeQuotes{}, results, publisher, clock, time.Second)
	service := app.NewService(staff, results, planner, driver, coordinator, publisher, clock)

	hub := hall.NewHub()
	t.Cleanup(func() { hub.Stop() })

	srv := NewServer(cfg, service, hub, nil, nil)
	return &serverFixture{server: srv, staff: staff, clock: clock}
}

func (f *serverFixture) request(t *testing.T, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "10.0.0.1:52000"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	f.server.echo.ServeHTTP(rec, req)
	return rec
}

// adminCookies performs a login and returns the session cookies.
func (f *serverFixture) adminCookies(t *testing.T) []*http.Cookie {
	t.Helper()

	rec := f.request(t, http.MethodPost, "/api/admin/login",
		`{"username":"admin","password":"correct-password"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func (f *serverFixture) registerStaff(t *testing.T, name string) *domain.Staff {
	t.Helper()

	staff, err := f.staff.Register(context.Background(), name, "Mathematics",
		[domain.FavoriteThingsCount]string{"reading", "music", "chess"})
	require.NoError(t, err)
	return staff
}
