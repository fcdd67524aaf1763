package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-thamaraiselvan/Spin-wheel/internal/app"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/domain"
)

func TestRegisterStaff_Success(t *testing.T) {
	f := newServerFixture(t)

	rec := f.request(t, http.MethodPost, "/api/staff/register",
		`{"name":"Priya Raman","department":"Physics","favoriteThings":["painting","gardening","cricket"]}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var staff domain.Staff
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &staff))
	assert.NotEqual(t, uuid.Nil, staff.ID)
	assert.Equal(t, "Priya Raman", staff.Name)
}

func TestRegisterStaff_ValidationError(t *testing.T) {
	f := newServerFixture(t)

	rec := f.request(t, http.MethodPost, "/api/staff/register",
		`{"name":"","department":"Physics","favoriteThings":["a","b","c"]}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterStaff_MalformedBody(t *testing.T) {
	f := newServerFixture(t)

	rec := f.request(t, http.MethodPost, "/api/staff/register", `{broken`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterStaff_Throttled(t *testing.T) {
	f := newServerFixture(t)

	body := `{"name":"Bulk Teacher","department":"Maths","favoriteThings":["a","b","c"]}`

	// Burst allows the first registrations, then the same IP gets throttled.
	var lastCode int
	for range registrationBurst + 1 {
		rec := f.request(t, http.MethodPost, "/api/staff/register", body, nil)
		lastCode = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestListStaff(t *testing.T) {
	f := newServerFixture(t)
	f.registerStaff(t, "Anand Kumar")
	cookies := f.adminCookies(t)

	rec := f.request(t, http.MethodGet, "/api/staff", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var listings []domain.StaffListing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listings))
	require.Len(t, listings, 1)
	assert.Equal(t, "Anand Kumar", listings[0].Name)
	assert.Equal(t, domain.StatusPending, listings[0].Status)
}

func TestAnalytics(t *testing.T) {
	f := newServerFixture(t)
	f.registerStaff(t, "Anand Kumar")
	f.registerStaff(t, "Meena Iyer")
	cookies := f.adminCookies(t)

	rec := f.request(t, http.MethodGet, "/api/analytics", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var analytics domain.Analytics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analytics))
	assert.Equal(t, 2, analytics.TotalStaff)
	assert.Equal(t, 2, analytics.PendingStaff)
}

func TestSpin_Success(t *testing.T) {
	f := newServerFixture(t)
	staff := f.registerStaff(t, "Ravi Shankar")
	cookies := f.adminCookies(t)

	rec := f.request(t, http.MethodPost, "/api/staff/"+staff.ID.String()+"/spin", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var ticket app.SpinTicket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ticket))
	assert.NotEqual(t, uuid.Nil, ticket.SpinID)
	assert.GreaterOrEqual(t, ticket.DurationMs, int64(4000))
	assert.LessOrEqual(t, ticket.DurationMs, int64(9000))
}

func TestSpin_BusyReturnsSpinning(t *testing.T) {
	f := newServerFixture(t)
	staff := f.registerStaff(t, "Ravi Shankar")
	cookies := f.adminCookies(t)

	rec := f.request(t, http.MethodPost, "/api/staff/"+staff.ID.String()+"/spin", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	// Wheel is still running (fake clock never advances), second press is a no-op
	rec = f.request(t, http.MethodPost, "/api/staff/"+staff.ID.String()+"/spin", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"spinning"}`, rec.Body.String())
}

func TestSpin_UnknownStaff(t *testing.T) {
	f := newServerFixture(t)
	cookies := f.adminCookies(t)

	rec := f.request(t, http.MethodPost, "/api/staff/"+uuid.NewString()+"/spin", "", cookies)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSpin_InvalidID(t *testing.T) {
	f := newServerFixture(t)
	cookies := f.adminCookies(t)

	rec := f.request(t, http.MethodPost, "/api/staff/not-a-uuid/spin", "", cookies)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSpin_RequiresAdmin(t *testing.T) {
	f := newServerFixture(t)
	staff := f.registerStaff(t, "Ravi Shankar")

	rec := f.request(t, http.MethodPost, "/api/staff/"+staff.ID.String()+"/spin", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSpinHistory(t *testing.T) {
	f := newServerFixture(t)
	staff := f.registerStaff(t, "Ravi Shankar")
	cookies := f.adminCookies(t)

	rec := f.request(t, http.MethodGet, "/api/staff/"+staff.ID.String()+"/spins", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var history []domain.Celebration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Empty(t, history)
}

func TestSpinHistory_UnknownStaff(t *testing.T) {
	f := newServerFixture(t)
	cookies := f.adminCookies(t)

	rec := f.request(t, http.MethodGet, "/api/staff/"+uuid.NewString()+"/spins", "", cookies)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
