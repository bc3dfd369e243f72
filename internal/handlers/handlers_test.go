package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/harentsoaR/hyno-health-api/internal/booking"
	"github.com/harentsoaR/hyno-health-api/internal/cache"
	"github.com/harentsoaR/hyno-health-api/internal/catalog"
	"github.com/harentsoaR/hyno-health-api/internal/metrics"
	"github.com/harentsoaR/hyno-health-api/internal/models"
	"github.com/harentsoaR/hyno-health-api/internal/services"
	"github.com/harentsoaR/hyno-health-api/internal/store"
	"github.com/harentsoaR/hyno-health-api/internal/utils"
)

type fakeMessenger struct {
	sms  []string
	mail []string
	err  error
}

func (m *fakeMessenger) SendSMS(_ context.Context, to, message string) error {
	m.sms = append(m.sms, to+": "+message)
	return m.err
}

func (m *fakeMessenger) SendMail(_ context.Context, to, subject, _ string) error {
	m.mail = append(m.mail, to+": "+subject)
	return m.err
}

type testServer struct {
	router    *gin.Engine
	store     *store.Memory
	kv        cache.Store
	tokens    *utils.TokenManager
	messenger *fakeMessenger
	now       time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem, err := store.NewMemory("")
	require.NoError(t, err)
	kv, err := cache.NewLRUStore(64)
	require.NoError(t, err)
	tokens, err := utils.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	ts := &testServer{store: mem, kv: kv, tokens: tokens, messenger: &fakeMessenger{}, now: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return ts.now }

	cat := catalog.New(mem, zerolog.Nop())
	appts := services.NewAppointmentService(mem, services.AppointmentOptions{Log: zerolog.Nop(), Now: clock})
	flow := booking.NewFlow(
		booking.NewCacheSessions(kv, time.Hour, 5*time.Minute),
		booking.CatalogResolver{Catalog: cat, HospitalFee: 500},
		appts,
		booking.WithClock(clock),
		booking.WithLocation(time.UTC),
	)
	auth := services.NewAuthService(mem, tokens, kv, nil, services.AuthConfig{BcryptCost: bcrypt.MinCost, ResetTTL: time.Minute}, zerolog.Nop())

	h := NewHandler(Deps{
		Auth:          auth,
		Users:         mem,
		Appointments:  appts,
		Catalog:       cat,
		Health:        services.NewHealthService(mem, services.HealthOptions{Location: time.UTC, Log: zerolog.Nop(), Now: clock}),
		Flow:          flow,
		Messenger:     ts.messenger,
		Tokens:        tokens,
		Metrics:       metrics.New(),
		RedirectDelay: 3 * time.Second,
		Location:      time.UTC,
		Log:           zerolog.Nop(),
	})
	h.now = clock

	ts.router = gin.New()
	h.RegisterRoutes(ts.router)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var out map[string]any
	if len(w.Body.Bytes()) > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func (ts *testServer) signupAndLogin(t *testing.T, email string) string {
	t.Helper()
	w, _ := ts.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"fullName": "Jane Doe", "email": email, "password": "password123", "phone": "9876543210"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, body := ts.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return body["token"].(string)
}

// walkToPayment creates a doctor wizard and fills it up to the payment step.
func (ts *testServer) walkToPayment(t *testing.T, token string) string {
	t.Helper()
	w, body := ts.do(t, http.MethodPost, "/api/bookings", token, gin.H{"subjectType": "doctor", "subjectId": "doc1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := body["id"].(string)
	base := "/api/bookings/" + id

	steps := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, base + "/next", nil},
		{http.MethodPut, base + "/slot", gin.H{"dayIndex": 2, "time": "14:30"}},
		{http.MethodPost, base + "/next", nil},
		{http.MethodPut, base + "/details", gin.H{"name": "Jane Doe", "age": 34, "contact": "9876543210", "email": "jane@example.com", "reason": "Checkup"}},
		{http.MethodPost, base + "/next", nil},
		{http.MethodPost, base + "/next", nil},
	}
	for _, s := range steps {
		w, _ := ts.do(t, s.method, s.path, token, s.body)
		require.Equal(t, http.StatusOK, w.Code, "%s %s: %s", s.method, s.path, w.Body.String())
	}
	return id
}

func validCardBody() gin.H {
	return gin.H{"method": "Card", "cardNumber": "4111111111111111", "cardName": "Jane Doe", "cardExpiry": "12/29", "cardCvv": "123"}
}

func TestBookingWizardEndToEnd(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signupAndLogin(t, "jane@example.com")
	id := ts.walkToPayment(t, token)

	w, view := ts.do(t, http.MethodGet, "/api/bookings/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 5, view["step"])
	assert.Equal(t, "Payment", view["stepName"])

	w, _ = ts.do(t, http.MethodPut, "/api/bookings/"+id+"/payment", token, validCardBody())
	require.Equal(t, http.StatusOK, w.Code)

	w, body := ts.do(t, http.MethodPost, "/api/bookings/"+id+"/next", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/my-appointments", body["redirect"])
	assert.EqualValues(t, 3000, body["redirectAfterMs"])
	appt := body["appointment"].(map[string]any)
	assert.Equal(t, "14:30", appt["time"])
	assert.Equal(t, "2026-10-16", appt["date"])
	assert.Equal(t, "confirmed", appt["status"])

	list, err := ts.store.List(context.Background(), store.AppointmentFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	w, _ = ts.do(t, http.MethodPost, "/api/bookings/"+id+"/next", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookingRequiresLoginAtSubmit(t *testing.T) {
	ts := newTestServer(t)
	id := ts.walkToPayment(t, "")
	ts.do(t, http.MethodPut, "/api/bookings/"+id+"/payment", "", validCardBody())

	w, body := ts.do(t, http.MethodPost, "/api/bookings/"+id+"/next", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/login", body["redirect"])

	list, err := ts.store.List(context.Background(), store.AppointmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBookingBusyWhileSubmitting(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signupAndLogin(t, "jane@example.com")
	id := ts.walkToPayment(t, token)
	ts.do(t, http.MethodPut, "/api/bookings/"+id+"/payment", token, validCardBody())

	ok, err := ts.kv.SetNX(context.Background(), "wizard-lock:"+id, []byte("1"), time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	w, body := ts.do(t, http.MethodPost, "/api/bookings/"+id+"/next", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Booking is being updated, please retry", body["error"])

	list, err := ts.store.List(context.Background(), store.AppointmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBookingValidationErrors(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signupAndLogin(t, "jane@example.com")
	id := ts.walkToPayment(t, token)

	ts.do(t, http.MethodPut, "/api/bookings/"+id+"/payment", token, gin.H{"method": "UPI", "upiId": "jane@upi"})
	w, body := ts.do(t, http.MethodPost, "/api/bookings/"+id+"/next", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "upiOtp", body["field"])
	assert.EqualValues(t, 5, body["step"])

	w, body = ts.do(t, http.MethodPut, "/api/bookings/"+id+"/slot", token, gin.H{"dayIndex": 9, "time": "14:30"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "dayIndex", body["field"])

	w, _ = ts.do(t, http.MethodPut, "/api/bookings/"+id+"/slot", token, gin.H{"time": "14:30"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = ts.do(t, http.MethodGet, "/api/bookings/nope", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/bookings", token, gin.H{"subjectType": "doctor", "subjectId": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingBackAndEmptyStart(t *testing.T) {
	ts := newTestServer(t)

	w, body := ts.do(t, http.MethodPost, "/api/bookings", "", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := body["id"].(string)
	assert.Nil(t, body["subject"])

	w, body = ts.do(t, http.MethodPost, "/api/bookings/"+id+"/back", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["step"])

	w, _ = ts.do(t, http.MethodPost, "/api/bookings/"+id+"/next", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = ts.do(t, http.MethodPut, "/api/bookings/"+id+"/subject", "", gin.H{"subjectType": "hospital", "subjectId": "h2"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"Hospital", "Slot", "Details", "Summary", "Payment"}, body["steps"])
	assert.Len(t, body["days"], 7)
}

func TestAppointmentsEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signupAndLogin(t, "jane@example.com")
	other := ts.signupAndLogin(t, "john@example.com")
	id := ts.walkToPayment(t, token)
	ts.do(t, http.MethodPut, "/api/bookings/"+id+"/payment", token, validCardBody())
	_, body := ts.do(t, http.MethodPost, "/api/bookings/"+id+"/next", token, nil)
	apptID := body["appointment"].(map[string]any)["id"].(string)

	w, _ := ts.do(t, http.MethodGet, "/api/appointments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = ts.do(t, http.MethodGet, "/api/appointments/"+apptID, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = ts.do(t, http.MethodPatch, "/api/appointments/"+apptID+"/cancel", other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = ts.do(t, http.MethodPatch, "/api/appointments/"+apptID+"/cancel", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w, _ = ts.do(t, http.MethodPatch, "/api/appointments/"+apptID+"/cancel", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments?status=Cancelled", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	ts.router.ServeHTTP(w, req)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "cancelled", list[0]["status"])

	w, body = ts.do(t, http.MethodDelete, "/api/appointments/cancelled", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["removed"])
}

func TestCatalogEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.now = time.Date(2026, 10, 14, 15, 10, 0, 0, time.UTC)

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/doctors?speciality=Neurologist", nil))
	var doctors []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doctors))
	assert.Len(t, doctors, 2)

	w, _ = ts.do(t, http.MethodGet, "/api/doctors/ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body := ts.do(t, http.MethodGet, "/api/doctors/doc1/slots?upcoming=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	days := body["days"].([]any)
	require.Len(t, days, 7)
	assert.Len(t, days[0].(map[string]any)["slots"], 11)
	assert.Len(t, days[1].(map[string]any)["slots"], 22)

	w, body = ts.do(t, http.MethodGet, "/api/hospitals/h3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Fortis Hospital, Mumbai", body["name"])
}

func TestSavedHospitals(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signupAndLogin(t, "jane@example.com")

	w, _ := ts.do(t, http.MethodPost, "/api/hospitals/h2/save", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = ts.do(t, http.MethodPost, "/api/hospitals/h99/save", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body := ts.do(t, http.MethodPost, "/api/hospitals/h2/save", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["saved"])

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/user/saved-hospitals", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	ts.router.ServeHTTP(w, req)
	var saved []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, "h2", saved[0]["id"])

	_, body = ts.do(t, http.MethodPost, "/api/hospitals/h2/save", token, nil)
	assert.Equal(t, false, body["saved"])
}

func TestAuthEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signupAndLogin(t, "jane@example.com")

	w, _ := ts.do(t, http.MethodPost, "/api/auth/register", "", gin.H{"fullName": "Jane", "email": "jane@example.com", "password": "password123"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"fullName": "Jane", "email": "short@example.com", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "jane@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := ts.do(t, http.MethodGet, "/api/user/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jane@example.com", body["email"])
	assert.NotContains(t, body, "password")

	w, body = ts.do(t, http.MethodPut, "/api/user/me", token, gin.H{"fullName": "Jane Roe"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Jane Roe", body["fullName"])
	assert.Equal(t, "9876543210", body["phone"])

	w, _ = ts.do(t, http.MethodPost, "/api/auth/forgot-password", "", gin.H{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodPost, "/api/auth/reset-password", "", gin.H{"token": "bogus", "password": "password456"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLongPasswordsAreBadRequests(t *testing.T) {
	ts := newTestServer(t)

	w, _ := ts.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"fullName": "Jane", "email": "jane@example.com", "password": strings.Repeat("a", 80)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 40 runes pass the binding rule but hash input is 120 bytes.
	w, body := ts.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"fullName": "Jane", "email": "jane@example.com", "password": strings.Repeat("€", 40)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Password must be at most 72 bytes", body["error"])

	w, _ = ts.do(t, http.MethodPost, "/api/auth/reset-password", "", gin.H{"token": "any", "password": strings.Repeat("a", 73)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRelayEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signupAndLogin(t, "jane@example.com")

	w, _ := ts.do(t, http.MethodPost, "/send-sms", "", gin.H{"to": "123", "message": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = ts.do(t, http.MethodPost, "/send-sms", token, gin.H{"to": "123", "message": "hi"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"123: hi"}, ts.messenger.sms)

	w, _ = ts.do(t, http.MethodPost, "/send-email", "", gin.H{"to": "reader@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodPost, "/send-email", "", gin.H{"to": "victim@example.com", "subject": "You won", "text": "Click here"})
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodPost, "/send-email", token, gin.H{"to": "friend@example.com", "subject": "Hello", "text": "See you"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{
		"reader@example.com: ",
		"victim@example.com: ",
		"friend@example.com: Hello",
	}, ts.messenger.mail, "anonymous callers only reach the newsletter")
	w, _ = ts.do(t, http.MethodPost, "/send-email", "", gin.H{"to": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	ts.messenger.err = errors.New("relay down")
	w, body := ts.do(t, http.MethodPost, "/send-email", "", gin.H{"to": "reader@example.com"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Failed to send email", body["error"])

	ts.messenger.err = services.ErrChannelDisabled
	w, _ = ts.do(t, http.MethodPost, "/send-email", "", gin.H{"to": "reader@example.com"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)
	w, body := ts.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])

	w = httptest.NewRecorder()
	ts.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func (ts *testServer) adminToken(t *testing.T) string {
	t.Helper()
	admin := &models.User{FullName: "Admin", Email: "admin@example.com", Role: models.RoleAdmin}
	require.NoError(t, ts.store.Create(context.Background(), admin))
	token, err := ts.tokens.Generate(admin.ID.Hex(), admin.Role)
	require.NoError(t, err)
	return token
}

func TestAdminCatalogEndpoints(t *testing.T) {
	ts := newTestServer(t)
	patient := ts.signupAndLogin(t, "jane@example.com")
	admin := ts.adminToken(t)
	doctor := gin.H{"name": "Dr. Asha Rao", "speciality": "Dermatologist", "fees": 700, "hospitalId": "h2"}

	w, _ := ts.do(t, http.MethodPost, "/api/doctors", "", doctor)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = ts.do(t, http.MethodPost, "/api/doctors", patient, doctor)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = ts.do(t, http.MethodDelete, "/api/hospitals/h1", patient, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/doctors", admin, gin.H{"speciality": "Dermatologist"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = ts.do(t, http.MethodPost, "/api/doctors", admin, gin.H{"name": "Dr. X", "speciality": "ENT", "hospitalId": "h99"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body := ts.do(t, http.MethodPost, "/api/doctors", admin, doctor)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := body["_id"].(string)

	w, body = ts.do(t, http.MethodGet, "/api/doctors/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dr. Asha Rao", body["name"])
	w, _ = ts.do(t, http.MethodGet, "/api/doctors/doc1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code, "bundled doctors stay listed")

	w, _ = ts.do(t, http.MethodPost, "/api/doctors", admin, gin.H{"_id": id, "name": "Dr. Again", "speciality": "ENT"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = ts.do(t, http.MethodDelete, "/api/doctors/"+id, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodGet, "/api/doctors/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = ts.do(t, http.MethodDelete, "/api/doctors/"+id, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = ts.do(t, http.MethodPost, "/api/hospitals", admin, gin.H{
		"name": "Sunrise Clinic", "address": "12 MG Road, Pune", "departments": []string{" ENT ", "", "Pediatrics"}, "rating": 4.2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	hospitalID := body["id"].(string)
	assert.Equal(t, []any{"ENT", "Pediatrics"}, body["departments"])

	w, _ = ts.do(t, http.MethodPost, "/api/hospitals", admin, gin.H{"name": "No Address"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A new hospital is bookable straight away.
	w, _ = ts.do(t, http.MethodPost, "/api/bookings", "", gin.H{"subjectType": "hospital", "subjectId": hospitalID})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = ts.do(t, http.MethodDelete, "/api/hospitals/h1", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodGet, "/api/hospitals/h1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthRecordEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signupAndLogin(t, "jane@example.com")
	other := ts.signupAndLogin(t, "john@example.com")

	w, _ := ts.do(t, http.MethodGet, "/api/user/journal", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := ts.do(t, http.MethodPost, "/api/user/journal", token, gin.H{
		"symptoms": "Headache, mild fever", "notes": "Took paracetamol",
		"vitals": gin.H{"bloodPressure": "150/95", "weight": "72"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	entryID := body["id"].(string)
	assert.Equal(t, "2026-10-14", body["date"])
	ts.do(t, http.MethodPost, "/api/user/journal", token, gin.H{"date": "2026-10-10", "vitals": gin.H{"bloodPressure": "148/92", "weight": "75"}})

	w, _ = ts.do(t, http.MethodPost, "/api/user/journal", token, gin.H{"date": "14-10-2026"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = ts.do(t, http.MethodGet, "/api/user/journal?q=fever&from=2026-10-12", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, entryID, entries[0]["id"])

	w, _ = ts.do(t, http.MethodGet, "/api/user/journal", other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
	w, _ = ts.do(t, http.MethodPut, "/api/user/journal/"+entryID, other, gin.H{"notes": "mine now"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = ts.do(t, http.MethodGet, "/api/user/journal/insights", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{
		"Your average blood pressure is elevated. Consider consulting a doctor.",
		"Weight decreased by 3.0kg recently.",
	}, body["insights"])

	w, _ = ts.do(t, http.MethodGet, "/api/user/journal/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Symptoms,Blood Pressure,Heart Rate,Temperature,Weight,Notes", lines[0])
	assert.Equal(t, `2026-10-14,"Headache, mild fever",150/95,,,72,Took paracetamol`, lines[1])

	w, body = ts.do(t, http.MethodPut, "/api/user/journal/"+entryID, token, gin.H{"date": "2026-10-13", "symptoms": "Better"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Better", body["symptoms"])
	w, _ = ts.do(t, http.MethodDelete, "/api/user/journal/"+entryID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodDelete, "/api/user/journal/"+entryID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/user/medications", token, gin.H{"dosage": "500mg"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, body = ts.do(t, http.MethodPost, "/api/user/medications", token, gin.H{"name": "Metformin", "dosage": "500mg", "frequency": "Twice daily", "reminder": true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	medID := body["id"].(string)
	w, body = ts.do(t, http.MethodPut, "/api/user/medications/"+medID, token, gin.H{"name": "Metformin", "dosage": "1000mg"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1000mg", body["dosage"])
	w, _ = ts.do(t, http.MethodGet, "/api/user/medications", token, nil)
	var meds []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meds))
	assert.Len(t, meds, 1)
	w, _ = ts.do(t, http.MethodDelete, "/api/user/medications/"+medID, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = ts.do(t, http.MethodDelete, "/api/user/medications/"+medID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = ts.do(t, http.MethodGet, "/api/user/goals", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", body["weight"])
	w, _ = ts.do(t, http.MethodPut, "/api/user/goals", token, gin.H{"weight": "68kg", "exercise": "30 min", "water": "3L"})
	require.Equal(t, http.StatusOK, w.Code)
	w, body = ts.do(t, http.MethodGet, "/api/user/goals", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "68kg", body["weight"])
	assert.Equal(t, "30 min", body["exercise"])
}
