package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/fitness-center/internal/calc"
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
	"alcyxob/fitness-center/internal/service"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// --- fakes ---

type fakeCatalog struct {
	trainers []domain.Trainer
	err      error
}

func (f *fakeCatalog) Data(ctx context.Context, dataType string) (any, error) {
	switch dataType {
	case service.DataTrainers:
		if f.err != nil {
			return nil, f.err
		}
		return f.trainers, nil
	default:
		return nil, service.ErrUnknownDataType
	}
}

func (f *fakeCatalog) Trainers(ctx context.Context) ([]domain.Trainer, error) {
	return f.trainers, f.err
}
func (f *fakeCatalog) Memberships(ctx context.Context) ([]service.MembershipView, error) {
	return nil, f.err
}
func (f *fakeCatalog) MealPlans(ctx context.Context, category string) ([]service.MealPlanView, error) {
	return nil, f.err
}
func (f *fakeCatalog) Schedules(ctx context.Context) ([]service.ScheduleView, error) {
	return nil, f.err
}
func (f *fakeCatalog) Timetable(ctx context.Context) ([]service.TimetableDay, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []service.TimetableDay{{Day: domain.Monday, Classes: []service.ScheduleView{}}}, nil
}
func (f *fakeCatalog) FallbackTrainers() []domain.Trainer {
	return []domain.Trainer{{ID: "t1", Name: "Built-in"}}
}
func (f *fakeCatalog) FallbackMemberships() []service.MembershipView { return nil }
func (f *fakeCatalog) FallbackMealPlans(category string) []service.MealPlanView {
	return nil
}
func (f *fakeCatalog) FallbackSchedules() []service.ScheduleView { return nil }

type fakeAuth struct {
	sessions *service.AdminSessions
}

func (f *fakeAuth) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if email == "taken@example.com" {
		return nil, service.ErrUserAlreadyExists
	}
	return &domain.User{ID: "u-new", Name: name, Email: email, Role: domain.RoleUser}, nil
}
func (f *fakeAuth) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return "", nil, service.ErrAuthenticationFailed
}
func (f *fakeAuth) AdminLogin(ctx context.Context, email, password string) (string, *service.AdminConsole, error) {
	return "", nil, service.ErrNotAdmin
}
func (f *fakeAuth) Logout(sid string) error { return f.sessions.Close(sid) }
func (f *fakeAuth) GetJWTSecret() string    { return testSecret }

type fakePurchases struct {
	lastForm service.PaymentForm
}

func (f *fakePurchases) Quote(ctx context.Context, planID, currency string) (*service.Quote, error) {
	if currency == "EUR" {
		return nil, calc.ErrUnsupportedCurrency
	}
	return &service.Quote{PlanID: service.PlanBasic, Currency: calc.USD, Price: 31.24, Fallback: true}, nil
}
func (f *fakePurchases) Purchase(ctx context.Context, userID string, form service.PaymentForm) (*domain.MembershipPurchase, error) {
	f.lastForm = form
	if form.CardNumber == "" {
		return nil, &service.ValidationError{Errors: []service.FieldError{{Field: "cardNumber", Message: "is required"}}}
	}
	return &domain.MembershipPurchase{ID: "p1", UserID: userID, MembershipID: form.PlanID, Status: domain.PurchaseActive}, nil
}
func (f *fakePurchases) History(ctx context.Context, userID string) (*service.MembershipHistory, error) {
	return &service.MembershipHistory{History: []service.PurchaseView{}}, nil
}
func (f *fakePurchases) ExpireMemberships(ctx context.Context) (int64, error) { return 0, nil }

type memTrainers struct {
	mu   sync.Mutex
	recs map[string]domain.Trainer
	next int
}

func newMemTrainers() *memTrainers {
	return &memTrainers{recs: map[string]domain.Trainer{}}
}

func (m *memTrainers) List(ctx context.Context) ([]domain.Trainer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Trainer, 0, len(m.recs))
	for _, t := range m.recs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
func (m *memTrainers) Create(ctx context.Context, rec *domain.Trainer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	rec.ID = "t" + string(rune('0'+m.next))
	m.recs[rec.ID] = *rec
	return nil
}
func (m *memTrainers) Update(ctx context.Context, rec *domain.Trainer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[rec.ID]; !ok {
		return repository.ErrNotFound
	}
	m.recs[rec.ID] = *rec
	return nil
}
func (m *memTrainers) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.recs, id)
	return nil
}

type listUsers []domain.User

func (l listUsers) List(ctx context.Context) ([]domain.User, error) { return l, nil }

// --- helpers ---

type testServer struct {
	router    *gin.Engine
	catalog   *fakeCatalog
	purchases *fakePurchases
	sessions  *service.AdminSessions
	trainers  *memTrainers
}

func newTestServer() *testServer {
	ts := &testServer{
		catalog:   &fakeCatalog{},
		purchases: &fakePurchases{},
		trainers:  newMemTrainers(),
	}
	ts.sessions = service.NewAdminSessions(service.AdminRepositories{Trainers: ts.trainers})
	ts.router = gin.New()
	SetupRoutes(ts.router, testSecret, Services{
		Auth:      &fakeAuth{sessions: ts.sessions},
		Catalog:   ts.catalog,
		Purchases: ts.purchases,
		Sessions:  ts.sessions,
		Users:     listUsers{{ID: "u1", Email: "a@example.com", PasswordHash: "secret-hash", Role: domain.RoleAdmin}},
	})
	return ts
}

func token(t *testing.T, userID string, role domain.Role, sid string) string {
	t.Helper()
	claims := jwtClaims{
		UserID:  userID,
		Role:    role,
		Session: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (ts *testServer) do(t *testing.T, method, path, bearer string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

// --- tests ---

func TestPing(t *testing.T) {
	ts := newTestServer()
	w, body := ts.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", body["message"])
}

func TestGetData(t *testing.T) {
	ts := newTestServer()
	ts.catalog.trainers = []domain.Trainer{{ID: "t1", Name: "Arjun"}}

	w, body := ts.do(t, http.MethodGet, "/api/data?type=trainers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Arjun", data[0].(map[string]any)["name"])

	w, body = ts.do(t, http.MethodGet, "/api/data?type=workouts", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Invalid data type requested", body["error"])

	ts.catalog.err = repository.ErrNoData
	w, body = ts.do(t, http.MethodGet, "/api/data?type=trainers", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch data", body["error"])
	assert.NotContains(t, body, "data")
}

func TestPublicTrainers_Fallback(t *testing.T) {
	ts := newTestServer()
	ts.catalog.err = repository.ErrNoData

	w, body := ts.do(t, http.MethodGet, "/api/v1/trainers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["fallback"])
	assert.NotEmpty(t, body["error"])
	assert.Len(t, body["data"], 1)

	ts.catalog.err = nil
	ts.catalog.trainers = []domain.Trainer{}
	w, body = ts.do(t, http.MethodGet, "/api/v1/trainers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, body, "fallback")
}

func TestComputeBMI(t *testing.T) {
	ts := newTestServer()

	w, body := ts.do(t, http.MethodPost, "/api/v1/pro/bmi", "", calc.BMIInput{Units: calc.Metric, HeightCm: "180", WeightKg: "75"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 23.1, body["bmi"])
	assert.Equal(t, calc.NormalWeight, body["category"])

	w, _ = ts.do(t, http.MethodPost, "/api/v1/pro/bmi", "", calc.BMIInput{Units: calc.Metric, HeightCm: "0", WeightKg: "75"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetable(t *testing.T) {
	ts := newTestServer()
	w, body := ts.do(t, http.MethodGet, "/api/v1/pro/timetable", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["data"], 1)

	ts.catalog.err = repository.ErrNoData
	w, _ = ts.do(t, http.MethodGet, "/api/v1/pro/timetable", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRegister(t *testing.T) {
	ts := newTestServer()

	w, body := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "longenough"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "u-new", body["id"])
	assert.Equal(t, "user", body["role"])

	w, _ = ts.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{Name: "Asha", Email: "taken@example.com", Password: "longenough"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"name": "Asha"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginFailures(t *testing.T) {
	ts := newTestServer()
	w, _ := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "a@example.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/v1/admin/login", "", LoginRequest{Email: "a@example.com", Password: "nope"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	ts := newTestServer()

	w, body := ts.do(t, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization header is missing", body["error"])

	w, _ = ts.do(t, http.MethodGet, "/api/v1/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body = ts.do(t, http.MethodGet, "/api/v1/me", token(t, "u1", domain.RoleUser, ""), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", body["userId"])
	assert.Equal(t, "user", body["role"])
}

func TestPayment(t *testing.T) {
	ts := newTestServer()

	w, body := ts.do(t, http.MethodGet, "/api/v1/payment/quote?plan=unknown", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.PlanBasic, body["planId"])
	assert.Equal(t, true, body["fallback"])

	w, _ = ts.do(t, http.MethodGet, "/api/v1/payment/quote?currency=EUR", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/v1/payment", "", service.PaymentForm{PlanID: "basic"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	member := token(t, "u7", domain.RoleUser, "")
	w, body = ts.do(t, http.MethodPost, "/api/v1/payment", member, service.PaymentForm{PlanID: "basic"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, body["fields"])

	w, body = ts.do(t, http.MethodPost, "/api/v1/payment", member, service.PaymentForm{PlanID: "basic", CardNumber: "4111111111111111"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "u7", body["user_id"])

	w, _ = ts.do(t, http.MethodGet, "/api/v1/me/memberships", member, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExerciseLogger_Unavailable(t *testing.T) {
	ts := newTestServer()
	w, _ := ts.do(t, http.MethodGet, "/api/v1/pro/exercises", token(t, "u1", domain.RoleUser, ""), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w, body := ts.do(t, http.MethodGet, "/api/v1/pro/exercise-options", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["data"], "strength")
}

func TestAdmin_RequiresSession(t *testing.T) {
	ts := newTestServer()

	w, _ := ts.do(t, http.MethodGet, "/api/v1/admin/trainers", token(t, "u1", domain.RoleUser, ""), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = ts.do(t, http.MethodGet, "/api/v1/admin/trainers", token(t, "u1", domain.RoleAdmin, ""), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = ts.do(t, http.MethodGet, "/api/v1/admin/trainers", token(t, "u1", domain.RoleAdmin, "closed-session"), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// a session belongs to the admin who opened it
	console := ts.sessions.Open("u2", time.Now().Add(time.Hour))
	w, _ = ts.do(t, http.MethodGet, "/api/v1/admin/trainers", token(t, "u1", domain.RoleAdmin, console.ID), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdmin_TrainerWorkflow(t *testing.T) {
	ts := newTestServer()
	console := ts.sessions.Open("u1", time.Now().Add(time.Hour))
	admin := token(t, "u1", domain.RoleAdmin, console.ID)

	form := service.TrainerForm{Name: "Arjun", Email: "arjun@example.com", Specialization: "Strength", Experience: "8"}

	bad := form
	bad.Experience = "eight"
	w, body := ts.do(t, http.MethodPost, "/api/v1/admin/trainers", admin, bad)
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := body["fields"].([]any)
	assert.Equal(t, "experience", fields[0].(map[string]any)["field"])
	assert.Empty(t, ts.trainers.recs)

	w, body = ts.do(t, http.MethodPost, "/api/v1/admin/trainers", admin, form)
	require.Equal(t, http.StatusCreated, w.Code)
	created := body["data"].(map[string]any)
	id := created["id"].(string)
	assert.Equal(t, float64(8), created["experience"])
	assert.Len(t, body["items"], 1)

	form.Experience = "9"
	w, _ = ts.do(t, http.MethodPut, "/api/v1/admin/trainers/"+id, admin, form)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 9, ts.trainers.recs[id].Experience)

	w, _ = ts.do(t, http.MethodPut, "/api/v1/admin/trainers/missing", admin, form)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = ts.do(t, http.MethodDelete, "/api/v1/admin/trainers/"+id, admin, nil)
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	assert.Len(t, ts.trainers.recs, 1)

	w, body = ts.do(t, http.MethodDelete, "/api/v1/admin/trainers/"+id+"?confirm=true", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["items"])
	assert.Empty(t, ts.trainers.recs)

	w, body = ts.do(t, http.MethodGet, "/api/v1/admin/trainers", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["data"])
}

func TestAdmin_UsersAndUploads(t *testing.T) {
	ts := newTestServer()
	console := ts.sessions.Open("u1", time.Now().Add(time.Hour))
	admin := token(t, "u1", domain.RoleAdmin, console.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	ts.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "a@example.com"))
	assert.False(t, strings.Contains(w.Body.String(), "secret-hash"))

	// no object storage configured
	resp, _ := ts.do(t, http.MethodPost, "/api/v1/admin/uploads", admin, UploadRequest{Folder: "trainers", ContentType: "image/png"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestAdminLogout(t *testing.T) {
	ts := newTestServer()
	console := ts.sessions.Open("u1", time.Now().Add(time.Hour))
	admin := token(t, "u1", domain.RoleAdmin, console.ID)

	w, _ := ts.do(t, http.MethodPost, "/api/v1/admin/logout", admin, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, ts.sessions.Count())

	w, _ = ts.do(t, http.MethodGet, "/api/v1/admin/trainers", admin, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		service.ErrSubmitInProgress:     http.StatusConflict,
		service.ErrConfirmationRequired: http.StatusPreconditionRequired,
		repository.ErrDuplicate:         http.StatusConflict,
		service.ErrWorkoutNotFound:      http.StatusNotFound,
		service.ErrSessionClosed:        http.StatusUnauthorized,
		repository.ErrNoData:            http.StatusServiceUnavailable,
		calc.ErrInvalidMeasurement:      http.StatusBadRequest,
		errors.New("boom"):              http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
	assert.Equal(t, http.StatusBadRequest, statusFor(&service.ValidationError{}))
}
