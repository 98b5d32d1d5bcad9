package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/campusdesk/studentdir/internal/config"
	"github.com/campusdesk/studentdir/internal/handler"
	"github.com/campusdesk/studentdir/internal/model"
	"github.com/campusdesk/studentdir/internal/repository"
	"github.com/campusdesk/studentdir/internal/response"
	"github.com/campusdesk/studentdir/internal/router"
	"github.com/campusdesk/studentdir/internal/service"
	"github.com/campusdesk/studentdir/internal/validator"
	"github.com/campusdesk/studentdir/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var setupOnce sync.Once

// envelope mirrors the response.Response wire shape for assertions.
type envelope struct {
	Data       json.RawMessage      `json:"data"`
	Error      *response.ErrorBody  `json:"error"`
	Pagination *response.Pagination `json:"pagination"`
	Metadata   response.Metadata    `json:"metadata"`
}

type testApp struct {
	engine *gin.Engine
	token  string
	repo   *repository.StudentRepository
}

func newTestApp(t *testing.T, mutateCfg func(*config.Config)) *testApp {
	t.Helper()
	setupOnce.Do(validator.Setup)

	cfg := &config.Config{
		GinMode:        gin.TestMode,
		JWTSecret:      "test-secret",
		JWTExpiry:      time.Hour,
		BcryptCost:     4,
		AdminUsername:  "admin",
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
	}
	if mutateCfg != nil {
		mutateCfg(cfg)
	}

	authService := service.NewAuthService(cfg)
	hash, err := authService.HashPassword("password123")
	require.NoError(t, err)
	cfg.AdminPassHash = hash

	repo := repository.NewStudentRepository()
	_, err = repo.Create(1, model.Student{Name: "anurag adarsh", Age: 20, Year: "year 26"})
	require.NoError(t, err)

	studentService := service.NewStudentService(repo, nil)
	handlers := &router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Student: handler.NewStudentHandler(studentService, cfg),
		Media:   handler.NewMediaHandler(service.NewMediaService(cfg)),
		Export:  handler.NewExportHandler(studentService, service.NewExportService(), zerolog.Nop()),
		Stats:   handler.NewStatsHandler(worker.NewAuditWorker(zerolog.Nop())),
	}

	engine := router.SetupRouter(authService, handlers, cfg, zerolog.Nop())

	token, err := authService.Login("admin", "password123")
	require.NoError(t, err)

	return &testApp{engine: engine, token: token, repo: repo}
}

func (a *testApp) do(t *testing.T, method, path, body, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)

	var env envelope
	if strings.Contains(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func studentFrom(t *testing.T, data json.RawMessage) model.Student {
	t.Helper()
	var payload struct {
		Student model.Student `json:"student"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	return payload.Student
}

func TestGetStudentByID(t *testing.T) {
	app := newTestApp(t, nil)

	rec, env := app.do(t, http.MethodGet, "/api/v1/students/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, env.Error)

	st := studentFrom(t, env.Data)
	assert.Equal(t, model.Student{ID: 1, Name: "anurag adarsh", Age: 20, Year: "year 26"}, st)
	assert.NotEmpty(t, env.Metadata.RequestID)
}

func TestGetStudentMissingIsHard404(t *testing.T) {
	app := newTestApp(t, nil)

	rec, env := app.do(t, http.MethodGet, "/api/v1/students/999", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrNotFound, env.Error.Code)
}

func TestGetStudentRejectsBadIDs(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) { cfg.LookupIDMax = 3 })

	for _, path := range []string{
		"/api/v1/students/abc",
		"/api/v1/students/0",
		"/api/v1/students/-1",
		"/api/v1/students/4", // Above the configured lookup cap.
	} {
		rec, env := app.do(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		require.NotNil(t, env.Error, path)
		assert.Equal(t, response.ErrInvalidID, env.Error.Code, path)
	}

	// The cap is a boundary rule only: ids inside it still resolve.
	rec, _ := app.do(t, http.MethodGet, "/api/v1/students/1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSearchByName(t *testing.T) {
	app := newTestApp(t, nil)

	rec, env := app.do(t, http.MethodGet, "/api/v1/students?name=anurag+adarsh", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, env.Error)

	var payload struct {
		Found   bool           `json:"found"`
		Student *model.Student `json:"student"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.True(t, payload.Found)
	require.NotNil(t, payload.Student)
	assert.Equal(t, 1, payload.Student.ID)

	// A miss is a lenient 200 payload, never an error.
	rec, env = app.do(t, http.MethodGet, "/api/v1/students?name=nonexistent", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, env.Error)
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.False(t, payload.Found)
	assert.Nil(t, payload.Student)

	// An empty name still runs the scan and reports a miss.
	rec, env = app.do(t, http.MethodGet, "/api/v1/students?name=", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.False(t, payload.Found)
}

func TestListStudentsPaginated(t *testing.T) {
	app := newTestApp(t, nil)

	rec, env := app.do(t, http.MethodGet, "/api/v1/students", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.TotalItems)

	var payload struct {
		Students []model.Student `json:"students"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.Len(t, payload.Students, 1)
}

func TestCreateStudent(t *testing.T) {
	app := newTestApp(t, nil)

	body := `{"name":"mohit","age":22,"year":"year 26"}`
	rec, env := app.do(t, http.MethodPost, "/api/v1/admin/students/2", body, app.token)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Nil(t, env.Error)
	assert.Equal(t, model.Student{ID: 2, Name: "mohit", Age: 22, Year: "year 26"}, studentFrom(t, env.Data))

	got, err := app.repo.GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, "mohit", got.Name)
}

func TestCreateConflictIsSoft200(t *testing.T) {
	app := newTestApp(t, nil)

	body := `{"name":"other","age":30,"year":"year 1"}`
	rec, env := app.do(t, http.MethodPost, "/api/v1/admin/students/1", body, app.token)

	// Soft failure contract: HTTP 200 carrying an error-shaped body.
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrStudentExists, env.Error.Code)

	// Directory unchanged.
	got, err := app.repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "anurag adarsh", got.Name)
}

func TestCreateValidation(t *testing.T) {
	app := newTestApp(t, nil)

	rec, env := app.do(t, http.MethodPost, "/api/v1/admin/students/5",
		`{"name":"","age":-3,"year":""}`, app.token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrValidation, env.Error.Code)
	assert.NotEmpty(t, env.Error.Fields)
}

func TestUpdateStudentPartial(t *testing.T) {
	app := newTestApp(t, nil)

	rec, env := app.do(t, http.MethodPatch, "/api/v1/admin/students/1",
		`{"name":"anurag adarsh updated","age":21}`, app.token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, env.Error)

	st := studentFrom(t, env.Data)
	assert.Equal(t, "anurag adarsh updated", st.Name)
	assert.Equal(t, 21, st.Age)
	assert.Equal(t, "year 26", st.Year) // Untouched field keeps its value.
}

func TestUpdateMissingIsSoft200(t *testing.T) {
	app := newTestApp(t, nil)

	rec, env := app.do(t, http.MethodPatch, "/api/v1/admin/students/99",
		`{"age":21}`, app.token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrStudentMissing, env.Error.Code)
}

func TestDeleteStudent(t *testing.T) {
	app := newTestApp(t, nil)

	rec, env := app.do(t, http.MethodDelete, "/api/v1/admin/students/1", "", app.token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, env.Error)

	// Subsequent direct lookup is a hard 404.
	rec, _ = app.do(t, http.MethodGet, "/api/v1/students/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Deleting again is the soft does-not-exist payload.
	rec, env = app.do(t, http.MethodDelete, "/api/v1/admin/students/1", "", app.token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrStudentMissing, env.Error.Code)
}

func TestAdminRoutesRequireJWT(t *testing.T) {
	app := newTestApp(t, nil)

	rec, env := app.do(t, http.MethodDelete, "/api/v1/admin/students/1", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrTokenInvalid, env.Error.Code)

	rec, _ = app.do(t, http.MethodDelete, "/api/v1/admin/students/1", "", "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t, nil)

	rec, env := app.do(t, http.MethodPost, "/api/v1/auth/login",
		`{"username":"admin","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload model.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	require.NotEmpty(t, payload.Token)

	rec, env = app.do(t, http.MethodGet, "/api/v1/auth/me", "", payload.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"admin"`)

	rec, env = app.do(t, http.MethodPost, "/api/v1/auth/login",
		`{"username":"admin","password":"wrong-pass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrInvalidCredentials, env.Error.Code)
}

func TestIndexAndHealth(t *testing.T) {
	app := newTestApp(t, nil)

	rec, env := app.do(t, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "First Data")

	rec, _ = app.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	rec, env := app.do(t, http.MethodGet, "/api/v1/admin/stats", "", app.token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "creates")

	rec, _ = app.do(t, http.MethodGet, "/api/v1/admin/stats", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExportRoster(t *testing.T) {
	app := newTestApp(t, nil)

	rec, _ := app.do(t, http.MethodGet, "/api/v1/admin/students/export", "", app.token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "students.xlsx")
	assert.NotZero(t, rec.Body.Len())
}
