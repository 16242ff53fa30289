package handlers

import (
	"context"
	"net/http"

	"filmshelf/internal/models"
	"filmshelf/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerID  int
	registerErr error
	token       string
	tokenErr    error
	parseUser   string
	parseErr    error

	lastRegisterName     string
	lastRegisterUsername string
	lastRegisterPassword string
	lastLoginUsername    string
	lastLoginPassword    string
	lastParseToken       string
}

func (m *mockAuth) Register(_ context.Context, name, username, password string) (int, error) {
	m.lastRegisterName = name
	m.lastRegisterUsername = username
	m.lastRegisterPassword = password
	return m.registerID, m.registerErr
}

func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.token, m.tokenErr
}

func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseUser, m.parseErr
}

type mockFilms struct {
	listResp  []models.Film
	listErr   error
	created   bool
	upsertErr error
	updateErr error
	clearN    int64
	clearErr  error

	lastListOwner   string
	lastUpsertOwner string
	lastUpsertTitle string
	lastUpsertRaw   any
	lastUpdateOwner string
	lastUpdateID    int
	lastClearOwner  string
}

func (m *mockFilms) List(_ context.Context, owner string) ([]models.Film, error) {
	m.lastListOwner = owner
	return m.listResp, m.listErr
}

func (m *mockFilms) Upsert(_ context.Context, owner, title string, rating any) (bool, error) {
	m.lastUpsertOwner = owner
	m.lastUpsertTitle = title
	m.lastUpsertRaw = rating
	return m.created, m.upsertErr
}

func (m *mockFilms) UpdateRating(_ context.Context, owner string, id int, rating any) error {
	m.lastUpdateOwner = owner
	m.lastUpdateID = id
	return m.updateErr
}

func (m *mockFilms) Clear(_ context.Context, owner string) (int64, error) {
	m.lastClearOwner = owner
	return m.clearN, m.clearErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func withBearer(req *http.Request, token string) *http.Request {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
