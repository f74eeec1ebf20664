package httpapp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	httpapp "photostudio/internal/app/http"
	"photostudio/internal/config"
	"photostudio/internal/domain/models"
	"photostudio/internal/lib/logger/handlers/slogdiscard"
	mw "photostudio/internal/middleware"
	"photostudio/internal/repository"
	"photostudio/internal/services/auth"
	"photostudio/internal/services/client"
	"photostudio/internal/services/dashboard"
	"photostudio/internal/services/gallery"
	"photostudio/internal/services/message"
	"photostudio/internal/storage"
	httprouters "photostudio/internal/transport/http"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "owner@studio.test"
	adminPassword = "admin-password"
)

// memStore is an in-memory stand-in for the Postgres repositories the
// proofing flow touches.
type memStore struct {
	mu        sync.Mutex
	admins    map[string]models.Admin
	clients   map[uuid.UUID]models.Client
	galleries map[uuid.UUID]models.Gallery
	messages  []models.Message
}

func newMemStore() *memStore {
	return &memStore{
		admins:    make(map[string]models.Admin),
		clients:   make(map[uuid.UUID]models.Client),
		galleries: make(map[uuid.UUID]models.Gallery),
	}
}

func (s *memStore) SaveAdmin(_ context.Context, a models.Admin) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(a.Email)
	if _, ok := s.admins[email]; ok {
		return uuid.Nil, storage.ErrEmailExists
	}
	a.ID = uuid.New()
	a.Role = models.RoleAdmin
	s.admins[email] = a

	return a.ID, nil
}

func (s *memStore) AdminByEmail(_ context.Context, email string) (models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.admins[strings.ToLower(email)]
	if !ok {
		return models.Admin{}, storage.ErrNotFound
	}

	return a, nil
}

func (s *memStore) SaveClient(_ context.Context, c models.Client) (models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.clients {
		if existing.Email == c.Email {
			return models.Client{}, storage.ErrEmailExists
		}
	}
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	s.clients[c.ID] = c

	return c, nil
}

func (s *memStore) ClientByEmail(_ context.Context, email string) (models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.clients {
		if c.Email == strings.ToLower(email) {
			return c, nil
		}
	}

	return models.Client{}, storage.ErrNotFound
}

func (s *memStore) ClientByID(_ context.Context, id uuid.UUID) (models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return models.Client{}, storage.ErrNotFound
	}

	return c, nil
}

func (s *memStore) ListClients(_ context.Context, _ int) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}

	return out, nil
}

func (s *memStore) DeleteClient(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.clients, id)

	return nil
}

func (s *memStore) CreateGallery(_ context.Context, g models.Gallery) (models.Gallery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g.ID = uuid.New()
	g.Status = models.GalleryStatusProofing
	g.Selections = []string{}
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	s.galleries[g.ID] = g

	return g, nil
}

func (s *memStore) GalleryByID(_ context.Context, id uuid.UUID) (models.Gallery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.galleries[id]
	if !ok {
		return models.Gallery{}, storage.ErrNotFound
	}

	return g, nil
}

func (s *memStore) ListGalleries(_ context.Context, f repository.GalleryFilter) ([]models.Gallery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Gallery, 0)
	for _, g := range s.galleries {
		if f.ClientID != uuid.Nil && g.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && g.Status != f.Status {
			continue
		}
		out = append(out, g)
	}

	return out, nil
}

func (s *memStore) UpdateImages(_ context.Context, id uuid.UUID, images []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.galleries[id]
	if !ok {
		return storage.ErrNotFound
	}
	g.Images = images
	s.galleries[id] = g

	return nil
}

func (s *memStore) SetRead(_ context.Context, id uuid.UUID, read bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.galleries[id]
	if !ok {
		return storage.ErrNotFound
	}
	g.IsRead = read
	s.galleries[id] = g

	return nil
}

func (s *memStore) DeleteGallery(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.galleries[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.galleries, id)

	return nil
}

func (s *memStore) SubmitSelection(_ context.Context, id uuid.UUID, photoIDs []string, check func(models.Gallery) error) (models.Gallery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.galleries[id]
	if !ok {
		return models.Gallery{}, storage.ErrNotFound
	}
	if err := check(g); err != nil {
		return models.Gallery{}, err
	}

	now := time.Now()
	g.Selections = photoIDs
	g.Status = models.GalleryStatusSelectionComplete
	g.SelectionDate = &now
	g.IsRead = false
	s.galleries[id] = g

	return g, nil
}

// Counts mirrors the dashboard query: proofing galleries and completed
// selections the admin has not read yet.
func (s *memStore) Counts(_ context.Context) (models.DashboardCounts, models.GalleryStatusCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var status models.GalleryStatusCounts
	for _, g := range s.galleries {
		switch {
		case g.Status == models.GalleryStatusProofing:
			status.Proofing++
		case g.Status == models.GalleryStatusSelectionComplete && !g.IsRead:
			status.Unread++
		}
	}

	return models.DashboardCounts{Clients: len(s.clients)}, status, nil
}

func (s *memStore) LatestUnreadMessage(_ context.Context) (*models.Message, error) {
	return nil, nil
}

func (s *memStore) LatestUnreadSelection(_ context.Context) (*models.Gallery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *models.Gallery
	for _, g := range s.galleries {
		if g.Status != models.GalleryStatusSelectionComplete || g.IsRead {
			continue
		}
		if latest == nil || g.SelectionDate.After(*latest.SelectionDate) {
			found := g
			latest = &found
		}
	}

	return latest, nil
}

type memMessages struct {
	store *memStore
}

func (m memMessages) SaveMessage(_ context.Context, msg models.Message) (models.Message, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	msg.ID = uuid.New()
	msg.CreatedAt = time.Now()
	m.store.messages = append(m.store.messages, msg)

	return msg, nil
}

func (m memMessages) ListMessages(_ context.Context) ([]models.Message, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	return append(make([]models.Message, 0, len(m.store.messages)), m.store.messages...), nil
}

func (m memMessages) SetRead(_ context.Context, _ uuid.UUID, _ bool) error {
	return nil
}

func (m memMessages) DeleteMessage(_ context.Context, _ uuid.UUID) error {
	return nil
}

type notifications struct {
	mu         sync.Mutex
	contacts   int
	selections []models.Gallery
}

func (n *notifications) NotifyContact(models.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contacts++
}

func (n *notifications) NotifySelection(g models.Gallery) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.selections = append(n.selections, g)
}

type counter struct {
	mu   sync.Mutex
	hits map[string]int64
}

func (c *counter) Hit(_ context.Context, key string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hits == nil {
		c.hits = make(map[string]int64)
	}
	c.hits[key]++

	return c.hits[key], nil
}

type env struct {
	t       *testing.T
	handler http.Handler
	notes   *notifications
}

func setup(t *testing.T) *env {
	t.Helper()

	log := slogdiscard.NewDiscardLogger()
	store := newMemStore()
	notes := &notifications{}

	authCfg := config.AuthConfig{
		AdminSecret:    "admin-secret",
		ClientSecret:   "client-secret",
		AdminTokenTTL:  time.Hour,
		ClientTokenTTL: time.Hour,
	}

	authService := auth.New(log, store, store, authCfg)
	created, err := authService.EnsureAdmin(context.Background(), adminEmail, adminPassword, "Owner")
	require.NoError(t, err)
	require.True(t, created)

	routers := httprouters.NewRouter(log, httprouters.Services{
		Auth:      authService,
		Clients:   client.NewClientService(log, store),
		Galleries: gallery.NewGalleryService(log, store, store, notes),
		Messages:  message.NewMessageService(log, memMessages{store: store}, notes),
		Dashboard: dashboard.NewDashboardService(log, store, store),
		Health:    map[string]httprouters.HealthChecker{},
	})

	server := httpapp.New(log, httpapp.Options{
		Env:            "prod",
		HTTP:           config.HTTPConfig{CORSOrigins: []string{"*"}},
		Auth:           authCfg,
		ContactLimiter: mw.NewLimiter(log, &counter{}, "contact", 2, time.Hour),
	}, routers)
	server.BuildRouters()

	return &env{t: t, handler: server.Handler(), notes: notes}
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func (e *env) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var out envelope
	if rec.Body.Len() > 0 {
		require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}

	return rec, out
}

func (e *env) login(path, email, password string) string {
	e.t.Helper()

	rec, body := e.do(http.MethodPost, path, "", map[string]string{"email": email, "password": password})
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(e.t, json.Unmarshal(body.Data, &data))
	require.NotEmpty(e.t, data.Token)

	return data.Token
}

func (e *env) createClient(adminToken, name, email, password string) uuid.UUID {
	e.t.Helper()

	rec, body := e.do(http.MethodPost, "/api/v1/clients", adminToken, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())

	var c models.Client
	require.NoError(e.t, json.Unmarshal(body.Data, &c))

	return c.ID
}

func (e *env) createGallery(adminToken string, clientID uuid.UUID, images []string) uuid.UUID {
	e.t.Helper()

	rec, body := e.do(http.MethodPost, "/api/v1/galleries", adminToken, map[string]any{
		"clientId": clientID,
		"name":     "Wedding",
		"images":   images,
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())

	var g models.Gallery
	require.NoError(e.t, json.Unmarshal(body.Data, &g))

	return g.ID
}

func (e *env) dashboard(adminToken string) models.Dashboard {
	e.t.Helper()

	rec, body := e.do(http.MethodGet, "/api/v1/dashboard", adminToken, nil)
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())

	var d models.Dashboard
	require.NoError(e.t, json.Unmarshal(body.Data, &d))

	return d
}

func TestProofingFlow(t *testing.T) {
	e := setup(t)

	images := []string{
		"https://cdn.example.com/a.jpg",
		"https://cdn.example.com/b.jpg",
		"https://cdn.example.com/c.jpg",
	}

	adminToken := e.login("/api/v1/auth/admin/login", adminEmail, adminPassword)
	clientID := e.createClient(adminToken, "Anna", "anna@example.com", "client-password")
	galleryID := e.createGallery(adminToken, clientID, images)

	clientToken := e.login("/api/v1/auth/client/login", "anna@example.com", "client-password")

	rec, body := e.do(http.MethodGet, "/api/v1/client/galleries", clientToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.ProofGallery
	require.NoError(t, json.Unmarshal(body.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, galleryID, list[0].ID)
	require.Len(t, list[0].Images, 3)
	assert.Equal(t, images[0], list[0].Images[0].ID)
	assert.NotEqual(t, images[0], list[0].Images[0].URL)

	rec, body = e.do(http.MethodPost, "/api/v1/client/selections", clientToken, map[string]any{
		"galleryId": galleryID,
		"photoIds":  []string{"https://cdn.example.com/zzz.jpg"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_failed", body.Error)

	before := e.dashboard(adminToken)
	assert.Equal(t, 1, before.GalleryStatus.Proofing)
	assert.Equal(t, 0, before.GalleryStatus.Unread)
	assert.Nil(t, before.LatestSelection)

	rec, body = e.do(http.MethodPost, "/api/v1/client/selections", clientToken, map[string]any{
		"galleryId": galleryID,
		"photoIds":  []string{images[0], images[2], images[0]},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var selected models.ProofGallery
	require.NoError(t, json.Unmarshal(body.Data, &selected))
	assert.Equal(t, models.GalleryStatusSelectionComplete, selected.Status)
	assert.Equal(t, []string{images[0], images[2]}, selected.Selections)
	assert.NotNil(t, selected.SelectionDate)

	require.Len(t, e.notes.selections, 1)
	assert.Equal(t, galleryID, e.notes.selections[0].ID)

	rec, body = e.do(http.MethodGet, "/api/v1/galleries/"+galleryID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var g models.Gallery
	require.NoError(t, json.Unmarshal(body.Data, &g))
	assert.Equal(t, models.GalleryStatusSelectionComplete, g.Status)
	assert.False(t, g.IsRead)

	after := e.dashboard(adminToken)
	assert.Equal(t, 0, after.GalleryStatus.Proofing)
	assert.Equal(t, 1, after.GalleryStatus.Unread)
	require.NotNil(t, after.LatestSelection)
	assert.Equal(t, galleryID, after.LatestSelection.ID)

	rec, _ = e.do(http.MethodPatch, "/api/v1/galleries/"+galleryID.String()+"/read", adminToken, map[string]bool{"read": true})
	require.Equal(t, http.StatusNoContent, rec.Code)

	read := e.dashboard(adminToken)
	assert.Equal(t, 0, read.GalleryStatus.Unread)
	assert.Nil(t, read.LatestSelection)
}

func TestClientIsolation(t *testing.T) {
	e := setup(t)

	adminToken := e.login("/api/v1/auth/admin/login", adminEmail, adminPassword)
	annaID := e.createClient(adminToken, "Anna", "anna@example.com", "anna-password")
	bobID := e.createClient(adminToken, "Bob", "bob@example.com", "bob-password")
	_ = e.createGallery(adminToken, annaID, []string{"https://cdn.example.com/a.jpg"})
	bobGallery := e.createGallery(adminToken, bobID, []string{"https://cdn.example.com/b.jpg"})

	annaToken := e.login("/api/v1/auth/client/login", "anna@example.com", "anna-password")

	rec, body := e.do(http.MethodGet, "/api/v1/client/galleries/"+bobGallery.String(), annaToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", body.Error)

	rec, _ = e.do(http.MethodPost, "/api/v1/client/selections", annaToken, map[string]any{
		"galleryId": bobGallery,
		"photoIds":  []string{"https://cdn.example.com/b.jpg"},
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, e.notes.selections)

	rec, body = e.do(http.MethodGet, "/api/v1/client/galleries", annaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.ProofGallery
	require.NoError(t, json.Unmarshal(body.Data, &list))
	assert.Len(t, list, 1)
}

func TestAuthBoundaries(t *testing.T) {
	e := setup(t)

	adminToken := e.login("/api/v1/auth/admin/login", adminEmail, adminPassword)
	_ = e.createClient(adminToken, "Anna", "anna@example.com", "anna-password")
	clientToken := e.login("/api/v1/auth/client/login", "anna@example.com", "anna-password")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"admin route without token", http.MethodGet, "/api/v1/galleries", "", http.StatusUnauthorized},
		{"admin route with client token", http.MethodGet, "/api/v1/galleries", clientToken, http.StatusUnauthorized},
		{"client route with admin token", http.MethodGet, "/api/v1/client/galleries", adminToken, http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/v1/auth/admin/me", "not-a-jwt", http.StatusUnauthorized},
		{"admin me", http.MethodGet, "/api/v1/auth/admin/me", adminToken, http.StatusOK},
		{"client me", http.MethodGet, "/api/v1/auth/client/me", clientToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := e.do(tt.method, tt.path, tt.token, nil)

			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, "unauthorized", body.Error)
			}
		})
	}

	rec, body := e.do(http.MethodPost, "/api/v1/auth/admin/login", "", map[string]string{
		"email":    adminEmail,
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", body.Error)
}

func TestRequestValidation(t *testing.T) {
	e := setup(t)

	rec, body := e.do(http.MethodPost, "/api/v1/auth/admin/login", "", map[string]string{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_failed", body.Error)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/admin/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid_request")

	adminToken := e.login("/api/v1/auth/admin/login", adminEmail, adminPassword)
	rec, body = e.do(http.MethodGet, "/api/v1/galleries/not-a-uuid", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", body.Error)

	rec, body = e.do(http.MethodGet, "/api/v1/galleries/"+uuid.NewString(), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", body.Error)

	rec, _ = e.do(http.MethodPut, "/api/v1/services/"+uuid.NewString(), adminToken, map[string]string{
		"description": "Half-day session",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var failed struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failed))
	assert.Equal(t, "validation_failed", failed.Error)
	assert.Equal(t, "is required", failed.Details["title"])
}

func TestMethodNotAllowed(t *testing.T) {
	e := setup(t)

	rec, body := e.do(http.MethodDelete, "/api/v1/auth/admin/login", "", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method_not_allowed", body.Error)
	assert.Contains(t, rec.Header().Get("Allow"), http.MethodPost)
}

func TestContactRateLimit(t *testing.T) {
	e := setup(t)

	msg := map[string]string{
		"name":    "Maria",
		"email":   "maria@example.com",
		"service": "Wedding",
		"message": "Are you free in June?",
	}

	for i := 0; i < 2; i++ {
		rec, _ := e.do(http.MethodPost, "/api/v1/messages", "", msg)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec, body := e.do(http.MethodPost, "/api/v1/messages", "", msg)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate_limited", body.Error)
	assert.Equal(t, "3600", rec.Header().Get("Retry-After"))
	assert.Equal(t, 2, e.notes.contacts)
}

func TestHealthz(t *testing.T) {
	e := setup(t)

	rec, body := e.do(http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body.Status)
}
