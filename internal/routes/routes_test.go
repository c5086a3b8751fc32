package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/event-manager/internal/audit"
	"github.com/BruksfildServices01/event-manager/internal/config"
	"github.com/BruksfildServices01/event-manager/internal/infra/repository"
	"github.com/BruksfildServices01/event-manager/internal/ratelimit"
	"github.com/BruksfildServices01/event-manager/internal/seed"
	"github.com/BruksfildServices01/event-manager/internal/storage"
)

type testServer struct {
	r         *gin.Engine
	repo      *repository.MemoryRepository
	uploadDir string
	audit     *audit.MemoryStore

	eventID, generadores, banos string
	mariaID, juanID             string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	repo := repository.NewMemoryRepository()
	if _, err := seed.Run(ctx, repo); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		Timezone:       "UTC",
		StorageDriver:  "local",
		UploadDir:      t.TempDir(),
		UploadMaxBytes: 5 << 20,
	}

	local, err := storage.NewLocal(cfg.UploadDir, storage.PublicPrefix)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	auditStore := audit.NewMemoryStore(100)
	dispatcher := audit.NewDispatcher(auditStore, 100)
	t.Cleanup(dispatcher.Close)

	r := gin.New()
	ConfigureEngine(r, cfg)
	RegisterRoutes(r, cfg, Dependencies{
		Repo:       repo,
		Images:     storage.NewImages(local, cfg.UploadMaxBytes, 200),
		Limiter:    ratelimit.NewMemoryLimiter(ctx, 100),
		Audit:      dispatcher,
		AuditStore: auditStore,
	})

	s := &testServer{r: r, repo: repo, uploadDir: cfg.UploadDir, audit: auditStore}

	events, _ := repo.ListEvents(ctx)
	s.eventID = events[0].ID
	for _, a := range events[0].Attributes {
		switch a.Name {
		case "generadores":
			s.generadores = a.ID
		case "baños":
			s.banos = a.ID
		}
	}
	maria, _ := repo.FindUserByEmail(ctx, "maria@respect.com")
	juan, _ := repo.FindUserByEmail(ctx, "juan@respect.com")
	s.mariaID, s.juanID = maria.ID, juan.ID
	return s
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decode(t, w, &resp)
	if resp.Token == "" || resp.User.Email != email {
		t.Fatalf("unexpected login response %s", w.Body.String())
	}
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func (s *testServer) submit(t *testing.T, token, attributeID string) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, http.MethodPost, "/api/event-data", token, gin.H{
		"eventId":          s.eventID,
		"eventAttributeId": attributeID,
		"data":             gin.H{"valor": "x"},
	})
}

func TestAdminSeesSeededEvent(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "admin@respect.com", "admin123")

	w := s.do(t, http.MethodGet, "/api/events", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list events: %d", w.Code)
	}

	var events []struct {
		Name       string           `json:"name"`
		Attributes []map[string]any `json:"attributes"`
		Providers  []struct {
			Provider map[string]any `json:"provider"`
		} `json:"providers"`
		Count struct {
			EventData int `json:"eventData"`
		} `json:"_count"`
	}
	decode(t, w, &events)

	if len(events) != 1 || events[0].Name != "EtMday" {
		t.Fatalf("unexpected events %s", w.Body.String())
	}
	e := events[0]
	if len(e.Attributes) != 3 || len(e.Providers) != 1 || e.Count.EventData != 0 {
		t.Fatalf("unexpected denormalisation %s", w.Body.String())
	}
	if e.Providers[0].Provider["name"] != "Proveedor de Energía Sostenible" {
		t.Fatalf("unexpected provider %v", e.Providers[0].Provider)
	}
}

func TestEmployeeCreatePermissions(t *testing.T) {
	s := newTestServer(t)
	maria := s.login(t, "maria@respect.com", "empleado123")

	w := s.submit(t, maria, s.generadores)
	if w.Code != http.StatusCreated {
		t.Fatalf("create on generadores: %d %s", w.Code, w.Body.String())
	}
	var row struct {
		UserID string         `json:"userId"`
		Data   map[string]any `json:"data"`
		User   struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	decode(t, w, &row)
	if row.UserID != s.mariaID || row.Data["valor"] != "x" || row.User.Email != "maria@respect.com" {
		t.Fatalf("unexpected row %s", w.Body.String())
	}

	if w := s.submit(t, maria, s.banos); w.Code != http.StatusForbidden {
		t.Fatalf("create on baños: %d", w.Code)
	}
}

func TestUpdateRequiresOwnership(t *testing.T) {
	s := newTestServer(t)
	maria := s.login(t, "maria@respect.com", "empleado123")
	juan := s.login(t, "juan@respect.com", "empleado123")

	w := s.submit(t, maria, s.generadores)
	var row struct {
		ID string `json:"id"`
	}
	decode(t, w, &row)

	w = s.do(t, http.MethodPut, "/api/event-data/"+row.ID, juan, gin.H{"data": gin.H{"valor": "y"}})
	if w.Code != http.StatusForbidden {
		t.Fatalf("juan updating maria's row: %d", w.Code)
	}

	// Maria owns the row but has no update flag.
	w = s.do(t, http.MethodPut, "/api/event-data/"+row.ID, maria, gin.H{"data": gin.H{"valor": "y"}})
	if w.Code != http.StatusForbidden {
		t.Fatalf("maria without canUpdate: %d", w.Code)
	}

	w = s.do(t, http.MethodPut, "/api/event-data/"+row.ID, juan, gin.H{"comment": "x"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("juan comment on maria's row: %d", w.Code)
	}
}

func TestDeletingUserPurgesTheirData(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin@respect.com", "admin123")
	maria := s.login(t, "maria@respect.com", "empleado123")

	if w := s.submit(t, maria, s.generadores); w.Code != http.StatusCreated {
		t.Fatalf("submit: %d", w.Code)
	}

	if w := s.do(t, http.MethodDelete, "/api/users/"+s.mariaID, admin, nil); w.Code != http.StatusOK {
		t.Fatalf("delete user: %d", w.Code)
	}

	w := s.do(t, http.MethodGet, "/api/event-data/attribute/"+s.generadores, admin, nil)
	var rows []map[string]any
	decode(t, w, &rows)
	if w.Code != http.StatusOK || len(rows) != 0 {
		t.Fatalf("rows survived: %d %s", w.Code, w.Body.String())
	}

	if w := s.do(t, http.MethodGet, "/api/permissions/user/"+s.mariaID, admin, nil); w.Code != http.StatusNotFound {
		t.Fatalf("permissions of deleted user: %d", w.Code)
	}

	// The deleted user's token stops working.
	if w := s.do(t, http.MethodGet, "/api/auth/me", maria, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("stale token: %d", w.Code)
	}
}

func TestAuthAndRoles(t *testing.T) {
	s := newTestServer(t)
	juan := s.login(t, "juan@respect.com", "empleado123")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		want   int
	}{
		{"health", http.MethodGet, "/api/health", "", nil, http.StatusOK},
		{"root health", http.MethodGet, "/health", "", nil, http.StatusOK},
		{"no token", http.MethodGet, "/api/events", "", nil, http.StatusUnauthorized},
		{"bad credentials", http.MethodPost, "/api/auth/login", "", gin.H{"email": "juan@respect.com", "password": "x"}, http.StatusUnauthorized},
		{"unknown email", http.MethodPost, "/api/auth/login", "", gin.H{"email": "nobody@respect.com", "password": "x"}, http.StatusUnauthorized},
		{"missing fields", http.MethodPost, "/api/auth/login", "", gin.H{"email": "juan@respect.com"}, http.StatusBadRequest},
		{"employee lists users", http.MethodGet, "/api/users", juan, nil, http.StatusForbidden},
		{"employee reads self", http.MethodGet, "/api/users/" + s.juanID, juan, nil, http.StatusOK},
		{"employee reads other", http.MethodGet, "/api/users/" + s.mariaID, juan, nil, http.StatusForbidden},
		{"employee own permissions", http.MethodGet, "/api/permissions/user/" + s.juanID, juan, nil, http.StatusOK},
		{"employee other permissions", http.MethodGet, "/api/permissions/user/" + s.mariaID, juan, nil, http.StatusForbidden},
		{"employee creates event", http.MethodPost, "/api/events", juan, gin.H{"name": "x"}, http.StatusForbidden},
		{"employee lists providers", http.MethodGet, "/api/providers", juan, nil, http.StatusOK},
		{"employee reads event data by event", http.MethodGet, "/api/event-data/event/" + s.eventID, juan, nil, http.StatusOK},
		{"unknown event data", http.MethodPut, "/api/event-data/missing", juan, gin.H{"comment": "x"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := s.do(t, tt.method, tt.path, tt.token, tt.body); w.Code != tt.want {
				t.Fatalf("got %d want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestAdminCatalogue(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin@respect.com", "admin123")

	w := s.do(t, http.MethodPost, "/api/events/"+s.eventID+"/attributes", admin, gin.H{"name": "generadores", "dataType": "TEXT"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate attribute: %d", w.Code)
	}

	w = s.do(t, http.MethodPost, "/api/events", admin, gin.H{
		"name":          "Feria",
		"startDate":     "2025-03-01",
		"dynamicFields": gin.H{"sede": "Norte"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create event: %d %s", w.Code, w.Body.String())
	}
	var ev struct {
		ID        string `json:"id"`
		StartDate string `json:"startDate"`
	}
	decode(t, w, &ev)
	if ev.StartDate != "2025-03-01T00:00:00Z" {
		t.Fatalf("unexpected start date %q", ev.StartDate)
	}

	w = s.do(t, http.MethodPost, "/api/events/"+ev.ID+"/attributes", admin, gin.H{"name": "generadores", "dataType": "TEXT"})
	if w.Code != http.StatusCreated {
		t.Fatalf("same name under another event: %d", w.Code)
	}
	var attr struct {
		ID string `json:"id"`
	}
	decode(t, w, &attr)

	w = s.do(t, http.MethodPut, "/api/events/"+s.eventID+"/attributes/"+attr.ID, admin, gin.H{"allowImage": true})
	if w.Code != http.StatusNotFound {
		t.Fatalf("attribute under wrong event: %d", w.Code)
	}

	body := gin.H{"userId": s.mariaID, "eventAttributeId": attr.ID, "canCreate": true}
	if w := s.do(t, http.MethodPost, "/api/permissions", admin, body); w.Code != http.StatusCreated {
		t.Fatalf("permission create: %d", w.Code)
	}
	w = s.do(t, http.MethodPost, "/api/permissions", admin, gin.H{"userId": s.mariaID, "eventAttributeId": attr.ID, "canDelete": true})
	if w.Code != http.StatusOK {
		t.Fatalf("permission update in place: %d", w.Code)
	}
	var perm struct {
		CanCreate, CanRead, CanUpdate, CanDelete bool
		User                                     struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	decode(t, w, &perm)
	if !perm.CanCreate || !perm.CanRead || perm.CanUpdate || !perm.CanDelete || perm.User.Email != "maria@respect.com" {
		t.Fatalf("unexpected merged permission %s", w.Body.String())
	}

	if w := s.do(t, http.MethodDelete, "/api/events/"+ev.ID, admin, nil); w.Code != http.StatusOK {
		t.Fatalf("delete event: %d", w.Code)
	}
	w = s.do(t, http.MethodGet, "/api/permissions/user/"+s.mariaID, admin, nil)
	var perms []map[string]any
	decode(t, w, &perms)
	if len(perms) != 1 {
		t.Fatalf("cascade left %d permissions for maria", len(perms))
	}

	// Audit entries are written asynchronously.
	deadline := time.Now().Add(2 * time.Second)
	for {
		_, total, _ := s.audit.List(context.Background(), audit.Filter{Entity: "event", Page: 1, Limit: 10})
		if total >= 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected event audit entries, got %d", total)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if w := s.do(t, http.MethodGet, "/api/audit-logs?entity=event", admin, nil); w.Code != http.StatusOK {
		t.Fatalf("audit logs: %d", w.Code)
	}
}

func multipartBody(t *testing.T, fields map[string]string, filename, contentType string, file []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		_, _ = part.Write(file)
	}
	_ = mw.Close()
	return &buf, mw.FormDataContentType()
}

// upload submits a small PNG with a multipart form.
func (s *testServer) upload(t *testing.T, token, attributeID string) *httptest.ResponseRecorder {
	t.Helper()

	var img bytes.Buffer
	_ = png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 16, 16)))

	body, ct := multipartBody(t, map[string]string{
		"eventId":          s.eventID,
		"eventAttributeId": attributeID,
		"data":             `{"valor":"foto"}`,
	}, "gen.png", "image/png", img.Bytes())
	req := httptest.NewRequest(http.MethodPost, "/api/event-data", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func TestImageUpload(t *testing.T) {
	s := newTestServer(t)
	juan := s.login(t, "juan@respect.com", "empleado123")

	w := s.upload(t, juan, s.generadores)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: %d %s", w.Code, w.Body.String())
	}
	var row struct {
		ImageURL string         `json:"imageUrl"`
		Data     map[string]any `json:"data"`
	}
	decode(t, w, &row)
	if row.Data["valor"] != "foto" || len(row.ImageURL) == 0 {
		t.Fatalf("unexpected row %s", w.Body.String())
	}

	get := httptest.NewRequest(http.MethodGet, row.ImageURL, nil)
	gw := httptest.NewRecorder()
	s.r.ServeHTTP(gw, get)
	if gw.Code != http.StatusOK {
		t.Fatalf("serving %s: %d", row.ImageURL, gw.Code)
	}

	if w := s.upload(t, juan, s.banos); w.Code != http.StatusBadRequest {
		t.Fatalf("image on baños: %d", w.Code)
	}

	entries, _ := os.ReadDir(s.uploadDir)
	if len(entries) != 1 {
		t.Fatalf("expected exactly one stored image, found %d", len(entries))
	}
}

func TestConfigureEngine_ClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		proxies []string
		want    string
	}{
		{"no proxies keeps the socket peer", nil, "192.0.2.1"},
		{"trusted peer forwards the client", []string{"192.0.2.0/24"}, "203.0.113.7"},
		{"invalid list trusts none", []string{"not-an-address"}, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			ConfigureEngine(r, &config.Config{TrustedProxies: tt.proxies})
			r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })

			req := httptest.NewRequest(http.MethodGet, "/ip", nil)
			req.RemoteAddr = "192.0.2.1:4321"
			req.Header.Set("X-Forwarded-For", "203.0.113.7")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if got := w.Body.String(); got != tt.want {
				t.Fatalf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginThrottleIgnoresForwardedFor(t *testing.T) {
	s := newTestServer(t)

	var limited int
	for i := 0; i < 120; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		w := httptest.NewRecorder()
		s.r.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited == 0 {
		t.Fatal("spoofed X-Forwarded-For values escaped the login throttle")
	}
}

func TestCascadingDeletesRemoveImages(t *testing.T) {
	tests := []struct {
		name string
		path func(s *testServer) string
	}{
		{"user", func(s *testServer) string { return "/api/users/" + s.juanID }},
		{"event", func(s *testServer) string { return "/api/events/" + s.eventID }},
		{"attribute", func(s *testServer) string {
			return "/api/events/" + s.eventID + "/attributes/" + s.generadores
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			admin := s.login(t, "admin@respect.com", "admin123")
			juan := s.login(t, "juan@respect.com", "empleado123")

			if w := s.upload(t, juan, s.generadores); w.Code != http.StatusCreated {
				t.Fatalf("upload: %d %s", w.Code, w.Body.String())
			}
			if entries, _ := os.ReadDir(s.uploadDir); len(entries) != 1 {
				t.Fatalf("expected one stored image, found %d", len(entries))
			}

			if w := s.do(t, http.MethodDelete, tt.path(s), admin, nil); w.Code != http.StatusOK {
				t.Fatalf("delete: %d %s", w.Code, w.Body.String())
			}
			if entries, _ := os.ReadDir(s.uploadDir); len(entries) != 0 {
				t.Fatalf("%d images left behind", len(entries))
			}
		})
	}
}
