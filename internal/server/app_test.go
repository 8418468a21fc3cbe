package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/go-artisans/internal/db"
	"github.com/diewo77/go-artisans/internal/identity"
	"github.com/diewo77/go-artisans/internal/kv"
	"github.com/diewo77/go-artisans/internal/models"
	"github.com/diewo77/go-artisans/internal/policy"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	provider := identity.NewLocalProvider(conn, identity.LocalConfig{
		Secret:     []byte("test-secret"),
		Issuer:     "test",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
	logger := zap.NewNop()
	cfg := policy.NewRouterConfig(kv.NewSQLStore(conn), provider, "Lubumbashi", logger)
	srv := httptest.NewServer(NewApp(cfg, logger, Options{}))
	t.Cleanup(srv.Close)
	return srv
}

// call sends body as JSON and decodes the response into out when non-nil.
func call(t *testing.T, srv *httptest.Server, method, path, token string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

type errorBody struct {
	Error string `json:"error"`
}

func signupAndLogin(t *testing.T, srv *httptest.Server, email, name string, userType models.UserType) (string, string) {
	t.Helper()
	var created struct {
		Message string `json:"message"`
		UserID  string `json:"userId"`
	}
	status := call(t, srv, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": email, "password": "secret123", "name": name, "userType": string(userType), "phone": "+243 999 000 111",
	}, &created)
	if status != http.StatusOK || created.UserID == "" {
		t.Fatalf("signup %s: status %d body %+v", email, status, created)
	}
	if created.Message != "User created successfully" {
		t.Fatalf("unexpected message %q", created.Message)
	}

	var signin struct {
		AccessToken string             `json:"accessToken"`
		User        models.UserAccount `json:"user"`
	}
	status = call(t, srv, http.MethodPost, "/auth/signin", "", map[string]string{"email": email, "password": "secret123"}, &signin)
	if status != http.StatusOK {
		t.Fatalf("signin %s: status %d", email, status)
	}
	if signin.User.Email != email || signin.User.UserType != userType {
		t.Fatalf("signin user mismatch: %+v", signin.User)
	}
	return created.UserID, signin.AccessToken
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	var body map[string]string
	if status := call(t, srv, http.MethodGet, "/health", "", nil, &body); status != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health: %d %v", status, body)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/artisans/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin = %q", got)
	}
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)
	id, token := signupAndLogin(t, srv, "client@example.com", "Client", models.UserTypeClient)

	var me struct {
		User models.UserAccount `json:"user"`
	}
	if status := call(t, srv, http.MethodGet, "/auth/me", token, nil, &me); status != http.StatusOK || me.User.ID != id {
		t.Fatalf("me: %d %+v", status, me)
	}

	var e errorBody
	if status := call(t, srv, http.MethodGet, "/auth/me", "", nil, &e); status != http.StatusUnauthorized || e.Error != "No token provided" {
		t.Fatalf("me without token: %d %q", status, e.Error)
	}
	if status := call(t, srv, http.MethodGet, "/auth/me", "bogus", nil, &e); status != http.StatusUnauthorized || e.Error != "Unauthorized" {
		t.Fatalf("me with bad token: %d %q", status, e.Error)
	}
	if status := call(t, srv, http.MethodPost, "/auth/signin", "", map[string]string{"email": "client@example.com", "password": "nope-nope"}, &e); status != http.StatusUnauthorized {
		t.Fatalf("bad password: %d", status)
	}
	if status := call(t, srv, http.MethodPost, "/auth/signup", "", map[string]string{"email": "x@example.com"}, &e); status != http.StatusBadRequest || e.Error != "Missing required fields" {
		t.Fatalf("signup missing fields: %d %q", status, e.Error)
	}
	if status := call(t, srv, http.MethodPost, "/auth/signup", "", map[string]string{
		"email": "client@example.com", "password": "secret123", "name": "Dup", "userType": "client",
	}, &e); status != http.StatusBadRequest || e.Error != identity.ErrEmailExists.Error() {
		t.Fatalf("duplicate signup: %d %q", status, e.Error)
	}
}

func TestArtisanSignupDefaultsAndUpdate(t *testing.T) {
	srv := newTestServer(t)
	id, token := signupAndLogin(t, srv, "jean@example.com", "Jean", models.UserTypeArtisan)
	_, other := signupAndLogin(t, srv, "marie@example.com", "Marie", models.UserTypeArtisan)

	var got struct {
		Artisan models.ArtisanProfile `json:"artisan"`
	}
	if status := call(t, srv, http.MethodGet, "/artisans/"+id, "", nil, &got); status != http.StatusOK {
		t.Fatalf("get: %d", status)
	}
	a := got.Artisan
	if a.Availability != models.AvailabilityAvailable || a.Verified || a.Rating != 5.0 || a.ReviewCount != 0 {
		t.Fatalf("unexpected defaults: %+v", a)
	}

	var e errorBody
	if status := call(t, srv, http.MethodGet, "/artisans/missing", "", nil, &e); status != http.StatusNotFound || e.Error != "Artisan not found" {
		t.Fatalf("missing artisan: %d %q", status, e.Error)
	}

	update := map[string]any{"id": "hijack", "trade": models.TradePlumber, "hourlyRate": "20 USD/h"}
	if status := call(t, srv, http.MethodPut, "/artisans/"+id, "", update, &e); status != http.StatusUnauthorized {
		t.Fatalf("anonymous update: %d", status)
	}
	if status := call(t, srv, http.MethodPut, "/artisans/"+id, other, update, &e); status != http.StatusUnauthorized {
		t.Fatalf("foreign update: %d", status)
	}
	if status := call(t, srv, http.MethodPut, "/artisans/"+id, other, map[string]any{"role": "admin"}, &e); status != http.StatusUnauthorized {
		t.Fatalf("foreign update with unknown field: %d", status)
	}
	if status := call(t, srv, http.MethodPut, "/artisans/"+id, token, map[string]any{"role": "admin"}, &e); status != http.StatusBadRequest {
		t.Fatalf("unknown field: %d", status)
	}

	var first, second struct {
		Artisan models.ArtisanProfile `json:"artisan"`
	}
	if status := call(t, srv, http.MethodPut, "/artisans/"+id, token, update, &first); status != http.StatusOK {
		t.Fatalf("update: %d", status)
	}
	call(t, srv, http.MethodPut, "/artisans/"+id, token, update, &second)
	if first.Artisan.ID != id || first.Artisan.Trade != models.TradePlumber || first.Artisan.UpdatedAt == nil {
		t.Fatalf("unexpected update result: %+v", first.Artisan)
	}
	first.Artisan.UpdatedAt, second.Artisan.UpdatedAt = nil, nil
	firstJSON, _ := json.Marshal(first.Artisan)
	secondJSON, _ := json.Marshal(second.Artisan)
	if !bytes.Equal(firstJSON, secondJSON) {
		t.Fatalf("update is not idempotent:\n%s\n%s", firstJSON, secondJSON)
	}

	var list struct {
		Artisans []models.ArtisanProfile `json:"artisans"`
	}
	call(t, srv, http.MethodGet, "/artisans?trade=plombier", "", nil, &list)
	if len(list.Artisans) != 1 || list.Artisans[0].ID != id {
		t.Fatalf("trade filter: %+v", list.Artisans)
	}
	call(t, srv, http.MethodGet, "/artisans?trade=Peintre", "", nil, &list)
	if list.Artisans == nil || len(list.Artisans) != 0 {
		t.Fatalf("expected empty list, got %+v", list.Artisans)
	}
}

func TestRequestsIsolation(t *testing.T) {
	srv := newTestServer(t)
	a, tokenA := signupAndLogin(t, srv, "a@example.com", "A", models.UserTypeArtisan)
	b, tokenB := signupAndLogin(t, srv, "b@example.com", "B", models.UserTypeArtisan)

	var created struct {
		Request models.ClientRequest `json:"request"`
	}
	status := call(t, srv, http.MethodPost, "/requests", "", map[string]string{
		"artisanId": a, "clientName": "Client", "clientPhone": "+243 970", "service": "Fuite",
	}, &created)
	if status != http.StatusOK || created.Request.Urgency != models.UrgencyFlexible || created.Request.Status != models.StatusNew {
		t.Fatalf("create: %d %+v", status, created.Request)
	}

	var e errorBody
	if status := call(t, srv, http.MethodPost, "/requests", "", map[string]string{"artisanId": a}, &e); status != http.StatusBadRequest {
		t.Fatalf("missing fields: %d", status)
	}

	var list struct {
		Requests []models.ClientRequest `json:"requests"`
	}
	if status := call(t, srv, http.MethodGet, "/requests/artisan/"+a, tokenA, nil, &list); status != http.StatusOK || len(list.Requests) != 1 {
		t.Fatalf("own list: %d %+v", status, list.Requests)
	}
	if status := call(t, srv, http.MethodGet, "/requests/artisan/"+a, tokenB, nil, &e); status != http.StatusUnauthorized {
		t.Fatalf("foreign list: %d", status)
	}
	if status := call(t, srv, http.MethodGet, "/requests/artisan/"+b, tokenB, nil, &list); status != http.StatusOK || len(list.Requests) != 0 {
		t.Fatalf("b list: %d %+v", status, list.Requests)
	}

	path := "/requests/" + created.Request.ID
	if status := call(t, srv, http.MethodPut, path, tokenB, map[string]string{"status": "viewed"}, &e); status != http.StatusNotFound || e.Error != "Request not found" {
		t.Fatalf("cross-artisan status update: %d %q", status, e.Error)
	}
	if status := call(t, srv, http.MethodPut, path, "", map[string]string{"status": "viewed"}, &e); status != http.StatusUnauthorized {
		t.Fatalf("anonymous status update: %d", status)
	}
	var updated struct {
		Request models.ClientRequest `json:"request"`
	}
	if status := call(t, srv, http.MethodPut, path, tokenA, map[string]string{"status": "responded"}, &updated); status != http.StatusOK || updated.Request.Status != models.StatusResponded {
		t.Fatalf("own status update: %d %+v", status, updated.Request)
	}
}

func TestTradesAndDemoData(t *testing.T) {
	srv := newTestServer(t)

	var seed map[string]any
	if status := call(t, srv, http.MethodPost, "/init-demo-data", "", nil, &seed); status != http.StatusOK || seed["created"] != float64(3) {
		t.Fatalf("seed: %d %v", status, seed)
	}
	call(t, srv, http.MethodPost, "/init-demo-data", "", nil, &seed)
	if seed["message"] != "Demo data already exists" || seed["count"] != float64(3) {
		t.Fatalf("second seed: %v", seed)
	}

	var list struct {
		Artisans []models.ArtisanProfile `json:"artisans"`
	}
	call(t, srv, http.MethodGet, "/artisans", "", nil, &list)
	if len(list.Artisans) != 3 {
		t.Fatalf("expected 3 artisans, got %d", len(list.Artisans))
	}

	type tradesBody struct {
		Trades []models.Trade `json:"trades"`
	}
	counts := func() map[string]int {
		var body tradesBody
		call(t, srv, http.MethodGet, "/trades", "", nil, &body)
		if len(body.Trades) != 6 {
			t.Fatalf("expected 6 trades, got %d", len(body.Trades))
		}
		out := map[string]int{}
		for _, tr := range body.Trades {
			out[tr.Name] = tr.Count
		}
		return out
	}
	before := counts()
	if before[models.TradePlumber] != 1 || before[models.TradeMason] != 0 {
		t.Fatalf("unexpected counts %v", before)
	}

	id, token := signupAndLogin(t, srv, "jean.plombier@example.com", "Jean", models.UserTypeArtisan)
	call(t, srv, http.MethodPut, "/artisans/"+id, token, map[string]string{"trade": models.TradePlumber}, nil)

	after := counts()
	before[models.TradePlumber]++
	for name, n := range before {
		if after[name] != n {
			t.Fatalf("trade %s: got %d want %d", name, after[name], n)
		}
	}
}
