// Package client is the consumer side of the marketplace API: a typed HTTP
// client, the persisted login session, the search filter and the screen
// navigator that drives the interactive browser.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/diewo77/go-artisans/internal/models"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// API calls the marketplace HTTP endpoints.
type API struct {
	baseURL string
	http    *http.Client
}

// NewAPI returns a client for baseURL. A nil httpClient uses a client with a
// 15s timeout.
func NewAPI(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &API{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// SignupParams is the signup form.
type SignupParams struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Name     string          `json:"name"`
	UserType models.UserType `json:"userType"`
	Phone    string          `json:"phone,omitempty"`
}

// SigninResult holds a fresh access token and its user.
type SigninResult struct {
	AccessToken string             `json:"accessToken"`
	User        models.UserAccount `json:"user"`
}

// SeedResult is the answer of the demo-data endpoint.
type SeedResult struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
	Created *int   `json:"created,omitempty"`
	Note    string `json:"note,omitempty"`
}

func (a *API) do(ctx context.Context, method, path, token string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		if derr := json.NewDecoder(resp.Body).Decode(&e); derr != nil || e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *API) Health(ctx context.Context) error {
	return a.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

// Signup returns the new user's id.
func (a *API) Signup(ctx context.Context, p SignupParams) (string, error) {
	var out struct {
		UserID string `json:"userId"`
	}
	if err := a.do(ctx, http.MethodPost, "/auth/signup", "", p, &out); err != nil {
		return "", err
	}
	return out.UserID, nil
}

func (a *API) Signin(ctx context.Context, email, password string) (*SigninResult, error) {
	var out SigninResult
	body := map[string]string{"email": email, "password": password}
	if err := a.do(ctx, http.MethodPost, "/auth/signin", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) CurrentUser(ctx context.Context, token string) (*models.UserAccount, error) {
	var out struct {
		User models.UserAccount `json:"user"`
	}
	if err := a.do(ctx, http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ListArtisans applies the server-side trade and availability filters.
func (a *API) ListArtisans(ctx context.Context, trade string, onlyAvailable bool) ([]models.ArtisanProfile, error) {
	q := url.Values{}
	if trade != "" {
		q.Set("trade", trade)
	}
	if onlyAvailable {
		q.Set("available", "true")
	}
	path := "/artisans"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out struct {
		Artisans []models.ArtisanProfile `json:"artisans"`
	}
	if err := a.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out.Artisans, nil
}

func (a *API) GetArtisan(ctx context.Context, id string) (*models.ArtisanProfile, error) {
	var out struct {
		Artisan models.ArtisanProfile `json:"artisan"`
	}
	if err := a.do(ctx, http.MethodGet, "/artisans/"+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out.Artisan, nil
}

// UpdateArtisan sends a partial profile; fields uses the JSON field names.
func (a *API) UpdateArtisan(ctx context.Context, token, id string, fields map[string]any) (*models.ArtisanProfile, error) {
	var out struct {
		Artisan models.ArtisanProfile `json:"artisan"`
	}
	if err := a.do(ctx, http.MethodPut, "/artisans/"+url.PathEscape(id), token, fields, &out); err != nil {
		return nil, err
	}
	return &out.Artisan, nil
}

func (a *API) CreateRequest(ctx context.Context, in models.NewRequestInput) (*models.ClientRequest, error) {
	var out struct {
		Request models.ClientRequest `json:"request"`
	}
	if err := a.do(ctx, http.MethodPost, "/requests", "", in, &out); err != nil {
		return nil, err
	}
	return &out.Request, nil
}

func (a *API) ListRequests(ctx context.Context, token, artisanID string) ([]models.ClientRequest, error) {
	var out struct {
		Requests []models.ClientRequest `json:"requests"`
	}
	if err := a.do(ctx, http.MethodGet, "/requests/artisan/"+url.PathEscape(artisanID), token, nil, &out); err != nil {
		return nil, err
	}
	return out.Requests, nil
}

func (a *API) UpdateRequestStatus(ctx context.Context, token, requestID string, status models.RequestStatus) (*models.ClientRequest, error) {
	var out struct {
		Request models.ClientRequest `json:"request"`
	}
	body := map[string]models.RequestStatus{"status": status}
	if err := a.do(ctx, http.MethodPut, "/requests/"+url.PathEscape(requestID), token, body, &out); err != nil {
		return nil, err
	}
	return &out.Request, nil
}

func (a *API) Trades(ctx context.Context) ([]models.Trade, error) {
	var out struct {
		Trades []models.Trade `json:"trades"`
	}
	if err := a.do(ctx, http.MethodGet, "/trades", "", nil, &out); err != nil {
		return nil, err
	}
	return out.Trades, nil
}

func (a *API) InitDemoData(ctx context.Context) (*SeedResult, error) {
	var out SeedResult
	if err := a.do(ctx, http.MethodPost, "/init-demo-data", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
