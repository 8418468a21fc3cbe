package client

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/diewo77/go-artisans/internal/models"
)

// Keys of the persisted session.
const (
	TokenKey = "auth_token"
	UserKey  = "auth_user"
)

// ErrNotLoggedIn is returned by operations that need a session.
var ErrNotLoggedIn = errors.New("not logged in")

// Storage persists the two session values. Implementations write, read and
// clear both keys together.
type Storage interface {
	Load() (map[string]string, error)
	Save(values map[string]string) error
	Clear() error
}

// FileStorage keeps the session in a JSON file.
type FileStorage struct {
	Path string
}

func (f FileStorage) Load() (map[string]string, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return map[string]string{}, nil
	}
	return values, nil
}

func (f FileStorage) Save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

func (f FileStorage) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStorage is a Storage for tests and throwaway sessions.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *MemoryStorage) Load() (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryStorage) Save(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]string, len(values))
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = nil
	return nil
}

// Auth is the client's login session. Create it with NewAuth, call Init once
// to restore a persisted session, and Logout to end it.
type Auth struct {
	api   *API
	store Storage

	mu    sync.RWMutex
	token string
	user  *models.UserAccount
}

func NewAuth(api *API, store Storage) *Auth {
	return &Auth{api: api, store: store}
}

// Init restores the persisted session. A missing or unreadable session
// leaves the client logged out.
func (a *Auth) Init() error {
	values, err := a.store.Load()
	if err != nil {
		return err
	}
	token, userJSON := values[TokenKey], values[UserKey]
	if token == "" || userJSON == "" {
		a.set("", nil)
		return nil
	}
	var user models.UserAccount
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		a.set("", nil)
		return nil
	}
	a.set(token, &user)
	return nil
}

func (a *Auth) Login(ctx context.Context, email, password string) error {
	res, err := a.api.Signin(ctx, email, password)
	if err != nil {
		return err
	}
	return a.save(res.AccessToken, &res.User)
}

// Signup creates the account and logs it in.
func (a *Auth) Signup(ctx context.Context, p SignupParams) error {
	if _, err := a.api.Signup(ctx, p); err != nil {
		return err
	}
	return a.Login(ctx, p.Email, p.Password)
}

func (a *Auth) Logout() error {
	a.set("", nil)
	return a.store.Clear()
}

// Refresh reloads the current user. A rejected token ends the session.
func (a *Auth) Refresh(ctx context.Context) error {
	token := a.Token()
	if token == "" {
		return nil
	}
	user, err := a.api.CurrentUser(ctx, token)
	if err != nil {
		if lerr := a.Logout(); lerr != nil {
			return errors.Join(err, lerr)
		}
		return err
	}
	return a.save(token, user)
}

func (a *Auth) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// User returns a copy of the logged-in user, or nil.
func (a *Auth) User() *models.UserAccount {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *Auth) IsAuthenticated() bool {
	return a.Token() != ""
}

func (a *Auth) save(token string, user *models.UserAccount) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := a.store.Save(map[string]string{TokenKey: token, UserKey: string(userJSON)}); err != nil {
		return err
	}
	a.set(token, user)
	return nil
}

func (a *Auth) set(token string, user *models.UserAccount) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token, a.user = token, user
}
