package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/go-artisans/internal/db"
	"github.com/diewo77/go-artisans/internal/gate"
	"github.com/diewo77/go-artisans/internal/identity"
	"github.com/diewo77/go-artisans/internal/kv"
	"github.com/diewo77/go-artisans/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	store    kv.Store
	provider *identity.LocalProvider
	gate     *gate.Gate[string]
	identity *IdentityService
	artisans *ArtisanService
	requests *RequestService
	trades   *TradeCatalog
	seeder   *DemoSeeder
}

func selfOnlyGate() *gate.Gate[string] {
	g := gate.New[string]()
	self := gate.PolicyFunc[string](func(_ context.Context, user string, _ gate.Action, res any) bool {
		switch r := res.(type) {
		case string:
			return r == user
		case *models.ClientRequest:
			return r.ArtisanID == user
		}
		return false
	})
	g.Register(ResourceArtisan, self)
	g.Register(ResourceRequest, self)
	return g
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithStore(t, nil)
}

// newFixtureWithStore wraps the SQL store when wrap is non-nil.
func newFixtureWithStore(t *testing.T, wrap func(kv.Store) kv.Store) *fixture {
	t.Helper()
	conn := openDB(t)
	var store kv.Store = kv.NewSQLStore(conn)
	if wrap != nil {
		store = wrap(store)
	}
	provider := identity.NewLocalProvider(conn, identity.LocalConfig{
		Secret:     []byte("test-secret"),
		Issuer:     "test",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
	g := selfOnlyGate()
	logger := zap.NewNop()
	return &fixture{
		store:    store,
		provider: provider,
		gate:     g,
		identity: NewIdentityService(provider, store, "Lubumbashi", logger),
		artisans: NewArtisanService(store, g),
		requests: NewRequestService(store, g),
		trades:   NewTradeCatalog(store),
		seeder:   NewDemoSeeder(provider, store, logger),
	}
}

// signupArtisan creates an artisan and returns its id and a fresh token.
func (f *fixture) signupArtisan(t *testing.T, email, name string) (string, string) {
	t.Helper()
	ctx := context.Background()
	id, err := f.identity.Signup(ctx, SignupInput{
		Email:    email,
		Password: "secret123",
		Name:     name,
		UserType: models.UserTypeArtisan,
		Phone:    "+243 999 000 000",
	})
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	res, err := f.identity.Signin(ctx, email, "secret123")
	if err != nil {
		t.Fatalf("signin %s: %v", email, err)
	}
	return id, res.AccessToken
}

var errBatchFailed = errors.New("batch failed")

// failingBatchStore rejects every SetMany call.
type failingBatchStore struct {
	kv.Store
}

func (failingBatchStore) SetMany(context.Context, []kv.Entry) error { return errBatchFailed }

func ptr[T any](v T) *T { return &v }
