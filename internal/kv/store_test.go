package kv

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewSQLStore(db)
}

func setupRedisStore(t *testing.T, namespace string) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, namespace)
}

func backends(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"sql":             func(t *testing.T) Store { return setupSQLStore(t) },
		"redis":           func(t *testing.T) Store { return setupRedisStore(t, "") },
		"redis_namespace": func(t *testing.T) Store { return setupRedisStore(t, "artisans") },
	}
}

func TestStore_GetSet(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			_, err := s.Get(ctx, "user:missing")
			require.True(t, errors.Is(err, ErrNotFound), "want ErrNotFound, got %v", err)

			require.NoError(t, s.Set(ctx, "user:1", []byte(`{"name":"a"}`)))
			require.NoError(t, s.Set(ctx, "user:1", []byte(`{"name":"b"}`)))

			got, err := GetJSON[struct{ Name string }](ctx, s, "user:1")
			require.NoError(t, err)
			require.Equal(t, "b", got.Name)
		})
	}
}

func TestStore_ScalarValuesRoundTrip(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			require.NoError(t, SetJSON(ctx, s, "scalar:int", 42))
			require.NoError(t, SetJSON(ctx, s, "scalar:float", 4.9))
			require.NoError(t, SetJSON(ctx, s, "scalar:bool", true))
			require.NoError(t, SetJSON(ctx, s, "scalar:string", "u1"))

			n, err := GetJSON[int](ctx, s, "scalar:int")
			require.NoError(t, err)
			require.Equal(t, 42, n)

			f, err := GetJSON[float64](ctx, s, "scalar:float")
			require.NoError(t, err)
			require.Equal(t, 4.9, f)

			raw, err := s.Get(ctx, "scalar:int")
			require.NoError(t, err)
			require.JSONEq(t, "42", string(raw))

			all, err := s.GetByPrefix(ctx, "scalar:")
			require.NoError(t, err)
			require.Len(t, all, 4)
		})
	}
}

func TestStore_GetByPrefix(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			require.NoError(t, s.SetMany(ctx, []Entry{
				{Key: "artisan:b", Value: []byte(`2`)},
				{Key: "artisan:a", Value: []byte(`1`)},
				{Key: "artisan_by_email:x@y.z", Value: []byte(`"a"`)},
				{Key: "Artisan:c", Value: []byte(`3`)},
				{Key: "request:artisan:a:r1", Value: []byte(`4`)},
			}))

			got, err := s.GetByPrefix(ctx, "artisan:")
			require.NoError(t, err)
			require.Len(t, got, 2)
			require.Equal(t, "artisan:a", got[0].Key)
			require.Equal(t, "artisan:b", got[1].Key)

			none, err := s.GetByPrefix(ctx, "nothing:")
			require.NoError(t, err)
			require.Empty(t, none)
		})
	}
}

func TestStore_PrefixWildcardsAreLiteral(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			require.NoError(t, s.Set(ctx, "a_b:1", []byte(`1`)))
			require.NoError(t, s.Set(ctx, "axb:1", []byte(`2`)))
			require.NoError(t, s.Set(ctx, "a*b:1", []byte(`3`)))

			got, err := s.GetByPrefix(ctx, "a_b:")
			require.NoError(t, err)
			require.Len(t, got, 1)
			require.Equal(t, "a_b:1", got[0].Key)
		})
	}
}

func TestListJSON(t *testing.T) {
	ctx := context.Background()
	s := setupSQLStore(t)
	require.NoError(t, SetJSON(ctx, s, "n:1", map[string]int{"v": 1}))
	require.NoError(t, SetJSON(ctx, s, "n:2", map[string]int{"v": 2}))

	items, err := ListJSON[map[string]int](ctx, s, "n:")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 2, items[1].Value["v"])
	require.Equal(t, "n:2", items[1].Key)
}

func TestRedisStore_NamespaceIsolation(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	a := NewRedisStore(client, "a")
	b := NewRedisStore(client, "b")
	require.NoError(t, a.Set(ctx, "artisan:1", []byte(`1`)))

	got, err := b.GetByPrefix(ctx, "artisan:")
	require.NoError(t, err)
	require.Empty(t, got)
	require.True(t, mr.Exists("a:artisan:1"))
}
