package kvstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	On    bool   `json:"on"`
}

// failingBackend simulates a storage layer that is disabled or over quota.
type failingBackend struct {
	err  error
	sets int
}

func (f *failingBackend) Get(string) (string, error) { return "", f.err }
func (f *failingBackend) Set(string, string) error   { f.sets++; return f.err }
func (f *failingBackend) Ping() error                { return f.err }

func TestRead_MissingKeyReturnsDefault(t *testing.T) {
	store := New(NewMemoryBackend())

	got := Read(store, "absent", []int{1, 2})

	assert.Equal(t, []int{1, 2}, got)
}

func TestRead_MalformedJSONReturnsDefault(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set("broken", "{not json"))
	store := New(backend)

	got := Read(store, "broken", record{Name: "default"})

	assert.Equal(t, record{Name: "default"}, got)
}

func TestRead_WrongShapeReturnsDefault(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set("list", `{"name":"object, not a list"}`))
	store := New(backend)

	got := Read(store, "list", []record{})

	assert.Empty(t, got)
}

func TestRead_PartialRecordKeepsDefaultFields(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set("rec", `{"count":7}`))
	store := New(backend)

	got := Read(store, "rec", record{Name: "default", On: true})

	assert.Equal(t, record{Name: "default", Count: 7, On: true}, got)
}

func TestWriteThenRead(t *testing.T) {
	store := New(NewMemoryBackend())

	Write(store, "rec", []record{{Name: "a", Count: 1}, {Name: "b", Count: 2}})
	got := Read(store, "rec", []record{})

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "b", got[1].Name)
}

func TestBackendFailuresAreSwallowed(t *testing.T) {
	backend := &failingBackend{err: errors.New("quota exceeded")}
	store := New(backend)

	assert.NotPanics(t, func() {
		Write(store, "k", record{Name: "x"})
	})
	assert.Equal(t, 1, backend.sets)
	assert.Equal(t, record{Name: "fallback"}, Read(store, "k", record{Name: "fallback"}))
	assert.Error(t, store.Ping())
}

func TestRedisBackend(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	backend, err := NewRedisBackend(RedisConfig{Addr: addr, KeyPrefix: "mushaf-test:", Timeout: time.Second})
	require.NoError(t, err)
	defer backend.Close()
	defer backend.client.Del(context.Background(), "mushaf-test:rec")
	store := New(backend)

	Write(store, "rec", record{Name: "redis", Count: 3})

	assert.Equal(t, record{Name: "redis", Count: 3}, Read(store, "rec", record{}))

	_, err = backend.Get("definitely-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
