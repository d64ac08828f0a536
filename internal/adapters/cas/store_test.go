package cas_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cascade/internal/adapters/cas"
	"go.trai.ch/cascade/internal/core/domain"
)

func TestStore_PutAndGet(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "state.json")

	store, err := cas.NewStore(storePath)
	require.NoError(t, err)

	record := domain.CheckRecord{
		TypeName:    "Person",
		Fingerprint: "abc",
		Valid:       true,
		Timestamp:   time.Now(),
	}
	require.NoError(t, store.Put(record))

	got, err := store.Get("Person")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc", got.Fingerprint)
	assert.True(t, got.Valid)
}

func TestStore_GetMissing(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	got, err := store.Get("Nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Persistence(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "nested", "state.json")

	store1, err := cas.NewStore(storePath)
	require.NoError(t, err)
	require.NoError(t, store1.Put(domain.CheckRecord{
		TypeName:    "Order",
		Fingerprint: "xyz",
		Error:       "circular property reference detected in the type (Order).",
	}))

	store2, err := cas.NewStore(storePath)
	require.NoError(t, err)

	got, err := store2.Get("Order")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "xyz", got.Fingerprint)
	assert.False(t, got.Valid)
	assert.Contains(t, got.Error, "circular")
}

func TestStore_OmitZero(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "state.json")

	store, err := cas.NewStore(storePath)
	require.NoError(t, err)
	require.NoError(t, store.Put(domain.CheckRecord{TypeName: "T", Valid: true}))

	//nolint:gosec // Test file with controlled path
	content, err := os.ReadFile(storePath)
	require.NoError(t, err)

	jsonStr := string(content)
	assert.Contains(t, jsonStr, "type_name")
	assert.Contains(t, jsonStr, `"valid": true`)
	assert.NotContains(t, jsonStr, "fingerprint")
	assert.NotContains(t, jsonStr, "error")
	assert.NotContains(t, jsonStr, "timestamp")
}

func TestStore_CorruptFile(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(storePath, []byte("{not json"), 0o600))

	_, err := cas.NewStore(storePath)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unmarshal"))
}

func TestStore_NullFile(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(storePath, []byte("null"), 0o600))

	store, err := cas.NewStore(storePath)
	require.NoError(t, err)

	got, err := store.Get("Person")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Put(domain.CheckRecord{TypeName: "Person", Valid: true}))

	got, err = store.Get("Person")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Valid)
}

func TestStore_ConcurrentPut(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "state.json")
	store, err := cas.NewStore(storePath)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, name := range []string{"A", "B", "C", "D"} {
		wg.Go(func() {
			assert.NoError(t, store.Put(domain.CheckRecord{TypeName: name, Valid: true}))
		})
	}
	wg.Wait()

	reloaded, err := cas.NewStore(storePath)
	require.NoError(t, err)
	for _, name := range []string{"A", "B", "C", "D"} {
		got, err := reloaded.Get(name)
		require.NoError(t, err)
		assert.NotNil(t, got, name)
	}
}
