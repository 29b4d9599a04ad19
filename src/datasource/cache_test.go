package datasource

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "Label,Order Region,Shipping Mode\n-1,West,Standard Class\n0,East,First Class\n"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadLocalFirst(t *testing.T) {
	path := writeCSV(t, sampleCSV)

	cache := &DatasetCache{}
	require.NoError(t, cache.Load(path, "http://127.0.0.1:0/unreachable", time.Second))

	origin, _ := cache.Origin()
	assert.Equal(t, "local", origin)

	df, ok := cache.Get()
	require.True(t, ok)
	assert.Equal(t, 2, df.Nrow())
}

func TestLoadRemoteFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	cache := &DatasetCache{}
	missing := filepath.Join(t.TempDir(), "nope.csv")
	require.NoError(t, cache.Load(missing, srv.URL, time.Second))

	origin, _ := cache.Origin()
	assert.Equal(t, "remote", origin)
}

func TestLoadBothSourcesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	cache := &DatasetCache{}
	missing := filepath.Join(t.TempDir(), "nope.csv")
	err := cache.Load(missing, srv.URL, time.Second)
	require.Error(t, err)

	_, ok := cache.Get()
	assert.False(t, ok)
}

func TestReloadKeepsOldOnFailure(t *testing.T) {
	path := writeCSV(t, sampleCSV)

	cache := &DatasetCache{}
	require.NoError(t, cache.Load(path, "", time.Second))

	require.Error(t, cache.Reload(filepath.Join(t.TempDir(), "nope.csv")))

	df, ok := cache.Get()
	require.True(t, ok)
	assert.Equal(t, 2, df.Nrow())
}
