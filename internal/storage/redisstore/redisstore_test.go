package redisstore

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFailsWithoutServer(t *testing.T) {
	_, err := New("127.0.0.1:1", "", 0)
	assert.Error(t, err)
}

// Runs only when a Redis instance is available.
func TestStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	base, err := New(addr, "", 0)
	require.NoError(t, err)
	defer base.Close()
	store := base.WithPrefix("jobtracker-test:" + time.Now().Format("150405.000") + ":")

	got, err := store.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Set("a", []byte("1"), time.Minute))
	require.NoError(t, store.Set("b", []byte("2"), 0))
	got, err = store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	require.NoError(t, store.Delete("a"))
	got, err = store.Get("a")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Reset())
	got, err = store.Get("b")
	require.NoError(t, err)
	assert.Nil(t, got)
}
