package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafe-order/models"
	"cafe-order/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:  logger.LevelError,
		Format: "text",
		Output: "stderr",
	})
}

func TestMemoryStoreGetPut(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(KeyOrders)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Put(KeyOrders, []byte(`[]`)))

	data, err := s.Get(KeyOrders)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)
}

func TestMemoryStoreCopiesData(t *testing.T) {
	s := NewMemoryStore()
	original := []byte(`[1,2,3]`)
	require.NoError(t, s.Put("k", original))

	// Mutating what we wrote or what we read must not affect the store.
	original[1] = 'x'
	read, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2,3]`), read)

	read[1] = 'y'
	again, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2,3]`), again)
}

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), testLogger())
	require.NoError(t, err)

	menu := SeedMenuItems()
	data, err := json.Marshal(menu)
	require.NoError(t, err)
	require.NoError(t, s.Put(KeyMenuItems, data))

	read, err := s.Get(KeyMenuItems)
	require.NoError(t, err)

	var decoded []models.MenuItem
	require.NoError(t, json.Unmarshal(read, &decoded))

	if diff := cmp.Diff(menu, decoded); diff != "" {
		t.Errorf("menu changed across round trip (-want +got):\n%s", diff)
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), testLogger())
	require.NoError(t, err)

	_, err = s.Get("never_written")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileStoreOverwrite(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), testLogger())
	require.NoError(t, err)

	require.NoError(t, s.Put("k", []byte(`"first"`)))
	require.NoError(t, s.Put("k", []byte(`"second"`)))

	data, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"second"`), data)
}

func TestOrderTimestampsSurviveRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	orders := SeedOrders(SeedMenuItems())
	data, err := json.Marshal(orders)
	require.NoError(t, err)
	require.NoError(t, s.Put(KeyOrders, data))

	read, err := s.Get(KeyOrders)
	require.NoError(t, err)

	var decoded []models.Order
	require.NoError(t, json.Unmarshal(read, &decoded))
	require.Len(t, decoded, len(orders))

	for i := range orders {
		assert.True(t, orders[i].CreatedAt.Equal(decoded[i].CreatedAt),
			"order %s created_at drifted: %v vs %v", orders[i].ID, orders[i].CreatedAt, decoded[i].CreatedAt)
		require.NotEmpty(t, decoded[i].StatusHistory)
		assert.Equal(t, models.StatusPending, decoded[i].StatusHistory[0].Status)
	}
}

func TestSeedIfEmpty(t *testing.T) {
	s := NewMemoryStore()
	log := testLogger()

	require.NoError(t, SeedIfEmpty(s, log))

	for _, key := range []string{KeyMenuItems, KeyOrders, KeyUsers} {
		_, err := s.Get(key)
		assert.NoError(t, err, "expected %s to be seeded", key)
	}

	// Seeding again must not clobber existing data.
	require.NoError(t, s.Put(KeyOrders, []byte(`[]`)))
	require.NoError(t, SeedIfEmpty(s, log))

	data, err := s.Get(KeyOrders)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)
}

func TestMemoryStoreLatency(t *testing.T) {
	s := NewMemoryStore(WithLatency(20 * time.Millisecond))

	start := time.Now()
	_ = s.Put("k", []byte(`null`))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
