package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scholarmatch/core"
	"github.com/poiesic/scholarmatch/storage"
)

func newScholarship(id string, status core.Status) *core.Scholarship {
	return &core.Scholarship{
		Id:          id,
		Name:        "Scholarship " + id,
		Description: "Test scholarship",
		Type:        core.TypePublic,
		Status:      status,
		Eligibility: core.OpenRule(),
	}
}

func TestStorePut(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	t.Run("stores and timestamps a new scholarship", func(t *testing.T) {
		stored, err := store.Put(ctx, newScholarship("sch-1", core.StatusApproved))
		require.NoError(t, err)
		assert.False(t, stored.InsertedAt.IsZero())
		assert.False(t, stored.UpdatedAt.IsZero())
	})

	t.Run("update preserves the insertion time", func(t *testing.T) {
		first, err := store.Put(ctx, newScholarship("sch-2", core.StatusPending))
		require.NoError(t, err)
		inserted := first.InsertedAt

		time.Sleep(5 * time.Millisecond)
		updated := newScholarship("sch-2", core.StatusApproved)
		updated.Description = "Revised description"
		second, err := store.Put(ctx, updated)
		require.NoError(t, err)

		assert.Equal(t, inserted, second.InsertedAt)
		assert.True(t, second.UpdatedAt.After(inserted))
	})

	t.Run("rejects invalid scholarships", func(t *testing.T) {
		bad := newScholarship("", core.StatusApproved)
		_, err := store.Put(ctx, bad)
		assert.ErrorIs(t, err, core.ErrInvalidScholarship)
	})
}

func TestStoreGetAndDelete(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	_, err = store.Put(ctx, newScholarship("sch-1", core.StatusApproved))
	require.NoError(t, err)

	t.Run("get returns the stored record", func(t *testing.T) {
		got, err := store.Get(ctx, "sch-1")
		require.NoError(t, err)
		assert.Equal(t, "sch-1", got.Id)
		assert.Equal(t, core.StatusApproved, got.Status)
	})

	t.Run("get of a missing id is not found", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "sch-1"))
		_, err := store.Get(ctx, "sch-1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete of a missing id is not found", func(t *testing.T) {
		assert.ErrorIs(t, store.Delete(ctx, "missing"), storage.ErrNotFound)
	})
}

func TestStoreList(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	_, err = store.Put(ctx, newScholarship("sch-1", core.StatusApproved))
	require.NoError(t, err)
	_, err = store.Put(ctx, newScholarship("sch-2", core.StatusPending))
	require.NoError(t, err)
	_, err = store.Put(ctx, newScholarship("sch-3", core.StatusApproved))
	require.NoError(t, err)

	t.Run("list returns every record", func(t *testing.T) {
		all, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("list approved filters by status", func(t *testing.T) {
		approved, err := store.ListApproved(ctx)
		require.NoError(t, err)
		require.Len(t, approved, 2)
		for _, sch := range approved {
			assert.Equal(t, core.StatusApproved, sch.Status)
		}
	})

	t.Run("status change moves the record between indexes", func(t *testing.T) {
		demoted := newScholarship("sch-1", core.StatusRejected)
		_, err := store.Put(ctx, demoted)
		require.NoError(t, err)

		approved, err := store.ListApproved(ctx)
		require.NoError(t, err)
		require.Len(t, approved, 1)
		assert.Equal(t, "sch-3", approved[0].Id)
	})
}

func TestStoreEvents(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	var events []storage.Event
	store.Subscribe(func(event storage.Event) {
		events = append(events, event)
	})

	_, err = store.Put(ctx, newScholarship("sch-1", core.StatusApproved))
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, "sch-1"))

	require.Len(t, events, 2)

	assert.Equal(t, storage.EventPut, events[0].Type)
	assert.Equal(t, "sch-1", events[0].Id)
	require.NotNil(t, events[0].Scholarship)
	assert.Equal(t, core.StatusApproved, events[0].Scholarship.Status)

	assert.Equal(t, storage.EventDelete, events[1].Type)
	assert.Equal(t, "sch-1", events[1].Id)
	assert.Nil(t, events[1].Scholarship)
}

func TestStoreVectorCache(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	vector := []float32{0.5, -0.25, 1}

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.PutVector(ctx, "sch-1", 42, vector))

		got, fp, err := store.GetVector(ctx, "sch-1")
		require.NoError(t, err)
		assert.Equal(t, core.Fingerprint(42), fp)
		assert.Equal(t, vector, got)
	})

	t.Run("missing vector is not found", func(t *testing.T) {
		_, _, err := store.GetVector(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete vector", func(t *testing.T) {
		require.NoError(t, store.DeleteVector(ctx, "sch-1"))
		_, _, err := store.GetVector(ctx, "sch-1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("deleting a scholarship drops its vector", func(t *testing.T) {
		_, err := store.Put(ctx, newScholarship("sch-2", core.StatusApproved))
		require.NoError(t, err)
		require.NoError(t, store.PutVector(ctx, "sch-2", 7, vector))

		require.NoError(t, store.Delete(ctx, "sch-2"))
		_, _, err = store.GetVector(ctx, "sch-2")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
