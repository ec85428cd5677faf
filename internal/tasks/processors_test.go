package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beyondbridge/internal/entities"
)

type fakeCleaner struct {
	got     []time.Duration
	deleted int64
	err     error
}

func (f *fakeCleaner) DeleteOlderThan(retention time.Duration) (int64, error) {
	f.got = append(f.got, retention)
	return f.deleted, f.err
}

func TestCleanupRunsProcessor(t *testing.T) {
	t.Run("deletes with configured retention", func(t *testing.T) {
		cleaner := &fakeCleaner{deleted: 3}
		processor := CleanupRunsProcessor(cleaner)

		err := processor(context.Background(), CleanupRunsTask{RetentionDays: 7})
		require.NoError(t, err)

		require.Len(t, cleaner.got, 1)
		assert.Equal(t, 7*24*time.Hour, cleaner.got[0])
	})

	t.Run("falls back to 30 days when unset", func(t *testing.T) {
		cleaner := &fakeCleaner{}
		processor := CleanupRunsProcessor(cleaner)

		err := processor(context.Background(), CleanupRunsTask{})
		require.NoError(t, err)

		require.Len(t, cleaner.got, 1)
		assert.Equal(t, 30*24*time.Hour, cleaner.got[0])
	})

	t.Run("propagates cleaner failure", func(t *testing.T) {
		cleaner := &fakeCleaner{err: errors.New("disk broke")}
		processor := CleanupRunsProcessor(cleaner)

		err := processor(context.Background(), CleanupRunsTask{RetentionDays: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cleanup import runs")
	})

	t.Run("errors when cleaner missing", func(t *testing.T) {
		processor := CleanupRunsProcessor(nil)

		err := processor(context.Background(), CleanupRunsTask{})
		assert.Error(t, err)
	})
}

type fakeActorReader struct {
	actors map[uint]*entities.Actor
}

func (f *fakeActorReader) Get(id uint) (*entities.Actor, error) {
	actor, ok := f.actors[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return actor, nil
}

type fakeRefresher struct {
	imported  []string
	overwrite []bool
	err       error
}

func (f *fakeRefresher) Import(_ context.Context, id string, overwrite bool) error {
	f.imported = append(f.imported, id)
	f.overwrite = append(f.overwrite, overwrite)
	return f.err
}

func TestRefreshCharacterProcessor(t *testing.T) {
	t.Run("refreshes with overwrite enabled", func(t *testing.T) {
		reader := &fakeActorReader{actors: map[uint]*entities.Actor{
			4: {Name: "Strider", ProviderID: "12345"},
		}}
		refresher := &fakeRefresher{}
		processor := RefreshCharacterProcessor(reader, refresher)

		err := processor(context.Background(), RefreshCharacterTask{ActorID: 4})
		require.NoError(t, err)

		require.Len(t, refresher.imported, 1)
		assert.Equal(t, "12345", refresher.imported[0])
		assert.True(t, refresher.overwrite[0], "refresh must overwrite the existing actor")
	})

	t.Run("fails for unknown actor", func(t *testing.T) {
		reader := &fakeActorReader{}
		refresher := &fakeRefresher{}
		processor := RefreshCharacterProcessor(reader, refresher)

		err := processor(context.Background(), RefreshCharacterTask{ActorID: 99})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load actor 99")
		assert.Empty(t, refresher.imported)
	})

	t.Run("propagates import failure", func(t *testing.T) {
		reader := &fakeActorReader{actors: map[uint]*entities.Actor{
			1: {ProviderID: "777"},
		}}
		refresher := &fakeRefresher{err: errors.New("provider down")}
		processor := RefreshCharacterProcessor(reader, refresher)

		err := processor(context.Background(), RefreshCharacterTask{ActorID: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "refresh character 777")
	})

	t.Run("errors when dependencies missing", func(t *testing.T) {
		processor := RefreshCharacterProcessor(nil, nil)

		err := processor(context.Background(), RefreshCharacterTask{ActorID: 1})
		assert.Error(t, err)
	})
}
