package actors

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beyondbridge/internal/database"
	"beyondbridge/internal/entities"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()

	dbPath := "./test_actors_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	return NewRepository(db.DB)
}

func TestRepository_CreateAndFind(t *testing.T) {
	repo := setupTestRepo(t)

	actor, err := repo.FindByProviderID("12345")
	require.NoError(t, err)
	assert.Nil(t, actor)

	created := &entities.Actor{ProviderID: "12345", Name: "Strider", Type: "character"}
	require.NoError(t, repo.Create(created))
	assert.False(t, created.LastImportedAt.IsZero())

	actor, err = repo.FindByProviderID("12345")
	require.NoError(t, err)
	require.NotNil(t, actor)
	assert.Equal(t, "Strider", actor.Name)
}

func TestRepository_UpdateKeepsIdentity(t *testing.T) {
	repo := setupTestRepo(t)

	actor := &entities.Actor{ProviderID: "12345", Name: "Strider", Type: "character"}
	require.NoError(t, repo.Create(actor))
	firstImport := actor.LastImportedAt

	actor.Name = "Aragorn"
	require.NoError(t, repo.Update(actor))

	found, err := repo.FindByProviderID("12345")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, actor.ID, found.ID)
	assert.Equal(t, "Aragorn", found.Name)
	assert.False(t, found.LastImportedAt.Before(firstImport))

	all, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRepository_AllOrderedByName(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Create(&entities.Actor{ProviderID: "2", Name: "Zed"}))
	require.NoError(t, repo.Create(&entities.Actor{ProviderID: "1", Name: "Anna"}))

	all, err := repo.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Anna", all[0].Name)
	assert.Equal(t, "Zed", all[1].Name)
}

func TestRepository_Get(t *testing.T) {
	repo := setupTestRepo(t)

	actor := &entities.Actor{ProviderID: "9", Name: "Gimli"}
	require.NoError(t, repo.Create(actor))

	found, err := repo.Get(actor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gimli", found.Name)

	_, err = repo.Get(9999)
	assert.Error(t, err)
}
