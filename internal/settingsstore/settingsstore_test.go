package settingsstore

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beyondbridge/internal/database"
	"beyondbridge/internal/database/settings"
)

func setupTestStore(t *testing.T) *SettingsStore {
	t.Helper()

	dbPath := "./test_store_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	return New(settings.NewRepository(db.DB))
}

func TestSettingsStore_CobaltCookie(t *testing.T) {
	store := setupTestStore(t)

	t.Run("empty without any source", func(t *testing.T) {
		t.Setenv("COBALT_COOKIE", "")
		assert.Empty(t, store.GetCobaltCookie())
		assert.False(t, store.HasCobaltCookie())
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("COBALT_COOKIE", "env-cookie")
		assert.Equal(t, "env-cookie", store.GetCobaltCookie())
	})

	t.Run("database overrides environment", func(t *testing.T) {
		t.Setenv("COBALT_COOKIE", "env-cookie")
		require.NoError(t, store.SetCobaltCookie("db-cookie"))
		assert.Equal(t, "db-cookie", store.GetCobaltCookie())

		require.NoError(t, store.ClearCobaltCookie())
		assert.Equal(t, "env-cookie", store.GetCobaltCookie())
	})
}

func TestSettingsStore_ImportPath(t *testing.T) {
	store := setupTestStore(t)

	assert.Equal(t, DefaultImportPath, store.GetImportPath())

	require.NoError(t, store.SetImportPath("my-content"))
	assert.Equal(t, "my-content", store.GetImportPath())
}

func TestSettingsStore_DebugMode(t *testing.T) {
	store := setupTestStore(t)

	assert.False(t, store.GetDebugMode())

	t.Setenv("DEBUG_MODE", "true")
	assert.True(t, store.GetDebugMode())

	require.NoError(t, store.SetDebugMode(false))
	assert.False(t, store.GetDebugMode())
}

func TestSettingsStore_LastImport(t *testing.T) {
	store := setupTestStore(t)

	assert.Nil(t, store.GetLastImport())

	before := time.Now().Add(-time.Second)
	require.NoError(t, store.SetLastImportNow())

	last := store.GetLastImport()
	require.NotNil(t, last)
	assert.True(t, last.After(before))
}

func TestSettingsStore_CharacterRefresh(t *testing.T) {
	store := setupTestStore(t)

	assert.False(t, store.GetCharacterRefreshEnabled())
	assert.Equal(t, DefaultRefreshSchedule, store.GetCharacterRefreshSchedule())

	require.NoError(t, store.SetCharacterRefreshEnabled(true))
	require.NoError(t, store.SetCharacterRefreshSchedule("30 2 * * *"))

	assert.True(t, store.GetCharacterRefreshEnabled())
	assert.Equal(t, "30 2 * * *", store.GetCharacterRefreshSchedule())
}

func TestSettingsStore_Info(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.SetCobaltCookie("abcdefghijklmnop"))

	info := store.GetInfo()
	assert.True(t, info.HasCobaltCookie)
	assert.Equal(t, "abcd****mnop", info.CobaltCookie)
	assert.Equal(t, DefaultImportPath, info.ImportPath)
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"short values fully masked", "abc", "****"},
		{"boundary length fully masked", "12345678", "****"},
		{"long values keep edges", "1234secret-body5678", "1234****5678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskSecret(tt.in))
		})
	}
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 */6 * * *"))
	assert.NoError(t, ValidateCronSchedule("30 2 * * 1"))
	assert.Error(t, ValidateCronSchedule("not a schedule"))
	assert.Error(t, ValidateCronSchedule("0 0 * *"))
}

func TestGetNextRunTime(t *testing.T) {
	next, err := GetNextRunTime("0 */6 * * *")
	require.NoError(t, err)
	assert.True(t, next.After(time.Now()))

	_, err = GetNextRunTime("bogus")
	assert.Error(t, err)
}
