package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "0001_init.sql", names[0])

	for _, n := range names {
		assert.True(t, strings.HasSuffix(n, ".sql"), n)
	}
}

func TestInitMigrationDeclaresTables(t *testing.T) {
	body, err := migrations.ReadFile("migrations/0001_init.sql")
	require.NoError(t, err)

	for _, table := range []string{"users", "sessions", "password_resets", "notes", "bookmarks", "user_settings"} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table+" ", table)
	}
	assert.Contains(t, string(body), "UNIQUE (user_id, surah_number, ayah_number)")
}
