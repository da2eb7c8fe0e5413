// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../../data/migrations"

func TestMigrationFiles_Paired(t *testing.T) {
	ups, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		assert.FileExists(t, down)
	}
}

/*
TestMigrationFiles_EmailIndex verifies that accounts without an email do not
collide on the case-insensitive email index. OAuth sign-ups from providers
that share no address are stored with an empty email.
*/
func TestMigrationFiles_EmailIndex(t *testing.T) {
	content, err := os.ReadFile(filepath.Join(migrationsDir, "000001_init.up.sql"))
	require.NoError(t, err)

	index := regexp.MustCompile(`(?is)CREATE UNIQUE INDEX account_email_key[^;]*;`).FindString(string(content))
	require.NotEmpty(t, index)

	assert.Contains(t, index, "LOWER(email)")
	assert.Contains(t, index, "WHERE email <> ''")
}
