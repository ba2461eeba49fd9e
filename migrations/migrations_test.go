package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_HaveUpAndDown(t *testing.T) {
	files, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		body, err := fs.ReadFile(Migrations, name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}

// Promo codes are activated in upper case, so the table must not hold any
// other spelling.
func TestMigrations_PromoCodesAreUpperCase(t *testing.T) {
	body, err := fs.ReadFile(Migrations, "20241205090000_promo_outbox.sql")
	require.NoError(t, err)

	var codeColumn string
	for _, line := range strings.Split(string(body), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "code ") {
			codeColumn = line
			break
		}
	}
	assert.Contains(t, codeColumn, "CHECK (code = upper(code))")
}
