package dbcheck

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonroyaalmerol/groupware/internal/admin"
)

func database(driver, url string) *admin.Database {
	db := &admin.Database{}
	db.Driver.Set(driver)
	db.URL.Set(url)
	db.Login.Set("ox")
	db.Password.Set("secret")
	db.Name.Set("ctxdb")
	return db
}

func TestCheckSqlite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctx.db")
	raw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = raw.Exec("CREATE TABLE t (id INTEGER)")
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	c := New(5*time.Second, zerolog.Nop())
	res, err := c.Check(context.Background(), database("sqlite", path))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", res.Driver)
	assert.True(t, strings.HasPrefix(res.Version, "3."), res.Version)
}

func TestCheckSqliteMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	c := New(5*time.Second, zerolog.Nop())
	_, err := c.Check(context.Background(), database("SQLite3", path))
	assert.Error(t, err)
	assert.NoFileExists(t, path)

	_, err = c.Check(context.Background(), database("sqlite", "file:"+path+"?mode=rwc"))
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestCheckValidation(t *testing.T) {
	c := New(time.Second, zerolog.Nop())

	db := database("postgres", "postgres://localhost/ctx")
	db.Password.SetNull()
	_, err := c.Check(context.Background(), db)
	require.ErrorIs(t, err, admin.ErrMissingMembers)
	var mm *admin.MissingMembersError
	require.ErrorAs(t, err, &mm)
	assert.Equal(t, []string{"password"}, mm.Members)

	_, err = c.Check(context.Background(), database("oracle", "oracle://db"))
	assert.ErrorIs(t, err, ErrUnsupportedDriver)

	_, err = c.Check(context.Background(), database("postgres", "postgres://localhost:notaport/ctx"))
	assert.Error(t, err)
}

func TestSqliteDSN(t *testing.T) {
	tests := map[string]string{
		"/var/db/ctx.db":           "file:/var/db/ctx.db?mode=ro",
		"file:ctx.db":              "file:ctx.db?mode=ro",
		"file:ctx.db?cache=shared": "file:ctx.db?cache=shared&mode=ro",
		"file:ctx.db?mode=rwc":     "file:ctx.db?mode=ro",
		"file:ctx.db?mode=rw&_txlock=immediate&mode=memory": "file:ctx.db?_txlock=immediate&mode=ro",
		":memory:": ":memory:",
	}
	for in, want := range tests {
		assert.Equal(t, want, sqliteDSN(in), in)
	}
}
