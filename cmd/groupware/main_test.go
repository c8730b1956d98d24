package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setup(t *testing.T) {
	t.Helper()
	t.Setenv("TZ", "UTC")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("AJAX_SKIP_UNKNOWN_COLUMNS", "")
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func crlf(lines ...string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}

func TestUsage(t *testing.T) {
	setup(t)
	code, _, stderr := runCLI(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "groupware perms")

	code, _, stderr = runCLI(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "frobnicate"`)

	code, _, stderr = runCLI(t, "perms", "1")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "usage: groupware perms")
}

func TestLDAPAuthMalformedHeader(t *testing.T) {
	setup(t)
	code, _, stderr := runCLI(t, "ldap-auth", "Bearer abc")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "malformed credentials")
}

func TestPerms(t *testing.T) {
	setup(t)
	code, stdout, _ := runCLI(t, "perms", "8", "4", "4", "4", "true")
	require.Equal(t, 0, code)
	assert.Equal(t, "272662788\n", stdout)

	code, stdout, _ = runCLI(t, "perms", "-parse", "272662788")
	require.Equal(t, 0, code)
	assert.JSONEq(t, `{"folder":8,"read":4,"write":4,"delete":4,"admin":true}`, stdout)

	code, _, stderr := runCLI(t, "perms", "3", "0", "0", "0", "false")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid permission")
}

func TestConvertICal(t *testing.T) {
	setup(t)
	path := writeFile(t, "cal.ics", crlf(
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:u1",
		"DTSTART:20240304T090000Z",
		"DTEND:20240304T100000Z",
		"SUMMARY:Standup",
		"RRULE:FREQ=DAILY;COUNT=3",
		"END:VEVENT",
		"END:VCALENDAR",
	))

	code, stdout, stderr := runCLI(t, "convert", "-columns", "200,201,202", path)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, `{"appointments":[["Standup",1709542800000,1709546400000]],"tasks":[]}`+"\n", stdout)

	code, stdout, stderr = runCLI(t, "convert", "-columns", "201,207",
		"-from", "2024-03-01T00:00:00Z", "-until", "2024-04-01T00:00:00Z", path)
	require.Equal(t, 0, code, stderr)
	assert.JSONEq(t, `{"appointments":[[1709542800000,1],[1709629200000,2],[1709715600000,3]],"tasks":[]}`, stdout)

	code, stdout, stderr = runCLI(t, "convert", path)
	require.Equal(t, 0, code, stderr)
	var doc struct {
		Appointments []map[string]any `json:"appointments"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	require.Len(t, doc.Appointments, 1)
	assert.Equal(t, "Standup", doc.Appointments[0]["title"])
	assert.Equal(t, "u1", doc.Appointments[0]["uid"])

	code, _, _ = runCLI(t, "convert", "-from", "2024-03-01T00:00:00Z", path)
	assert.Equal(t, 1, code)

	code, _, stderr = runCLI(t, "convert", "-columns", "200,999", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "999")

	t.Setenv("AJAX_SKIP_UNKNOWN_COLUMNS", "true")
	code, stdout, _ = runCLI(t, "convert", "-columns", "200,999", path)
	require.Equal(t, 0, code)
	assert.Equal(t, `{"appointments":[["Standup",null]],"tasks":[]}`+"\n", stdout)
}

func TestConvertVCard(t *testing.T) {
	setup(t)
	path := writeFile(t, "contacts.vcf", "BEGIN:VCARD\nVERSION:3.0\nUID:c-1\nFN:Jane Doe\nEMAIL:jane@example.com\nEND:VCARD\n")
	code, stdout, stderr := runCLI(t, "convert", "-columns", "500,555", path)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, `[["Jane Doe","jane@example.com"]]`+"\n", stdout)

	code, _, _ = runCLI(t, "convert", "-kind", "doc", path)
	assert.Equal(t, 1, code)
}

func TestImport(t *testing.T) {
	setup(t)
	path := writeFile(t, "contacts.vcf", strings.Join([]string{
		"BEGIN:VCARD", "VERSION:3.0", "UID:c-1", "FN:Jane Doe", "END:VCARD",
		"BEGIN:VCARD", "VERSION:3.0", "NOTE:nameless", "END:VCARD",
	}, "\n")+"\n")

	code, stdout, stderr := runCLI(t, "import", "-folder", "5", path)
	require.Equal(t, 0, code, stderr)

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "c-1", results[0]["id"])
	assert.Equal(t, "5", results[0]["folder_id"])
	assert.NotContains(t, results[0], "error")
	assert.Equal(t, "IMP-0005", results[1]["code"])
	assert.Equal(t, float64(2), results[1]["line"])

	code, _, _ = runCLI(t, "import", path)
	assert.Equal(t, 2, code)

	eml := writeFile(t, "m.eml", "Subject: x\r\n\r\nbody\r\n")
	code, _, stderr = runCLI(t, "import", "-folder", "5", eml)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "cannot import")
}

func TestCheckDB(t *testing.T) {
	setup(t)
	dbPath := filepath.Join(t.TempDir(), "ctx.db")
	raw, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = raw.Exec("CREATE TABLE t (id INTEGER)")
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	body, err := json.Marshal(map[string]string{
		"driver":   "sqlite",
		"url":      dbPath,
		"login":    "ox",
		"password": "secret",
		"name":     "ctx",
	})
	require.NoError(t, err)
	path := writeFile(t, "db.json", string(body))

	code, stdout, stderr := runCLI(t, "check-db", path)
	require.Equal(t, 0, code, stderr)
	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, "sqlite", res["driver"])

	incomplete := writeFile(t, "bad.json", `{"driver":"sqlite","url":"x"}`)
	code, _, stderr = runCLI(t, "check-db", incomplete)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "mandatory members not set")
}
