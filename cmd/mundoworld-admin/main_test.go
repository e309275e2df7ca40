package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

// setupCLI points the session file at a temp dir and the directory at the
// repository fixtures.
func setupCLI(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	t.Setenv("SESSION_FILE_PATH", path)
	t.Setenv("DIRECTORY_SOURCE", "fixtures")
	t.Setenv("DIRECTORY_FIXTURES_DIR", "../../frontend/static/data")
	return path
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	code := run(context.Background(), args, &stdout, &stderr, logger)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRun_UsageErrors(t *testing.T) {
	setupCLI(t)

	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{name: "no command", args: nil, wantStderr: "Available commands"},
		{name: "unknown command", args: []string{"db-reset"}, wantStderr: `unknown command "db-reset"`},
		{name: "login without email", args: []string{"login"}, wantStderr: "login needs an email"},
		{name: "login too many args", args: []string{"login", "a", "b", "c"}, wantStderr: "login needs an email"},
		{name: "logout with args", args: []string{"logout", "now"}, wantStderr: "logout takes no arguments"},
		{name: "bad flag", args: []string{"whoami", "--yaml"}, wantStderr: "flag provided but not defined"},
		{name: "unknown role", args: []string{"nav", "janitor"}, wantStderr: `unknown role "janitor"`},
		{name: "nav without session", args: []string{"nav"}, wantStderr: "not signed in"},
		{name: "resolve without section", args: []string{"resolve"}, wantStderr: "resolve needs a section"},
		{name: "migrate zero timeout", args: []string{"migrate", "--timeout", "0s"}, wantStderr: "--timeout must be greater than zero"},
		{name: "import two files", args: []string{"import-users", "a.json", "b.json"}, wantStderr: "at most one file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, tt.args...)
			assert.Equal(t, 2, res.code)
			assert.Contains(t, res.stderr, tt.wantStderr)
		})
	}
}

func TestSessionCommands_Lifecycle(t *testing.T) {
	path := setupCLI(t)

	res := runCLI(t, "whoami")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "State: anonymous\n", res.stdout)

	res = runCLI(t, "login", "maria.garcia@mundoworld.edu", "cualquiera")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "State: authenticated")
	assert.Contains(t, res.stdout, "maria.garcia@mundoworld.edu")
	assert.Contains(t, res.stdout, "Profesor (teacher)")
	_, err := os.Stat(path)
	require.NoError(t, err, "login persists the session file")

	res = runCLI(t, "whoami", "--json")
	require.Equal(t, 0, res.code, res.stderr)
	var snap struct {
		State string `json:"state"`
		User  struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
		Busy bool `json:"busy"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &snap))
	assert.Equal(t, "authenticated", snap.State)
	assert.Equal(t, "2", snap.User.ID)
	assert.Equal(t, "teacher", snap.User.Role)
	assert.False(t, snap.Busy)

	res = runCLI(t, "login", "carlos.mendoza@mundoworld.edu")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "already signed in as maria.garcia@mundoworld.edu")

	res = runCLI(t, "nav")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Profesor")
	assert.Contains(t, res.stdout, "Prove Yourself")
	assert.Contains(t, res.stdout, "Calificaciones")

	res = runCLI(t, "resolve", "grades")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "teacher-grades")

	res = runCLI(t, "logout")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Signed out\n", res.stdout)

	res = runCLI(t, "whoami")
	assert.Equal(t, "State: anonymous\n", res.stdout)

	res = runCLI(t, "logout")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Not signed in\n", res.stdout)
}

func TestLogin_Rejected(t *testing.T) {
	setupCLI(t)

	tests := []string{"nadie@mundoworld.edu", "MARIA.GARCIA@mundoworld.edu", ""}
	for _, email := range tests {
		res := runCLI(t, "login", email)
		assert.Equal(t, 1, res.code, "email %q", email)
		assert.Contains(t, res.stderr, "sign-in rejected")
	}

	res := runCLI(t, "whoami")
	assert.Equal(t, "State: anonymous\n", res.stdout)
}

func TestLogin_CorruptSessionFileIsAnonymous(t *testing.T) {
	path := setupCLI(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	res := runCLI(t, "whoami")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "State: anonymous\n", res.stdout)

	res = runCLI(t, "login", "sofia.lopez@mundoworld.edu")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Estudiante (student)")
}

func TestNav_ExplicitRole(t *testing.T) {
	setupCLI(t)

	res := runCLI(t, "nav", "parent")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Padre")
	for _, id := range []string{"dashboard", "children", "grades", "attendance", "messages", "schedule", "activities", "finances"} {
		assert.Contains(t, res.stdout, id)
	}
}

func TestResolve(t *testing.T) {
	setupCLI(t)

	tests := []struct {
		name        string
		args        []string
		wantScreen  string
		wantSection string
		placeholder bool
	}{
		{name: "implemented", args: []string{"resolve", "--json", "users", "admin"}, wantScreen: "user-management", wantSection: "users"},
		{name: "placeholder", args: []string{"resolve", "--json", "settings", "admin"}, wantScreen: "placeholder", wantSection: "settings", placeholder: true},
		{name: "unknown falls back", args: []string{"resolve", "--json", "nope", "student"}, wantScreen: "student-dashboard", wantSection: "dashboard"},
		{name: "cross role section", args: []string{"resolve", "--json", "finances", "teacher"}, wantScreen: "teacher-dashboard", wantSection: "dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, tt.args...)
			require.Equal(t, 0, res.code, res.stderr)
			var d struct {
				Section     string `json:"section"`
				Screen      string `json:"screen"`
				Placeholder bool   `json:"placeholder"`
			}
			require.NoError(t, json.Unmarshal([]byte(res.stdout), &d))
			assert.Equal(t, tt.wantScreen, d.Screen)
			assert.Equal(t, tt.wantSection, d.Section)
			assert.Equal(t, tt.placeholder, d.Placeholder)
		})
	}

	res := runCLI(t, "resolve", "finances", "admin")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Panel de Finanzas")
	assert.Contains(t, res.stdout, "en desarrollo")
}

func TestResolve_DashboardQuickActions(t *testing.T) {
	setupCLI(t)

	res := runCLI(t, "resolve", "--json", "dashboard", "admin")
	require.Equal(t, 0, res.code, res.stderr)
	var out struct {
		Screen       string `json:"screen"`
		Dashboard    bool   `json:"dashboard"`
		QuickActions []struct {
			Title   string `json:"title"`
			Section string `json:"section"`
			Screen  string `json:"screen"`
		} `json:"quick_actions"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, "admin-dashboard", out.Screen)
	assert.True(t, out.Dashboard)
	require.Len(t, out.QuickActions, 6)
	assert.Equal(t, "Gestión de Usuarios", out.QuickActions[0].Title)
	assert.Equal(t, "users", out.QuickActions[0].Section)
	assert.Equal(t, "user-management", out.QuickActions[0].Screen)
	assert.Equal(t, "finances", out.QuickActions[3].Section)
	assert.Equal(t, "placeholder", out.QuickActions[3].Screen)

	res = runCLI(t, "resolve", "--json", "users", "admin")
	require.Equal(t, 0, res.code, res.stderr)
	assert.NotContains(t, res.stdout, "quick_actions")

	res = runCLI(t, "resolve", "nope", "student")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Quick actions:")
	assert.Contains(t, res.stdout, "student-grades")
}

func TestImportUsers_DryRun(t *testing.T) {
	setupCLI(t)

	res := runCLI(t, "import-users", "--dry-run")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "10 users valid (dry run, nothing written)\n", res.stdout)
}

func TestImportUsers_DryRunFile(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"users":[
		{"id":"u1","name":"Elena Paz","email":"elena@mundoworld.edu","role":"teacher","status":"active"}
	]}`), 0o600))
	res := runCLI(t, "import-users", "--dry-run", valid)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "1 users valid (dry run, nothing written)\n", res.stdout)

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"users":[
		{"id":"u1","name":"Elena Paz","email":"not-an-email","role":"janitor"}
	]}`), 0o600))
	res = runCLI(t, "import-users", "--dry-run", invalid)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid directory record")

	res = runCLI(t, "import-users", "--dry-run", filepath.Join(dir, "missing.json"))
	assert.Equal(t, 1, res.code)
}

func TestListUsers_UsageErrors(t *testing.T) {
	setupCLI(t)

	tests := map[string][]string{
		"unknown role":    {"users", "--role", "janitor"},
		"unknown status":  {"users", "--status", "suspended"},
		"negative limit":  {"users", "--limit", "-1"},
		"positional args": {"users", "everyone"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 2, runCLI(t, args...).code)
		})
	}
}

func TestPrintUsers(t *testing.T) {
	var buf bytes.Buffer
	err := printUsers(&buf, []school.User{
		{ID: "1", Name: "Carlos Mendoza", Email: "carlos.mendoza@mundoworld.edu", Role: school.RoleAdmin},
		{ID: "10", Name: "Marco Ruiz", Email: "marco.ruiz@mundoworld.edu", Role: school.RoleStudent, Status: school.StatusInactive},
	}, 10)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Regexp(t, `1\s+Carlos Mendoza\s+carlos.mendoza@mundoworld.edu\s+admin\s+active`, out)
	assert.Regexp(t, `10\s+Marco Ruiz\s+marco.ruiz@mundoworld.edu\s+student\s+inactive`, out)
	assert.Contains(t, out, "2 of 10 users")
}
