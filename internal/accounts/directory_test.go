package accounts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/reclamation-control/internal/session"
)

const sampleDirectory = `
[[account]]
id = 1
username = "Admin"
name = "Desk Administrator"
role = "admin"
password = "s3cret"

[[account]]
id = 5
username = "metro"
role = "organisation"
organisation = "Metro Lines"
password = "m"
`

func TestLoadAndAuthenticate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.toml")
	if err := os.WriteFile(path, []byte(sampleDirectory), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	dir, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	u, err := dir.Authenticate(session.RoleAdmin, " admin ", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u.ID != 1 || u.Username != "admin" || u.Role != session.RoleAdmin || u.DisplayName != "Desk Administrator" {
		t.Fatalf("unexpected user %#v", u)
	}

	org, err := dir.Authenticate(session.RoleOrganisation, "metro", "m")
	if err != nil {
		t.Fatalf("Authenticate org: %v", err)
	}
	if org.Organisation != "Metro Lines" {
		t.Fatalf("expected organisation, got %q", org.Organisation)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	dir, err := Parse(sampleDirectory)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cases := []struct {
		name     string
		role     session.Role
		username string
		password string
		want     error
	}{
		{"unknown", session.RoleAdmin, "nobody", "x", ErrUnknownAccount},
		{"password", session.RoleAdmin, "admin", "wrong", ErrBadCredentials},
		{"role", session.RoleUser, "admin", "s3cret", ErrRoleMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := dir.Authenticate(tc.role, tc.username, tc.password); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseRejectsMalformedDirectories(t *testing.T) {
	docs := map[string]string{
		"syntax":   `[[account]`,
		"no name":  "[[account]]\nid = 1\nrole = \"user\"\n",
		"no id":    "[[account]]\nusername = \"a\"\nrole = \"user\"\n",
		"bad role": "[[account]]\nid = 1\nusername = \"a\"\nrole = \"driver\"\n",
		"dup name": "[[account]]\nid = 1\nusername = \"a\"\nrole = \"user\"\n[[account]]\nid = 2\nusername = \"A\"\nrole = \"user\"\n",
		"dup id":   "[[account]]\nid = 1\nusername = \"a\"\nrole = \"user\"\n[[account]]\nid = 1\nusername = \"b\"\nrole = \"user\"\n",
	}
	for name, doc := range docs {
		if _, err := Parse(doc); !errors.Is(err, ErrInvalidDirectory) {
			t.Fatalf("%s: expected ErrInvalidDirectory, got %v", name, err)
		}
	}
}

func TestDemoDirectoryCoversEveryRole(t *testing.T) {
	users := Demo().Users()
	seen := map[session.Role]bool{}
	for i, u := range users {
		if i > 0 && users[i-1].ID >= u.ID {
			t.Fatalf("expected users ordered by id")
		}
		seen[u.Role] = true
	}
	for _, r := range session.Roles() {
		if !seen[r] {
			t.Fatalf("demo directory missing role %s", r)
		}
	}
}
