// Package accounts resolves login credentials against a flat account
// directory loaded from a TOML file.
package accounts

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/atomicstack/reclamation-control/internal/session"
)

var (
	// ErrUnknownAccount indicates no account has the given username.
	ErrUnknownAccount = errors.New("unknown account")

	// ErrRoleMismatch indicates the account exists but not for the chosen role.
	ErrRoleMismatch = errors.New("account does not have this role")

	// ErrBadCredentials indicates the password did not match.
	ErrBadCredentials = errors.New("wrong password")

	// ErrInvalidDirectory indicates the directory file is malformed.
	ErrInvalidDirectory = errors.New("invalid account directory")
)

// Account is a single directory entry.
type Account struct {
	ID           int64  `toml:"id"`
	Username     string `toml:"username"`
	Name         string `toml:"name"`
	Role         string `toml:"role"`
	Organisation string `toml:"organisation"`
	Password     string `toml:"password"`
}

type file struct {
	Accounts []Account `toml:"account"`
}

// Directory is an immutable set of accounts keyed by username.
type Directory struct {
	byName map[string]entry
}

type entry struct {
	user     session.User
	password string
}

// Load reads a directory from a TOML file.
func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path from configuration
	if err != nil {
		return nil, fmt.Errorf("reading account directory: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes a TOML directory document.
func Parse(doc string) (*Directory, error) {
	var f file
	if _, err := toml.Decode(doc, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
	}
	return New(f.Accounts)
}

// New validates accounts and builds a directory.
func New(accounts []Account) (*Directory, error) {
	d := &Directory{byName: make(map[string]entry, len(accounts))}
	ids := make(map[int64]string, len(accounts))
	for i, a := range accounts {
		name := strings.ToLower(strings.TrimSpace(a.Username))
		if name == "" {
			return nil, fmt.Errorf("%w: account %d has no username", ErrInvalidDirectory, i+1)
		}
		if a.ID <= 0 {
			return nil, fmt.Errorf("%w: account %q needs a positive id", ErrInvalidDirectory, name)
		}
		role, err := session.ParseRole(a.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: account %q: %v", ErrInvalidDirectory, name, err)
		}
		if _, dup := d.byName[name]; dup {
			return nil, fmt.Errorf("%w: duplicate username %q", ErrInvalidDirectory, name)
		}
		if other, dup := ids[a.ID]; dup {
			return nil, fmt.Errorf("%w: id %d used by %q and %q", ErrInvalidDirectory, a.ID, other, name)
		}
		ids[a.ID] = name
		d.byName[name] = entry{
			user: session.User{
				ID:           a.ID,
				Username:     name,
				DisplayName:  strings.TrimSpace(a.Name),
				Role:         role,
				Organisation: strings.TrimSpace(a.Organisation),
			},
			password: a.Password,
		}
	}
	return d, nil
}

// Demo returns the built-in directory used when no file is configured.
func Demo() *Directory {
	d, err := New([]Account{
		{ID: 1, Username: "admin", Name: "Desk Administrator", Role: "admin", Password: "admin"},
		{ID: 2, Username: "transit", Name: "City Transit Operations", Role: "organisation", Organisation: "City Transit", Password: "transit"},
		{ID: 3, Username: "rider", Name: "Sam Rider", Role: "user", Password: "rider"},
	})
	if err != nil {
		panic(err)
	}
	return d
}

// Authenticate checks credentials for the chosen role.
func (d *Directory) Authenticate(role session.Role, username, password string) (session.User, error) {
	name := strings.ToLower(strings.TrimSpace(username))
	e, ok := d.byName[name]
	if !ok {
		return session.User{}, fmt.Errorf("%w: %s", ErrUnknownAccount, name)
	}
	if subtle.ConstantTimeCompare([]byte(e.password), []byte(password)) != 1 {
		return session.User{}, ErrBadCredentials
	}
	if e.user.Role != role {
		return session.User{}, fmt.Errorf("%w: %s is %s", ErrRoleMismatch, name, e.user.Role.Label())
	}
	return e.user, nil
}

// Users lists every account ordered by id.
func (d *Directory) Users() []session.User {
	out := make([]session.User, 0, len(d.byName))
	for _, e := range d.byName {
		out = append(out, e.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
