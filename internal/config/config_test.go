package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/reclamation-control/internal/view"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.DatabasePath != defaultDatabase {
		t.Fatalf("expected default database %q, got %q", defaultDatabase, cfg.App.DatabasePath)
	}
	if cfg.App.Refresh != defaultRefresh {
		t.Fatalf("expected default refresh %s, got %s", defaultRefresh, cfg.App.Refresh)
	}
	if cfg.App.Start != view.Home {
		t.Fatalf("expected home start view, got %q", cfg.App.Start)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected footer enabled by default")
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		envDatabase + "=/env/complaints.db",
		envAccounts + "=/env/accounts.toml",
		envWidth + "=100",
		envTrace + "=true",
		envRefresh + "=5s",
		"UNRELATED",
	}
	cfg, err := LoadArgs([]string{"-db", "/flag/complaints.db", "-width", "80", "-start", "Roles"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.DatabasePath != "/flag/complaints.db" {
		t.Fatalf("flag should win over env, got %q", cfg.App.DatabasePath)
	}
	if cfg.App.AccountsPath != "/env/accounts.toml" {
		t.Fatalf("expected accounts from env, got %q", cfg.App.AccountsPath)
	}
	if cfg.App.Width != 80 {
		t.Fatalf("expected width 80, got %d", cfg.App.Width)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected trace from env")
	}
	if cfg.App.Refresh != 5*time.Second {
		t.Fatalf("expected refresh 5s, got %s", cfg.App.Refresh)
	}
	if cfg.App.Start != view.Roles {
		t.Fatalf("expected start view roles, got %q", cfg.App.Start)
	}
	if cfg.Flags["width"] != "80" || cfg.Flags["refresh"] != "5s" {
		t.Fatalf("unexpected flag snapshot %v", cfg.Flags)
	}
	if len(cfg.Args) != 6 {
		t.Fatalf("expected args to be recorded, got %v", cfg.Args)
	}
}

func TestLoadArgsIgnoresMalformedEnvironment(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{envWidth + "=wide", envShowFooter + "=maybe", envRefresh + "=soon"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Width != 0 || !cfg.App.ShowFooter || cfg.App.Refresh != defaultRefresh {
		t.Fatalf("malformed env values should fall back, got %+v", cfg.App)
	}
}

func TestLoadArgsRejectsUnknownFlag(t *testing.T) {
	if _, err := LoadArgs([]string{"-socket", "x"}, nil); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"negative width", []string{"-width", "-1"}, "width must be >= 0"},
		{"negative height", []string{"-height", "-5"}, "height must be >= 0"},
		{"zero refresh", []string{"-refresh", "0s"}, "refresh must be positive"},
		{"empty db", []string{"-db", " "}, "database path required"},
		{"unknown start", []string{"-start", "settings"}, "start view"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadArgs(tc.args, nil)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			err = Validate(cfg)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}

	cfg, _ := LoadArgs([]string{"-start", "nowhere"}, nil)
	if err := Validate(cfg); !errors.Is(err, view.ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
}
