package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/reclamation-control/internal/app"
	"github.com/atomicstack/reclamation-control/internal/config"
	"github.com/atomicstack/reclamation-control/internal/view"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			DatabasePath: "complaints.db",
			Width:        80,
			Height:       24,
			ShowFooter:   true,
			Verbose:      true,
			Refresh:      2 * time.Second,
			Start:        view.Home,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"db":      "complaints.db",
			"width":   "80",
			"height":  "24",
			"footer":  "true",
			"verbose": "true",
			"refresh": "2s",
		},
		Args: []string{"-db", "complaints.db"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["db"] != "complaints.db" {
		t.Fatalf("expected db flag %q, got %v", "complaints.db", flagsValue["db"])
	}
	if flagsValue["refresh"] != "2s" {
		t.Fatalf("expected refresh 2s, got %v", flagsValue["refresh"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["height"] != "24" {
		t.Fatalf("expected height 24, got %v", flagsValue["height"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["verbose"] != "true" {
		t.Fatalf("expected verbose flag true, got %v", flagsValue["verbose"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["storage"].(storageDetails); !ok {
		t.Fatalf("expected storage details in payload")
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestCollectStorageDetails(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "complaints.db")

	details := collectStorageDetails(app.Config{DatabasePath: db})
	if details.Database != db || details.DatabaseExists {
		t.Fatalf("unexpected details for missing database: %+v", details)
	}
	if details.Accounts != "built-in demo accounts" {
		t.Fatalf("expected demo accounts, got %q", details.Accounts)
	}

	if err := os.WriteFile(db, nil, 0o600); err != nil {
		t.Fatalf("write db: %v", err)
	}
	details = collectStorageDetails(app.Config{DatabasePath: db, AccountsPath: "accounts.toml"})
	if !details.DatabaseExists || details.Accounts != "accounts.toml" {
		t.Fatalf("unexpected details %+v", details)
	}
}
