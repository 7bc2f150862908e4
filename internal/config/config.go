package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/reclamation-control/internal/app"
	"github.com/atomicstack/reclamation-control/internal/view"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envDatabase   = "RECLAMATION_CONTROL_DB"
	envAccounts   = "RECLAMATION_CONTROL_ACCOUNTS"
	envWidth      = "RECLAMATION_CONTROL_WIDTH"
	envHeight     = "RECLAMATION_CONTROL_HEIGHT"
	envShowFooter = "RECLAMATION_CONTROL_FOOTER"
	envVerbose    = "RECLAMATION_CONTROL_VERBOSE"
	envTrace      = "RECLAMATION_CONTROL_TRACE"
	envLogFile    = "RECLAMATION_CONTROL_LOG_FILE"
	envRefresh    = "RECLAMATION_CONTROL_REFRESH"
	envStart      = "RECLAMATION_CONTROL_START"
)

const (
	defaultDatabase = "reclamation.db"
	defaultRefresh  = 2 * time.Second
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("reclamation-control", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	db := fs.String("db", envOrDefault(env, envDatabase, defaultDatabase), "path to the SQLite complaint database")
	accountsPath := fs.String("accounts", envOrDefault(env, envAccounts, ""), "path to a TOML account directory (built-in demo accounts when empty)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the key hint row")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	refresh := fs.Duration("refresh", envOrDuration(env, envRefresh, defaultRefresh), "interval between complaint refreshes")
	start := fs.String("start", envOrDefault(env, envStart, string(view.Home)), "view shown at startup")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			DatabasePath: *db,
			AccountsPath: *accountsPath,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			Refresh:      *refresh,
			Start:        view.ID(strings.ToLower(strings.TrimSpace(*start))),
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"db":       *db,
			"accounts": *accountsPath,
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"footer":   strconv.FormatBool(*footer),
			"trace":    strconv.FormatBool(*trace),
			"verbose":  strconv.FormatBool(*verbose),
			"logFile":  *logFile,
			"refresh":  refresh.String(),
			"start":    *start,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects settings the application cannot start with.
func Validate(cfg Config) error {
	var errs []error
	if cfg.App.Width < 0 {
		errs = append(errs, fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width))
	}
	if cfg.App.Height < 0 {
		errs = append(errs, fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height))
	}
	if cfg.App.Refresh <= 0 {
		errs = append(errs, fmt.Errorf("refresh must be positive (got %s)", cfg.App.Refresh))
	}
	if strings.TrimSpace(cfg.App.DatabasePath) == "" {
		errs = append(errs, errors.New("database path required"))
	}
	if _, err := view.Parse(string(cfg.App.Start)); err != nil {
		errs = append(errs, fmt.Errorf("start view: %w", err))
	}
	return errors.Join(errs...)
}
