package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bamreyes/Project-Green/internal/catalog"
)

const (
	DefaultAddr          = ":8080"
	DefaultDBPath        = "green.db"
	DefaultSessionCookie = "green_session"
	DefaultSessionTTL    = 12 * time.Hour
	DefaultProjectMax    = 20
	DefaultRound         = 2
)

var DefaultCatalogPatterns = []string{"data/**/*.json"}

type File struct {
	Version int     `yaml:"version" json:"version"`
	Server  Server  `yaml:"server" json:"server"`
	MDNS    MDNS    `yaml:"mdns" json:"mdns"`
	Catalog Catalog `yaml:"catalog" json:"catalog"`
	Solver  Solver  `yaml:"solver" json:"solver"`
}

type Server struct {
	Addr          string        `yaml:"addr" json:"addr"`
	DBPath        string        `yaml:"db_path" json:"db_path"`
	SessionCookie string        `yaml:"session_cookie" json:"session_cookie"`
	SessionTTL    time.Duration `yaml:"session_ttl" json:"session_ttl"`
}

type MDNS struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Instance string `yaml:"instance,omitempty" json:"instance,omitempty"`
}

type Catalog struct {
	Root     string   `yaml:"root" json:"root"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

type Solver struct {
	ProjectMax float64            `yaml:"project_max" json:"project_max"`
	Round      int                `yaml:"round" json:"round"`
	Minimums   map[string]float64 `yaml:"minimums,omitempty" json:"minimums,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() File {
	return File{
		Version: 1,
		Server: Server{
			Addr:          DefaultAddr,
			DBPath:        DefaultDBPath,
			SessionCookie: DefaultSessionCookie,
			SessionTTL:    DefaultSessionTTL,
		},
		MDNS: MDNS{Enabled: false},
		Catalog: Catalog{
			Root:     ".",
			Patterns: append([]string(nil), DefaultCatalogPatterns...),
		},
		Solver: Solver{
			ProjectMax: DefaultProjectMax,
			Round:      DefaultRound,
		},
	}
}

// Load reads path (when non-empty) over the defaults and applies
// environment overrides.
func Load(path string) (File, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return File{}, fmt.Errorf("read config file %q: %w", path, err)
		}
		cfg, err = Parse(data, path)
		if err != nil {
			return File{}, err
		}
	}
	cfg.applyEnv()
	if errs := cfg.Validate(); len(errs) > 0 {
		return cfg, fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func Parse(data []byte, source string) (File, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse YAML in %q: %w", source, err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return cfg, fmt.Errorf("invalid config in %q: %s", source, strings.Join(errs, "; "))
	}
	return cfg, nil
}

func (cfg *File) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("GREEN_SERVER_ADDR")); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("GREEN_DB_PATH")); v != "" {
		cfg.Server.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("GREEN_MDNS_ENABLE")); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.MDNS.Enabled = enabled
		}
	}
}

func (cfg File) Validate() []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported config version %d", cfg.Version))
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		errs = append(errs, "server.addr is required")
	}
	if strings.TrimSpace(cfg.Server.DBPath) == "" {
		errs = append(errs, "server.db_path is required")
	}
	if strings.TrimSpace(cfg.Server.SessionCookie) == "" {
		errs = append(errs, "server.session_cookie is required")
	}
	if cfg.Server.SessionTTL <= 0 {
		errs = append(errs, "server.session_ttl must be > 0")
	}

	if len(cfg.Catalog.Patterns) == 0 {
		errs = append(errs, "catalog.patterns must contain at least one pattern")
	}
	for i, p := range cfg.Catalog.Patterns {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Sprintf("catalog.patterns[%d] must not be empty", i))
		}
	}

	if cfg.Solver.ProjectMax <= 0 {
		errs = append(errs, "solver.project_max must be > 0")
	}
	if cfg.Solver.Round < 0 || cfg.Solver.Round > 8 {
		errs = append(errs, "solver.round must be between 0 and 8")
	}
	for key, v := range cfg.Solver.Minimums {
		if !catalog.IsPollutant(key) {
			errs = append(errs, fmt.Sprintf("solver.minimums has unknown pollutant %q", key))
			continue
		}
		if v < 0 {
			errs = append(errs, fmt.Sprintf("solver.minimums[%q] must be >= 0", key))
		}
	}

	return errs
}
