// Package prefs persists the terminal viewer's preferences in
// ~/.config/green/prefs.toml. A missing or unreadable file yields defaults.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bamreyes/Project-Green/internal/view"
)

type Prefs struct {
	SidebarCollapsed bool   `toml:"sidebar_collapsed"`
	LastIteration    string `toml:"last_iteration"`
}

const defaultPrefsPath = "~/.config/green/prefs.toml"

func Default() Prefs {
	return Prefs{LastIteration: view.AllIterations}
}

func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from path, or the default path when empty.
func Load(path string) Prefs {
	prefs := Default()
	resolved, err := resolvePath(path)
	if err != nil {
		return prefs
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return prefs
	}
	if err := toml.Unmarshal(data, &prefs); err != nil {
		return Default()
	}
	if strings.TrimSpace(prefs.LastIteration) == "" {
		prefs.LastIteration = view.AllIterations
	}
	return prefs
}

// Save writes p to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
