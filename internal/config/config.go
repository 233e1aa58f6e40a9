// Package config loads and saves treest's flat key=value config file:
// the option set Navigate exposes through `:set`, plus a
// default-provider key and an editor command.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds treest's on-disk preferences. Default returns the
// configuration a first run would produce; the zero value has every
// option off.
type Config struct {
	Provider  string
	Mouse     bool
	AltScreen bool
	Pretty    bool
	OnlyChild bool
	Editor    string
}

// Default returns the configuration a fresh install starts from.
func Default() Config {
	return Config{
		Mouse:     true,
		AltScreen: true,
		Pretty:    true,
		OnlyChild: true,
	}
}

// Path resolves the config file location: $XDG_CONFIG_HOME/treest/config
// if XDG_CONFIG_HOME is set, else $HOME/.config/treest/config.
func Path() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "treest", "config"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "treest", "config"), nil
}

// Ensure guarantees the config file at path exists with secure
// permissions, creating it with Default's values serialized out if
// missing. Passing an empty path resolves via Path first.
func Ensure(path string) (string, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return "", err
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return "", err
		}
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
		if err != nil {
			return "", err
		}
		defer f.Close()
		if err := write(f, Default()); err != nil {
			return "", err
		}
	} else if err == nil {
		_ = os.Chmod(path, 0o600)
	}
	return path, nil
}

// Load reads and parses the config file at path, returning Default
// values overlaid with whatever keys the file sets. A missing or
// unreadable file is not an error: it yields Default unchanged, since
// config is a convenience layer the core never depends on.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		kv := strings.SplitN(line, "=", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		v := strings.TrimSpace(kv[1])
		applyKey(&cfg, k, v)
	}
	return cfg, nil
}

func applyKey(cfg *Config, k, v string) {
	switch k {
	case "provider":
		cfg.Provider = v
	case "editor":
		cfg.Editor = v
	case "mouse":
		cfg.Mouse = parseBool(v, cfg.Mouse)
	case "altscreen", "alts":
		cfg.AltScreen = parseBool(v, cfg.AltScreen)
	case "pretty":
		cfg.Pretty = parseBool(v, cfg.Pretty)
	case "onlychild", "onchl":
		cfg.OnlyChild = parseBool(v, cfg.OnlyChild)
	default:
		// unknown keys are ignored, not errors
	}
}

func parseBool(v string, fallback bool) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func write(f *os.File, cfg Config) error {
	_, err := fmt.Fprintf(f, `# treest configuration
# provider: default provider name used when none is given on the command line
# mouse, altscreen, pretty, onlychild: booleans, same grammar as the ':set' prompt command
provider=%s
mouse=%t
altscreen=%t
pretty=%t
onlychild=%t
editor=%s
`, cfg.Provider, cfg.Mouse, cfg.AltScreen, cfg.Pretty, cfg.OnlyChild, cfg.Editor)
	return err
}

// ExpandTilde resolves a leading "~" or "~/" to the user's home
// directory.
func ExpandTilde(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if p == "~" {
		return home, nil
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:]), nil
	}
	return p, nil
}
