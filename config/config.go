// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

// Package config loads and saves the dcrkey configuration file, a plain
// "key = value" text file stored in the data directory.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bitfsorg/libdcr-go/bn"
	"github.com/bitfsorg/libdcr-go/network"
)

const (
	configFileName = "config"
	dataDirName    = ".dcrkey"
)

// Config holds the tool configuration.
type Config struct {
	DataDir          string
	Network          string
	LogLevel         string
	LogFile          string
	StrictSignatures bool
	ScriptNumMaxLen  int
	NetworksFile     string
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		DataDir:         DefaultDataDir(),
		Network:         network.MainNet.Name,
		LogLevel:        "info",
		ScriptNumMaxLen: bn.DefaultScriptNumLen,
	}
}

// DefaultDataDir returns ~/.dcrkey, or .dcrkey in the working directory when
// the home directory cannot be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dataDirName
	}
	return filepath.Join(home, dataDirName)
}

// ConfigPath returns the configuration file path inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(filepath.Clean(dataDir), configFileName)
}

// LoadConfig reads the file at path on top of DefaultConfig. Blank lines and
// lines starting with '#' are skipped, and unknown keys are ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, err := parseKeyValue(line)
		if err != nil {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		if err := cfg.set(key, value); err != nil {
			return cfg, fmt.Errorf("%w: line %d: %w", ErrInvalidConfigLine, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	return cfg, nil
}

// parseKeyValue splits a line on the first '='.
func parseKeyValue(line string) (string, string, error) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", ErrInvalidConfigLine
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "", "", ErrInvalidConfigLine
	}
	return key, strings.TrimSpace(value), nil
}

func (c *Config) set(key, value string) error {
	switch key {
	case "datadir":
		c.DataDir = value
	case "network":
		c.Network = value
	case "loglevel":
		c.LogLevel = value
	case "logfile":
		c.LogFile = value
	case "networks":
		c.NetworksFile = value
	case "strictsignatures":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("strictsignatures: %w", err)
		}
		c.StrictSignatures = v
	case "scriptnummaxlen":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("scriptnummaxlen: %w", err)
		}
		c.ScriptNumMaxLen = v
	}
	return nil
}

// SaveConfig writes cfg to path, creating parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# dcrkey Configuration\n\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "network = %s\n", cfg.Network)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	fmt.Fprintf(&b, "logfile = %s\n", cfg.LogFile)
	fmt.Fprintf(&b, "networks = %s\n", cfg.NetworksFile)
	fmt.Fprintf(&b, "strictsignatures = %t\n", cfg.StrictSignatures)
	fmt.Fprintf(&b, "scriptnummaxlen = %d\n", cfg.ScriptNumMaxLen)

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Registry returns the Decred networks plus the custom network described by
// NetworksFile, if set.
func (c Config) Registry() (*network.Registry, error) {
	reg := network.DefaultRegistry()
	if c.NetworksFile == "" {
		return reg, nil
	}
	custom, err := network.LoadCustomNetwork(c.NetworksFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNetworksFile, err)
	}
	if err := reg.Register(custom); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNetworksFile, err)
	}
	return reg, nil
}

// Params resolves the configured network.
func (c Config) Params() (*network.Params, error) {
	reg, err := c.Registry()
	if err != nil {
		return nil, err
	}
	p, err := reg.ByName(c.Network)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNetwork, c.Network)
	}
	return p, nil
}
