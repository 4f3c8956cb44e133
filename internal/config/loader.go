package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gopak/gopak-query/internal/results"
	"gopkg.in/yaml.v3"
)

var current Config

func Get() Config { return current }

// LoadFromFiles merges files in lexical order on top of an empty config.
func LoadFromFiles(files []string) (Config, error) {
	return LoadDefaultsAndFiles(nil, files)
}

// LoadDefaultsAndFiles decodes defaultsYAML and then every YAML file of files
// in lexical order. A key set by a later file overrides earlier values; keys
// a file does not mention are left alone.
func LoadDefaultsAndFiles(defaultsYAML []byte, files []string) (Config, error) {
	var merged Config
	if len(defaultsYAML) > 0 {
		if err := decodeInto(&merged, defaultsYAML); err != nil {
			return Config{}, fmt.Errorf("defaults: %w", err)
		}
	}
	for _, f := range sortedYAML(files) {
		b, err := os.ReadFile(f)
		if err != nil {
			return Config{}, err
		}
		if err := decodeInto(&merged, b); err != nil {
			return Config{}, fmt.Errorf("%s: %w", f, err)
		}
	}
	if err := Validate(merged); err != nil {
		return Config{}, err
	}
	current = merged
	return merged, nil
}

func decodeInto(cfg *Config, b []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the values the schema cannot express.
func Validate(cfg Config) error {
	if cfg.Output.Sort != "" {
		if _, err := results.ParseSortKey(cfg.Output.Sort); err != nil {
			return fmt.Errorf("output.sort: %w", err)
		}
	}
	if cfg.Remote.Timeout != "" {
		d, err := time.ParseDuration(cfg.Remote.Timeout)
		if err != nil {
			return fmt.Errorf("remote.timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("remote.timeout: negative duration %s", cfg.Remote.Timeout)
		}
	}
	if cfg.Remote.URL != "" {
		u, err := url.Parse(cfg.Remote.URL)
		if err != nil {
			return fmt.Errorf("remote.url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("remote.url: unsupported scheme %q", u.Scheme)
		}
	}
	return nil
}

func sortedYAML(files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		lf := strings.ToLower(f)
		if strings.HasSuffix(lf, ".yaml") || strings.HasSuffix(lf, ".yml") {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}
