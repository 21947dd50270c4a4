package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "natsort.yaml")
	if err := os.WriteFile(fn, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write configuration file with error: %+v", err)
	}
	return fn
}

func TestLoad(t *testing.T) {
	fn := writeConfig(t, `
input: algsort.in
archive:
  path: archive.db
  key: algsort
`)
	c, err := Load(fn)
	if err != nil {
		t.Fatalf("supposed to succeed but failed with error: %+v", err)
	}
	expect := &Config{
		Input:  "algsort.in",
		Output: "-",
		Archive: Archive{
			Path: "archive.db",
			Key:  "algsort",
		},
	}
	if diff := deep.Equal(expect, c); diff != nil {
		t.Fatalf("%+v", diff)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("supposed to succeed but failed with error: %+v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("supposed to fail but succeeded")
	}
	if _, err := Load(writeConfig(t, "inptu: typo\n")); err == nil {
		t.Fatalf("supposed to fail on an unknown field but succeeded")
	}
}

func TestFlagsOverride(t *testing.T) {
	c, err := Load(writeConfig(t, "input: a.in\noutput: a.out\n"))
	if err != nil {
		t.Fatalf("supposed to succeed but failed with error: %+v", err)
	}
	fs := flag.NewFlagSet("natsort", flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse([]string{"-output", "b.out"}); err != nil {
		t.Fatalf("supposed to succeed but failed with error: %+v", err)
	}
	if c.Input != "a.in" || c.Output != "b.out" {
		t.Fatalf("unexpected input %s and output %s", c.Input, c.Output)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		fail   bool
	}{
		{
			name:   "defaults",
			config: Default(),
			fail:   false,
		},
		{
			name:   "archive without key",
			config: &Config{Input: "-", Output: "-", Archive: Archive{Path: "archive.db"}},
			fail:   true,
		},
		{
			name:   "empty input",
			config: &Config{Output: "-"},
			fail:   true,
		},
		{
			name:   "valid listen address",
			config: &Config{Listen: "127.0.0.1:50051"},
			fail:   false,
		},
		{
			name:   "listen address without port",
			config: &Config{Listen: "127.0.0.1"},
			fail:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if err != nil && !tt.fail {
				t.Fatalf("supposed to succeed but fail with error: %+v", err)
			}
			if err == nil && tt.fail {
				t.Fatalf("supposed to fail but succeeded")
			}
		})
	}
}
