package natsort

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"
	"github.com/sbezverk/natsort/config"
	"github.com/sbezverk/natsort/feeder"
	"github.com/sbezverk/natsort/feeder/bolt_feeder"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
		runs   int
		stages int
	}{
		{
			name:   "empty sequence",
			input:  "0\n",
			expect: "\n",
			runs:   0,
			stages: 0,
		},
		{
			name:   "single element",
			input:  "1\n42\n",
			expect: "42\n",
			runs:   1,
			stages: 0,
		},
		{
			name:   "four runs",
			input:  "23\n1 5 7 10 16 21 20 18 15 14 3 4 8 9 11 12 25 24 23 19 6 2 0\n",
			expect: "0 1 2 3 4 5 6 7 8 9 10 11 12 14 15 16 18 19 20 21 23 24 25\n",
			runs:   4,
			stages: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			c := config.Default()
			c.Input = filepath.Join(dir, "algsort.in")
			c.Output = filepath.Join(dir, "algsort.out")
			if err := os.WriteFile(c.Input, []byte(tt.input), 0o644); err != nil {
				t.Fatalf("failed to write input file with error: %+v", err)
			}
			r, err := Run(c)
			if err != nil {
				t.Fatalf("supposed to succeed but failed with error: %+v", err)
			}
			if r.Runs != tt.runs || r.Stages != tt.stages {
				t.Errorf("expected %d runs in %d stages, got %d runs in %d stages", tt.runs, tt.stages, r.Runs, r.Stages)
			}
			b, err := os.ReadFile(c.Output)
			if err != nil {
				t.Fatalf("failed to read output file with error: %+v", err)
			}
			if diff := deep.Equal(tt.expect, string(b)); diff != nil {
				t.Fatalf("%+v", diff)
			}
		})
	}
}

func TestRunArchive(t *testing.T) {
	dir := t.TempDir()
	c := config.Default()
	c.Input = filepath.Join(dir, "algsort.in")
	c.Output = filepath.Join(dir, "algsort.out")
	c.Archive = config.Archive{Path: filepath.Join(dir, "archive.db"), Key: "algsort"}
	if err := os.WriteFile(c.Input, []byte("5 1 3 5 4 2"), 0o644); err != nil {
		t.Fatalf("failed to write input file with error: %+v", err)
	}
	if _, err := Run(c); err != nil {
		t.Fatalf("supposed to succeed but failed with error: %+v", err)
	}
	a, err := bolt_feeder.Open(c.Archive.Path, "")
	if err != nil {
		t.Fatalf("supposed to succeed but failed with error: %+v", err)
	}
	defer a.Close()
	s, err := a.Get("algsort")
	if err != nil {
		t.Fatalf("supposed to succeed but failed with error: %+v", err)
	}
	if diff := deep.Equal([]int{1, 2, 3, 4, 5}, s); diff != nil {
		t.Fatalf("%+v", diff)
	}
}

func TestRunFailsFast(t *testing.T) {
	const previous = "PREVIOUS RESULT\n"
	tests := []struct {
		name    string
		input   string
		archive bool
		err     error
	}{
		{
			name:  "truncated input",
			input: "5 1 2 3",
			err:   feeder.ErrMalformedInput,
		},
		{
			name:  "non integer token",
			input: "2 1 two",
			err:   feeder.ErrMalformedInput,
		},
		{
			name: "missing input file",
			err:  feeder.ErrIOFailure,
		},
		{
			name:    "archive cannot be opened",
			input:   "3 3 2 1",
			archive: true,
			err:     feeder.ErrIOFailure,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			c := config.Default()
			c.Input = filepath.Join(dir, "algsort.in")
			c.Output = filepath.Join(dir, "algsort.out")
			if tt.input != "" {
				if err := os.WriteFile(c.Input, []byte(tt.input), 0o644); err != nil {
					t.Fatalf("failed to write input file with error: %+v", err)
				}
			}
			if tt.archive {
				// A directory where the archive database is expected.
				c.Archive = config.Archive{Path: t.TempDir(), Key: "algsort"}
			}
			if err := os.WriteFile(c.Output, []byte(previous), 0o644); err != nil {
				t.Fatalf("failed to write output file with error: %+v", err)
			}
			_, err := Run(c)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got: %+v", tt.err, err)
			}
			b, err := os.ReadFile(c.Output)
			if err != nil {
				t.Fatalf("failed to read output file with error: %+v", err)
			}
			if string(b) != previous {
				t.Fatalf("output supposed to be left untouched on failure, got %q", b)
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatalf("failed to list %s with error: %+v", dir, err)
			}
			for _, e := range entries {
				if e.Name() != "algsort.in" && e.Name() != "algsort.out" {
					t.Fatalf("unexpected file %s left behind", e.Name())
				}
			}
		})
	}
}
