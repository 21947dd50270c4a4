package config

import (
	"flag"
	"os"

	"github.com/pkg/errors"
	"github.com/sbezverk/natsort/feeder/grpc_feeder"
	"gopkg.in/yaml.v2"
)

// Archive locates the bbolt database the sorted sequence is stored in.
type Archive struct {
	Path   string `yaml:"path"`
	Bucket string `yaml:"bucket"`
	Key    string `yaml:"key"`
}

// Config carries where natsort reads from and writes to.
type Config struct {
	// Input is the input source, a file name or "-" for standard input.
	Input string `yaml:"input"`
	// Output is the output sink, a file name or "-" for standard output.
	Output string `yaml:"output"`
	// Listen, when set, turns natsort into a gRPC sort service on this host:port.
	Listen  string  `yaml:"listen"`
	Archive Archive `yaml:"archive"`
}

// Default returns the configuration used when nothing is specified.
func Default() *Config {
	return &Config{
		Input:  "-",
		Output: "-",
	}
}

// Load reads a YAML configuration file on top of the defaults.
func Load(fn string) (*Config, error) {
	c := Default()
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read configuration file %s", fn)
	}
	if err := yaml.UnmarshalStrict(b, c); err != nil {
		return nil, errors.Wrapf(err, "failed to parse configuration file %s", fn)
	}

	return c, nil
}

// RegisterFlags binds c to command line flags of fs, flag values set on the
// command line take precedence over the ones already in c.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Input, "input", c.Input, "input source, a file name or - for stdin")
	fs.StringVar(&c.Output, "output", c.Output, "output sink, a file name or - for stdout")
	fs.StringVar(&c.Listen, "listen", c.Listen, "serve sort requests over gRPC on host:port instead of sorting input")
	fs.StringVar(&c.Archive.Path, "archive", c.Archive.Path, "bbolt database to archive the sorted sequence in")
	fs.StringVar(&c.Archive.Bucket, "archive-bucket", c.Archive.Bucket, "bucket of the archive")
	fs.StringVar(&c.Archive.Key, "archive-key", c.Archive.Key, "key the sorted sequence is archived under")
}

// Validate checks that the configuration is consistent.
func (c *Config) Validate() error {
	if c.Listen != "" {
		if err := grpc_feeder.HostAddrValidator(c.Listen); err != nil {
			return errors.Wrap(err, "invalid listen address")
		}
		return nil
	}
	if c.Input == "" {
		return errors.New("input source is not specified")
	}
	if c.Output == "" {
		return errors.New("output sink is not specified")
	}
	if c.Archive.Path != "" && c.Archive.Key == "" {
		return errors.New("archive key must be specified with an archive")
	}

	return nil
}
