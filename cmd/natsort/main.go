package main

import (
	"flag"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/sbezverk/natsort"
	"github.com/sbezverk/natsort/config"
	"github.com/sbezverk/natsort/feeder/grpc_feeder"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", "", "YAML configuration file")
}

func main() {
	if err := run(); err != nil {
		glog.Errorf("natsort failed with error: %+v", err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}

func run() error {
	// The configuration file, if any, has to be loaded before the remaining
	// flags are bound, so that the command line overrides it.
	pre := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	pre.StringVar(&configFile, "config", "", "")
	pre.Parse(configArgs(os.Args[1:]))

	c := config.Default()
	if configFile != "" {
		var err error
		if c, err = config.Load(configFile); err != nil {
			return err
		}
	}
	c.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := c.Validate(); err != nil {
		return err
	}

	if c.Listen != "" {
		return serve(c.Listen)
	}

	r, err := natsort.Run(c)
	if err != nil {
		return err
	}
	glog.Infof("sorted %s integers from %s: %s runs, %d merge stages, %s moves",
		humanize.Comma(int64(len(r.Sorted))), c.Input, humanize.Comma(int64(r.Runs)), r.Stages, humanize.Comma(int64(r.Moves)))

	return nil
}

func serve(addr string) error {
	srv, err := grpc_feeder.New(addr)
	if err != nil {
		return err
	}
	glog.Infof("sort service listening on %s", srv.Addr())
	stopCh := natsort.SetupSignalHandler()
	<-stopCh
	glog.Infof("stopping sort service")
	srv.Stop()

	return nil
}

// configArgs picks the -config flag out of args so it can be parsed ahead of
// the flags it provides defaults for.
func configArgs(args []string) []string {
	for i, a := range args {
		switch a {
		case "-config", "--config":
			if i+1 < len(args) {
				return args[i : i+2]
			}
		default:
			if strings.HasPrefix(a, "-config=") || strings.HasPrefix(a, "--config=") {
				return []string{a}
			}
		}
	}
	return nil
}
