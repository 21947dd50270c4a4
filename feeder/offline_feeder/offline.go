package offline_feeder

import (
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/sbezverk/natsort/feeder"
)

// Stdio is the file name standing for standard input or standard output.
const Stdio = "-"

type offFeeder struct {
	name string
	file io.ReadCloser
}

func (o *offFeeder) GetFeed() ([]int, error) {
	s, err := feeder.Decode(o.file)
	if err != nil {
		if ioErr, ok := err.(*feeder.IOError); ok {
			ioErr.Path = o.name
		}
		return nil, err
	}
	glog.V(5).Infof("read %d integers from %s", len(s), o.name)

	return s, nil
}

func (o *offFeeder) Stop() error {
	if o.file == os.Stdin {
		return nil
	}
	if err := o.file.Close(); err != nil {
		return &feeder.IOError{Op: "close", Path: o.name, Err: err}
	}
	return nil
}

// New returns a Feeder reading the text format from the file fn, or from
// standard input when fn is Stdio.
func New(fn string) (feeder.Feeder, error) {
	if fn == Stdio {
		return &offFeeder{name: "stdin", file: os.Stdin}, nil
	}
	f, err := os.Open(fn)
	if err != nil {
		return nil, &feeder.IOError{Op: "open", Path: fn, Err: err}
	}

	return &offFeeder{name: fn, file: f}, nil
}

type offSink struct {
	name string
	file io.WriteCloser
	// tmp is the file written to until Stop renames it to name, empty for stdout.
	tmp  string
	done bool
}

func (o *offSink) Put(s []int) error {
	if err := feeder.Encode(o.file, s); err != nil {
		if ioErr, ok := err.(*feeder.IOError); ok {
			ioErr.Path = o.name
		}
		return err
	}
	o.done = true
	glog.V(5).Infof("wrote %d integers to %s", len(s), o.name)

	return nil
}

// Stop replaces the sink file with what Put wrote. Without a successful Put
// the file is left as it was.
func (o *offSink) Stop() error {
	if o.tmp == "" {
		return nil
	}
	err := o.file.Close()
	if err == nil && o.done {
		if err = os.Rename(o.tmp, o.name); err == nil {
			return nil
		}
	}
	os.Remove(o.tmp)
	if err != nil {
		return &feeder.IOError{Op: "close", Path: o.name, Err: err}
	}
	return nil
}

// NewSink returns a Sink writing the text format to the file fn, or to
// standard output when fn is Stdio. The file is replaced only once the
// sequence has been written in full.
func NewSink(fn string) (feeder.Sink, error) {
	if fn == Stdio {
		return &offSink{name: "stdout", file: os.Stdout}, nil
	}
	f, err := os.CreateTemp(filepath.Dir(fn), "."+filepath.Base(fn)+".*")
	if err != nil {
		return nil, &feeder.IOError{Op: "create", Path: fn, Err: err}
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, &feeder.IOError{Op: "chmod", Path: fn, Err: err}
	}

	return &offSink{name: fn, file: f, tmp: f.Name()}, nil
}
