// Package natsort wires the natural merge sort to its sources and sinks.
package natsort

import (
	"github.com/golang/glog"
	"github.com/sbezverk/natsort/config"
	"github.com/sbezverk/natsort/feeder"
	"github.com/sbezverk/natsort/feeder/bolt_feeder"
	"github.com/sbezverk/natsort/feeder/offline_feeder"
	"github.com/sbezverk/natsort/sort"
)

// Run reads the sequence from c.Input, sorts it and writes it to c.Output, and
// to the archive when one is configured. Nothing is written when the input
// cannot be read in full or when any of the sinks cannot be opened.
func Run(c *config.Config) (*sort.Result, error) {
	f, err := offline_feeder.New(c.Input)
	if err != nil {
		return nil, err
	}
	s, err := f.GetFeed()
	if err != nil {
		if serr := f.Stop(); serr != nil {
			glog.Errorf("failed to close input %s with error: %+v", c.Input, serr)
		}
		return nil, err
	}
	if err := f.Stop(); err != nil {
		return nil, err
	}

	r := sort.NaturalMergeSort(s)

	sinks, err := openSinks(c)
	if err != nil {
		return nil, err
	}
	if err := drain(r.Sorted, sinks); err != nil {
		return nil, err
	}
	glog.V(5).Infof("sequence of %d integers delivered to %d sinks", len(r.Sorted), len(sinks))

	return r, nil
}

// openSinks opens the archive, if any, ahead of the output. Creating the
// output truncates it, so that comes last, once every other sink is open.
func openSinks(c *config.Config) ([]feeder.Sink, error) {
	sinks := make([]feeder.Sink, 0, 2)
	if c.Archive.Path != "" {
		a, err := bolt_feeder.NewSink(c.Archive.Path, c.Archive.Bucket, c.Archive.Key)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, a)
	}
	out, err := offline_feeder.NewSink(c.Output)
	if err != nil {
		for _, sink := range sinks {
			if serr := sink.Stop(); serr != nil {
				glog.Errorf("failed to stop sink with error: %+v", serr)
			}
		}
		return nil, err
	}

	return append(sinks, out), nil
}

// drain puts s into every sink and stops all of them, the first error wins.
func drain(s []int, sinks []feeder.Sink) error {
	var first error
	for _, sink := range sinks {
		if first == nil {
			first = sink.Put(s)
		}
		if err := sink.Stop(); err != nil {
			if first == nil {
				first = err
				continue
			}
			glog.Errorf("failed to stop sink with error: %+v", err)
		}
	}
	return first
}
