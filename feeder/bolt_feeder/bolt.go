// Package bolt_feeder keeps sorted sequences in a bbolt database, one bucket
// per archive, one key per sequence.
package bolt_feeder

import (
	"bytes"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/sbezverk/natsort/feeder"
	bolt "go.etcd.io/bbolt"
)

var (
	// ErrNotFound is returned by Get for a key the archive does not hold.
	ErrNotFound = errors.New("not found")
)

// DefaultBucket is the bucket used when none is configured.
const DefaultBucket = "sorted"

// Archive is a bbolt backed store of sorted sequences.
type Archive struct {
	db     *bolt.DB
	bucket []byte
}

// Open opens, creating it if needed, the archive database at path.
func Open(path, bucket string) (*Archive, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, &feeder.IOError{Op: "open", Path: path, Err: err}
	}
	a := &Archive{
		db:     db,
		bucket: []byte(bucket),
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(a.bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, &feeder.IOError{Op: "create bucket " + bucket, Path: path, Err: err}
	}

	return a, nil
}

// Put stores s under key, replacing any previous sequence. The value is the
// count followed by the integers, the same text Decode reads.
func (a *Archive) Put(key string, s []int) error {
	var b bytes.Buffer
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte('\n')
	if err := feeder.Encode(&b, s); err != nil {
		return err
	}
	if err := a.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(a.bucket).Put([]byte(key), b.Bytes())
	}); err != nil {
		return &feeder.IOError{Op: "put " + key, Path: a.db.Path(), Err: err}
	}
	glog.V(5).Infof("archived %d integers under %s/%s", len(s), a.bucket, key)

	return nil
}

// Get returns the sequence stored under key.
func (a *Archive) Get(key string) ([]int, error) {
	var s []int
	err := a.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(a.bucket).Get([]byte(key))
		if v == nil {
			return errors.Wrapf(ErrNotFound, "key %s", key)
		}
		var err error
		s, err = feeder.Decode(bytes.NewReader(v))
		return err
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Keys lists the keys of the archive in byte order.
func (a *Archive) Keys() ([]string, error) {
	var keys []string
	err := a.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(a.bucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, &feeder.IOError{Op: "list", Path: a.db.Path(), Err: err}
	}

	return keys, nil
}

func (a *Archive) Close() error {
	if err := a.db.Close(); err != nil {
		return &feeder.IOError{Op: "close", Path: a.db.Path(), Err: err}
	}
	return nil
}

type archiveSink struct {
	a   *Archive
	key string
}

func (s *archiveSink) Put(v []int) error {
	return s.a.Put(s.key, v)
}

func (s *archiveSink) Stop() error {
	return s.a.Close()
}

// NewSink returns a Sink storing the sequence it is given under key in the
// archive at path. Stopping the sink closes the archive.
func NewSink(path, bucket, key string) (feeder.Sink, error) {
	if key == "" {
		return nil, errors.New("archive key must not be empty")
	}
	a, err := Open(path, bucket)
	if err != nil {
		return nil, err
	}

	return &archiveSink{a: a, key: key}, nil
}
