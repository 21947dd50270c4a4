package feeder

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// maxPrealloc caps the capacity reserved up front from a declared count, a
// bogus count must not turn into a huge allocation before the input proves it.
const maxPrealloc = 1 << 20

// Decode reads a count N followed by exactly N whitespace separated integers.
// Anything but whitespace after the N-th integer is rejected.
func Decode(r io.Reader) ([]int, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	if !sc.Scan() {
		if err := scanErr(sc); err != nil {
			return nil, err
		}
		return nil, errors.Wrap(ErrMalformedInput, "missing element count")
	}
	n, err := strconv.Atoi(sc.Text())
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedInput, "element count %q is not an integer", sc.Text())
	}
	if n < 0 {
		return nil, errors.Wrapf(ErrMalformedInput, "negative element count %d", n)
	}
	c := n
	if c > maxPrealloc {
		c = maxPrealloc
	}
	s := make([]int, 0, c)
	for len(s) < n {
		if !sc.Scan() {
			if err := scanErr(sc); err != nil {
				return nil, err
			}
			return nil, errors.Wrapf(ErrMalformedInput, "expected %d integers, got %d", n, len(s))
		}
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedInput, "token %q at position %d is not an integer", sc.Text(), len(s))
		}
		s = append(s, v)
	}
	if sc.Scan() {
		return nil, errors.Wrapf(ErrMalformedInput, "unexpected token %q after %d integers", sc.Text(), n)
	}
	if err := scanErr(sc); err != nil {
		return nil, err
	}

	return s, nil
}

func scanErr(sc *bufio.Scanner) error {
	err := sc.Err()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bufio.ErrTooLong):
		return errors.Wrap(ErrMalformedInput, "token too long")
	}
	return &IOError{Op: "read", Err: err}
}

// Encode writes s space separated and terminated by a newline.
func Encode(w io.Writer, s []int) error {
	bw := bufio.NewWriter(w)
	b := make([]byte, 0, 24)
	for i, v := range s {
		b = b[:0]
		if i > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		if _, err := bw.Write(b); err != nil {
			return &IOError{Op: "write", Err: err}
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	if err := bw.Flush(); err != nil {
		return &IOError{Op: "flush", Err: err}
	}

	return nil
}
