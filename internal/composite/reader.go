package composite

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

const (
	lengthSize     = 2
	terminatorSize = 1
	aliasFlag      = 0x80
)

// reader is a bounds-checked cursor over one input buffer.
type reader struct {
	buf    []byte
	off    int
	record int
}

func (r *reader) more() bool {
	return r.off < len(r.buf)
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) length() (int, error) {
	if r.remaining() < lengthSize {
		return 0, errors.Wrapf(ErrTruncatedLength,
			"record %d at offset %d: %d bytes remain", r.record, r.off, r.remaining())
	}
	n := int(binary.BigEndian.Uint16(r.buf[r.off : r.off+lengthSize]))
	r.off += lengthSize
	return n, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n > r.remaining() {
		return nil, errors.Wrapf(ErrTruncatedValue,
			"record %d at offset %d: declared %d bytes, %d remain", r.record, r.off, n, r.remaining())
	}
	out := make([]byte, n)
	copy(out, r.buf[r.off:r.off+n])
	r.off += n
	return out, nil
}

// value reads one length-prefixed value.
func (r *reader) value() ([]byte, error) {
	n, err := r.length()
	if err != nil {
		return nil, err
	}
	return r.bytes(n)
}

// terminator consumes the end-of-component byte without validating it.
func (r *reader) terminator() (byte, error) {
	if r.remaining() < terminatorSize {
		return 0, errors.Wrapf(ErrTruncatedTerminator,
			"record %d at offset %d", r.record, r.off)
	}
	b := r.buf[r.off]
	r.off += terminatorSize
	return b, nil
}

// tag resolves a dynamic type tag. An alias is the byte after the marker;
// a name is a length-prefixed value.
func (r *reader) tag() ([]byte, error) {
	if r.buf[r.off]&aliasFlag == 0 {
		return r.value()
	}
	if r.remaining() < lengthSize {
		return nil, errors.Wrapf(ErrTruncatedLength,
			"record %d at offset %d: alias tag needs %d bytes, %d remain",
			r.record, r.off, lengthSize, r.remaining())
	}
	tag := []byte{r.buf[r.off+1]}
	r.off += lengthSize
	return tag, nil
}

func (r *reader) limitReached(limit int) error {
	if limit > 0 && r.record >= limit && r.more() {
		return errors.Wrapf(ErrTooManyComponents, "limit %d at offset %d", limit, r.off)
	}
	return nil
}
