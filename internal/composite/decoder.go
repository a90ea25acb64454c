package composite

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// Kind names the encoding a Decoder call parsed.
type Kind string

const (
	KindComposite Kind = "composite"
	KindDynamic   Kind = "dynamic"
)

// Limits constrains decode memory use for untrusted input. Zero fields are
// unlimited.
type Limits struct {
	MaxBufferBytes int
	MaxComponents  int
}

func DefaultLimits() Limits {
	return Limits{
		MaxBufferBytes: 1024 * 1024,
		MaxComponents:  4096,
	}
}

// Observer is told about every decode a Decoder runs.
type Observer interface {
	ObserveDecode(kind Kind, size, components int, err error)
}

// Decoder runs the package decoders under Limits, with logging and an
// optional Observer.
type Decoder struct {
	limits   Limits
	logger   zerolog.Logger
	observer Observer
}

type Option func(*Decoder)

func WithLogger(logger zerolog.Logger) Option {
	return func(d *Decoder) {
		d.logger = logger
	}
}

func WithObserver(o Observer) Option {
	return func(d *Decoder) {
		d.observer = o
	}
}

func NewDecoder(limits Limits, opts ...Option) *Decoder {
	d := &Decoder{
		limits: limits,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Decoder) Limits() Limits {
	return d.limits
}

// Composite decodes buf as a composite column name.
func (d *Decoder) Composite(buf []byte) (Composite, error) {
	if err := d.checkSize(buf); err != nil {
		d.finish(KindComposite, len(buf), 0, err)
		return Composite{}, err
	}
	out, err := decodeComposite(buf, d.limits.MaxComponents)
	d.finish(KindComposite, len(buf), out.Len(), err)
	return out, err
}

// Dynamic decodes buf as a dynamic composite column name.
func (d *Decoder) Dynamic(buf []byte) (DynamicComposite, error) {
	if err := d.checkSize(buf); err != nil {
		d.finish(KindDynamic, len(buf), 0, err)
		return DynamicComposite{}, err
	}
	out, err := decodeDynamic(buf, d.limits.MaxComponents)
	d.finish(KindDynamic, len(buf), out.Len(), err)
	return out, err
}

func (d *Decoder) checkSize(buf []byte) error {
	if d.limits.MaxBufferBytes > 0 && len(buf) > d.limits.MaxBufferBytes {
		return errors.Wrapf(ErrBufferTooLarge, "%d bytes exceeds limit %d",
			len(buf), d.limits.MaxBufferBytes)
	}
	return nil
}

func (d *Decoder) finish(kind Kind, size, components int, err error) {
	if err != nil {
		d.logger.Debug().
			Str("kind", string(kind)).
			Int("bytes", size).
			Str("error_kind", ErrorKind(err)).
			Err(err).
			Msg("decode failed")
	} else {
		d.logger.Debug().
			Str("kind", string(kind)).
			Int("bytes", size).
			Int("components", components).
			Msg("decoded")
	}
	if d.observer != nil {
		d.observer.ObserveDecode(kind, size, components, err)
	}
}
