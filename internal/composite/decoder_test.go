package composite

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/compositectl/internal/testutil/testlog"
	"github.com/rs/zerolog"
)

type observation struct {
	kind       Kind
	size       int
	components int
	err        error
}

type recordingObserver struct {
	seen []observation
}

func (o *recordingObserver) ObserveDecode(kind Kind, size, components int, err error) {
	o.seen = append(o.seen, observation{kind, size, components, err})
}

func TestDecoderBufferLimit(t *testing.T) {
	testlog.Start(t)
	obs := &recordingObserver{}
	d := NewDecoder(Limits{MaxBufferBytes: 8}, WithObserver(obs))

	buf := packComposite([]byte("toolong"))
	if _, err := d.Composite(buf); !errors.Is(err, ErrBufferTooLarge) {
		t.Fatalf("expected ErrBufferTooLarge, got %v", err)
	}
	if _, err := d.Dynamic(buf); !errors.Is(err, ErrBufferTooLarge) {
		t.Fatalf("expected ErrBufferTooLarge, got %v", err)
	}
	if len(obs.seen) != 2 || obs.seen[0].kind != KindComposite || obs.seen[1].kind != KindDynamic {
		t.Fatalf("unexpected observations: %+v", obs.seen)
	}
	if IsMalformed(obs.seen[0].err) {
		t.Fatalf("limit errors are not malformed input")
	}
}

func TestDecoderComponentLimit(t *testing.T) {
	testlog.Start(t)
	d := NewDecoder(Limits{MaxComponents: 2})

	two := packComposite([]byte("a"), []byte("b"))
	if got, err := d.Composite(two); err != nil || got.Len() != 2 {
		t.Fatalf("expected 2 components at the limit, got %d err=%v", got.Len(), err)
	}

	three := packComposite([]byte("a"), []byte("b"), []byte("c"))
	if _, err := d.Composite(three); !errors.Is(err, ErrTooManyComponents) {
		t.Fatalf("expected ErrTooManyComponents, got %v", err)
	}

	dyn := packDynamic(
		dynRecord{tag: "a", alias: true, value: []byte("1")},
		dynRecord{tag: "b", alias: true, value: []byte("2")},
		dynRecord{tag: "c", alias: true, value: []byte("3")},
	)
	if _, err := d.Dynamic(dyn); !errors.Is(err, ErrTooManyComponents) {
		t.Fatalf("expected ErrTooManyComponents, got %v", err)
	}
}

func TestDecoderObservesSuccessAndLogs(t *testing.T) {
	testlog.Start(t)
	var logBuf bytes.Buffer
	obs := &recordingObserver{}
	d := NewDecoder(DefaultLimits(),
		WithObserver(obs),
		WithLogger(zerolog.New(&logBuf).Level(zerolog.DebugLevel)),
	)

	buf := packDynamic(dynRecord{tag: "org.foo", value: []byte("bar")})
	got, err := d.Dynamic(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertParts(t, got.Types, "org.foo")
	if len(obs.seen) != 1 || obs.seen[0].size != len(buf) || obs.seen[0].components != 1 || obs.seen[0].err != nil {
		t.Fatalf("unexpected observation: %+v", obs.seen)
	}

	if _, err := d.Composite([]byte{0x00}); err == nil {
		t.Fatalf("expected error")
	}
	out := logBuf.String()
	if !strings.Contains(out, `"message":"decoded"`) || !strings.Contains(out, `"error_kind":"truncated_length"`) {
		t.Fatalf("unexpected decoder log output: %s", out)
	}
}

func TestErrorKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrTruncatedLength, "truncated_length"},
		{ErrTruncatedValue, "truncated_value"},
		{ErrTruncatedTerminator, "truncated_terminator"},
		{ErrBufferTooLarge, "buffer_too_large"},
		{ErrTooManyComponents, "too_many_components"},
		{errors.New("other"), "unknown"},
	}
	for _, c := range cases {
		if got := ErrorKind(c.err); got != c.want {
			t.Fatalf("ErrorKind(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}
