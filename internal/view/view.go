// Package view renders decoded composite column names for people and JSON
// clients.
package view

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode"
	"unicode/utf8"

	"github.com/danmuck/compositectl/internal/composite"
)

// Component is one decoded byte sequence. Text is set only when the bytes
// are valid UTF-8 made of printable runes.
type Component struct {
	Hex       string `json:"hex"`
	Text      string `json:"text,omitempty"`
	Printable bool   `json:"printable"`
}

// Result is a rendered decode. Types is empty for plain composites.
type Result struct {
	Kind  string      `json:"kind"`
	Types []Component `json:"types,omitempty"`
	Parts []Component `json:"parts"`
	Slice string      `json:"slice"`
}

func NewComponent(b []byte) Component {
	c := Component{Hex: hex.EncodeToString(b)}
	if isPrintable(b) {
		c.Text = string(b)
		c.Printable = true
	}
	return c
}

func FromComposite(c composite.Composite) Result {
	return Result{
		Kind:  string(composite.KindComposite),
		Parts: components(c.Parts),
		Slice: c.Slice.String(),
	}
}

func FromDynamic(d composite.DynamicComposite) Result {
	return Result{
		Kind:  string(composite.KindDynamic),
		Types: components(d.Types),
		Parts: components(d.Parts),
		Slice: d.Slice.String(),
	}
}

// WriteText writes r as an aligned table, one component per row.
func (r Result) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	dynamic := len(r.Types) > 0
	if dynamic {
		fmt.Fprintln(tw, "#\tTYPE\tVALUE\tHEX")
	} else {
		fmt.Fprintln(tw, "#\tVALUE\tHEX")
	}
	for i, p := range r.Parts {
		if dynamic {
			var typ Component
			if i < len(r.Types) {
				typ = r.Types[i]
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, label(typ), label(p), p.Hex)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", i, label(p), p.Hex)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "kind=%s components=%d slice=%s\n", r.Kind, len(r.Parts), r.Slice)
	return err
}

func components(in [][]byte) []Component {
	out := make([]Component, 0, len(in))
	for _, b := range in {
		out = append(out, NewComponent(b))
	}
	return out
}

func label(c Component) string {
	if c.Printable {
		return fmt.Sprintf("%q", c.Text)
	}
	if c.Hex == "" {
		return `""`
	}
	return "0x" + c.Hex
}

func isPrintable(b []byte) bool {
	if len(b) == 0 || !utf8.Valid(b) {
		return false
	}
	return strings.IndexFunc(string(b), func(r rune) bool {
		return !unicode.IsPrint(r)
	}) < 0
}
