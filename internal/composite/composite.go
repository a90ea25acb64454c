package composite

// Composite is a decoded composite column name: opaque components in wire
// order.
type Composite struct {
	Parts [][]byte
	Slice Slice
}

// Len returns the number of components.
func (c Composite) Len() int {
	return len(c.Parts)
}

// Decode parses buf as a sequence of [uint16 length][value][terminator]
// records. An empty buf yields an empty Composite. On error no partial
// result is returned.
func Decode(buf []byte) (Composite, error) {
	return decodeComposite(buf, 0)
}

func decodeComposite(buf []byte, maxComponents int) (Composite, error) {
	r := reader{buf: buf}
	parts := make([][]byte, 0, estimateRecords(len(buf)))
	var eoc byte
	for r.more() {
		if err := r.limitReached(maxComponents); err != nil {
			return Composite{}, err
		}
		part, err := r.value()
		if err != nil {
			return Composite{}, err
		}
		if eoc, err = r.terminator(); err != nil {
			return Composite{}, err
		}
		parts = append(parts, part)
		r.record++
	}
	out := Composite{Parts: parts}
	if len(parts) > 0 {
		out.Slice = SliceFromTerminator(eoc)
	}
	return out, nil
}

// estimateRecords guesses a capacity for the output slices; most column
// names carry a handful of short components.
func estimateRecords(n int) int {
	c := n/16 + 1
	if c > 64 {
		return 64
	}
	return c
}
