package composite

// DynamicComposite is a decoded dynamic composite column name. Types[i]
// is the raw type tag of Parts[i]; both slices always have equal length.
type DynamicComposite struct {
	Types [][]byte
	Parts [][]byte
	Slice Slice
}

// Len returns the number of components.
func (d DynamicComposite) Len() int {
	return len(d.Parts)
}

// DecodeDynamic parses buf as a sequence of [tag][uint16 length][value]
// [terminator] records. A tag whose first byte has the 0x80 bit set is a
// two-byte alias whose value is the second byte; otherwise it is a
// length-prefixed type name.
func DecodeDynamic(buf []byte) (DynamicComposite, error) {
	return decodeDynamic(buf, 0)
}

func decodeDynamic(buf []byte, maxComponents int) (DynamicComposite, error) {
	r := reader{buf: buf}
	capacity := estimateRecords(len(buf))
	types := make([][]byte, 0, capacity)
	parts := make([][]byte, 0, capacity)
	var eoc byte
	for r.more() {
		if err := r.limitReached(maxComponents); err != nil {
			return DynamicComposite{}, err
		}
		tag, err := r.tag()
		if err != nil {
			return DynamicComposite{}, err
		}
		part, err := r.value()
		if err != nil {
			return DynamicComposite{}, err
		}
		if eoc, err = r.terminator(); err != nil {
			return DynamicComposite{}, err
		}
		types = append(types, tag)
		parts = append(parts, part)
		r.record++
	}
	out := DynamicComposite{Types: types, Parts: parts}
	if len(parts) > 0 {
		out.Slice = SliceFromTerminator(eoc)
	}
	return out, nil
}
