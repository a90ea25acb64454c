package composite

// Slice describes the end-of-component marker on the last record, used by
// range queries to place a prefix before or after matching columns.
type Slice int

const (
	SliceNone Slice = iota
	SliceAfter
	SliceBefore
)

const (
	eocAfter  byte = 0x01
	eocBefore byte = 0xFF
)

// SliceFromTerminator maps an end-of-component byte to its slice marker.
// Any byte other than 0x01 and 0xFF is SliceNone.
func SliceFromTerminator(b byte) Slice {
	switch b {
	case eocAfter:
		return SliceAfter
	case eocBefore:
		return SliceBefore
	default:
		return SliceNone
	}
}

func (s Slice) String() string {
	switch s {
	case SliceAfter:
		return "after"
	case SliceBefore:
		return "before"
	default:
		return "none"
	}
}
