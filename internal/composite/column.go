package composite

// Column holds the decoded components of one composite column name.
// Unpack replaces the held state wholesale. Column does no locking; callers
// sharing one Column across goroutines synchronize externally.
type Column struct {
	parts [][]byte
	slice Slice
}

// Unpack decodes buf and, only on success, replaces the held components.
func (c *Column) Unpack(buf []byte) error {
	decoded, err := Decode(buf)
	if err != nil {
		return err
	}
	c.Set(decoded)
	return nil
}

// Set replaces the held state with an already decoded value.
func (c *Column) Set(v Composite) {
	c.parts = v.Parts
	c.slice = v.Slice
}

func (c *Column) Len() int {
	return len(c.parts)
}

// Part returns the i-th component, or false when i is out of range.
func (c *Column) Part(i int) ([]byte, bool) {
	if i < 0 || i >= len(c.parts) {
		return nil, false
	}
	return c.parts[i], true
}

func (c *Column) Parts() [][]byte {
	return c.parts
}

func (c *Column) Slice() Slice {
	return c.slice
}

// DynamicColumn holds the decoded tags and components of one dynamic
// composite column name.
type DynamicColumn struct {
	types [][]byte
	parts [][]byte
	slice Slice
}

// Unpack decodes buf and, only on success, replaces both held sequences.
func (c *DynamicColumn) Unpack(buf []byte) error {
	decoded, err := DecodeDynamic(buf)
	if err != nil {
		return err
	}
	c.Set(decoded)
	return nil
}

// Set replaces the held state with an already decoded value.
func (c *DynamicColumn) Set(v DynamicComposite) {
	c.types = v.Types
	c.parts = v.Parts
	c.slice = v.Slice
}

func (c *DynamicColumn) Len() int {
	return len(c.parts)
}

// Part returns the i-th component, or false when i is out of range.
func (c *DynamicColumn) Part(i int) ([]byte, bool) {
	if i < 0 || i >= len(c.parts) {
		return nil, false
	}
	return c.parts[i], true
}

// Type returns the raw type tag of the i-th component.
func (c *DynamicColumn) Type(i int) ([]byte, bool) {
	if i < 0 || i >= len(c.types) {
		return nil, false
	}
	return c.types[i], true
}

func (c *DynamicColumn) Types() [][]byte {
	return c.types
}

func (c *DynamicColumn) Parts() [][]byte {
	return c.parts
}

func (c *DynamicColumn) Slice() Slice {
	return c.slice
}
