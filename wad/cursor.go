package wad

import "encoding/binary"

// Cursor is a sequential reader over a lump's data. Call Need before any of
// the Get methods; they index the underlying slice directly and will panic if
// there is insufficient data. Always finish with Done to catch trailing
// bytes, or Clear first if trailing data is expected.
//
// All multi-byte reads are little-endian, as is everything in a WAD.
type Cursor struct {
	lump *Lump
	data []byte
}

// Len returns the number of unread bytes.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Need checks that at least size bytes remain.
func (c *Cursor) Need(size int) error {
	if len(c.data) >= size {
		return nil
	}
	return c.lump.Errorf("not enough data")
}

// Skip checks that count bytes remain, then advances past them.
func (c *Cursor) Skip(count int) error {
	if err := c.Need(count); err != nil {
		return err
	}
	c.data = c.data[count:]
	return nil
}

// GetU8 reads a single byte.
func (c *Cursor) GetU8() uint8 {
	b := c.data[0]
	c.data = c.data[1:]
	return b
}

// GetU16 reads a little-endian uint16.
func (c *Cursor) GetU16() uint16 {
	v := binary.LittleEndian.Uint16(c.data)
	c.data = c.data[2:]
	return v
}

// GetI16 reads a little-endian int16.
func (c *Cursor) GetI16() int16 {
	return int16(c.GetU16())
}

// GetU32 reads a little-endian uint32.
func (c *Cursor) GetU32() uint32 {
	v := binary.LittleEndian.Uint32(c.data)
	c.data = c.data[4:]
	return v
}

// GetName reads an 8-byte, NUL padded lump name.
func (c *Cursor) GetName() string {
	var raw [8]byte
	copy(raw[:], c.SplitTo(8))
	return ParseName(raw)
}

// SplitTo splits off the next n bytes as an independent slice, advancing the
// cursor. The slice aliases the lump data; it is not a copy.
func (c *Cursor) SplitTo(n int) []byte {
	out := c.data[:n:n]
	c.data = c.data[n:]
	return out
}

// Clear discards any unread data so that Done succeeds.
func (c *Cursor) Clear() {
	c.data = nil
}

// Done checks that every byte was read. Call it when parsing is finished;
// unread trailing data means the lump is malformed.
func (c *Cursor) Done() error {
	if len(c.data) != 0 {
		return c.lump.Errorf("too much data")
	}
	return nil
}
