// package wadtest builds small WAD images in memory so the tests can exercise
// every documented container quirk without shipping real game data.
package wadtest

import (
	"encoding/binary"

	"github.com/spf13/afero"
)

type lump struct {
	name string
	data []byte
}

// A Builder assembles a syntactically valid WAD image: header, lump data in
// declaration order, then the directory.
type Builder struct {
	magic string
	lumps []lump
}

// NewIwad starts an IWAD image.
func NewIwad() *Builder {
	return &Builder{magic: "IWAD"}
}

// NewPwad starts a PWAD image.
func NewPwad() *Builder {
	return &Builder{magic: "PWAD"}
}

// Add appends a lump.
func (b *Builder) Add(name string, data []byte) *Builder {
	b.lumps = append(b.lumps, lump{name: name, data: data})
	return b
}

// Marker appends a zero-byte marker lump.
func (b *Builder) Marker(name string) *Builder {
	return b.Add(name, nil)
}

// Bytes renders the image.
func (b *Builder) Bytes() []byte {
	var data []byte
	offsets := make([]int, len(b.lumps))

	data = append(data, b.magic...)
	data = AppendU32(data, uint32(len(b.lumps)))
	dirOffsetAt := len(data)
	data = AppendU32(data, 0) // patched below

	for i, l := range b.lumps {
		offsets[i] = len(data)
		data = append(data, l.data...)
	}

	binary.LittleEndian.PutUint32(data[dirOffsetAt:], uint32(len(data)))
	for i, l := range b.lumps {
		data = AppendU32(data, uint32(offsets[i]))
		data = AppendU32(data, uint32(len(l.data)))
		data = AppendName(data, l.name)
	}

	return data
}

// WriteTo renders the image into a file on the given filesystem.
func (b *Builder) WriteTo(fsys afero.Fs, path string) error {
	return afero.WriteFile(fsys, path, b.Bytes(), 0o644)
}

// AppendU16 appends a little-endian uint16.
func AppendU16(data []byte, v uint16) []byte {
	return append(data, byte(v), byte(v>>8))
}

// AppendI16 appends a little-endian int16.
func AppendI16(data []byte, v int16) []byte {
	return AppendU16(data, uint16(v))
}

// AppendU32 appends a little-endian uint32.
func AppendU32(data []byte, v uint32) []byte {
	return append(data, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// AppendName appends an 8-byte, NUL padded lump name.
func AppendName(data []byte, name string) []byte {
	var raw [8]byte
	copy(raw[:], name)
	return append(data, raw[:]...)
}
