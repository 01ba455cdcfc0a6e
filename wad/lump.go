package wad

import "fmt"

// A Lump is a named blob of data inside a WAD file. It is a zero-copy view:
// the data slice points into the owning file's buffer, so lumps are cheap to
// create and copy and stay valid as long as any reference to them lives.
//
// A lump with zero bytes is legal. Such "marker" lumps delimit groups like
// the flats between F_START and F_END.
type Lump struct {
	file *File
	name string
	data []byte
}

// File returns the archive the lump came from.
func (l *Lump) File() *File {
	return l.file
}

// Path returns the path of the file containing the lump.
func (l *Lump) Path() string {
	return l.file.path
}

// Name returns the lump name, for example "VERTEXES" or "THINGS".
func (l *Lump) Name() string {
	return l.name
}

// Data returns the lump's bytes.
func (l *Lump) Data() []byte {
	return l.data
}

// Size returns the number of bytes in the lump.
func (l *Lump) Size() int {
	return len(l.data)
}

// IsEmpty reports whether the lump contains no data.
func (l *Lump) IsEmpty() bool {
	return len(l.data) == 0
}

// Cursor returns a sequential reader over the lump's data.
func (l *Lump) Cursor() *Cursor {
	return &Cursor{lump: l, data: l.data}
}

// ExpectName checks that the lump has the expected name.
func (l *Lump) ExpectName(name string) (*Lump, error) {
	if l.name == name {
		return l, nil
	}
	return nil, l.Errorf("%s missing", name)
}

// ExpectSize checks that the lump is exactly size bytes.
func (l *Lump) ExpectSize(size int) (*Lump, error) {
	if l.Size() == size {
		return l, nil
	}
	return nil, l.Errorf("expected %d bytes, got %d", size, l.Size())
}

// ExpectSizeMultiple checks that the lump contains a whole number of
// size-byte records.
func (l *Lump) ExpectSizeMultiple(size int) (*Lump, error) {
	if l.Size()%size == 0 {
		return l, nil
	}
	return nil, l.Errorf("expected a multiple of %d bytes, got %d", size, l.Size())
}

// Errorf builds a malformed-file error blaming this lump.
func (l *Lump) Errorf(format string, args ...any) error {
	return malformed(l.file.path, "%s: %s", l.name, fmt.Sprintf(format, args...))
}

func (l *Lump) String() string {
	return l.name
}

// A Block is a non-empty group of consecutive lumps from a single WAD file:
// a map's eleven lumps, or everything between a pair of markers. The first
// lump usually names the block.
type Block struct {
	lumps []*Lump
}

func newBlock(lumps []*Lump) *Block {
	if len(lumps) == 0 {
		panic("wad: empty lump block")
	}
	return &Block{lumps: lumps}
}

// First returns the block's first lump.
func (b *Block) First() *Lump {
	return b.lumps[0]
}

// Last returns the block's last lump.
func (b *Block) Last() *Lump {
	return b.lumps[len(b.lumps)-1]
}

// Name returns the block's name, the name of its first lump.
func (b *Block) Name() string {
	return b.First().name
}

// Path returns the path of the file containing the block.
func (b *Block) Path() string {
	return b.First().Path()
}

// Len returns the number of lumps in the block.
func (b *Block) Len() int {
	return len(b.lumps)
}

// Get returns the lump at index.
//
// Panics if the index is out of bounds.
func (b *Block) Get(index int) *Lump {
	return b.lumps[index]
}

// GetWithName returns the lump at index after checking it has the expected
// name.
//
// Panics if the index is out of bounds.
func (b *Block) GetWithName(index int, name string) (*Lump, error) {
	return b.lumps[index].ExpectName(name)
}

// Lumps returns the block's lumps, for iteration.
func (b *Block) Lumps() []*Lump {
	return b.lumps
}

// Errorf builds a malformed-file error blaming this block. The error is
// attributed to the file containing the block's first lump.
func (b *Block) Errorf(format string, args ...any) error {
	return malformed(b.First().file.path, format, args...)
}
