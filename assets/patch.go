package assets

import (
	"strings"

	"github.com/jkugelman/dusty-room/wad"
)

// Capacity clamps for attacker-controlled counts. They bound only the
// pre-allocation, never how many entries are eventually accepted.
const (
	pnamesCapClamp = 1024
	columnCapClamp = 512
)

// A Post is a vertical run of pixels within a patch column. Y is the
// effective top offset after applying the tall-patch rule; Pixels are palette
// indices aliasing the lump data.
type Post struct {
	Y      int
	Pixels []byte
}

// A Column is one vertical strip of a patch.
type Column struct {
	Posts []Post
}

// A Patch is a column-encoded image used as a building block for composite
// textures.
type Patch struct {
	name    string
	width   int
	height  int
	top     int
	left    int
	columns []Column
}

// Name returns the patch's name from PNAMES.
func (p *Patch) Name() string {
	return p.name
}

// Width returns the patch width in pixels, the number of columns.
func (p *Patch) Width() int {
	return p.width
}

// Height returns the patch height in pixels.
func (p *Patch) Height() int {
	return p.height
}

// TopOffset returns the y offset used when the patch is drawn standalone.
func (p *Patch) TopOffset() int {
	return p.top
}

// LeftOffset returns the x offset used by texture placement.
func (p *Patch) LeftOffset() int {
	return p.left
}

// Columns returns the patch's columns, one per pixel of width.
func (p *Patch) Columns() []Column {
	return p.columns
}

func (p *Patch) String() string {
	return p.name
}

// A PatchBank is the list of patches named by the PNAMES lump, indexed by
// position. An entry may carry a name without a patch: the shareware IWAD's
// PNAMES lists lumps that don't exist, and that is tolerated.
type PatchBank struct {
	names   []string
	patches []*Patch
}

// LoadPatches loads the PNAMES lump and every patch image it names.
func LoadPatches(stack *wad.Stack) (*PatchBank, error) {
	lump, err := stack.Lump("PNAMES")
	if err != nil {
		return nil, err
	}
	cursor := lump.Cursor()

	if err := cursor.Need(4); err != nil {
		return nil, err
	}
	count := int(cursor.GetU32())

	names := make([]string, 0, min(count, pnamesCapClamp))
	patches := make([]*Patch, 0, min(count, pnamesCapClamp))

	for i := 0; i < count; i++ {
		if err := cursor.Need(8); err != nil {
			return nil, err
		}
		name := strings.ToUpper(cursor.GetName())

		patchLump, err := stack.TryLump(name)
		if err != nil {
			return nil, err
		}

		var patch *Patch
		if patchLump != nil {
			patch, err = loadPatch(name, patchLump)
			if err != nil {
				return nil, err
			}
		}

		names = append(names, name)
		patches = append(patches, patch)
	}

	if err := cursor.Done(); err != nil {
		return nil, err
	}

	return &PatchBank{names: names, patches: patches}, nil
}

// Len returns the number of PNAMES entries.
func (b *PatchBank) Len() int {
	return len(b.names)
}

// Name returns the name of entry index.
//
// Panics if index is out of bounds.
func (b *PatchBank) Name(index int) string {
	return b.names[index]
}

// Get returns the patch at index. The second result is false when the index
// is out of range or when PNAMES names a lump that doesn't exist; use Len and
// Name to tell the two apart.
func (b *PatchBank) Get(index int) (*Patch, bool) {
	if index < 0 || index >= len(b.patches) || b.patches[index] == nil {
		return nil, false
	}
	return b.patches[index], true
}

func loadPatch(name string, lump *wad.Lump) (*Patch, error) {
	cursor := lump.Cursor()

	// The two offsets are stored y first, matching the file layout.
	if err := cursor.Need(8); err != nil {
		return nil, err
	}
	width := int(cursor.GetU16())
	height := int(cursor.GetU16())
	top := int(cursor.GetI16())
	left := int(cursor.GetI16())

	offsets := make([]uint32, 0, min(width, columnCapClamp))
	if err := cursor.Need(4 * width); err != nil {
		return nil, err
	}
	for i := 0; i < width; i++ {
		offsets = append(offsets, cursor.GetU32())
	}
	// Column data isn't laid out sequentially; each column is read from its
	// own offset below.
	cursor.Clear()

	columns := make([]Column, 0, min(width, columnCapClamp))
	for _, offset := range offsets {
		column, err := loadColumn(lump, offset)
		if err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}

	return &Patch{
		name:    name,
		width:   width,
		height:  height,
		top:     top,
		left:    left,
		columns: columns,
	}, nil
}

func loadColumn(lump *wad.Lump, offset uint32) (Column, error) {
	cursor := lump.Cursor()
	if err := cursor.Skip(int(offset)); err != nil {
		return Column{}, err
	}

	var posts []Post
	lastRaw, lastY := -1, 0
	for {
		if err := cursor.Need(1); err != nil {
			return Column{}, err
		}
		raw := int(cursor.GetU8())
		if raw == 255 {
			break
		}

		// Tall patch rule: posts run top to bottom, so each raw y-offset is
		// normally greater than the last. A raw value <= the previous one
		// means "add to the previous effective offset", which is how offsets
		// past 254 are encoded.
		y := raw
		if lastRaw >= 0 && raw <= lastRaw {
			y = lastY + raw
		}
		lastRaw, lastY = raw, y

		if err := cursor.Need(2); err != nil {
			return Column{}, err
		}
		length := int(cursor.GetU8())
		cursor.GetU8() // unused

		if err := cursor.Need(length + 1); err != nil {
			return Column{}, err
		}
		pixels := cursor.SplitTo(length)
		cursor.GetU8() // unused

		posts = append(posts, Post{Y: y, Pixels: pixels})
	}
	cursor.Clear()

	return Column{Posts: posts}, nil
}
