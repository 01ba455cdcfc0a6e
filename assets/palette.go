// package assets decodes the typed game data stored in a WAD stack: color
// palettes, floor and ceiling flats, patches, composite wall textures, and
// map geometry. Every decoder treats the lump bytes as untrusted input.
package assets

import (
	"fmt"

	"github.com/jkugelman/dusty-room/wad"
)

// A Color is one RGB palette entry.
type Color struct {
	R, G, B uint8
}

// RGB creates a color with the given values.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// paletteSize is 256 colors at 3 bytes each.
const paletteSize = 256 * 3

// A Palette is a 256-color palette, one of the set in PLAYPAL.
type Palette [256]Color

// A PaletteBank is the set of palettes loaded from the PLAYPAL lump. Only one
// palette is active at a time; the active index is the bank's only mutable
// state, and it starts unset.
type PaletteBank struct {
	palettes []Palette
	active   int
}

// LoadPalettes loads the palette bank from a stack's PLAYPAL lump.
func LoadPalettes(stack *wad.Stack) (*PaletteBank, error) {
	lump, err := stack.Lump("PLAYPAL")
	if err != nil {
		return nil, err
	}
	if lump.IsEmpty() {
		return nil, lump.Errorf("empty")
	}
	if _, err := lump.ExpectSizeMultiple(paletteSize); err != nil {
		return nil, err
	}

	palettes := make([]Palette, lump.Size()/paletteSize)
	cursor := lump.Cursor()
	for i := range palettes {
		if err := cursor.Need(paletteSize); err != nil {
			return nil, err
		}
		for j := 0; j < 256; j++ {
			palettes[i][j] = Color{R: cursor.GetU8(), G: cursor.GetU8(), B: cursor.GetU8()}
		}
	}
	if err := cursor.Done(); err != nil {
		return nil, err
	}

	return &PaletteBank{palettes: palettes, active: -1}, nil
}

// Count returns the number of selectable palettes. It is always at least 1
// after a successful load.
func (b *PaletteBank) Count() int {
	return len(b.palettes)
}

// Active returns the active palette.
//
// Panics if no palette has been selected yet.
func (b *PaletteBank) Active() *Palette {
	if b.active < 0 {
		panic("assets: no active palette selected")
	}
	return &b.palettes[b.active]
}

// SetActive selects and returns the active palette. Concurrent readers must
// synchronize with callers of SetActive externally.
//
// Panics if index is out of range.
func (b *PaletteBank) SetActive(index int) *Palette {
	if index < 0 || index >= b.Count() {
		panic(fmt.Sprintf("assets: palette %d out of range", index))
	}
	b.active = index
	return b.Active()
}
