package assets

import (
	"sort"
	"strings"

	"github.com/jkugelman/dusty-room/wad"
)

// Flats are always 64x64.
const (
	FlatWidth  = 64
	FlatHeight = 64
)

// A Flat is a 64x64 floor or ceiling texture. Its pixels are palette indices
// in row-major order.
type Flat struct {
	name   string
	pixels []byte
}

func loadFlat(lump *wad.Lump) (*Flat, error) {
	if _, err := lump.ExpectSize(FlatWidth * FlatHeight); err != nil {
		return nil, err
	}
	return &Flat{name: lump.Name(), pixels: lump.Data()}, nil
}

// Name returns the flat's name, the name of its lump.
func (f *Flat) Name() string {
	return f.name
}

// Pixels returns the flat's 4096 palette indices in row-major order.
func (f *Flat) Pixels() []byte {
	return f.pixels
}

// At returns the palette index at (x, y).
func (f *Flat) At(x, y int) uint8 {
	return f.pixels[y*FlatWidth+x]
}

func (f *Flat) String() string {
	return f.name
}

// A FlatBank holds every flat in a stack, indexed by name.
type FlatBank struct {
	flats map[string]*Flat
	names []string
}

// LoadFlats loads every non-empty lump between the F_START and F_END markers.
// Empty marker lumps inside the range are skipped. Duplicate names are an
// error.
func LoadFlats(stack *wad.Stack) (*FlatBank, error) {
	block, err := stack.LumpsBetween("F_START", "F_END")
	if err != nil {
		return nil, err
	}

	flats := make(map[string]*Flat)
	for _, lump := range block.Lumps() {
		if lump.IsEmpty() {
			continue
		}

		flat, err := loadFlat(lump)
		if err != nil {
			return nil, err
		}
		if _, exists := flats[flat.name]; exists {
			return nil, lump.Errorf("duplicate flat %s", flat.name)
		}
		flats[flat.name] = flat
	}

	names := make([]string, 0, len(flats))
	for name := range flats {
		names = append(names, name)
	}
	sort.Strings(names)

	return &FlatBank{flats: flats, names: names}, nil
}

// Get looks up a flat by name. Names are uppercased before lookup.
func (b *FlatBank) Get(name string) (*Flat, bool) {
	flat, ok := b.flats[strings.ToUpper(name)]
	return flat, ok
}

// Names returns every flat name in sorted order.
func (b *FlatBank) Names() []string {
	return b.names
}

// Len returns the number of flats in the bank.
func (b *FlatBank) Len() int {
	return len(b.names)
}
