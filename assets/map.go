package assets

import (
	"strings"

	"github.com/jkugelman/dusty-room/wad"
)

// mapBlockSize is the fixed 11-lump map block: the name marker, THINGS,
// LINEDEFS, SIDEDEFS, VERTEXES, SEGS, SSECTORS, NODES, SECTORS, REJECT,
// BLOCKMAP.
const mapBlockSize = 11

// thingSize is one THINGS record. Things aren't decoded yet, but the lump
// length is still checked.
const thingSize = 10

// A Map is one level's geometry, loaded from the 11-lump block following its
// name marker. Cross-references are validated at load time: every linedef
// points at real vertexes and sidedefs, every sidedef at a real sector and
// real textures, every sector at real flats.
type Map struct {
	name     string
	things   []byte
	vertexes []Vertex
	linedefs []Linedef
	sidedefs []Sidedef
	sectors  []Sector
}

// LoadMap loads a map by its marker name, typically ExMy for DOOM or MAPnn
// for DOOM II.
//
// It is an error if the map is missing.
func LoadMap(stack *wad.Stack, name string, flats *FlatBank, textures *TextureBank) (*Map, error) {
	block, err := stack.LumpsFollowing(name, mapBlockSize)
	if err != nil {
		return nil, err
	}
	return loadMapBlock(block, name, flats, textures)
}

// TryLoadMap loads a map by its marker name, or returns nil if the map is
// missing.
func TryLoadMap(stack *wad.Stack, name string, flats *FlatBank, textures *TextureBank) (*Map, error) {
	block, err := stack.TryLumpsFollowing(name, mapBlockSize)
	if err != nil || block == nil {
		return nil, err
	}
	return loadMapBlock(block, name, flats, textures)
}

func loadMapBlock(block *wad.Block, name string, flats *FlatBank, textures *TextureBank) (*Map, error) {
	things, err := loadThings(block)
	if err != nil {
		return nil, err
	}
	vertexes, err := loadVertexes(block)
	if err != nil {
		return nil, err
	}
	sectors, err := loadSectors(block, flats)
	if err != nil {
		return nil, err
	}
	sidedefs, err := loadSidedefs(block, textures, len(sectors))
	if err != nil {
		return nil, err
	}
	linedefs, err := loadLinedefs(block, len(vertexes), len(sidedefs))
	if err != nil {
		return nil, err
	}

	return &Map{
		name:     strings.ToUpper(name),
		things:   things,
		vertexes: vertexes,
		linedefs: linedefs,
		sidedefs: sidedefs,
		sectors:  sectors,
	}, nil
}

// loadThings keeps the THINGS lump as an opaque blob.
func loadThings(block *wad.Block) ([]byte, error) {
	lump, err := block.GetWithName(1, "THINGS")
	if err != nil {
		return nil, err
	}
	if _, err := lump.ExpectSizeMultiple(thingSize); err != nil {
		return nil, err
	}
	return lump.Data(), nil
}

// Name returns the map's marker name, uppercased.
func (m *Map) Name() string {
	return m.name
}

// Things returns the raw THINGS lump bytes.
func (m *Map) Things() []byte {
	return m.things
}

// Vertexes returns the map's vertexes.
func (m *Map) Vertexes() []Vertex {
	return m.vertexes
}

// Linedefs returns the map's linedefs.
func (m *Map) Linedefs() []Linedef {
	return m.linedefs
}

// Sidedefs returns the map's sidedefs.
func (m *Map) Sidedefs() []Sidedef {
	return m.sidedefs
}

// Sectors returns the map's sectors.
func (m *Map) Sectors() []Sector {
	return m.sectors
}

func (m *Map) String() string {
	return m.name
}
