package assets

import (
	"sort"
	"strings"

	"github.com/jkugelman/dusty-room/wad"
)

const textureCapClamp = 512

// A Placement positions one patch within a composite texture.
type Placement struct {
	X, Y       int
	PatchIndex int
	Patch      *Patch
}

// A Texture is a composite wall texture assembled from placed patches.
type Texture struct {
	name       string
	width      int
	height     int
	placements []Placement
}

// Name returns the texture's name.
func (t *Texture) Name() string {
	return t.name
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	return t.height
}

// Placements returns the texture's patch placements.
func (t *Texture) Placements() []Placement {
	return t.placements
}

func (t *Texture) String() string {
	return t.name
}

// A TextureBank holds the composite textures from TEXTURE1 and TEXTURE2,
// indexed by name.
type TextureBank struct {
	textures map[string]*Texture
	names    []string
}

// LoadTextures loads TEXTURE1 and, when present, TEXTURE2. Every patch
// placement is resolved against the patch bank as it is read.
func LoadTextures(stack *wad.Stack, patches *PatchBank) (*TextureBank, error) {
	bank := &TextureBank{textures: make(map[string]*Texture)}

	lump, err := stack.Lump("TEXTURE1")
	if err != nil {
		return nil, err
	}
	if err := bank.loadLump(lump, patches); err != nil {
		return nil, err
	}

	lump, err = stack.TryLump("TEXTURE2")
	if err != nil {
		return nil, err
	}
	if lump != nil {
		if err := bank.loadLump(lump, patches); err != nil {
			return nil, err
		}
	}

	sort.Strings(bank.names)
	return bank, nil
}

func (b *TextureBank) loadLump(lump *wad.Lump, patches *PatchBank) error {
	cursor := lump.Cursor()

	if err := cursor.Need(4); err != nil {
		return err
	}
	count := int(cursor.GetU32())

	offsets := make([]uint32, 0, min(count, textureCapClamp))
	if err := cursor.Need(4 * count); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		offsets = append(offsets, cursor.GetU32())
	}
	cursor.Clear()

	for _, offset := range offsets {
		texture, err := loadTexture(lump, offset, patches)
		if err != nil {
			return err
		}

		// Names collide between TEXTURE1 and TEXTURE2 in the wild; the last
		// writer wins.
		key := strings.ToUpper(texture.name)
		if _, exists := b.textures[key]; !exists {
			b.names = append(b.names, key)
		}
		b.textures[key] = texture
	}

	return nil
}

func loadTexture(lump *wad.Lump, offset uint32, patches *PatchBank) (*Texture, error) {
	cursor := lump.Cursor()
	if err := cursor.Skip(int(offset)); err != nil {
		return nil, err
	}

	if err := cursor.Need(22); err != nil {
		return nil, err
	}
	name := cursor.GetName()
	cursor.GetU16() // flags
	cursor.GetU16() // unused
	width := int(cursor.GetU16())
	height := int(cursor.GetU16())
	cursor.GetU32() // unused
	placementCount := int(cursor.GetU16())

	if err := cursor.Need(10 * placementCount); err != nil {
		return nil, err
	}
	placements := make([]Placement, 0, min(placementCount, textureCapClamp))
	for i := 0; i < placementCount; i++ {
		x := int(cursor.GetU16())
		y := int(cursor.GetU16())
		index := int(cursor.GetU16())
		cursor.GetU16() // unused
		cursor.GetU16() // unused

		if index >= patches.Len() {
			return nil, lump.Errorf("%s patch #%d out of range", name, index)
		}
		patch, ok := patches.Get(index)
		if !ok {
			return nil, lump.Errorf("%s needs missing patch %s", name, patches.Name(index))
		}

		placements = append(placements, Placement{X: x, Y: y, PatchIndex: index, Patch: patch})
	}
	cursor.Clear()

	return &Texture{name: name, width: width, height: height, placements: placements}, nil
}

// Get looks up a texture by name. Names are uppercased before lookup.
func (b *TextureBank) Get(name string) (*Texture, bool) {
	texture, ok := b.textures[strings.ToUpper(name)]
	return texture, ok
}

// Names returns every texture name in sorted order.
func (b *TextureBank) Names() []string {
	return b.names
}

// Len returns the number of textures in the bank.
func (b *TextureBank) Len() int {
	return len(b.names)
}
