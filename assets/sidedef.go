package assets

import "github.com/jkugelman/dusty-room/wad"

// sidedefSize is one SIDEDEFS record: i16 x offset, i16 y offset, three
// 8-byte texture names, u16 sector index.
const sidedefSize = 30

// A Sidedef describes the wall textures on one side of a linedef. Any of the
// three textures may be nil; the lump stores "-" for an absent texture.
type Sidedef struct {
	XOffset       int16
	YOffset       int16
	UpperTexture  *Texture
	LowerTexture  *Texture
	MiddleTexture *Texture
	Sector        uint16
}

func loadSidedefs(block *wad.Block, textures *TextureBank, sectorCount int) ([]Sidedef, error) {
	lump, err := block.GetWithName(3, "SIDEDEFS")
	if err != nil {
		return nil, err
	}
	if _, err := lump.ExpectSizeMultiple(sidedefSize); err != nil {
		return nil, err
	}

	sidedefs := make([]Sidedef, 0, lump.Size()/sidedefSize)
	cursor := lump.Cursor()
	for cursor.Len() > 0 {
		if err := cursor.Need(sidedefSize); err != nil {
			return nil, err
		}
		xOffset := cursor.GetI16()
		yOffset := cursor.GetI16()
		upperName := cursor.GetName()
		lowerName := cursor.GetName()
		middleName := cursor.GetName()
		sector := cursor.GetU16()

		getTexture := func(name string) (*Texture, error) {
			if name == "-" {
				return nil, nil
			}
			texture, ok := textures.Get(name)
			if !ok {
				return nil, block.Errorf("SIDEDEF #%d needs missing texture %s", len(sidedefs), name)
			}
			return texture, nil
		}

		upper, err := getTexture(upperName)
		if err != nil {
			return nil, err
		}
		lower, err := getTexture(lowerName)
		if err != nil {
			return nil, err
		}
		middle, err := getTexture(middleName)
		if err != nil {
			return nil, err
		}

		if int(sector) >= sectorCount {
			return nil, block.Errorf("SIDEDEF #%d has invalid sector #%d", len(sidedefs), sector)
		}

		sidedefs = append(sidedefs, Sidedef{
			XOffset:       xOffset,
			YOffset:       yOffset,
			UpperTexture:  upper,
			LowerTexture:  lower,
			MiddleTexture: middle,
			Sector:        sector,
		})
	}
	if err := cursor.Done(); err != nil {
		return nil, err
	}

	return sidedefs, nil
}
