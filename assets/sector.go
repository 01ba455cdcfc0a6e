package assets

import "github.com/jkugelman/dusty-room/wad"

// sectorSize is one SECTORS record: i16 floor height, i16 ceiling height,
// two 8-byte flat names, u16 light level, u16 special, u16 tag.
const sectorSize = 26

// A Sector is a horizontal region of the map with its own floor and ceiling.
type Sector struct {
	FloorHeight   int16
	CeilingHeight int16
	FloorFlat     *Flat
	CeilingFlat   *Flat
	// LightLevel saturates at 255; the lump stores a u16.
	LightLevel uint8
	Special    uint16
	Tag        uint16
}

func loadSectors(block *wad.Block, flats *FlatBank) ([]Sector, error) {
	lump, err := block.GetWithName(8, "SECTORS")
	if err != nil {
		return nil, err
	}
	if _, err := lump.ExpectSizeMultiple(sectorSize); err != nil {
		return nil, err
	}

	sectors := make([]Sector, 0, lump.Size()/sectorSize)
	cursor := lump.Cursor()
	for cursor.Len() > 0 {
		if err := cursor.Need(sectorSize); err != nil {
			return nil, err
		}
		floorHeight := cursor.GetI16()
		ceilingHeight := cursor.GetI16()
		floorName := cursor.GetName()
		ceilingName := cursor.GetName()
		lightLevel := cursor.GetU16()
		special := cursor.GetU16()
		tag := cursor.GetU16()

		floorFlat, ok := flats.Get(floorName)
		if !ok {
			return nil, block.Errorf("SECTOR #%d needs missing flat %s", len(sectors), floorName)
		}
		ceilingFlat, ok := flats.Get(ceilingName)
		if !ok {
			return nil, block.Errorf("SECTOR #%d needs missing flat %s", len(sectors), ceilingName)
		}

		sectors = append(sectors, Sector{
			FloorHeight:   floorHeight,
			CeilingHeight: ceilingHeight,
			FloorFlat:     floorFlat,
			CeilingFlat:   ceilingFlat,
			LightLevel:    saturateU8(lightLevel),
			Special:       special,
			Tag:           tag,
		})
	}
	if err := cursor.Done(); err != nil {
		return nil, err
	}

	return sectors, nil
}

func saturateU8(v uint16) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
