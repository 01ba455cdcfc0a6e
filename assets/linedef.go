package assets

import "github.com/jkugelman/dusty-room/wad"

// linedefSize is one LINEDEFS record: u16 start vertex, u16 end vertex, u16
// flags, u16 special, u16 tag, u16 right sidedef, u16 left sidedef.
const linedefSize = 14

// noSidedef marks an absent left sidedef in the lump.
const noSidedef = 0xffff

// A Linedef is a one- or two-sided line between two vertexes. Every line has
// a right sidedef; two-sided lines have a left one as well.
type Linedef struct {
	StartVertex  uint16
	EndVertex    uint16
	Flags        uint16
	Special      uint16
	Tag          uint16
	RightSidedef uint16
	// LeftSidedef is -1 when the line is one-sided.
	LeftSidedef int
}

// TwoSided reports whether the line has a left sidedef.
func (l *Linedef) TwoSided() bool {
	return l.LeftSidedef >= 0
}

func loadLinedefs(block *wad.Block, vertexCount, sidedefCount int) ([]Linedef, error) {
	lump, err := block.GetWithName(2, "LINEDEFS")
	if err != nil {
		return nil, err
	}
	if _, err := lump.ExpectSizeMultiple(linedefSize); err != nil {
		return nil, err
	}

	linedefs := make([]Linedef, 0, lump.Size()/linedefSize)
	cursor := lump.Cursor()
	for cursor.Len() > 0 {
		if err := cursor.Need(linedefSize); err != nil {
			return nil, err
		}
		startVertex := cursor.GetU16()
		endVertex := cursor.GetU16()
		flags := cursor.GetU16()
		special := cursor.GetU16()
		tag := cursor.GetU16()
		rightSidedef := cursor.GetU16()
		leftSidedef := cursor.GetU16()

		index := len(linedefs)
		if int(startVertex) >= vertexCount {
			return nil, block.Errorf("LINEDEF #%d has invalid vertex #%d", index, startVertex)
		}
		if int(endVertex) >= vertexCount {
			return nil, block.Errorf("LINEDEF #%d has invalid vertex #%d", index, endVertex)
		}
		if int(rightSidedef) >= sidedefCount {
			return nil, block.Errorf("LINEDEF #%d has invalid sidedef #%d", index, rightSidedef)
		}

		left := -1
		if leftSidedef != noSidedef {
			if int(leftSidedef) >= sidedefCount {
				return nil, block.Errorf("LINEDEF #%d has invalid sidedef #%d", index, leftSidedef)
			}
			left = int(leftSidedef)
		}

		linedefs = append(linedefs, Linedef{
			StartVertex:  startVertex,
			EndVertex:    endVertex,
			Flags:        flags,
			Special:      special,
			Tag:          tag,
			RightSidedef: rightSidedef,
			LeftSidedef:  left,
		})
	}
	if err := cursor.Done(); err != nil {
		return nil, err
	}

	return linedefs, nil
}
