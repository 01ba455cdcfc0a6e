package assets

import "github.com/jkugelman/dusty-room/wad"

// vertexSize is one VERTEXES record: i16 x, i16 y.
const vertexSize = 4

// A Vertex is a map corner point.
type Vertex struct {
	X, Y int16
}

func loadVertexes(block *wad.Block) ([]Vertex, error) {
	lump, err := block.GetWithName(4, "VERTEXES")
	if err != nil {
		return nil, err
	}
	if _, err := lump.ExpectSizeMultiple(vertexSize); err != nil {
		return nil, err
	}

	vertexes := make([]Vertex, 0, lump.Size()/vertexSize)
	cursor := lump.Cursor()
	for cursor.Len() > 0 {
		if err := cursor.Need(vertexSize); err != nil {
			return nil, err
		}
		x := cursor.GetI16()
		y := cursor.GetI16()
		vertexes = append(vertexes, Vertex{X: x, Y: y})
	}
	if err := cursor.Done(); err != nil {
		return nil, err
	}

	return vertexes, nil
}
