package wadtest

// Palette renders one 768-byte PLAYPAL palette, asking color for each of the
// 256 entries.
func Palette(color func(index int) (r, g, b uint8)) []byte {
	data := make([]byte, 0, 768)
	for i := 0; i < 256; i++ {
		r, g, b := color(i)
		data = append(data, r, g, b)
	}
	return data
}

// Flat renders a 4096-byte flat filled with a single palette index.
func Flat(fill uint8) []byte {
	data := make([]byte, 64*64)
	for i := range data {
		data[i] = fill
	}
	return data
}

// Pnames renders a PNAMES lump.
func Pnames(names ...string) []byte {
	data := AppendU32(nil, uint32(len(names)))
	for _, name := range names {
		data = AppendName(data, name)
	}
	return data
}

// A Post is one vertical pixel run in a patch column. Raw is the y-offset
// byte exactly as stored, so tests can exercise the tall-patch accumulation
// rule.
type Post struct {
	Raw    uint8
	Pixels []byte
}

// Patch renders a column-encoded patch lump. Each column is a sequence of
// posts; the 255 terminator and the unused padding bytes around each pixel
// run are added here.
func Patch(width, height int, top, left int16, columns ...[]Post) []byte {
	if len(columns) != width {
		panic("wadtest: column count must equal width")
	}

	data := AppendU16(nil, uint16(width))
	data = AppendU16(data, uint16(height))
	data = AppendI16(data, top)
	data = AppendI16(data, left)

	// Column offsets point past the header and offset table.
	offset := 8 + 4*width
	var cols []byte
	for _, posts := range columns {
		data = AppendU32(data, uint32(offset+len(cols)))
		for _, post := range posts {
			cols = append(cols, post.Raw, uint8(len(post.Pixels)), 0)
			cols = append(cols, post.Pixels...)
			cols = append(cols, 0)
		}
		cols = append(cols, 255)
	}

	return append(data, cols...)
}

// A Placement positions a patch within a composite texture.
type Placement struct {
	X, Y  uint16
	Index uint16
}

// A Texture describes one composite texture record.
type Texture struct {
	Name          string
	Width, Height uint16
	Patches       []Placement
}

// Textures renders a TEXTURE1/TEXTURE2 lump.
func Textures(textures ...Texture) []byte {
	data := AppendU32(nil, uint32(len(textures)))

	// Offset table, then the 22-byte records with their placements.
	offset := 4 + 4*len(textures)
	var records []byte
	for _, tex := range textures {
		data = AppendU32(data, uint32(offset+len(records)))
		records = AppendName(records, tex.Name)
		records = AppendU16(records, 0) // flags
		records = AppendU16(records, 0)
		records = AppendU16(records, tex.Width)
		records = AppendU16(records, tex.Height)
		records = AppendU32(records, 0)
		records = AppendU16(records, uint16(len(tex.Patches)))
		for _, p := range tex.Patches {
			records = AppendU16(records, p.X)
			records = AppendU16(records, p.Y)
			records = AppendU16(records, p.Index)
			records = AppendU16(records, 0)
			records = AppendU16(records, 0)
		}
	}

	return append(data, records...)
}
