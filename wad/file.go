package wad

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/afero"
)

// Kind distinguishes the two WAD flavors.
type Kind int

const (
	// Iwad is an "internal WAD" such as doom.wad: a self-sufficient base
	// archive containing everything needed to play.
	Iwad Kind = iota
	// Pwad is a "patch WAD": an overlay archive layered on top of an IWAD to
	// override individual lumps.
	Pwad
)

func (k Kind) String() string {
	switch k {
	case Iwad:
		return "IWAD"
	case Pwad:
		return "PWAD"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// headerSize is the fixed WAD header: 4-byte magic, u32 lump count, u32
// directory offset.
const headerSize = 12

// dirEntrySize is one directory entry: u32 offset, u32 size, 8-byte name.
const dirEntrySize = 16

// dirCapClamp bounds the directory pre-allocation so an attacker-controlled
// lump count can't make us allocate unbounded memory up front. It has no
// effect on how many entries are eventually accepted.
const dirCapClamp = 4096

type dirEntry struct {
	offset uint32
	size   uint32
	name   string
}

// A File is a single loaded IWAD or PWAD. It owns one immutable buffer
// holding the whole file; every Lump it hands out is a view into that buffer.
//
// This is a low level type. Most code works with a Stack of files instead.
type File struct {
	path string
	kind Kind
	data []byte
	dir  []dirEntry
	// index maps each name to the directory indices that carry it, in
	// directory order. A flat map with per-name index lists is all the
	// lookup policy needs.
	index map[string][]int
}

// OpenFile reads a WAD file from disk.
func OpenFile(path string) (*File, error) {
	return OpenFileFs(afero.NewOsFs(), path)
}

// OpenFileFs reads a WAD file from the given filesystem. Tests use this with
// an in-memory filesystem.
func OpenFileFs(fsys afero.Fs, path string) (*File, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, errPath(path, err)
	}
	if info.Size() > int64(math.MaxInt) {
		return nil, errPath(path, fmt.Errorf("file too large: %d bytes", info.Size()))
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errPath(path, err)
	}
	return loadFile(path, data)
}

func loadFile(path string, data []byte) (*File, error) {
	kind, lumpCount, dirOffset, err := parseHeader(path, data)
	if err != nil {
		return nil, err
	}

	dir, err := parseDirectory(path, data, lumpCount, dirOffset)
	if err != nil {
		return nil, err
	}

	index := make(map[string][]int)
	for i, entry := range dir {
		index[entry.name] = append(index[entry.name], i)
	}

	return &File{path: path, kind: kind, data: data, dir: dir, index: index}, nil
}

func parseHeader(path string, data []byte) (Kind, int, int, error) {
	var kind Kind
	switch {
	case len(data) >= 4 && string(data[0:4]) == "IWAD":
		kind = Iwad
	case len(data) >= 4 && string(data[0:4]) == "PWAD":
		kind = Pwad
	default:
		return 0, 0, 0, malformed(path, "not a WAD file")
	}

	if len(data) < headerSize {
		return 0, 0, 0, malformed(path, "truncated header")
	}

	lumpCount := binary.LittleEndian.Uint32(data[4:8])
	dirOffset := binary.LittleEndian.Uint32(data[8:12])
	if int64(dirOffset) > int64(len(data)) {
		return 0, 0, 0, malformed(path, "bad directory offset %d", dirOffset)
	}

	return kind, int(lumpCount), int(dirOffset), nil
}

func parseDirectory(path string, data []byte, lumpCount, dirOffset int) ([]dirEntry, error) {
	dir := make([]dirEntry, 0, min(lumpCount, dirCapClamp))

	pos := dirOffset
	for i := 0; i < lumpCount; i++ {
		if pos+dirEntrySize > len(data) {
			return nil, malformed(path, "truncated directory: %d of %d entries", i, lumpCount)
		}

		offset := binary.LittleEndian.Uint32(data[pos : pos+4])
		size := binary.LittleEndian.Uint32(data[pos+4 : pos+8])
		var raw [8]byte
		copy(raw[:], data[pos+8:pos+16])
		pos += dirEntrySize

		name := ParseName(raw)
		if !IsLegalName(name) {
			return nil, malformed(path, "bad lump name %q", name)
		}
		if uint64(offset)+uint64(size) > uint64(len(data)) {
			return nil, malformed(path, "%s (offset %d, size %d) runs past end of file", name, offset, size)
		}

		dir = append(dir, dirEntry{offset: offset, size: size, name: name})
	}

	return dir, nil
}

// Path returns the file's path on disk. It is for display only.
func (f *File) Path() string {
	return f.path
}

// Kind reports whether this is an IWAD or PWAD.
func (f *File) Kind() Kind {
	return f.kind
}

// ExpectKind checks that the file is the expected kind, returning the file
// unchanged when it is.
func (f *File) ExpectKind(expected Kind) (*File, error) {
	if f.kind == expected {
		return f, nil
	}
	return nil, &WrongKindError{Path: f.path, Expected: expected}
}

// LumpCount returns the number of lumps in the directory.
func (f *File) LumpCount() int {
	return len(f.dir)
}

// Lumps returns views of every lump in directory order.
func (f *File) Lumps() []*Lump {
	lumps := make([]*Lump, len(f.dir))
	for i := range f.dir {
		lumps[i] = f.lumpAt(i)
	}
	return lumps
}

func (f *File) lumpAt(index int) *Lump {
	entry := f.dir[index]
	return &Lump{
		file: f,
		name: entry.name,
		data: f.data[entry.offset : entry.offset+entry.size : entry.offset+entry.size],
	}
}

// Lump retrieves a unique lump by name.
//
// It is an error if the lump is missing.
func (f *File) Lump(name string) (*Lump, error) {
	lump, err := f.TryLump(name)
	if err != nil {
		return nil, err
	}
	if lump == nil {
		return nil, malformed(f.path, "%s missing", strings.ToUpper(name))
	}
	return lump, nil
}

// TryLump retrieves a unique lump by name, or nil if it is missing.
func (f *File) TryLump(name string) (*Lump, error) {
	index, ok, err := f.tryLumpIndex(name)
	if err != nil || !ok {
		return nil, err
	}
	return f.lumpAt(index), nil
}

// LumpsFollowing retrieves a block of size lumps starting at a unique named
// marker. The marker lump is included in the result.
//
// It is an error if the marker is missing or if fewer than size lumps remain
// after it.
//
// Panics if size < 1.
func (f *File) LumpsFollowing(start string, size int) (*Block, error) {
	block, err := f.TryLumpsFollowing(start, size)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, malformed(f.path, "%s missing", strings.ToUpper(start))
	}
	return block, nil
}

// TryLumpsFollowing retrieves a block of size lumps starting at a unique
// named marker, or nil if the marker is missing.
//
// Panics if size < 1.
func (f *File) TryLumpsFollowing(start string, size int) (*Block, error) {
	if size < 1 {
		panic("wad: block size must be at least 1")
	}

	startIndex, ok, err := f.tryLumpIndex(start)
	if err != nil || !ok {
		return nil, err
	}

	if startIndex+size >= len(f.dir) {
		return nil, malformed(f.path, "%s missing lumps", strings.ToUpper(start))
	}

	return f.block(startIndex, startIndex+size), nil
}

// LumpsBetween retrieves the block of lumps between unique start and end
// markers. Both markers are included in the result.
//
// It is an error if the block is missing.
func (f *File) LumpsBetween(start, end string) (*Block, error) {
	block, err := f.TryLumpsBetween(start, end)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, malformed(f.path, "%s and %s missing", strings.ToUpper(start), strings.ToUpper(end))
	}
	return block, nil
}

// TryLumpsBetween retrieves the block of lumps between unique start and end
// markers, or nil if both markers are missing. One marker without the other
// is an error, as are markers in the wrong order.
func (f *File) TryLumpsBetween(start, end string) (*Block, error) {
	startIndex, haveStart, err := f.tryLumpIndex(start)
	if err != nil {
		return nil, err
	}
	endIndex, haveEnd, err := f.tryLumpIndex(end)
	if err != nil {
		return nil, err
	}

	switch {
	case !haveStart && !haveEnd:
		return nil, nil
	case haveStart && !haveEnd:
		return nil, malformed(f.path, "%s without %s", strings.ToUpper(start), strings.ToUpper(end))
	case !haveStart && haveEnd:
		return nil, malformed(f.path, "%s without %s", strings.ToUpper(end), strings.ToUpper(start))
	}

	if startIndex > endIndex {
		return nil, malformed(f.path, "%s after %s", strings.ToUpper(start), strings.ToUpper(end))
	}

	return f.block(startIndex, endIndex+1), nil
}

func (f *File) block(start, end int) *Block {
	lumps := make([]*Lump, 0, end-start)
	for i := start; i < end; i++ {
		lumps = append(lumps, f.lumpAt(i))
	}
	return newBlock(lumps)
}

// tryLumpIndex resolves a name to a directory index. Names are uppercased
// before lookup; the shipped IWADs reference a lowercase w94_1 from PNAMES.
//
// A name carried by several entries is normally an error, but the official
// IWADs ship accidental exact duplicates (SW18_7, COMP03_8). When every
// duplicate has identical, non-empty contents the last index wins.
func (f *File) tryLumpIndex(name string) (int, bool, error) {
	indices := f.index[strings.ToUpper(name)]

	switch len(indices) {
	case 0:
		return 0, false, nil
	case 1:
		return indices[0], true, nil
	}

	first := f.lumpAt(indices[0])
	identical := !first.IsEmpty()
	for _, index := range indices[1:] {
		if !bytes.Equal(f.lumpAt(index).data, first.data) {
			identical = false
			break
		}
	}
	if identical {
		return indices[len(indices)-1], true, nil
	}

	return 0, false, malformed(f.path, "%s found %d times", strings.ToUpper(name), len(indices))
}

// Errorf builds a malformed-file error blaming this file.
func (f *File) Errorf(format string, args ...any) error {
	return malformed(f.path, format, args...)
}

func (f *File) String() string {
	return f.path
}
