package wad

import (
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/jkugelman/dusty-room/internal/wadtest"
)

func openTestBytes(t *testing.T, data []byte) (*File, error) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "test.wad", data, 0o644))
	return OpenFileFs(fsys, "test.wad")
}

// mapLumps is a well-formed 11-lump map block for directory tests. The lump
// contents don't matter here, only the names and ordering.
func mapLumps(b *wadtest.Builder, marker string) *wadtest.Builder {
	b.Marker(marker)
	for _, name := range []string{
		"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SEGS",
		"SSECTORS", "NODES", "SECTORS", "REJECT", "BLOCKMAP",
	} {
		b.Add(name, []byte{0})
	}
	return b
}

func TestOpenFile(t *testing.T) {
	file := openTestFile(t, wadtest.NewIwad().Add("DEMO1", []byte{1, 2, 3}).Marker("E1M1"))

	require.Equal(t, Iwad, file.Kind())
	require.Equal(t, 2, file.LumpCount())

	lump, err := file.Lump("DEMO1")
	require.NoError(t, err)
	require.Equal(t, "DEMO1", lump.Name())
	require.Equal(t, []byte{1, 2, 3}, lump.Data())
	require.Equal(t, 3, lump.Size())

	marker, err := file.Lump("E1M1")
	require.NoError(t, err)
	require.True(t, marker.IsEmpty())

	pwad := openTestFile(t, wadtest.NewPwad().Add("DEMO3", []byte{9}))
	require.Equal(t, Pwad, pwad.Kind())
}

func TestOpenNotAWad(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		[]byte("WAD"),
		[]byte("JUNKJUNKJUNKJUNK"),
		append([]byte("WAD2"), make([]byte, 8)...),
	} {
		_, err := openTestBytes(t, data)
		var malformed *MalformedError
		require.ErrorAs(t, err, &malformed)
		require.Equal(t, "not a WAD file", malformed.Desc)
	}
}

func TestOpenTruncatedHeader(t *testing.T) {
	_, err := openTestBytes(t, []byte("IWAD\x01\x00"))
	require.ErrorAs(t, err, new(*MalformedError))
}

func TestOpenBadDirectoryOffset(t *testing.T) {
	data := wadtest.NewIwad().Add("DEMO1", []byte{1}).Bytes()
	binary.LittleEndian.PutUint32(data[8:], uint32(len(data)+1))

	_, err := openTestBytes(t, data)
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	require.Contains(t, malformed.Desc, "bad directory offset")
}

func TestOpenTruncatedDirectory(t *testing.T) {
	data := wadtest.NewIwad().Add("DEMO1", []byte{1}).Bytes()
	binary.LittleEndian.PutUint32(data[4:], 2) // claims one more entry than exists

	_, err := openTestBytes(t, data)
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	require.Contains(t, malformed.Desc, "truncated directory")
}

func TestOpenBadLumpName(t *testing.T) {
	for _, name := range []string{"demo1", "BAD NAME", "D\xe9MO"} {
		_, err := openTestBytes(t, wadtest.NewIwad().Add(name, []byte{1}).Bytes())
		var malformed *MalformedError
		require.ErrorAs(t, err, &malformed)
		require.Contains(t, malformed.Desc, "bad lump name")
	}
}

func TestOpenLumpOutOfBounds(t *testing.T) {
	data := wadtest.NewIwad().Add("DEMO1", []byte{1, 2, 3}).Bytes()
	// The directory is the last 16 bytes; inflate the lump's size field.
	sizeAt := len(data) - 12
	binary.LittleEndian.PutUint32(data[sizeAt:], uint32(len(data)))

	_, err := openTestBytes(t, data)
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	require.Contains(t, malformed.Desc, "runs past end of file")
}

func TestLookupIsUppercased(t *testing.T) {
	file := openTestFile(t, wadtest.NewIwad().Add("W94_1", []byte{1}))

	lump, err := file.Lump("w94_1")
	require.NoError(t, err)
	require.Equal(t, "W94_1", lump.Name())
}

func TestMissingLump(t *testing.T) {
	file := openTestFile(t, wadtest.NewIwad().Add("DEMO1", []byte{1}))

	lump, err := file.TryLump("DEMO2")
	require.NoError(t, err)
	require.Nil(t, lump)

	_, err = file.Lump("DEMO2")
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "DEMO2 missing", malformed.Desc)
}

func TestIdenticalDuplicatesTolerated(t *testing.T) {
	file := openTestFile(t, wadtest.NewIwad().
		Add("SW18_7", []byte{1, 2, 3}).
		Add("FILLER", []byte{0}).
		Add("SW18_7", []byte{1, 2, 3}))

	lump, err := file.Lump("SW18_7")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, lump.Data())
}

func TestDivergentDuplicatesRejected(t *testing.T) {
	file := openTestFile(t, wadtest.NewIwad().
		Add("THINGS", []byte{1}).
		Add("THINGS", []byte{2}))

	_, err := file.Lump("THINGS")
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "THINGS found 2 times", malformed.Desc)

	// Try variants surface the same error rather than nil.
	_, err = file.TryLump("THINGS")
	require.Error(t, err)
}

func TestEmptyDuplicatesRejected(t *testing.T) {
	file := openTestFile(t, wadtest.NewIwad().Marker("E1M1").Marker("E1M1"))

	_, err := file.Lump("E1M1")
	require.ErrorAs(t, err, new(*MalformedError))
}

func TestLumpsFollowing(t *testing.T) {
	b := mapLumps(wadtest.NewIwad(), "E1M1")
	b.Marker("F_START") // trailing lump so the block isn't at the very end
	file := openTestFile(t, b)

	block, err := file.LumpsFollowing("E1M1", 11)
	require.NoError(t, err)
	require.Equal(t, 11, block.Len())
	require.Equal(t, "E1M1", block.Name())
	require.Equal(t, "THINGS", block.Get(1).Name())
	require.Equal(t, "BLOCKMAP", block.Last().Name())

	// The block's own THINGS is reachable even though a unique lookup of a
	// multi-map WAD's THINGS would fail.
	lump, err := block.GetWithName(1, "THINGS")
	require.NoError(t, err)
	require.Equal(t, "THINGS", lump.Name())
}

func TestLumpsFollowingMissingMarker(t *testing.T) {
	file := openTestFile(t, wadtest.NewIwad().Add("DEMO1", []byte{1}).Add("DEMO2", []byte{2}))

	block, err := file.TryLumpsFollowing("E9M9", 1)
	require.NoError(t, err)
	require.Nil(t, block)

	_, err = file.LumpsFollowing("E9M9", 1)
	require.ErrorAs(t, err, new(*MalformedError))
}

func TestLumpsFollowingTooFewLumps(t *testing.T) {
	file := openTestFile(t, mapLumps(wadtest.NewIwad(), "E1M1"))

	// Eleven lumps exist but none remain after them.
	_, err := file.LumpsFollowing("E1M1", 11)
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "E1M1 missing lumps", malformed.Desc)
}

func TestLumpsFollowingZeroSizePanics(t *testing.T) {
	file := openTestFile(t, wadtest.NewIwad().Add("DEMO1", []byte{1}))

	require.Panics(t, func() { _, _ = file.LumpsFollowing("DEMO1", 0) })
	require.Panics(t, func() { _, _ = file.TryLumpsFollowing("DEMO1", -1) })
}

func TestLumpsBetween(t *testing.T) {
	file := openTestFile(t, wadtest.NewIwad().
		Marker("F_START").
		Add("FLOOR4_8", []byte{1}).
		Add("FLOOR5_1", []byte{2}).
		Marker("F_END").
		Add("DEMO1", []byte{3}))

	block, err := file.LumpsBetween("F_START", "F_END")
	require.NoError(t, err)
	require.Equal(t, 4, block.Len())
	require.Equal(t, "F_START", block.First().Name())
	require.Equal(t, "F_END", block.Last().Name())
	require.Equal(t, "FLOOR5_1", block.Get(2).Name())

	_, err = file.LumpsBetween("F_END", "F_START")
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "F_END after F_START", malformed.Desc)
}

func TestLumpsBetweenMissingMarkers(t *testing.T) {
	file := openTestFile(t, wadtest.NewIwad().Marker("S_START").Add("DEMO1", []byte{1}))

	_, err := file.LumpsBetween("S_START", "S_END")
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "S_START without S_END", malformed.Desc)

	_, err = file.LumpsBetween("P_START", "S_END")
	require.Error(t, err)

	block, err := file.TryLumpsBetween("P_START", "P_END")
	require.NoError(t, err)
	require.Nil(t, block)

	_, err = file.LumpsBetween("P_START", "P_END")
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "P_START and P_END missing", malformed.Desc)
}

func TestExpectKind(t *testing.T) {
	file := openTestFile(t, wadtest.NewIwad().Add("DEMO1", []byte{1}))

	same, err := file.ExpectKind(Iwad)
	require.NoError(t, err)
	require.Same(t, file, same)

	_, err = file.ExpectKind(Pwad)
	var wrongKind *WrongKindError
	require.ErrorAs(t, err, &wrongKind)
	require.Equal(t, Pwad, wrongKind.Expected)
	require.Contains(t, err.Error(), "not a PWAD")
}

func TestReloadIsDeterministic(t *testing.T) {
	b := mapLumps(wadtest.NewIwad(), "E1M1").Add("DEMO1", []byte{1, 2, 3})

	first := openTestFile(t, b)
	second := openTestFile(t, b)

	require.Equal(t, first.LumpCount(), second.LumpCount())
	for i, lump := range first.Lumps() {
		other := second.Lumps()[i]
		require.Equal(t, lump.Name(), other.Name())
		require.Equal(t, lump.Data(), other.Data())
	}
}

func TestLumpErrorAttribution(t *testing.T) {
	file := openTestFile(t, wadtest.NewIwad().Add("DEMO1", []byte{1}))
	lump, err := file.Lump("DEMO1")
	require.NoError(t, err)

	lumpErr := lump.Errorf("bad byte %d", 7)
	require.True(t, strings.HasSuffix(lumpErr.Error(), "DEMO1: bad byte 7"))
	require.Contains(t, lumpErr.Error(), "test.wad")

	_, err = lump.ExpectName("DEMO2")
	require.Error(t, err)
	_, err = lump.ExpectSize(2)
	require.Error(t, err)
	_, err = lump.ExpectSizeMultiple(2)
	require.Error(t, err)

	var ioErr *IOError
	_, err = OpenFile("does/not/exist.wad")
	require.ErrorAs(t, err, &ioErr)
	require.NotNil(t, errors.Unwrap(err))
}
