package wad

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/jkugelman/dusty-room/internal/wadtest"
)

func openTestFile(t *testing.T, b *wadtest.Builder) *File {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if err := b.WriteTo(fsys, "test.wad"); err != nil {
		t.Fatal(err)
	}
	file, err := OpenFileFs(fsys, "test.wad")
	if err != nil {
		t.Fatal(err)
	}
	return file
}

func testLump(t *testing.T, data []byte) *Lump {
	t.Helper()
	file := openTestFile(t, wadtest.NewIwad().Add("DATA", data))
	lump, err := file.Lump("DATA")
	if err != nil {
		t.Fatal(err)
	}
	return lump
}

func TestCursorReads(t *testing.T) {
	data := wadtest.AppendU32(nil, 0xdeadbeef)
	data = wadtest.AppendName(data, "VERTEXES")
	data = wadtest.AppendU16(data, 0x1234)
	data = wadtest.AppendI16(data, -17)
	data = append(data, 0x7f)

	cursor := testLump(t, data).Cursor()

	if err := cursor.Need(17); err != nil {
		t.Fatal(err)
	}
	if got := cursor.GetU32(); got != 0xdeadbeef {
		t.Errorf("GetU32 = %#x", got)
	}
	if got := cursor.GetName(); got != "VERTEXES" {
		t.Errorf("GetName = %q", got)
	}
	if got := cursor.GetU16(); got != 0x1234 {
		t.Errorf("GetU16 = %#x", got)
	}
	if got := cursor.GetI16(); got != -17 {
		t.Errorf("GetI16 = %d", got)
	}
	if got := cursor.GetU8(); got != 0x7f {
		t.Errorf("GetU8 = %#x", got)
	}
	if err := cursor.Done(); err != nil {
		t.Errorf("Done = %v", err)
	}
}

func TestCursorNotEnoughData(t *testing.T) {
	cursor := testLump(t, []byte{1, 2, 3}).Cursor()

	if err := cursor.Need(4); err == nil {
		t.Fatal("Need(4) on 3 bytes succeeded")
	} else if !errors.As(err, new(*MalformedError)) {
		t.Errorf("Need error is %T", err)
	}
	// A failed Need consumes nothing.
	if err := cursor.Need(3); err != nil {
		t.Errorf("Need(3) = %v", err)
	}
}

func TestCursorTooMuchData(t *testing.T) {
	cursor := testLump(t, []byte{1, 2, 3}).Cursor()
	if err := cursor.Done(); err == nil {
		t.Fatal("Done with 3 unread bytes succeeded")
	}

	cursor = testLump(t, []byte{1, 2, 3}).Cursor()
	cursor.Clear()
	if err := cursor.Done(); err != nil {
		t.Errorf("Done after Clear = %v", err)
	}
}

func TestCursorSkipAndSplit(t *testing.T) {
	cursor := testLump(t, []byte{1, 2, 3, 4, 5}).Cursor()

	if err := cursor.Skip(2); err != nil {
		t.Fatal(err)
	}
	if err := cursor.Need(2); err != nil {
		t.Fatal(err)
	}
	if got := cursor.SplitTo(2); !bytes.Equal(got, []byte{3, 4}) {
		t.Errorf("SplitTo = %v", got)
	}
	if cursor.Len() != 1 {
		t.Errorf("Len = %d", cursor.Len())
	}
	if err := cursor.Skip(2); err == nil {
		t.Error("Skip past the end succeeded")
	}
}
