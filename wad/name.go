// package wad reads Doom WAD archives: the IWAD/PWAD container format, its
// lump directory, and stacked overlays of patch files.
// https://doomwiki.org/wiki/WAD
package wad

// ParseName reads a lump name from a raw 8-byte, NUL padded array. Trailing
// NULs are padding, not part of the name.
func ParseName(raw [8]byte) string {
	end := len(raw)
	for i, b := range raw {
		if b == 0 {
			end = i
			break
		}
	}
	return string(raw[:end])
}

// PadName is the inverse of ParseName. It NUL pads a name out to 8 bytes.
//
// Panics if the name is longer than 8 bytes.
func PadName(name string) [8]byte {
	if len(name) > 8 {
		panic("wad: name longer than 8 bytes: " + name)
	}
	var raw [8]byte
	copy(raw[:], name)
	return raw
}

// IsLegalName reports whether name is a legal lump name: 1-8 characters, each
// one of the letters A-Z, digits 0-9, or the punctuation []-_\.
func IsLegalName(name string) bool {
	if len(name) == 0 || len(name) > 8 {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isLegalNameByte(name[i]) {
			return false
		}
	}
	return true
}

func isLegalNameByte(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '[' || b == ']' || b == '-' || b == '_' || b == '\\':
		return true
	}
	return false
}
