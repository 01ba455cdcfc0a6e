package wad

import "github.com/spf13/afero"

// A Stack is a set of WAD files layered on top of each other: one initial IWAD plus
// zero or more PWADs, with later files overriding earlier ones. Overriding
// happens at the granularity of whole lumps or whole blocks; a patch's MAP01
// block fully replaces the initial archive's MAP01 block.
//
// Stacks are immutable. Patch returns a new stack sharing the already loaded
// files, so keeping several overlapping stacks around is cheap.
type Stack struct {
	initial *File
	patches []*File
}

// Open opens an IWAD such as doom.wad as the base of a new stack.
func Open(path string) (*Stack, error) {
	return OpenFs(afero.NewOsFs(), path)
}

// OpenFs opens an IWAD from the given filesystem.
func OpenFs(fsys afero.Fs, path string) (*Stack, error) {
	file, err := OpenFileFs(fsys, path)
	if err != nil {
		return nil, err
	}
	return New(file)
}

// New creates a stack from an already opened file, which must be an IWAD.
func New(file *File) (*Stack, error) {
	file, err := file.ExpectKind(Iwad)
	if err != nil {
		return nil, err
	}
	return NewUnchecked(file), nil
}

// NewUnchecked creates a stack from an already opened file without checking
// that it is an IWAD.
func NewUnchecked(file *File) *Stack {
	return &Stack{initial: file}
}

// Patch overlays a PWAD, returning a new stack.
func (s *Stack) Patch(path string) (*Stack, error) {
	return s.PatchFs(afero.NewOsFs(), path)
}

// PatchFs overlays a PWAD from the given filesystem, returning a new stack.
func (s *Stack) PatchFs(fsys afero.Fs, path string) (*Stack, error) {
	file, err := OpenFileFs(fsys, path)
	if err != nil {
		return nil, err
	}
	return s.PatchFile(file)
}

// PatchFile overlays an already opened file, which must be a PWAD, returning
// a new stack.
func (s *Stack) PatchFile(file *File) (*Stack, error) {
	file, err := file.ExpectKind(Pwad)
	if err != nil {
		return nil, err
	}
	return s.PatchFileUnchecked(file), nil
}

// PatchFileUnchecked overlays an already opened file without checking that it
// is a PWAD, returning a new stack.
func (s *Stack) PatchFileUnchecked(file *File) *Stack {
	patches := make([]*File, 0, len(s.patches)+1)
	patches = append(patches, s.patches...)
	patches = append(patches, file)
	return &Stack{initial: s.initial, patches: patches}
}

// Initial returns the stack's base archive.
func (s *Stack) Initial() *File {
	return s.initial
}

// Files returns every archive in the stack, the initial file first and the
// last-added patch last.
func (s *Stack) Files() []*File {
	files := make([]*File, 0, len(s.patches)+1)
	files = append(files, s.initial)
	files = append(files, s.patches...)
	return files
}

// Lump retrieves a unique lump by name. Lumps in later files override lumps
// from earlier ones.
//
// It is an error if the lump is missing.
func (s *Stack) Lump(name string) (*Lump, error) {
	for i := len(s.patches) - 1; i >= 0; i-- {
		lump, err := s.patches[i].TryLump(name)
		if err != nil {
			return nil, err
		}
		if lump != nil {
			return lump, nil
		}
	}
	return s.initial.Lump(name)
}

// TryLump retrieves a unique lump by name, or nil if it is missing. Lumps in
// later files override lumps from earlier ones.
func (s *Stack) TryLump(name string) (*Lump, error) {
	for i := len(s.patches) - 1; i >= 0; i-- {
		lump, err := s.patches[i].TryLump(name)
		if err != nil {
			return nil, err
		}
		if lump != nil {
			return lump, nil
		}
	}
	return s.initial.TryLump(name)
}

// LumpsFollowing retrieves a block of size lumps starting at a unique named
// marker. Blocks in later files override entire blocks from earlier ones.
//
// It is an error if the block is missing.
//
// Panics if size < 1.
func (s *Stack) LumpsFollowing(start string, size int) (*Block, error) {
	for i := len(s.patches) - 1; i >= 0; i-- {
		block, err := s.patches[i].TryLumpsFollowing(start, size)
		if err != nil {
			return nil, err
		}
		if block != nil {
			return block, nil
		}
	}
	return s.initial.LumpsFollowing(start, size)
}

// TryLumpsFollowing retrieves a block of size lumps starting at a unique
// named marker, or nil if the marker is missing from every file.
//
// Panics if size < 1.
func (s *Stack) TryLumpsFollowing(start string, size int) (*Block, error) {
	for i := len(s.patches) - 1; i >= 0; i-- {
		block, err := s.patches[i].TryLumpsFollowing(start, size)
		if err != nil {
			return nil, err
		}
		if block != nil {
			return block, nil
		}
	}
	return s.initial.TryLumpsFollowing(start, size)
}

// LumpsBetween retrieves the block of lumps between unique start and end
// markers. Blocks in later files override entire blocks from earlier ones.
//
// It is an error if the block is missing.
func (s *Stack) LumpsBetween(start, end string) (*Block, error) {
	for i := len(s.patches) - 1; i >= 0; i-- {
		block, err := s.patches[i].TryLumpsBetween(start, end)
		if err != nil {
			return nil, err
		}
		if block != nil {
			return block, nil
		}
	}
	return s.initial.LumpsBetween(start, end)
}

// TryLumpsBetween retrieves the block of lumps between unique start and end
// markers, or nil if both markers are missing from every file.
func (s *Stack) TryLumpsBetween(start, end string) (*Block, error) {
	for i := len(s.patches) - 1; i >= 0; i-- {
		block, err := s.patches[i].TryLumpsBetween(start, end)
		if err != nil {
			return nil, err
		}
		if block != nil {
			return block, nil
		}
	}
	return s.initial.TryLumpsBetween(start, end)
}
