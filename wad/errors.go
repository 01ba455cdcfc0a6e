package wad

import "fmt"

// IOError reports a failed read from the OS. It carries the path of the file
// that could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// WrongKindError reports that an IWAD was supplied where a PWAD was required,
// or vice versa.
type WrongKindError struct {
	Path     string
	Expected Kind
}

func (e *WrongKindError) Error() string {
	switch e.Expected {
	case Iwad:
		return fmt.Sprintf("%s: not an IWAD", e.Path)
	default:
		return fmt.Sprintf("%s: not a PWAD", e.Path)
	}
}

// MalformedError reports a structural violation in a WAD file: a bad magic
// number, an out of bounds lump, a truncated record, a failed cross-reference.
// The description is prefixed with the offending lump name when one applies.
type MalformedError struct {
	Path string
	Desc string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Desc)
}

func malformed(path, format string, args ...any) error {
	return &MalformedError{Path: path, Desc: fmt.Sprintf(format, args...)}
}

func errPath(path string, err error) error {
	return &IOError{Path: path, Err: err}
}
