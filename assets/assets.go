package assets

import (
	"golang.org/x/sync/errgroup"

	"github.com/jkugelman/dusty-room/wad"
)

// Assets bundles every bank loaded from a WAD stack.
type Assets struct {
	Palettes *PaletteBank
	Flats    *FlatBank
	Patches  *PatchBank
	Textures *TextureBank
}

// Load loads all asset banks from a stack. The palette, flat, and patch
// banks don't depend on each other and load concurrently; textures load last
// since resolving their placements needs the patch bank. A loaded stack is
// immutable, so the concurrent readers need no locking.
func Load(stack *wad.Stack) (*Assets, error) {
	var (
		palettes *PaletteBank
		flats    *FlatBank
		patches  *PatchBank
	)

	var group errgroup.Group
	group.Go(func() error {
		var err error
		palettes, err = LoadPalettes(stack)
		return err
	})
	group.Go(func() error {
		var err error
		flats, err = LoadFlats(stack)
		return err
	})
	group.Go(func() error {
		var err error
		patches, err = LoadPatches(stack)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	textures, err := LoadTextures(stack, patches)
	if err != nil {
		return nil, err
	}

	return &Assets{
		Palettes: palettes,
		Flats:    flats,
		Patches:  patches,
		Textures: textures,
	}, nil
}
