package texture

import "errors"

var (
	// ErrNoImporter reports an asset whose import settings cannot be read.
	// Such assets are left out of every partition.
	ErrNoImporter = errors.New("texture: no texture importer")

	// ErrInvalidSettings reports settings rejected by Validate or a parser.
	ErrInvalidSettings = errors.New("texture: invalid import settings")

	// ErrUnknownOption reports a group option name that does not exist.
	ErrUnknownOption = errors.New("texture: unknown group option")

	// ErrUnknownGroup reports a group key absent from the current partition.
	ErrUnknownGroup = errors.New("texture: no such group")

	// ErrNotInGroup reports an item outside the selected group.
	ErrNotInGroup = errors.New("texture: item is not in the selected group")

	// ErrNoSelection reports an edit with no item selected.
	ErrNoSelection = errors.New("texture: no item selected")
)
