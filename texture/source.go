package texture

import (
	"context"
	"errors"
	"log"
)

// Source is the asset database the grouping engine reads from and the editor
// writes to.
type Source interface {
	// Paths enumerates the texture assets.
	Paths(ctx context.Context) ([]string, error)

	// Settings reads the import settings of one asset. It returns an error
	// wrapping ErrNoImporter when the asset has no readable importer.
	Settings(ctx context.Context, path string) (ImportSettings, error)

	// WriteBack stores settings for one asset and reimports it.
	WriteBack(ctx context.Context, path string, s ImportSettings) error
}

var debug bool

// SetDebug enables logging of assets excluded from grouping.
func SetDebug(on bool) {
	debug = on
}

// Collect enumerates src and reads every asset's settings in enumeration
// order. Assets reporting ErrNoImporter are skipped; any other error aborts.
func Collect(ctx context.Context, src Source) ([]Item, error) {
	paths, err := src.Paths(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := src.Settings(ctx, p)
		if errors.Is(err, ErrNoImporter) {
			if debug {
				log.Printf("texture: skipping %s: %v", p, err)
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, Item{Path: p, Settings: s})
	}
	return items, nil
}
