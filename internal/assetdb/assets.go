package assetdb

import (
	"context"
	"database/sql"
	"time"

	"github.com/phanxgames/willowkit/texture"
)

// Asset is one imported texture row.
type Asset struct {
	GUID       string
	Path       string
	Format     string
	Width      int
	Height     int
	Settings   texture.ImportSettings
	ImportedAt time.Time
}

// AssetRepo handles asset rows.
type AssetRepo struct {
	db *sql.DB
}

func NewAssetRepo(db *sql.DB) *AssetRepo { return &AssetRepo{db: db} }

const assetColumns = `guid, path, format, width, height, texture_type, readable, filter_mode,
	max_size, wrap_mode, aniso_level, compression, mipmaps, imported_at`

// Upsert inserts the asset or replaces the row with the same path. The
// GUID of an existing row is kept.
func (r *AssetRepo) Upsert(ctx context.Context, a Asset) error {
	s := a.Settings
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO assets(`+assetColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		format=excluded.format, width=excluded.width, height=excluded.height,
		texture_type=excluded.texture_type, readable=excluded.readable,
		filter_mode=excluded.filter_mode, max_size=excluded.max_size,
		wrap_mode=excluded.wrap_mode, aniso_level=excluded.aniso_level,
		compression=excluded.compression, mipmaps=excluded.mipmaps,
		imported_at=excluded.imported_at;
	`, a.GUID, a.Path, a.Format, a.Width, a.Height,
		int(s.Type), s.Readable, int(s.Filter), s.MaxSize, int(s.Wrap),
		s.AnisoLevel, int(s.Compression), s.MipMaps, a.ImportedAt)
	return err
}

func (r *AssetRepo) ByPath(ctx context.Context, path string) (*Asset, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE path = ?`, path)
	a, err := scanAsset(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *AssetRepo) List(ctx context.Context) ([]Asset, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// DeleteMissing removes every row whose path is not in keep and returns the
// number removed.
func (r *AssetRepo) DeleteMissing(ctx context.Context, keep []string) (int, error) {
	present := make(map[string]bool, len(keep))
	for _, p := range keep {
		present[p] = true
	}
	all, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	err = WithTx(r.db, func(tx *sql.Tx) error {
		for _, a := range all {
			if present[a.Path] {
				continue
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM assets WHERE guid = ?`, a.GUID); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAsset(row scanner) (*Asset, error) {
	var a Asset
	var typ, filter, wrap, compression int
	s := &a.Settings
	err := row.Scan(&a.GUID, &a.Path, &a.Format, &a.Width, &a.Height,
		&typ, &s.Readable, &filter, &s.MaxSize, &wrap,
		&s.AnisoLevel, &compression, &s.MipMaps, &a.ImportedAt)
	if err != nil {
		return nil, err
	}
	s.Type = texture.TextureType(typ)
	s.Filter = texture.FilterMode(filter)
	s.Wrap = texture.WrapMode(wrap)
	s.Compression = texture.Compression(compression)
	return &a, nil
}
