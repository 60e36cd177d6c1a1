package assetdb

import (
	"context"
	"database/sql"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/phanxgames/willowkit/texture"
)

// FileSource is a texture.Source over image files below Root, with import
// settings stored in sqlite. Paths are slash-separated and relative to Root.
type FileSource struct {
	Root       string
	Extensions []string
	Defaults   texture.ImportSettings

	repo *AssetRepo
}

var _ texture.Source = (*FileSource)(nil)

// NewFileSource returns a source over root recording settings in db. Files
// seen for the first time get defaults.
func NewFileSource(db *sql.DB, root string, exts []string, defaults texture.ImportSettings) *FileSource {
	return &FileSource{Root: root, Extensions: exts, Defaults: defaults, repo: NewAssetRepo(db)}
}

// Repo returns the underlying asset repository.
func (s *FileSource) Repo() *AssetRepo {
	return s.repo
}

func (s *FileSource) wanted(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range s.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// Paths walks Root in lexical order and returns the files with a texture
// extension. Hidden directories are skipped.
func (s *FileSource) Paths(ctx context.Context) ([]string, error) {
	var out []string
	err := filepath.WalkDir(s.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != s.Root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.wanted(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(s.Root, p)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.Root, err)
	}
	return out, nil
}

// Settings returns the stored settings of the asset, importing it with the
// defaults on first sight. Files that are not decodable images report
// texture.ErrNoImporter.
func (s *FileSource) Settings(ctx context.Context, p string) (texture.ImportSettings, error) {
	a, err := s.repo.ByPath(ctx, p)
	if err != nil {
		return texture.ImportSettings{}, err
	}
	if a != nil {
		return a.Settings, nil
	}
	a, err = s.importFile(p, s.Defaults)
	if err != nil {
		return texture.ImportSettings{}, err
	}
	a.GUID = uuid.NewString()
	if err := s.repo.Upsert(ctx, *a); err != nil {
		return texture.ImportSettings{}, err
	}
	return a.Settings, nil
}

// WriteBack stores settings for the asset and reimports the file.
func (s *FileSource) WriteBack(ctx context.Context, p string, settings texture.ImportSettings) error {
	a, err := s.importFile(p, settings)
	if err != nil {
		return err
	}
	old, err := s.repo.ByPath(ctx, p)
	if err != nil {
		return err
	}
	if old != nil {
		a.GUID = old.GUID
	} else {
		a.GUID = uuid.NewString()
	}
	return s.repo.Upsert(ctx, *a)
}

// Prune removes rows for files that no longer exist and returns the count.
func (s *FileSource) Prune(ctx context.Context) (int, error) {
	paths, err := s.Paths(ctx)
	if err != nil {
		return 0, err
	}
	return s.repo.DeleteMissing(ctx, paths)
}

// importFile reads the image header of p.
func (s *FileSource) importFile(p string, settings texture.ImportSettings) (*Asset, error) {
	f, err := os.Open(filepath.Join(s.Root, filepath.FromSlash(path.Clean(p))))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", texture.ErrNoImporter, p, err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", texture.ErrNoImporter, p, err)
	}
	return &Asset{
		Path:       p,
		Format:     format,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Settings:   settings,
		ImportedAt: Now(),
	}, nil
}
