package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nebulashop/storefront/internal/catalog"
)

// Storage keys mirror the storefront's durable client storage: opaque JSON
// blobs under fixed names, no versioning.
const (
	cartKey      = "cart"
	favoritesKey = "favorites"
)

// FileStore keeps each key as a JSON file in one directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cart store: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) load(key string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, key+".json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cart store: %w", err)
	}
	return json.Unmarshal(data, v)
}

func (s *FileStore) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cart store: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, key+".json"), data, 0o644)
}

func (s *FileStore) LoadCart() ([]Line, error) {
	var lines []Line
	if err := s.load(cartKey, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *FileStore) SaveCart(lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	return s.save(cartKey, lines)
}

func (s *FileStore) LoadFavorites() ([]catalog.Product, error) {
	var items []catalog.Product
	if err := s.load(favoritesKey, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *FileStore) SaveFavorites(items []catalog.Product) error {
	if items == nil {
		items = []catalog.Product{}
	}
	return s.save(favoritesKey, items)
}
