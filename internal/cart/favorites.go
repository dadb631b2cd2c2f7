package cart

import (
	"log/slog"

	"github.com/nebulashop/storefront/internal/catalog"
)

type FavoritesStorage interface {
	LoadFavorites() ([]catalog.Product, error)
	SaveFavorites([]catalog.Product) error
}

// Favorites is the saved-products list, persisted under its own key with
// the same durability boundary as the cart.
type Favorites struct {
	store FavoritesStorage
	log   *slog.Logger
	items []catalog.Product
}

func NewFavorites(store FavoritesStorage, log *slog.Logger) *Favorites {
	if log == nil {
		log = slog.Default()
	}
	f := &Favorites{store: store, log: log}
	if store != nil {
		items, err := store.LoadFavorites()
		if err != nil {
			log.Warn("favorites rehydrate failed", "error", err)
		} else {
			f.items = items
		}
	}
	return f
}

// Toggle adds the product, or removes it when already saved. Reports
// whether the product is a favorite afterwards.
func (f *Favorites) Toggle(p catalog.Product) bool {
	for i := range f.items {
		if f.items[i].ID == p.ID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			f.flush()
			return false
		}
	}
	f.items = append(f.items, p)
	f.flush()
	return true
}

func (f *Favorites) Contains(id int) bool {
	for i := range f.items {
		if f.items[i].ID == id {
			return true
		}
	}
	return false
}

func (f *Favorites) Items() []catalog.Product {
	out := make([]catalog.Product, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Favorites) flush() {
	if f.store == nil {
		return
	}
	if err := f.store.SaveFavorites(f.items); err != nil {
		f.log.Warn("favorites persist failed", "error", err)
	}
}
