package repository

import (
	"errors"
	"strings"

	"go-storefront-kv/internal/model"
	"go-storefront-kv/internal/storage"
)

type CatalogRepository interface {
	List(search, category string) ([]model.Product, error)
	Get(id int) (*model.Product, error)
	Add(p model.Product) (*model.Product, error)
	Delete(id int) error
	AdjustStock(id, delta int) error
}

type catalogRepo struct {
	store *storage.Store
}

// NewCatalogRepo builds a catalog repository over the given store. Pass a
// transaction-scoped store to run mutations inside a larger atomic batch.
func NewCatalogRepo(store *storage.Store) CatalogRepository {
	return &catalogRepo{store}
}

func (r *catalogRepo) load() ([]model.Product, error) {
	var products []model.Product
	if err := r.store.Get(storage.KeyProducts, &products); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return products, nil
}

// List returns products in storage insertion order. A non-empty search is a
// case-insensitive substring match over name and description; a non-empty
// category is an exact match.
func (r *catalogRepo) List(search, category string) ([]model.Product, error) {
	products, err := r.load()
	if err != nil {
		return nil, err
	}

	if search != "" {
		needle := strings.ToLower(search)
		filtered := make([]model.Product, 0, len(products))
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	if category != "" {
		filtered := make([]model.Product, 0, len(products))
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	return products, nil
}

// Get returns the product with the given id, or nil when absent.
func (r *catalogRepo) Get(id int) (*model.Product, error) {
	products, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, nil
		}
	}
	return nil, nil
}

// Add assigns the next id (max existing + 1, or 1 on an empty catalog),
// appends the product and persists the collection.
func (r *catalogRepo) Add(p model.Product) (*model.Product, error) {
	products, err := r.load()
	if err != nil {
		return nil, err
	}

	maxID := 0
	for _, existing := range products {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	p.ID = maxID + 1

	products = append(products, p)
	if err := r.store.Put(storage.KeyProducts, products); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the product with the given id. Absent ids are a no-op.
func (r *catalogRepo) Delete(id int) error {
	products, err := r.load()
	if err != nil {
		return err
	}

	kept := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return nil
	}
	return r.store.Put(storage.KeyProducts, kept)
}

// AdjustStock applies delta to the product's stock, flooring the result at
// zero. Absent ids are a no-op.
func (r *catalogRepo) AdjustStock(id, delta int) error {
	products, err := r.load()
	if err != nil {
		return err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}
		products[i].Stock += delta
		if products[i].Stock < 0 {
			products[i].Stock = 0
		}
		return r.store.Put(storage.KeyProducts, products)
	}
	return nil
}
