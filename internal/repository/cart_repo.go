package repository

import (
	"errors"

	"go-storefront-kv/internal/model"
	"go-storefront-kv/internal/storage"
)

type CartRepository interface {
	Lines() ([]model.CartLine, error)
	Save(lines []model.CartLine) error
	Clear() error
}

type cartRepo struct {
	store *storage.Store
}

func NewCartRepo(store *storage.Store) CartRepository {
	return &cartRepo{store}
}

func (r *cartRepo) Lines() ([]model.CartLine, error) {
	var lines []model.CartLine
	if err := r.store.Get(storage.KeyCart, &lines); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return lines, nil
}

func (r *cartRepo) Save(lines []model.CartLine) error {
	if lines == nil {
		lines = []model.CartLine{}
	}
	return r.store.Put(storage.KeyCart, lines)
}

func (r *cartRepo) Clear() error {
	return r.store.Put(storage.KeyCart, []model.CartLine{})
}
