package repository

import (
	"errors"

	"go-storefront-kv/internal/model"
	"go-storefront-kv/internal/storage"
)

type OrderRepository interface {
	Append(o model.Order) error
	All() ([]model.Order, error)
	ListByUser(userID int) ([]model.Order, error)
}

type orderRepo struct {
	store *storage.Store
}

func NewOrderRepo(store *storage.Store) OrderRepository {
	return &orderRepo{store}
}

func (r *orderRepo) All() ([]model.Order, error) {
	var orders []model.Order
	if err := r.store.Get(storage.KeyOrders, &orders); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) Append(o model.Order) error {
	orders, err := r.All()
	if err != nil {
		return err
	}
	orders = append(orders, o)
	return r.store.Put(storage.KeyOrders, orders)
}

func (r *orderRepo) ListByUser(userID int) ([]model.Order, error) {
	orders, err := r.All()
	if err != nil {
		return nil, err
	}
	matched := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.UserID == userID {
			matched = append(matched, o)
		}
	}
	return matched, nil
}
