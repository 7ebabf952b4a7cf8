package service

import (
	"fmt"

	"go-storefront-kv/internal/model"
	"go-storefront-kv/internal/repository"
	"go-storefront-kv/internal/storage"
	"go-storefront-kv/internal/ws"
	"go-storefront-kv/pkg/validator"
)

// CreateProductRequest carries the admin-supplied fields of a new product.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
	Image       string  `json:"image"`
}

type CatalogService interface {
	List(search, category string) ([]model.Product, error)
	Get(id int) (*model.Product, error)
	Create(req *CreateProductRequest) (*model.Product, error)
	Delete(id int) error
	// AdjustStock applies delta with a zero floor and returns the updated
	// product, or nil when the id does not resolve.
	AdjustStock(id, delta int) (*model.Product, error)
}

type catalogService struct {
	store *storage.Store
	hub   *ws.Hub
}

func NewCatalogService(store *storage.Store, hub *ws.Hub) CatalogService {
	return &catalogService{store: store, hub: hub}
}

func (s *catalogService) List(search, category string) ([]model.Product, error) {
	return repository.NewCatalogRepo(s.store).List(search, category)
}

func (s *catalogService) Get(id int) (*model.Product, error) {
	return repository.NewCatalogRepo(s.store).Get(id)
}

func (s *catalogService) Create(req *CreateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	created, err := repository.NewCatalogRepo(s.store).Add(model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		return nil, err
	}

	go s.hub.BroadcastJSON(ws.StockEvent{
		Type:      "stock_update",
		Action:    "product_created",
		ProductID: created.ID,
		Name:      created.Name,
		Stock:     created.Stock,
	})

	return created, nil
}

func (s *catalogService) Delete(id int) error {
	if err := repository.NewCatalogRepo(s.store).Delete(id); err != nil {
		return err
	}

	go s.hub.BroadcastJSON(ws.StockEvent{
		Type:      "stock_update",
		Action:    "product_deleted",
		ProductID: id,
	})
	return nil
}

func (s *catalogService) AdjustStock(id, delta int) (*model.Product, error) {
	var updated *model.Product
	err := s.store.Update(func(tx *storage.Store) error {
		catalog := repository.NewCatalogRepo(tx)
		existing, err := catalog.Get(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return nil
		}
		if err := catalog.AdjustStock(id, delta); err != nil {
			return err
		}
		updated, err = catalog.Get(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	go s.hub.BroadcastJSON(ws.StockEvent{
		Type:      "stock_update",
		Action:    "stock_adjusted",
		ProductID: updated.ID,
		Name:      updated.Name,
		Stock:     updated.Stock,
	})
	return updated, nil
}
