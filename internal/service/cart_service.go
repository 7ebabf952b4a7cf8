package service

import (
	"time"

	"go-storefront-kv/internal/model"
	"go-storefront-kv/internal/repository"
	"go-storefront-kv/internal/storage"
)

type CartService interface {
	// Add puts quantity units of the product in the cart, accumulating onto
	// an existing line. It reports false, without touching the cart, when
	// the product does not resolve in the catalog.
	Add(productID, quantity int) (bool, error)
	Remove(productID int) error
	View() ([]model.CartLineView, error)
	Clear() error
}

type cartService struct {
	store *storage.Store
}

func NewCartService(store *storage.Store) CartService {
	return &cartService{store: store}
}

func (s *cartService) Add(productID, quantity int) (bool, error) {
	if quantity <= 0 {
		quantity = 1
	}

	added := false
	err := s.store.Update(func(tx *storage.Store) error {
		catalog := repository.NewCatalogRepo(tx)
		product, err := catalog.Get(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return nil
		}

		carts := repository.NewCartRepo(tx)
		lines, err := carts.Lines()
		if err != nil {
			return err
		}

		found := false
		for i := range lines {
			if lines[i].ProductID == productID {
				lines[i].Quantity += quantity
				found = true
				break
			}
		}
		if !found {
			lines = append(lines, model.CartLine{
				ProductID: productID,
				Quantity:  quantity,
				AddedAt:   time.Now(),
			})
		}

		if err := carts.Save(lines); err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}

// Remove deletes the line for productID unconditionally.
func (s *cartService) Remove(productID int) error {
	return s.store.Update(func(tx *storage.Store) error {
		carts := repository.NewCartRepo(tx)
		lines, err := carts.Lines()
		if err != nil {
			return err
		}
		kept := make([]model.CartLine, 0, len(lines))
		for _, l := range lines {
			if l.ProductID != productID {
				kept = append(kept, l)
			}
		}
		return carts.Save(kept)
	})
}

// View joins the stored lines against the current catalog. Lines whose
// product no longer resolves are dropped from the view only; the stored
// collection keeps them.
func (s *cartService) View() ([]model.CartLineView, error) {
	carts := repository.NewCartRepo(s.store)
	lines, err := carts.Lines()
	if err != nil {
		return nil, err
	}

	catalog := repository.NewCatalogRepo(s.store)
	products, err := catalog.List("", "")
	if err != nil {
		return nil, err
	}
	byID := make(map[int]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	views := make([]model.CartLineView, 0, len(lines))
	for _, l := range lines {
		product, ok := byID[l.ProductID]
		if !ok {
			continue
		}
		views = append(views, model.CartLineView{
			CartLine: l,
			Product:  product,
			Subtotal: product.Price * float64(l.Quantity),
		})
	}
	return views, nil
}

func (s *cartService) Clear() error {
	return repository.NewCartRepo(s.store).Clear()
}
