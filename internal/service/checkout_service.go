package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go-storefront-kv/internal/model"
	"go-storefront-kv/internal/repository"
	"go-storefront-kv/internal/storage"
	"go-storefront-kv/internal/ws"
)

// ShippingSurcharge is the flat amount added to every order total.
const ShippingSurcharge = 5.0

var (
	ErrNoSession = errors.New("no authenticated session")
	ErrEmptyCart = errors.New("cart is empty")
)

type CheckoutService interface {
	// Checkout converts the cart of the current session into a persisted
	// order, decrements stock per line and clears the cart. The whole
	// sequence commits in one storage transaction.
	Checkout() (*model.Order, error)
	// ListForCurrentUser returns the session user's orders, oldest first.
	// Without a session the result is empty.
	ListForCurrentUser() ([]model.Order, error)
}

type checkoutService struct {
	store    *storage.Store
	identity repository.IdentityRepository
	hub      *ws.Hub

	mu          sync.Mutex
	lastOrderID int64
}

func NewCheckoutService(store *storage.Store, identity repository.IdentityRepository, hub *ws.Hub) CheckoutService {
	return &checkoutService{
		store:    store,
		identity: identity,
		hub:      hub,
	}
}

// nextOrderID derives an order id from the wall clock, bumping past the
// previous one so ids stay unique within the process even when two
// checkouts land in the same millisecond.
func (s *checkoutService) nextOrderID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.lastOrderID {
		id = s.lastOrderID + 1
	}
	s.lastOrderID = id
	return id
}

func (s *checkoutService) Checkout() (*model.Order, error) {
	session, err := s.identity.CurrentSession()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoSession
	}

	var order model.Order
	var events []ws.StockEvent

	err = s.store.Update(func(tx *storage.Store) error {
		items, err := NewCartService(tx).View()
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		total := 0.0
		for _, item := range items {
			total += item.Subtotal
		}

		order = model.Order{
			ID:        s.nextOrderID(),
			UserID:    session.ID,
			Items:     items,
			Total:     total + ShippingSurcharge,
			Status:    model.OrderStatusPending,
			CreatedAt: time.Now(),
		}

		if err := repository.NewOrderRepo(tx).Append(order); err != nil {
			return err
		}

		catalog := repository.NewCatalogRepo(tx)
		for _, item := range items {
			if err := catalog.AdjustStock(item.ProductID, -item.Quantity); err != nil {
				return err
			}
			updated, err := catalog.Get(item.ProductID)
			if err != nil {
				return err
			}
			if updated != nil {
				events = append(events, ws.StockEvent{
					Type:      "stock_update",
					Action:    "checkout",
					ProductID: updated.ID,
					Name:      updated.Name,
					Stock:     updated.Stock,
					Message:   fmt.Sprintf("%d units of '%s' sold", item.Quantity, updated.Name),
				})
			}
		}

		return repository.NewCartRepo(tx).Clear()
	})
	if err != nil {
		return nil, err
	}

	go func() {
		for _, ev := range events {
			s.hub.BroadcastJSON(ev)
		}
	}()

	return &order, nil
}

func (s *checkoutService) ListForCurrentUser() ([]model.Order, error) {
	session, err := s.identity.CurrentSession()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return []model.Order{}, nil
	}
	return repository.NewOrderRepo(s.store).ListByUser(session.ID)
}
