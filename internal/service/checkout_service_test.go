package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront-kv/internal/model"
	"go-storefront-kv/internal/repository"
	"go-storefront-kv/internal/storage"
)

// loginUser registers enough accounts to land on the wanted id and logs the
// last one in.
func loginUser(t *testing.T, identity repository.IdentityRepository, id int) *model.User {
	t.Helper()
	var user *model.User
	for i := 1; i <= id; i++ {
		var err error
		user, err = identity.Register("user", fmt.Sprintf("user%d@example.com", i), "Secret1pw")
		require.NoError(t, err)
	}
	require.Equal(t, id, user.ID)
	session, err := identity.Login(user)
	require.NoError(t, err)
	return session
}

func TestCheckoutWithoutSession(t *testing.T) {
	store := newTestStore(t)
	phone := seedProduct(t, store, model.Product{Name: "Phone X", Price: 799.99, Stock: 10})
	identity := repository.NewIdentityRepo(store)
	cart := NewCartService(store)
	checkout := NewCheckoutService(store, identity, nil)

	// A populated cart must stay untouched when nobody is logged in.
	_, err := cart.Add(phone.ID, 2)
	require.NoError(t, err)

	_, err = checkout.Checkout()
	assert.ErrorIs(t, err, ErrNoSession)

	orders, err := repository.NewOrderRepo(store).All()
	require.NoError(t, err)
	assert.Empty(t, orders)

	lines, err := repository.NewCartRepo(store).Lines()
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	got, err := repository.NewCatalogRepo(store).Get(phone.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)
}

func TestCheckoutEmptyCart(t *testing.T) {
	store := newTestStore(t)
	seedProduct(t, store, model.Product{Name: "Phone X", Price: 799.99, Stock: 10})
	identity := repository.NewIdentityRepo(store)
	checkout := NewCheckoutService(store, identity, nil)

	loginUser(t, identity, 1)

	_, err := checkout.Checkout()
	assert.ErrorIs(t, err, ErrEmptyCart)

	orders, err := repository.NewOrderRepo(store).All()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckoutPlacesOrder(t *testing.T) {
	store := newTestStore(t)
	phone := seedProduct(t, store, model.Product{Name: "Phone X", Price: 799.99, Stock: 10})
	identity := repository.NewIdentityRepo(store)
	cart := NewCartService(store)
	checkout := NewCheckoutService(store, identity, nil)

	session := loginUser(t, identity, 2)

	_, err := cart.Add(phone.ID, 2)
	require.NoError(t, err)

	order, err := checkout.Checkout()
	require.NoError(t, err)

	// total = 2 * 799.99 + 5 shipping
	assert.InDelta(t, 1604.98, order.Total, 1e-9)
	assert.Equal(t, session.ID, order.UserID)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.InDelta(t, 1599.98, order.Items[0].Subtotal, 1e-9)

	got, err := repository.NewCatalogRepo(store).Get(phone.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Stock)

	views, err := cart.View()
	require.NoError(t, err)
	assert.Empty(t, views)

	mine, err := checkout.ListForCurrentUser()
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)
}

func TestCheckoutFloorsStockAtZero(t *testing.T) {
	store := newTestStore(t)
	phone := seedProduct(t, store, model.Product{Name: "Phone X", Price: 799.99, Stock: 1})
	identity := repository.NewIdentityRepo(store)
	cart := NewCartService(store)
	checkout := NewCheckoutService(store, identity, nil)

	loginUser(t, identity, 1)
	_, err := cart.Add(phone.ID, 5)
	require.NoError(t, err)

	_, err = checkout.Checkout()
	require.NoError(t, err)

	got, err := repository.NewCatalogRepo(store).Get(phone.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestCheckoutOrderIDsAreUnique(t *testing.T) {
	store := newTestStore(t)
	phone := seedProduct(t, store, model.Product{Name: "Phone X", Price: 799.99, Stock: 10})
	identity := repository.NewIdentityRepo(store)
	cart := NewCartService(store)
	checkout := NewCheckoutService(store, identity, nil)

	loginUser(t, identity, 1)

	ids := make(map[int64]bool)
	for i := 0; i < 3; i++ {
		_, err := cart.Add(phone.ID, 1)
		require.NoError(t, err)
		order, err := checkout.Checkout()
		require.NoError(t, err)
		assert.False(t, ids[order.ID], "duplicate order id %d", order.ID)
		ids[order.ID] = true
	}
}

func TestListForCurrentUserFiltersAndHandlesNoSession(t *testing.T) {
	store := newTestStore(t)
	identity := repository.NewIdentityRepo(store)
	checkout := NewCheckoutService(store, identity, nil)

	orderRepo := repository.NewOrderRepo(store)
	require.NoError(t, orderRepo.Append(model.Order{ID: 1, UserID: 1, Total: 10, Status: model.OrderStatusPending}))
	require.NoError(t, orderRepo.Append(model.Order{ID: 2, UserID: 2, Total: 20, Status: model.OrderStatusPending}))

	// No session: empty, not an error.
	orders, err := checkout.ListForCurrentUser()
	require.NoError(t, err)
	assert.Empty(t, orders)

	loginUser(t, identity, 2)
	orders, err = checkout.ListForCurrentUser()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(2), orders[0].ID)
}

// Guards the wire contract: an order written through the store reads back
// structurally equal.
func TestOrderRoundTrip(t *testing.T) {
	store := newTestStore(t)
	phone := seedProduct(t, store, model.Product{Name: "Phone X", Price: 799.99, Stock: 10})
	identity := repository.NewIdentityRepo(store)
	cart := NewCartService(store)
	checkout := NewCheckoutService(store, identity, nil)

	loginUser(t, identity, 1)
	_, err := cart.Add(phone.ID, 2)
	require.NoError(t, err)

	order, err := checkout.Checkout()
	require.NoError(t, err)

	var stored []model.Order
	require.NoError(t, store.Get(storage.KeyOrders, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, order.ID, stored[0].ID)
	assert.Equal(t, order.UserID, stored[0].UserID)
	assert.Equal(t, order.Status, stored[0].Status)
	assert.InDelta(t, order.Total, stored[0].Total, 1e-9)
	require.Len(t, stored[0].Items, 1)
	assert.Equal(t, order.Items[0].ProductID, stored[0].Items[0].ProductID)
	assert.Equal(t, order.Items[0].Quantity, stored[0].Items[0].Quantity)
	assert.Equal(t, order.Items[0].Product, stored[0].Items[0].Product)
	assert.InDelta(t, order.Items[0].Subtotal, stored[0].Items[0].Subtotal, 1e-9)
}
