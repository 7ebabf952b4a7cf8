package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront-kv/internal/model"
	"go-storefront-kv/internal/repository"
)

func TestRecordVisitIncrements(t *testing.T) {
	site := NewSiteService(newTestStore(t))

	visits, err := site.RecordVisit()
	require.NoError(t, err)
	assert.Equal(t, 1, visits)

	visits, err = site.RecordVisit()
	require.NoError(t, err)
	assert.Equal(t, 2, visits)
}

func TestStatsCounts(t *testing.T) {
	store := newTestStore(t)
	site := NewSiteService(store)

	seedProduct(t, store, model.Product{Name: "Phone X"})
	seedProduct(t, store, model.Product{Name: "Book"})
	_, err := repository.NewIdentityRepo(store).Register("alice", "alice@example.com", "Secret1pw")
	require.NoError(t, err)
	_, err = site.RecordVisit()
	require.NoError(t, err)

	stats, err := site.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Users)
	assert.Equal(t, 2, stats.Products)
	assert.Equal(t, 1, stats.Visits)
}

func TestCookieConsent(t *testing.T) {
	site := NewSiteService(newTestStore(t))

	flag, err := site.CookieConsent()
	require.NoError(t, err)
	assert.Equal(t, "", flag)

	require.NoError(t, site.SetCookieConsent(true))
	flag, err = site.CookieConsent()
	require.NoError(t, err)
	assert.Equal(t, "true", flag)

	require.NoError(t, site.SetCookieConsent(false))
	flag, err = site.CookieConsent()
	require.NoError(t, err)
	assert.Equal(t, "false", flag)
}
