package service

import (
	"errors"
	"strconv"

	"go-storefront-kv/internal/repository"
	"go-storefront-kv/internal/storage"
)

// SiteStats are the front-page counters.
type SiteStats struct {
	Users    int `json:"users"`
	Products int `json:"products"`
	Visits   int `json:"visits"`
}

type SiteService interface {
	// RecordVisit bumps the visit counter and returns the new value.
	RecordVisit() (int, error)
	Stats() (*SiteStats, error)
	// CookieConsent returns "true", "false" or "" when the visitor has not
	// answered the banner yet.
	CookieConsent() (string, error)
	SetCookieConsent(accepted bool) error
}

type siteService struct {
	store *storage.Store
}

func NewSiteService(store *storage.Store) SiteService {
	return &siteService{store: store}
}

func (s *siteService) RecordVisit() (int, error) {
	visits := 0
	err := s.store.Update(func(tx *storage.Store) error {
		if err := tx.Get(storage.KeyVisits, &visits); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		visits++
		return tx.Put(storage.KeyVisits, visits)
	})
	if err != nil {
		return 0, err
	}
	return visits, nil
}

func (s *siteService) Stats() (*SiteStats, error) {
	users, err := repository.NewIdentityRepo(s.store).List()
	if err != nil {
		return nil, err
	}
	products, err := repository.NewCatalogRepo(s.store).List("", "")
	if err != nil {
		return nil, err
	}

	visits := 0
	if err := s.store.Get(storage.KeyVisits, &visits); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	return &SiteStats{
		Users:    len(users),
		Products: len(products),
		Visits:   visits,
	}, nil
}

func (s *siteService) CookieConsent() (string, error) {
	var flag string
	if err := s.store.Get(storage.KeyCookies, &flag); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return flag, nil
}

// SetCookieConsent stores the answer as a boolean-shaped string, matching
// the persisted layout of the flag.
func (s *siteService) SetCookieConsent(accepted bool) error {
	return s.store.Put(storage.KeyCookies, strconv.FormatBool(accepted))
}
