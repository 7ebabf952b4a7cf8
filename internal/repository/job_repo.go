package repository

import (
	"errors"

	"go-storefront-kv/internal/model"
	"go-storefront-kv/internal/storage"
)

type JobRepository interface {
	List() ([]model.Job, error)
}

type jobRepo struct {
	store *storage.Store
}

func NewJobRepo(store *storage.Store) JobRepository {
	return &jobRepo{store}
}

func (r *jobRepo) List() ([]model.Job, error) {
	var jobs []model.Job
	if err := r.store.Get(storage.KeyJobs, &jobs); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return jobs, nil
}
