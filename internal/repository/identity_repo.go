package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"go-storefront-kv/internal/model"
	"go-storefront-kv/internal/storage"
)

var (
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type IdentityRepository interface {
	Register(username, email, password string) (*model.User, error)
	Authenticate(email, password string) (*model.User, error)
	List() ([]model.User, error)

	// CurrentSession returns the session pointer, or nil when nobody is
	// logged in.
	CurrentSession() (*model.User, error)
	// Login rotates the user's session version and installs them as the
	// single current session, replacing any previous one.
	Login(u *model.User) (*model.User, error)
	Logout() error
}

type identityRepo struct {
	store *storage.Store
}

func NewIdentityRepo(store *storage.Store) IdentityRepository {
	return &identityRepo{store}
}

func (r *identityRepo) load() ([]model.User, error) {
	var users []model.User
	if err := r.store.Get(storage.KeyUsers, &users); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return users, nil
}

// Register creates a user with the fixed "user" role. Email uniqueness is a
// case-sensitive exact match against the stored collection.
func (r *identityRepo) Register(username, email, password string) (*model.User, error) {
	var created *model.User
	err := r.store.Update(func(tx *storage.Store) error {
		repo := &identityRepo{tx}
		users, err := repo.load()
		if err != nil {
			return err
		}

		maxID := 0
		for _, u := range users {
			if u.Email == email {
				return ErrDuplicateEmail
			}
			if u.ID > maxID {
				maxID = u.ID
			}
		}

		user := model.User{
			ID:           maxID + 1,
			Username:     username,
			Email:        email,
			Role:         model.RoleUser,
			RegisteredAt: time.Now(),
		}
		if err := user.SetPassword(password); err != nil {
			return err
		}

		users = append(users, user)
		if err := tx.Put(storage.KeyUsers, users); err != nil {
			return err
		}
		created = &user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Authenticate looks the email up and verifies the password digest. Both an
// unknown email and a wrong password report ErrInvalidCredentials.
func (r *identityRepo) Authenticate(email, password string) (*model.User, error) {
	users, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email != email {
			continue
		}
		if !users[i].CheckPassword(password) {
			return nil, ErrInvalidCredentials
		}
		u := users[i]
		return &u, nil
	}
	return nil, ErrInvalidCredentials
}

func (r *identityRepo) List() ([]model.User, error) {
	return r.load()
}

func (r *identityRepo) CurrentSession() (*model.User, error) {
	var u model.User
	if err := r.store.Get(storage.KeyCurrentUser, &u); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *identityRepo) Login(u *model.User) (*model.User, error) {
	version := uuid.NewString()

	var session model.User
	err := r.store.Update(func(tx *storage.Store) error {
		repo := &identityRepo{tx}
		users, err := repo.load()
		if err != nil {
			return err
		}
		for i := range users {
			if users[i].ID == u.ID {
				users[i].SessionVersion = version
				session = users[i]
				break
			}
		}
		if session.ID == 0 {
			return ErrInvalidCredentials
		}
		if err := tx.Put(storage.KeyUsers, users); err != nil {
			return err
		}
		// The session pointer holds a full denormalized copy, not a
		// foreign key.
		return tx.Put(storage.KeyCurrentUser, session)
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *identityRepo) Logout() error {
	return r.store.Delete(storage.KeyCurrentUser)
}
