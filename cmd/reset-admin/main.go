package main

import (
	"errors"
	"log"

	"go-storefront-kv/internal/model"
	"go-storefront-kv/internal/storage"
	"go-storefront-kv/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Open Store
	db := database.ConnectDB()
	store, err := storage.New(db)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	// 3. Find Admin
	email := "admin@email.com"
	var users []model.User
	if err := store.Get(storage.KeyUsers, &users); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Fatalf("No users in store; run the API once to seed it")
		}
		log.Fatalf("Failed to read users: %v", err)
	}

	idx := -1
	for i := range users {
		if users[i].Email == email {
			idx = i
			break
		}
	}
	if idx == -1 {
		log.Fatalf("User %s not found in store", email)
	}

	// 4. Hash new password
	newPassword := "admin123"
	if err := users[idx].SetPassword(newPassword); err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// 5. Update and drop any live session so stale tokens stop working
	users[idx].SessionVersion = ""
	err = store.Update(func(tx *storage.Store) error {
		if err := tx.Put(storage.KeyUsers, users); err != nil {
			return err
		}
		return tx.Delete(storage.KeyCurrentUser)
	})
	if err != nil {
		log.Fatalf("Failed to update store: %v", err)
	}

	log.Printf("Success! Password for %s has been reset to: %s", email, newPassword)
}
