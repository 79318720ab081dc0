// Package main provides a tool to seed the database with starter data.
//
// It creates the default category set for each content kind and,
// optionally, an admin account for local development.
//
// Usage:
//
//	DATA_PATH=~/kobita go run ./cmd/seed
//	DATA_PATH=~/kobita go run ./cmd/seed --admin-email dev@example.com --admin-password "..."
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banglakobita/kobita-server/internal/auth"
	"github.com/banglakobita/kobita-server/internal/domain"
	"github.com/banglakobita/kobita-server/internal/id"
	"github.com/banglakobita/kobita-server/internal/slug"
	"github.com/banglakobita/kobita-server/internal/store"
	"github.com/banglakobita/kobita-server/internal/store/sqlite"
)

var (
	adminEmail    = flag.String("admin-email", "", "Create an admin account with this email")
	adminPassword = flag.String("admin-password", "", "Password for the admin account")
)

type seedCategory struct {
	name         string
	contentType  domain.ContentType
	displayOrder int
}

var defaultCategories = []seedCategory{
	{"Romantic", domain.ContentTypePoem, 1},
	{"Patriotic", domain.ContentTypePoem, 2},
	{"Nature", domain.ContentTypePoem, 3},
	{"Spiritual", domain.ContentTypePoem, 4},
	{"Classic", domain.ContentTypeStory, 1},
	{"Contemporary", domain.ContentTypeStory, 2},
	{"Folk Tales", domain.ContentTypeStory, 3},
	{"Rabindra Sangeet", domain.ContentTypeMusic, 1},
	{"Nazrul Geeti", domain.ContentTypeMusic, 2},
	{"Folk", domain.ContentTypeMusic, 3},
	{"Modern", domain.ContentTypeMusic, 4},
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/kobita")
	}

	dbPath := filepath.Join(dataPath, "kobita.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	seedCategories(ctx, s)

	if *adminEmail != "" {
		if *adminPassword == "" {
			log.Fatal("--admin-password is required with --admin-email")
		}
		seedAdmin(ctx, s, *adminEmail, *adminPassword)
	}

	fmt.Println("Done.")
}

func seedCategories(ctx context.Context, s store.Store) {
	created := 0
	for _, c := range defaultCategories {
		categoryID, err := id.Generate("category")
		if err != nil {
			log.Fatalf("Failed to generate ID: %v", err)
		}

		category := &domain.Category{
			Name:         c.name,
			Slug:         slug.Make(c.name),
			Type:         c.contentType,
			DisplayOrder: c.displayOrder,
		}
		category.ID = categoryID
		category.InitTimestamps()

		if err := s.CreateCategory(ctx, category); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				continue
			}
			log.Fatalf("Failed to create category %q: %v", c.name, err)
		}
		created++
	}
	fmt.Printf("Categories: %d created, %d already present\n", created, len(defaultCategories)-created)
}

func seedAdmin(ctx context.Context, s store.Store, email, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		log.Fatalf("Failed to generate ID: %v", err)
	}

	user := &domain.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	user.ID = userID
	user.InitTimestamps()

	if err := s.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			fmt.Println("Admin account already exists, skipping")
			return
		}
		log.Fatalf("Failed to create admin: %v", err)
	}
	fmt.Printf("Admin account created: %s\n", email)
}
