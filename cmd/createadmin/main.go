package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"taka_track/internal/config"
	"taka_track/internal/models"
	"taka_track/internal/stores"
)

// Out-of-band admin provisioning. Signup never grants the admin role, so the
// first admin account is created here. Idempotent: exits cleanly when the
// account already exists.
func main() {
	config.InitDB()

	email := getenv("ADMIN_EMAIL", "admin@takatrack.local")
	password := getenv("ADMIN_PASSWORD", "admin123")
	name := getenv("ADMIN_NAME", "Admin")

	users := stores.NewGormUserStore(config.GetDB())
	ctx := context.Background()

	if _, err := users.FindByEmail(ctx, email); err == nil {
		log.Printf("admin user already exists: %s", email)
		return
	} else if !errors.Is(err, stores.ErrNotFound) {
		log.Fatalf("lookup failed: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("could not hash password: %v", err)
	}

	admin := models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := users.Create(ctx, &admin); err != nil {
		log.Fatalf("could not create admin user: %v", err)
	}

	log.Printf("✅ Admin user created: %s (change the password after first login)", email)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
