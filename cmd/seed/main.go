// Command seed populates the database with demo data: the admin account,
// a few readers, posts, and comments.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	opts := seed.DefaultOptions()
	flag.StringVar(&opts.AdminEmail, "admin-email", opts.AdminEmail, "email for the admin account")
	flag.StringVar(&opts.AdminPassword, "admin-password", opts.AdminPassword, "password for the admin account")
	flag.IntVar(&opts.Readers, "readers", opts.Readers, "number of reader accounts")
	flag.IntVar(&opts.Posts, "posts", opts.Posts, "number of posts")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	log.Printf("Seeded %d posts by %s with %d readers", opts.Posts, opts.AdminEmail, opts.Readers)
}
