// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"devlink/internal/config"
	"devlink/internal/database"
	"devlink/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	posts := flag.Int("posts", 30, "number of posts to create")
	clean := flag.Bool("clean", false, "remove existing rows before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:    *users,
		NumPosts:    *posts,
		ShouldClean: *clean,
	}); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("seeding complete")
}
