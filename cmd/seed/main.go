package main // seeds the catalog with the demo wishlist

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/wishlist/internal/config"
	"github.com/iliyamo/wishlist/internal/database"
	"github.com/iliyamo/wishlist/internal/repository"
)

type seedPresent struct {
	name        string
	description string
	price       float64
	images      []string
}

// The demo catalog.  Image paths assume the files were placed under the
// uploads directory beforehand.
var presents = []seedPresent{
	{"Apple AirPods Pro", "Active noise cancellation for immersive sound. Transparency mode for hearing what's happening around you.", 249.99, []string{"/uploads/airpods.webp"}},
	{"Apple Watch Series 9", "The most powerful Apple Watch yet with advanced health features and a stunning Retina display.", 399.99, []string{"/uploads/watch.webp"}},
	{"Jeep Wrangler", "The iconic off-road vehicle with unmatched capability and legendary style.", 29995.00, []string{"/uploads/jeep.webp"}},
	{`MacBook Pro 16"`, "Supercharged by M3 Pro or M3 Max. The most powerful laptop in its class for demanding workflows.", 2499.99, []string{"/uploads/macbook.webp"}},
	{"PlayStation 5", "Experience lightning-fast loading, deeper immersion, and an all-new generation of incredible PlayStation games.", 499.99, []string{"/uploads/ps5.webp"}},
	{"DJI Mini 3 Pro", "Lightweight sub-249g drone with 4K/60fps video, 48MP photos, and advanced safety features.", 759.00, []string{"/uploads/drone.webp"}},
	{"iPhone 15 Pro Max", "The most advanced iPhone ever with a titanium design, A17 Pro chip, and a pro camera system.", 1199.99, []string{"/uploads/iphone.webp"}},
	{`Samsung 65" OLED TV`, "Quantum HDR OLED display with Neural Quantum Processor for stunning picture quality.", 2299.99, []string{"/uploads/tv.webp"}},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	repo := repository.NewPresentRepo(db)

	// Refuse to double-seed a populated catalog.
	existing, err := repo.List(ctx, repository.PriceFilter{})
	if err != nil {
		log.Fatalf("check catalog: %v", err)
	}
	if len(existing) > 0 {
		log.Fatalf("catalog already has %d presents; refusing to seed", len(existing))
	}

	for _, p := range presents {
		created, err := repo.Create(ctx, p.name, p.description, p.price, p.images)
		if err != nil {
			log.Fatalf("seed %q: %v", p.name, err)
		}
		log.Printf("seeded %q (%s)", created.Name, created.ID)
	}
	log.Printf("seeded %d presents", len(presents))
}
