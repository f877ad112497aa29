// Command seed resets the database and loads demo accounts, products and
// news items for local development. Never run it against production data.
package main

import (
	"context"
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"shopfront/internal/auth"
	"shopfront/internal/database"
	"shopfront/internal/logger"
	"shopfront/internal/news"
	"shopfront/internal/products"
)

type userSeed struct {
	Name     string
	Email    string
	Password string
	Role     auth.Role
}

var userSeeds = []userSeed{
	{Name: "Ada Admin", Email: "admin01@example.com", Password: "password1111", Role: auth.RoleAdmin},
	{Name: "Bob Operator", Email: "admin02@example.com", Password: "password2222", Role: auth.RoleAdmin},
	{Name: "Carol Customer", Email: "user01@example.com", Password: "password1111", Role: auth.RoleUser},
	{Name: "Dave Shopper", Email: "user02@example.com", Password: "password2222", Role: auth.RoleUser},
	{Name: "Eve Browser", Email: "user03@example.com", Password: "password3333", Role: auth.RoleUser},
}

type productSeed struct {
	Name        string
	Description string
	Price       int
}

var productSeeds = []productSeed{
	{Name: "Mechanical Keyboard", Description: "Tenkeyless, tactile switches.", Price: 12800},
	{Name: "USB-C Dock", Description: "Dual display output, 100W passthrough.", Price: 9800},
	{Name: "Desk Mat", Description: "900x400mm stitched edges.", Price: 2400},
	{Name: "Monitor Light Bar", Description: "Asymmetric light, no glare.", Price: 5600},
}

var newsSeeds = []struct {
	Title string
	Body  string
}{
	{Title: "Grand opening sale", Body: "Everything 10% off through the end of the month."},
	{Title: "New arrivals for autumn", Body: "Desk accessories restocked, keyboards back in all colors."},
	{Title: "Holiday shipping schedule", Body: "Orders placed after the 20th ship in the new year."},
}

func main() {
	lgr := logger.New()

	db, err := database.New()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Order matters: sessions reference users
	for _, table := range []string{"sessions", "users", "products", "news_items"} {
		if _, err := db.Exec(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("Failed to clear table %s: %v", table, err)
		}
	}

	hasher := auth.NewHasher()
	users := auth.NewRepository(db)
	for _, seed := range userSeeds {
		hash, err := hasher.Hash(seed.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", seed.Email, err)
		}
		user, err := users.Create(ctx, seed.Email, seed.Name, hash, seed.Role)
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", seed.Email, err)
		}
		lgr.Info("seeded user", "email", user.Email, "role", user.Role)
	}

	catalog := products.NewRepository(db)
	for _, seed := range productSeeds {
		if _, err := catalog.Create(ctx, seed.Name, seed.Description, seed.Price, ""); err != nil {
			log.Fatalf("Failed to seed product %s: %v", seed.Name, err)
		}
	}
	lgr.Info("seeded products", "count", len(productSeeds))

	articles := news.NewRepository(db)
	for _, seed := range newsSeeds {
		if _, err := articles.Create(ctx, seed.Title, seed.Body); err != nil {
			log.Fatalf("Failed to seed news item %q: %v", seed.Title, err)
		}
	}
	lgr.Info("seeded news items", "count", len(newsSeeds))

	lgr.Info("seeding complete")
}
