package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fastsales/api/internal/auth"
	"github.com/fastsales/api/internal/config"
	"github.com/fastsales/api/internal/database"
	"github.com/fastsales/api/internal/logger"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// CLI flags
	username := flag.String("username", "", "Staff username")
	password := flag.String("password", "", "Staff password")
	migrate := flag.Bool("migrate", false, "Apply migrations before seeding")
	flag.Parse()

	// Fall back to environment variables, then defaults
	if *username == "" {
		*username = os.Getenv("SEED_USERNAME")
	}
	if *password == "" {
		*password = os.Getenv("SEED_PASSWORD")
	}
	if *username == "" {
		*username = "admin"
	}
	if *password == "" {
		*password = "password123"
		slog.Warn("using default password 'password123'; change it outside development")
	}

	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	if err := seed(context.Background(), cfg, *username, *password, *migrate); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, cfg *config.Config, username, password string, migrate bool) error {
	if migrate {
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			return err
		}
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	// Seed in a transaction: staff, catalog and customers land together or not at all
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	q := database.New(tx)

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	staff, err := q.UpsertStaff(ctx, database.UpsertStaffParams{
		StaffCode:    "S-0001",
		FirstName:    "Store",
		LastName:     "Admin",
		MobileNumber: "09170000001",
		Username:     username,
		PasswordHash: string(hashed),
	})
	if err != nil {
		return fmt.Errorf("upsert staff: %w", err)
	}
	slog.Info("staff ready", "id", staff.ID, "username", staff.Username)

	if err := seedProducts(ctx, q); err != nil {
		return err
	}
	if err := seedCustomers(ctx, q); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	token, err := auth.GenerateToken(cfg.JWTSecret, staff.ID, staff.Username, 24*time.Hour)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	fmt.Printf("Development token for %s (24h):\n%s\n", staff.Username, token)
	return nil
}

// seedProducts fills an empty catalog with a few sample products.
func seedProducts(ctx context.Context, q *database.Queries) error {
	existing, err := q.ListProducts(ctx, database.ListProductsParams{Limit: 1})
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("catalog not empty, skipping products")
		return nil
	}

	products := []database.CreateProductParams{
		{Name: "Engine oil 1L", Description: "Synthetic 5W-30", PriceCents: 45000, ProductType: database.ProductTypePhysicalGood},
		{Name: "Oil filter", Description: "Standard spin-on filter", PriceCents: 12000, ProductType: database.ProductTypePhysicalGood},
		{Name: "Oil change", Description: "Labor, up to 30 minutes", PriceCents: 30000, ProductType: database.ProductTypeService},
		{Name: "Wheel alignment", Description: "Four-wheel alignment", PriceCents: 80000, ProductType: database.ProductTypeService},
	}
	for _, p := range products {
		created, err := q.CreateProduct(ctx, p)
		if err != nil {
			return fmt.Errorf("create product %q: %w", p.Name, err)
		}
		slog.Info("created product", "id", created.ID, "name", created.Name)
	}
	return nil
}

// seedCustomers adds sample customers when there are none.
func seedCustomers(ctx context.Context, q *database.Queries) error {
	existing, err := q.ListCustomers(ctx, database.ListCustomersParams{Limit: 1})
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("customers present, skipping")
		return nil
	}

	customers := []database.CreateCustomerParams{
		{FirstName: "Ana", LastName: "Reyes", MiddleName: pgtype.Text{String: "Cruz", Valid: true}, MobileNumber: "09171234567", Email: "ana@example.com"},
		{FirstName: "Ben", LastName: "Santos", MobileNumber: "09177654321", Email: "ben@example.com"},
	}
	for _, c := range customers {
		created, err := q.CreateCustomer(ctx, c)
		if err != nil {
			return fmt.Errorf("create customer %s %s: %w", c.FirstName, c.LastName, err)
		}
		slog.Info("created customer", "id", created.ID)
	}
	return nil
}
