package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueProductName returns a normalized product name that no other test uses.
func UniqueProductName(prefix string) domain.ProductName {
	return domain.NormalizeProductName(prefix + " " + uniqueSuffix())
}

// SeedUser creates a user with the given password hash.
func SeedUser(t *testing.T, pool *pgxpool.Pool, passwordHash string) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := domain.User{
		ID:           uuid.New(),
		Email:        "operador-" + suffix + "@example.com",
		Name:         "Operador " + suffix,
		PasswordHash: passwordHash,
		Role:         domain.UserRoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role.String(), u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return u
}

// SeedProduct inserts a uniquely named product and returns its name.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, prefix string) domain.ProductName {
	t.Helper()

	name := UniqueProductName(prefix)
	_, err := pool.Exec(context.Background(),
		`INSERT INTO products (id, name) VALUES ($1, $2)`, uuid.New(), name.String())
	if err != nil {
		t.Fatalf("testhelper: SeedProduct: %v", err)
	}
	return name
}

// SeedConfig stores factors for an existing product. Zero means NULL.
func SeedConfig(t *testing.T, pool *pgxpool.Pool, name domain.ProductName, perBoard, perMold int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO product_configs (product_id, units_per_board, units_per_mold)
		 SELECT id, $2, $3 FROM products WHERE name = $1
		 ON CONFLICT (product_id) DO UPDATE
		 SET units_per_board = EXCLUDED.units_per_board, units_per_mold = EXCLUDED.units_per_mold`,
		name.String(), domain.NewFactor(perBoard).Ptr(), domain.NewFactor(perMold).Ptr(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedConfig: %v", err)
	}
}

// SeedCategory inserts a uniquely named category.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, protected bool, types ...domain.MeasurementType) domain.Category {
	t.Helper()

	suffix := uniqueSuffix()
	c := domain.Category{
		ID:               "cat-" + suffix,
		Name:             "Categoria " + suffix,
		MeasurementTypes: domain.CanonicalMeasurementTypes(types),
		Protected:        protected,
	}
	raw := make([]string, len(c.MeasurementTypes))
	for i, mt := range c.MeasurementTypes {
		raw[i] = mt.String()
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO categories (id, name, measurement_types, is_protected) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, raw, c.Protected,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory: %v", err)
	}
	return c
}

// SeedWorker inserts a worker.
func SeedWorker(t *testing.T, pool *pgxpool.Pool) domain.Worker {
	t.Helper()

	w := domain.Worker{ID: uuid.New(), Name: "Diarista " + uniqueSuffix()}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO workers (id, name) VALUES ($1, $2)`, w.ID, w.Name)
	if err != nil {
		t.Fatalf("testhelper: SeedWorker: %v", err)
	}
	return w
}

// UniqueDate returns a random date far in the past so production and
// attendance tests do not collide on date keys.
func UniqueDate() domain.Date {
	id := uuid.New()
	days := int(id[0])<<8 | int(id[1])
	return domain.NewDate(1900, time.January, 1).AddDays(days)
}
