package product

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/heartmarshall/precast-backend/internal/domain"
)

func TestRepo_Search_QueryShape(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT name FROM products WHERE name ILIKE \$1 ORDER BY name LIMIT 10`).
		WithArgs(`%BLOCO 50\%%`).
		WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("BLOCO 50% OFF"))

	repo := New(mock)
	got, err := repo.Search(context.Background(), " bloco   50% ", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0] != domain.ProductName("BLOCO 50% OFF") {
		t.Errorf("Search = %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRepo_Delete_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM products`).
		WithArgs("TELHA 10").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = New(mock).Delete(context.Background(), "TELHA 10")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete: got %v, want ErrNotFound", err)
	}
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"BLOCO", "BLOCO"},
		{"50%", `50\%`},
		{"A_B", `A\_B`},
		{`C:\X`, `C:\\X`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
