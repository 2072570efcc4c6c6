package repomanager

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/cart"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/orders"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/products"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/stats"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/users"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	m := NewPostgresRepositoryManager()
	var _ RepositoryManager = m
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager()

	if u := m.Users(db); u == nil {
		t.Fatal("Users() nil")
	}
	if p := m.Products(db); p == nil {
		t.Fatal("Products() nil")
	}
	if c := m.Cart(db); c == nil {
		t.Fatal("Cart() nil")
	}
	if o := m.Orders(db); o == nil {
		t.Fatal("Orders() nil")
	}
	if s := m.Stats(db); s == nil {
		t.Fatal("Stats() nil")
	}

	var _ users.Repository = m.Users(db)
	var _ products.Repository = m.Products(db)
	var _ cart.Repository = m.Cart(db)
	var _ orders.Repository = m.Orders(db)
	var _ stats.Repository = m.Stats(db)
}
