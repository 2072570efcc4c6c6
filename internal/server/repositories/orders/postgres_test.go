package orders

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"github.com/RaivoMihlenovs/capstone-project/internal/common"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+orders\s*\(user_id,\s*total_amount,\s*status\)`).
		WithArgs(int64(1), decimal.RequireFromString("44.99"), models.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), time.Now(), time.Now()))

	got, err := repo.Create(context.Background(), 1, decimal.RequireFromString("44.99"), models.StatusPending)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 7 || got.Status != models.StatusPending {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestAddItem(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+order_items\s*\(order_id,\s*product_id,\s*quantity,\s*price\)`).
		WithArgs(int64(7), int64(2), int64(3), decimal.RequireFromString("19.99")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.AddItem(context.Background(), 7, models.OrderItem{
		ProductID: 2, Quantity: 3, Price: decimal.RequireFromString("19.99"),
	})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
}

func orderRows(withCustomer bool) *sqlmock.Rows {
	cols := []string{"id", "user_id", "total_amount", "status", "created_at", "updated_at",
		"product_id", "quantity", "price", "name", "image_url"}
	if withCustomer {
		cols = append(cols, "email", "name")
	}
	return sqlmock.NewRows(cols)
}

func TestListForUser_FoldsItems(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := orderRows(false).
		AddRow(int64(7), int64(1), "44.99", "Pending", now, now, int64(1), int64(2), "19.99", "Keyboard", nil).
		AddRow(int64(7), int64(1), "44.99", "Pending", now, now, int64(2), int64(1), "5.01", "Mouse", "http://img/2").
		AddRow(int64(6), int64(1), "10.00", "Delivered", now, now, int64(3), int64(1), "10.00", "Pad", nil)
	mock.ExpectQuery(`(?s)SELECT\s+o\.id,.*FROM\s+orders\s+o\s+LEFT\s+JOIN\s+order_items.*WHERE\s+o\.user_id\s*=\s*\$1`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	got, err := repo.ListForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListForUser error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d orders, want 2", len(got))
	}
	if len(got[0].Items) != 2 || len(got[1].Items) != 1 {
		t.Fatalf("item folding wrong: %d and %d items", len(got[0].Items), len(got[1].Items))
	}
	if got[0].Items[1].Name != "Mouse" || got[0].Items[1].ImageURL == nil {
		t.Fatalf("unexpected item: %+v", got[0].Items[1])
	}
	if !got[0].Items[0].Price.Equal(decimal.RequireFromString("19.99")) {
		t.Errorf("frozen price = %s, want 19.99", got[0].Items[0].Price)
	}
}

func TestListForUser_OrderWithoutItems(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := orderRows(false).
		AddRow(int64(5), int64(1), "0.00", "Canceled", now, now, nil, nil, nil, nil, nil)
	mock.ExpectQuery(`(?s)SELECT\s+o\.id,.*WHERE\s+o\.user_id\s*=\s*\$1`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	got, err := repo.ListForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListForUser error: %v", err)
	}
	if len(got) != 1 || len(got[0].Items) != 0 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestGetForUser_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+o\.id,.*WHERE\s+o\.id\s*=\s*\$1\s+AND\s+o\.user_id\s*=\s*\$2`).
		WithArgs(int64(42), int64(1)).
		WillReturnRows(orderRows(false))

	_, err := repo.GetForUser(context.Background(), 1, 42)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestListAll_IncludesCustomer(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := orderRows(true).
		AddRow(int64(7), int64(1), "44.99", "Pending", now, now,
			int64(1), int64(2), "19.99", "Keyboard", nil, "alice@example.com", "Alice")
	mock.ExpectQuery(`(?s)SELECT\s+o\.id,.*JOIN\s+users\s+u\s+ON\s+o\.user_id\s*=\s*u\.id`).
		WillReturnRows(rows)

	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(got) != 1 || got[0].CustomerEmail != "alice@example.com" || got[0].CustomerName != "Alice" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`UPDATE\s+orders\s+SET\s+status\s*=\s*\$1,\s*updated_at\s*=\s*CURRENT_TIMESTAMP\s+WHERE\s+id\s*=\s*\$2`).
		WithArgs(models.StatusDelivered, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "total_amount", "status", "created_at", "updated_at"}).
			AddRow(int64(7), int64(1), "44.99", "Delivered", now, now))

	got, err := repo.UpdateStatus(context.Background(), 7, models.StatusDelivered)
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if got.Status != models.StatusDelivered {
		t.Fatalf("status = %s, want Delivered", got.Status)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+orders\s+SET\s+status`).
		WithArgs(models.StatusDelivered, int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateStatus(context.Background(), 99, models.StatusDelivered)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}
