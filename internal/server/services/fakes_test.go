package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/RaivoMihlenovs/capstone-project/internal/dbx"
	"github.com/RaivoMihlenovs/capstone-project/internal/logging"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
	cartrepo "github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/cart"
	ordersrepo "github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/orders"
	productsrepo "github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/products"
	statsrepo "github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/stats"
	usersrepo "github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/users"
	"github.com/shopspring/decimal"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type testLogger struct {
	errors []string
}

func (l *testLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (l *testLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (l *testLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (l *testLogger) Error(ctx context.Context, msg string, args ...any) {
	l.errors = append(l.errors, msg)
}
func (l *testLogger) With(args ...any) logging.Logger { return l }

// --- repository fakes ---

type fakeUsersRepo struct {
	usersrepo.Repository

	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error

	setAdminOut *models.User
	setAdminErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *f.createOut
	out.PasswordHash = u.PasswordHash
	return &out, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeUsersRepo) SetAdmin(ctx context.Context, id int64, isAdmin bool) (*models.User, error) {
	if f.setAdminErr != nil {
		return nil, f.setAdminErr
	}
	return f.setAdminOut, nil
}

type fakeProductsRepo struct {
	productsrepo.Repository

	decremented map[int64]int64
	decErr      error
}

func (f *fakeProductsRepo) DecrementStock(ctx context.Context, id int64, quantity int64) error {
	if f.decErr != nil {
		return f.decErr
	}
	if f.decremented == nil {
		f.decremented = map[int64]int64{}
	}
	f.decremented[id] += quantity
	return nil
}

type fakeCartRepo struct {
	cartrepo.Repository

	linesOut []models.CartLine
	linesErr error

	cleared  bool
	clearErr error
}

func (f *fakeCartRepo) LinesForUpdate(ctx context.Context, userID int64) ([]models.CartLine, error) {
	if f.linesErr != nil {
		return nil, f.linesErr
	}
	return f.linesOut, nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, userID int64) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = true
	return nil
}

type fakeOrdersRepo struct {
	ordersrepo.Repository

	createOut   *models.Order
	createErr   error
	createTotal decimal.Decimal

	items      []models.OrderItem
	addItemErr error

	getOut *models.Order
	getErr error

	updateOut *models.Order
	updateErr error
	updatedTo models.OrderStatus
}

func (f *fakeOrdersRepo) Create(ctx context.Context, userID int64, total decimal.Decimal, status models.OrderStatus) (*models.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createTotal = total
	return f.createOut, nil
}

func (f *fakeOrdersRepo) AddItem(ctx context.Context, orderID int64, item models.OrderItem) error {
	if f.addItemErr != nil {
		return f.addItemErr
	}
	f.items = append(f.items, item)
	return nil
}

func (f *fakeOrdersRepo) GetForUser(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeOrdersRepo) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updatedTo = status
	return f.updateOut, nil
}

type fakeStatsRepo struct {
	computeOut *models.Stats
	computeErr error

	upserts   int
	upsertErr error
}

func (f *fakeStatsRepo) Compute(ctx context.Context) (*models.Stats, error) {
	if f.computeErr != nil {
		return nil, f.computeErr
	}
	return f.computeOut, nil
}

func (f *fakeStatsRepo) Upsert(ctx context.Context, s *models.Stats) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts++
	return nil
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	p  *fakeProductsRepo
	c  *fakeCartRepo
	o  *fakeOrdersRepo
	st *fakeStatsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository           { return m.u }
func (m *fakeRepoManager) Products(db dbx.DBTX) productsrepo.Repository     { return m.p }
func (m *fakeRepoManager) Cart(db dbx.DBTX) cartrepo.Repository             { return m.c }
func (m *fakeRepoManager) Orders(db dbx.DBTX) ordersrepo.Repository         { return m.o }
func (m *fakeRepoManager) Stats(db dbx.DBTX) statsrepo.Repository           { return m.st }

func newStatsService(db *sql.DB, rm *fakeRepoManager, logger *testLogger) *StatsService {
	return NewStatsService(db, rm, logger)
}
