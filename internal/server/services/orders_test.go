package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/RaivoMihlenovs/capstone-project/internal/common"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
)

func cartLine(productID, quantity, stock int64, price string) models.CartLine {
	return models.CartLine{
		ID:        productID * 10,
		ProductID: productID,
		Quantity:  quantity,
		Stock:     stock,
		Price:     decimal.RequireFromString(price),
	}
}

func newOrderServiceForTest(t *testing.T, rm *fakeRepoManager) (*OrderService, *testLogger, func()) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	logger := &testLogger{}
	stats := newStatsService(db, rm, logger)
	return NewOrderService(db, rm, stats, logger), logger, func() { db.Close() }
}

func TestPlace_Success(t *testing.T) {
	placed := &models.Order{ID: 7, UserID: 1, Status: models.StatusPending}

	rm := &fakeRepoManager{
		c: &fakeCartRepo{linesOut: []models.CartLine{
			cartLine(1, 2, 5, "19.99"),
			cartLine(2, 1, 1, "5.01"),
		}},
		p:  &fakeProductsRepo{},
		o:  &fakeOrdersRepo{createOut: placed, getOut: placed},
		st: &fakeStatsRepo{computeOut: &models.Stats{}},
	}

	svc, _, cleanup := newOrderServiceForTest(t, rm)
	defer cleanup()

	order, err := svc.Place(context.Background(), 1)
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if order.ID != 7 {
		t.Errorf("order id = %d, want 7", order.ID)
	}

	if want := decimal.RequireFromString("44.99"); !rm.o.createTotal.Equal(want) {
		t.Errorf("order total = %s, want %s", rm.o.createTotal, want)
	}
	if len(rm.o.items) != 2 {
		t.Fatalf("recorded %d order items, want 2", len(rm.o.items))
	}
	if !rm.o.items[0].Price.Equal(decimal.RequireFromString("19.99")) {
		t.Errorf("item price = %s, want 19.99", rm.o.items[0].Price)
	}
	if rm.p.decremented[1] != 2 || rm.p.decremented[2] != 1 {
		t.Errorf("stock decrements = %v, want map[1:2 2:1]", rm.p.decremented)
	}
	if !rm.c.cleared {
		t.Error("cart was not cleared")
	}
	if rm.st.upserts != 1 {
		t.Errorf("stats upserts = %d, want 1", rm.st.upserts)
	}
}

func TestPlace_EmptyCart(t *testing.T) {
	rm := &fakeRepoManager{
		c:  &fakeCartRepo{},
		p:  &fakeProductsRepo{},
		o:  &fakeOrdersRepo{},
		st: &fakeStatsRepo{computeOut: &models.Stats{}},
	}

	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	logger := &testLogger{}
	svc := NewOrderService(db, rm, newStatsService(db, rm, logger), logger)

	_, err := svc.Place(context.Background(), 1)
	if !errors.Is(err, common.ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("tx expectations: %v", err)
	}
	if rm.st.upserts != 0 {
		t.Errorf("stats refreshed after failed checkout")
	}
}

func TestPlace_InsufficientStock(t *testing.T) {
	rm := &fakeRepoManager{
		c: &fakeCartRepo{linesOut: []models.CartLine{
			cartLine(1, 2, 5, "10.00"),
			cartLine(2, 3, 1, "4.00"), // wants 3, only 1 left
		}},
		p:  &fakeProductsRepo{},
		o:  &fakeOrdersRepo{},
		st: &fakeStatsRepo{computeOut: &models.Stats{}},
	}

	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	logger := &testLogger{}
	svc := NewOrderService(db, rm, newStatsService(db, rm, logger), logger)

	_, err := svc.Place(context.Background(), 1)

	var stockErr *common.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if stockErr.ProductID != 2 {
		t.Errorf("offending product = %d, want 2", stockErr.ProductID)
	}
	if len(rm.p.decremented) != 0 {
		t.Errorf("stock was decremented despite failed check: %v", rm.p.decremented)
	}
	if rm.c.cleared {
		t.Error("cart was cleared despite rollback")
	}
}

func TestPlace_DecrementRace(t *testing.T) {
	// The pre-check passes but a concurrent checkout already took the stock;
	// the guarded decrement reports it and the whole order rolls back.
	rm := &fakeRepoManager{
		c: &fakeCartRepo{linesOut: []models.CartLine{
			cartLine(1, 2, 5, "10.00"),
		}},
		p:  &fakeProductsRepo{decErr: &common.InsufficientStockError{ProductID: 1}},
		o:  &fakeOrdersRepo{createOut: &models.Order{ID: 9}},
		st: &fakeStatsRepo{computeOut: &models.Stats{}},
	}

	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	logger := &testLogger{}
	svc := NewOrderService(db, rm, newStatsService(db, rm, logger), logger)

	_, err := svc.Place(context.Background(), 1)

	var stockErr *common.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if rm.c.cleared {
		t.Error("cart was cleared despite rollback")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("tx expectations: %v", err)
	}
}

func TestPlace_StatsFailureDoesNotFailOrder(t *testing.T) {
	placed := &models.Order{ID: 3, UserID: 1, Status: models.StatusPending}

	rm := &fakeRepoManager{
		c:  &fakeCartRepo{linesOut: []models.CartLine{cartLine(1, 1, 1, "2.50")}},
		p:  &fakeProductsRepo{},
		o:  &fakeOrdersRepo{createOut: placed, getOut: placed},
		st: &fakeStatsRepo{computeErr: errors.New("stats backend down")},
	}

	svc, logger, cleanup := newOrderServiceForTest(t, rm)
	defer cleanup()

	order, err := svc.Place(context.Background(), 1)
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if order.ID != 3 {
		t.Errorf("order id = %d, want 3", order.ID)
	}
	if len(logger.errors) == 0 {
		t.Error("stats failure was not logged")
	}
}

func TestUpdateStatus_InvalidLiteral(t *testing.T) {
	rm := &fakeRepoManager{o: &fakeOrdersRepo{}, st: &fakeStatsRepo{computeOut: &models.Stats{}}}

	db, _ := newSQLMockDB(t)
	defer db.Close()
	logger := &testLogger{}
	svc := NewOrderService(db, rm, newStatsService(db, rm, logger), logger)

	_, err := svc.UpdateStatus(context.Background(), 1, "Shipped To The Moon")

	var statusErr *common.InvalidStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want InvalidStatusError", err)
	}
	if rm.st.upserts != 0 {
		t.Error("stats refreshed for a rejected status")
	}
}

func TestUpdateStatus_Success(t *testing.T) {
	rm := &fakeRepoManager{
		o:  &fakeOrdersRepo{updateOut: &models.Order{ID: 4, Status: models.StatusDelivered}},
		st: &fakeStatsRepo{computeOut: &models.Stats{}},
	}

	db, _ := newSQLMockDB(t)
	defer db.Close()
	logger := &testLogger{}
	svc := NewOrderService(db, rm, newStatsService(db, rm, logger), logger)

	order, err := svc.UpdateStatus(context.Background(), 4, "Delivered")
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if order.Status != models.StatusDelivered {
		t.Errorf("status = %s, want %s", order.Status, models.StatusDelivered)
	}
	if rm.o.updatedTo != models.StatusDelivered {
		t.Errorf("repo received status %s, want %s", rm.o.updatedTo, models.StatusDelivered)
	}
	if rm.st.upserts != 1 {
		t.Errorf("stats upserts = %d, want 1", rm.st.upserts)
	}
}
