package services

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/RaivoMihlenovs/capstone-project/internal/common"
	"github.com/RaivoMihlenovs/capstone-project/internal/dbx"
	"github.com/RaivoMihlenovs/capstone-project/internal/logging"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/repomanager"
)

// OrderService turns carts into orders and serves order reads. Checkout is
// the one multi-table write path in the system and runs entirely inside a
// single transaction.
type OrderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	stats       *StatsService
	logger      logging.Logger
}

func NewOrderService(db *sql.DB, m repomanager.RepositoryManager, stats *StatsService, logger logging.Logger) *OrderService {
	return &OrderService{
		db:          db,
		repomanager: m,
		stats:       stats,
		logger:      logger,
	}
}

// Place converts the user's cart into an order. In one transaction it locks
// the cart's product rows, verifies stock, totals the lines, creates the
// order with prices frozen at purchase time, decrements stock and empties
// the cart. Any failure rolls the whole thing back: stock, cart and order
// are never left half-updated.
func (s *OrderService) Place(ctx context.Context, userID int64) (*models.Order, error) {
	var orderID int64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cartRepo := s.repomanager.Cart(tx)
		productRepo := s.repomanager.Products(tx)
		orderRepo := s.repomanager.Orders(tx)

		lines, err := cartRepo.LinesForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return common.ErrEmptyCart
		}

		total := decimal.Zero
		for _, l := range lines {
			if l.Quantity > l.Stock {
				return &common.InsufficientStockError{ProductID: l.ProductID}
			}
			total = total.Add(l.Price.Mul(decimal.NewFromInt(l.Quantity)))
		}

		order, err := orderRepo.Create(ctx, userID, total, models.StatusPending)
		if err != nil {
			return err
		}

		for _, l := range lines {
			item := models.OrderItem{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				Price:     l.Price,
			}
			if err := orderRepo.AddItem(ctx, order.ID, item); err != nil {
				return err
			}
			if err := productRepo.DecrementStock(ctx, l.ProductID, l.Quantity); err != nil {
				return err
			}
		}

		if err := cartRepo.Clear(ctx, userID); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.stats.Refresh(ctx)

	return s.repomanager.Orders(s.db).GetForUser(ctx, userID, orderID)
}

func (s *OrderService) ListForUser(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.repomanager.Orders(s.db).ListForUser(ctx, userID)
}

func (s *OrderService) GetForUser(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	return s.repomanager.Orders(s.db).GetForUser(ctx, userID, orderID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.repomanager.Orders(s.db).ListAll(ctx)
}

// UpdateStatus moves an order to the given status literal. Any known status
// may follow any other; an unknown literal fails with
// *common.InvalidStatusError before touching the store.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status string) (*models.Order, error) {
	parsed, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	order, err := s.repomanager.Orders(s.db).UpdateStatus(ctx, orderID, parsed)
	if err != nil {
		return nil, err
	}

	s.stats.Refresh(ctx)

	return order, nil
}
