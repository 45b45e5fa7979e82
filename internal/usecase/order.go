package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/config"
	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const deliveredSubject = "Order Delivered"

// Notifier hands customer e-mails to an asynchronous transport.
// Implementations must not block on delivery.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

// OrderOptions tunes order lifecycle behaviour.
type OrderOptions struct {
	StockPolicy string
	Signature   string
	Now         func() time.Time
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders    repository.OrderRepository
	notifier  Notifier
	logger    *slog.Logger
	deduct    model.StockDeduction
	signature string
	now       func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, notifier Notifier, opts OrderOptions, logger *slog.Logger) *OrderUseCase {
	deduct := model.DeductOnce
	if opts.StockPolicy == config.StockPolicyEvery {
		deduct = model.DeductAlways
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderUseCase{
		orders:    orders,
		notifier:  notifier,
		logger:    logger,
		deduct:    deduct,
		signature: opts.Signature,
		now:       now,
	}
}

// Create validates and stores a paid order on behalf of userID.
func (u *OrderUseCase) Create(ctx context.Context, userID int64, input model.Order) (*model.Order, error) {
	if err := ValidateOrder(input); err != nil {
		return nil, err
	}

	order := input
	order.ID = uuid.New()
	order.UserID = userID
	order.User = nil
	order.Status = model.OrderStatusProcessing
	order.StockDeducted = false
	order.PaidAt = u.now()
	order.DeliveredAt = nil

	if err := u.orders.Create(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Get returns the order with its owner expanded. Orders of other users are
// reported as missing unless the actor is an admin.
func (u *OrderUseCase) Get(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && order.UserID != actor.UserID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// ListMine returns every order placed by userID.
func (u *OrderUseCase) ListMine(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListAll returns every order with the exact sum of their totals.
func (u *OrderUseCase) ListAll(ctx context.Context) ([]model.Order, decimal.Decimal, error) {
	orders, err := u.orders.ListAll(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalPrice)
	}
	return orders, total, nil
}

// UpdateStatus moves an order to status, decrementing stock per the configured
// policy. Delivered orders are final. Delivery triggers a customer e-mail whose
// failure never affects the result.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domainErrors.ErrInvalidOrderStatus, status)
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, domainErrors.ErrOrderDelivered
	}

	upd := model.StatusUpdate{OrderID: id, Status: status, Deduct: u.deduct}
	if status == model.OrderStatusDelivered {
		now := u.now()
		upd.DeliveredAt = &now
	}

	if err := u.orders.UpdateStatus(ctx, upd); err != nil {
		return nil, err
	}

	order.Status = status
	order.StockDeducted = true
	if upd.DeliveredAt != nil {
		order.DeliveredAt = upd.DeliveredAt
		u.notifyDelivered(ctx, order)
	}

	u.logger.Info("order status updated",
		slog.String("order", id.String()),
		slog.String("status", string(status)),
	)
	return order, nil
}

// Delete removes the order. Stock is not restored.
func (u *OrderUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.orders.Delete(ctx, id)
}

func (u *OrderUseCase) notifyDelivered(ctx context.Context, order *model.Order) {
	if u.notifier == nil {
		return
	}
	if order.User == nil || order.User.Email == "" {
		u.logger.Warn("delivery e-mail skipped: owner has no address", slog.String("order", order.ID.String()))
		return
	}

	n := model.Notification{
		OrderID: order.ID,
		To:      order.User.Email,
		Name:    order.User.Name,
		Subject: deliveredSubject,
		Body:    DeliveredMessage(order.User.Name, order.ID, u.signature),
	}
	if err := u.notifier.Notify(ctx, n); err != nil {
		u.logger.Warn("delivery e-mail not queued",
			slog.String("order", order.ID.String()),
			slog.Any("error", err),
		)
	}
}

// DeliveredMessage renders the plain-text delivery confirmation.
func DeliveredMessage(name string, orderID uuid.UUID, signature string) string {
	return fmt.Sprintf("Dear %s,\n\nYour order with ID %s has been successfully delivered. "+
		"Thank you for shopping with us!\n\nBest Regards,\n%s", name, orderID, signature)
}
