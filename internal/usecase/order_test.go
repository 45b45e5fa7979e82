package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/config"
	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newOrderUseCase(store *testhelpers.OrderStore, notifier Notifier, policy string) *OrderUseCase {
	return NewOrderUseCase(store, notifier, OrderOptions{
		StockPolicy: policy,
		Signature:   "Shop Team",
		Now:         func() time.Time { return fixedNow },
	}, discardLogger())
}

func validOrder(productID uuid.UUID, qty int, total string) model.Order {
	return model.Order{
		Items: []model.OrderItem{{
			ProductID: productID, Name: "Shoe", Image: "shoe.png", Quantity: qty, Price: decimal.RequireFromString("5"),
		}},
		Shipping:      model.ShippingInfo{Address: "1 Main St", City: "Springfield", PhoneNo: "555", PostalCode: "111", Country: "US"},
		Payment:       model.PaymentInfo{ID: "pay_1", Status: "succeeded"},
		ItemsPrice:    decimal.RequireFromString(total),
		TotalPrice:    decimal.RequireFromString(total),
		TaxPrice:      decimal.Zero,
		ShippingPrice: decimal.Zero,
	}
}

// seedOrder creates an order for user 7 over a product with stock 10.
func seedOrder(t *testing.T, uc *OrderUseCase, store *testhelpers.OrderStore, qty int) (*model.Order, uuid.UUID) {
	t.Helper()
	productID := uuid.New()
	store.SetStock(productID, 10)
	store.AddUser(7, "Ann", "ann@shop.io")
	order, err := uc.Create(context.Background(), 7, validOrder(productID, qty, "10"))
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	return order, productID
}

func TestOrderUseCaseCreate(t *testing.T) {
	store := testhelpers.NewOrderStore()
	uc := newOrderUseCase(store, nil, config.StockPolicyOnce)

	input := validOrder(uuid.New(), 1, "10")
	input.Status = model.OrderStatusDelivered
	input.UserID = 99

	order, err := uc.Create(context.Background(), 7, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID == uuid.Nil {
		t.Fatal("expected id to be assigned")
	}
	if order.UserID != 7 || order.Status != model.OrderStatusProcessing {
		t.Fatalf("expected owner 7 in Processing, got %d %s", order.UserID, order.Status)
	}
	if !order.PaidAt.Equal(fixedNow) || order.DeliveredAt != nil {
		t.Fatalf("unexpected timestamps: paid=%v delivered=%v", order.PaidAt, order.DeliveredAt)
	}

	mine, err := uc.ListMine(context.Background(), 7)
	if err != nil || len(mine) != 1 || mine[0].ID != order.ID {
		t.Fatalf("expected order in my orders, got %v %v", mine, err)
	}
}

func TestOrderUseCaseCreateRejectsInvalid(t *testing.T) {
	store := testhelpers.NewOrderStore()
	store.CreateErr = errors.New("create should not be called")
	uc := newOrderUseCase(store, nil, config.StockPolicyOnce)

	input := validOrder(uuid.New(), 1, "10")
	input.Items = nil
	if _, err := uc.Create(context.Background(), 7, input); !errors.Is(err, domainErrors.ErrInvalidOrder) {
		t.Fatalf("expected invalid order error, got %v", err)
	}
}

func TestOrderUseCaseCreatePropagatesStoreError(t *testing.T) {
	store := testhelpers.NewOrderStore()
	store.CreateErr = errors.New("db down")
	uc := newOrderUseCase(store, nil, config.StockPolicyOnce)

	if _, err := uc.Create(context.Background(), 7, validOrder(uuid.New(), 1, "10")); err == nil || err.Error() != "db down" {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestOrderUseCaseGet(t *testing.T) {
	store := testhelpers.NewOrderStore()
	uc := newOrderUseCase(store, nil, config.StockPolicyOnce)
	order, _ := seedOrder(t, uc, store, 1)
	ctx := context.Background()

	got, err := uc.Get(ctx, model.Actor{UserID: 7, Role: model.RoleUser}, order.ID)
	if err != nil {
		t.Fatalf("owner get returned error: %v", err)
	}
	if got.User == nil || got.User.Name != "Ann" || got.User.Email != "ann@shop.io" {
		t.Fatalf("expected owner to be expanded, got %+v", got.User)
	}

	if _, err := uc.Get(ctx, model.Actor{UserID: 8, Role: model.RoleAdmin}, order.ID); err != nil {
		t.Fatalf("admin get returned error: %v", err)
	}
	if _, err := uc.Get(ctx, model.Actor{UserID: 8, Role: model.RoleUser}, order.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected other users to get not found, got %v", err)
	}
	if _, err := uc.Get(ctx, model.Actor{UserID: 7}, uuid.New()); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}

func TestOrderUseCaseListAllSumsTotals(t *testing.T) {
	store := testhelpers.NewOrderStore()
	uc := newOrderUseCase(store, nil, config.StockPolicyOnce)
	ctx := context.Background()

	if _, err := uc.Create(ctx, 1, validOrder(uuid.New(), 1, "10")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.Create(ctx, 2, validOrder(uuid.New(), 1, "15")); err != nil {
		t.Fatalf("create: %v", err)
	}

	orders, total, err := uc.ListAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if !total.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected total 25, got %s", total)
	}
}

func TestOrderUseCaseListAllExactDecimals(t *testing.T) {
	store := testhelpers.NewOrderStore()
	uc := newOrderUseCase(store, nil, config.StockPolicyOnce)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := uc.Create(ctx, 1, validOrder(uuid.New(), 1, "0.1")); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	_, total, err := uc.ListAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total.String() != "0.3" {
		t.Fatalf("expected exact 0.3, got %s", total)
	}

	store.ListErr = errors.New("list")
	if _, _, err := uc.ListAll(ctx); err == nil {
		t.Fatal("expected list error")
	}
}

func TestOrderUseCaseUpdateStatusDeliveredSendsEmail(t *testing.T) {
	store := testhelpers.NewOrderStore()
	notifier := &testhelpers.NotifierStub{}
	uc := newOrderUseCase(store, notifier, config.StockPolicyOnce)
	order, productID := seedOrder(t, uc, store, 2)

	updated, err := uc.UpdateStatus(context.Background(), order.ID, model.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != model.OrderStatusDelivered || updated.DeliveredAt == nil || !updated.DeliveredAt.Equal(fixedNow) {
		t.Fatalf("expected delivered order with timestamp, got %+v", updated)
	}
	if got := store.Stock(productID); got != 8 {
		t.Fatalf("expected stock 8, got %d", got)
	}

	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(sent))
	}
	n := sent[0]
	if n.To != "ann@shop.io" || n.Subject != "Order Delivered" || n.OrderID != order.ID {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if !strings.Contains(n.Body, "Dear Ann") || !strings.Contains(n.Body, order.ID.String()) || !strings.HasSuffix(n.Body, "Shop Team") {
		t.Fatalf("unexpected body: %q", n.Body)
	}
}

func TestOrderUseCaseUpdateStatusNonDelivered(t *testing.T) {
	store := testhelpers.NewOrderStore()
	notifier := &testhelpers.NotifierStub{}
	uc := newOrderUseCase(store, notifier, config.StockPolicyOnce)
	order, productID := seedOrder(t, uc, store, 3)

	updated, err := uc.UpdateStatus(context.Background(), order.ID, model.OrderStatusShipped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.DeliveredAt != nil {
		t.Fatalf("expected no delivery timestamp, got %v", updated.DeliveredAt)
	}
	if len(notifier.Sent()) != 0 {
		t.Fatal("expected no notification for non-delivered status")
	}
	if got := store.Stock(productID); got != 7 {
		t.Fatalf("expected stock 7, got %d", got)
	}
}

func TestOrderUseCaseDeliveredIsTerminal(t *testing.T) {
	store := testhelpers.NewOrderStore()
	notifier := &testhelpers.NotifierStub{}
	uc := newOrderUseCase(store, notifier, config.StockPolicyEvery)
	order, productID := seedOrder(t, uc, store, 1)
	ctx := context.Background()

	if _, err := uc.UpdateStatus(ctx, order.ID, model.OrderStatusDelivered); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	stock := store.Stock(productID)
	updates := len(store.Updates())

	for _, next := range []model.OrderStatus{model.OrderStatusDelivered, model.OrderStatusProcessing, model.OrderStatusCancelled} {
		if _, err := uc.UpdateStatus(ctx, order.ID, next); !errors.Is(err, domainErrors.ErrOrderDelivered) {
			t.Fatalf("expected delivered error for %s, got %v", next, err)
		}
	}
	if store.Stock(productID) != stock {
		t.Fatalf("stock changed after terminal update: %d -> %d", stock, store.Stock(productID))
	}
	if len(store.Updates()) != updates {
		t.Fatal("expected no store writes after terminal state")
	}
	if len(notifier.Sent()) != 1 {
		t.Fatalf("expected exactly one delivery e-mail, got %d", len(notifier.Sent()))
	}
}

func TestOrderUseCaseStockPolicies(t *testing.T) {
	cases := []struct {
		policy string
		want   int
		deduct model.StockDeduction
	}{
		{config.StockPolicyOnce, 8, model.DeductOnce},
		{config.StockPolicyEvery, 4, model.DeductAlways},
	}
	for _, tc := range cases {
		t.Run(tc.policy, func(t *testing.T) {
			store := testhelpers.NewOrderStore()
			uc := newOrderUseCase(store, nil, tc.policy)
			order, productID := seedOrder(t, uc, store, 2)
			ctx := context.Background()

			for _, s := range []model.OrderStatus{model.OrderStatusShipped, model.OrderStatusProcessing, model.OrderStatusShipped} {
				if _, err := uc.UpdateStatus(ctx, order.ID, s); err != nil {
					t.Fatalf("update to %s failed: %v", s, err)
				}
			}
			if got := store.Stock(productID); got != tc.want {
				t.Fatalf("expected stock %d, got %d", tc.want, got)
			}
			for _, upd := range store.Updates() {
				if upd.Deduct != tc.deduct {
					t.Fatalf("expected deduction mode %v, got %v", tc.deduct, upd.Deduct)
				}
			}
		})
	}
}

func TestOrderUseCaseUpdateStatusErrors(t *testing.T) {
	store := testhelpers.NewOrderStore()
	uc := newOrderUseCase(store, nil, config.StockPolicyOnce)
	order, productID := seedOrder(t, uc, store, 2)
	ctx := context.Background()

	if _, err := uc.UpdateStatus(ctx, order.ID, "Lost"); !errors.Is(err, domainErrors.ErrInvalidOrderStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
	if _, err := uc.UpdateStatus(ctx, uuid.New(), model.OrderStatusShipped); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown order, got %v", err)
	}

	store.SetStock(productID, 1)
	if _, err := uc.UpdateStatus(ctx, order.ID, model.OrderStatusShipped); !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	got, err := uc.Get(ctx, model.Actor{UserID: 7}, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != model.OrderStatusProcessing || store.Stock(productID) != 1 {
		t.Fatalf("expected no mutation after failed update, got %s stock=%d", got.Status, store.Stock(productID))
	}

	store.UpdateErr = errors.New("tx failed")
	if _, err := uc.UpdateStatus(ctx, order.ID, model.OrderStatusShipped); err == nil || err.Error() != "tx failed" {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestOrderUseCaseNotificationFailureIsAbsorbed(t *testing.T) {
	store := testhelpers.NewOrderStore()
	notifier := &testhelpers.NotifierStub{Err: errors.New("queue full")}
	uc := newOrderUseCase(store, notifier, config.StockPolicyOnce)
	order, _ := seedOrder(t, uc, store, 1)

	updated, err := uc.UpdateStatus(context.Background(), order.ID, model.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("expected success despite notifier failure, got %v", err)
	}
	if updated.Status != model.OrderStatusDelivered {
		t.Fatalf("unexpected status %s", updated.Status)
	}
}

func TestOrderUseCaseSkipsEmailWithoutAddress(t *testing.T) {
	store := testhelpers.NewOrderStore()
	notifier := &testhelpers.NotifierStub{}
	uc := newOrderUseCase(store, notifier, config.StockPolicyOnce)

	productID := uuid.New()
	store.SetStock(productID, 5)
	order, err := uc.Create(context.Background(), 3, validOrder(productID, 1, "5"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.UpdateStatus(context.Background(), order.ID, model.OrderStatusDelivered); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.Sent()) != 0 {
		t.Fatal("expected no notification for owner without e-mail")
	}
}

func TestOrderUseCaseDelete(t *testing.T) {
	store := testhelpers.NewOrderStore()
	uc := newOrderUseCase(store, nil, config.StockPolicyOnce)
	order, productID := seedOrder(t, uc, store, 2)
	ctx := context.Background()

	if _, err := uc.UpdateStatus(ctx, order.ID, model.OrderStatusShipped); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := uc.Delete(ctx, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Get(ctx, model.Actor{Role: model.RoleAdmin}, order.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	mine, _ := uc.ListMine(ctx, 7)
	all, _, _ := uc.ListAll(ctx)
	if len(mine) != 0 || len(all) != 0 {
		t.Fatalf("expected order removed from listings, got mine=%d all=%d", len(mine), len(all))
	}
	if got := store.Stock(productID); got != 8 {
		t.Fatalf("expected stock not restored (8), got %d", got)
	}
	if err := uc.Delete(ctx, order.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestDeliveredMessage(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	got := DeliveredMessage("Ann", id, "Team")
	want := "Dear Ann,\n\nYour order with ID 11111111-2222-3333-4444-555555555555 has been successfully delivered. " +
		"Thank you for shopping with us!\n\nBest Regards,\nTeam"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
