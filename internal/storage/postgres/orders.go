package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

const orderColumns = `o.id, o.user_id, o.shipping, o.payment,
                   o.items_price::text, o.tax_price::text, o.shipping_price::text, o.total_price::text,
                   o.status, o.stock_deducted, o.paid_at, o.delivered_at, o.created_at`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	shipping, err := json.Marshal(order.Shipping)
	if err != nil {
		return fmt.Errorf("encode shipping: %w", err)
	}
	payment, err := json.Marshal(order.Payment)
	if err != nil {
		return fmt.Errorf("encode payment: %w", err)
	}

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (id, user_id, shipping, payment, items_price, tax_price, shipping_price,
                                 total_price, status, stock_deducted, paid_at)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                             RETURNING created_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.ID, order.UserID, shipping, payment,
			order.ItemsPrice.String(), order.TaxPrice.String(), order.ShippingPrice.String(), order.TotalPrice.String(),
			string(order.Status), order.StockDeducted, order.PaidAt,
		).Scan(&order.CreatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, position, product_id, name, image, quantity, price)
                            VALUES ($1, $2, $3, $4, $5, $6, $7)`
		for i, item := range order.Items {
			if _, err := tx.Exec(ctx, insertItem, order.ID, i, item.ProductID, item.Name, item.Image, item.Quantity, item.Price.String()); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + `, u.name, u.email
                   FROM orders o JOIN users u ON u.id = o.user_id
                   WHERE o.id=$1`

	var (
		ref  model.UserRef
		dest orderRow
	)
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(append(dest.targets(), &ref.Name, &ref.Email)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	order, err := dest.order()
	if err != nil {
		return nil, err
	}
	ref.ID = order.UserID
	order.User = &ref

	orders := []model.Order{order}
	if err := attachItems(ctx, r.storage.pool, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders o WHERE o.user_id=$1 ORDER BY o.created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders o ORDER BY o.created_at DESC`
	return r.list(ctx, query)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var dest orderRow
		if err := rows.Scan(dest.targets()...); err != nil {
			return nil, err
		}
		order, err := dest.order()
		if err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := attachItems(ctx, r.storage.pool, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, upd model.StatusUpdate) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockOrder = `SELECT status, stock_deducted FROM orders WHERE id=$1 FOR UPDATE`
		var (
			current  string
			deducted bool
		)
		if err := tx.QueryRow(ctx, lockOrder, upd.OrderID).Scan(&current, &deducted); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if model.OrderStatus(current).Terminal() {
			return domainErrors.ErrOrderDelivered
		}

		deduct := upd.Deduct == model.DeductAlways || (upd.Deduct == model.DeductOnce && !deducted)
		if deduct {
			if err := r.deductStock(ctx, tx, upd.OrderID); err != nil {
				return err
			}
		}

		const updateOrder = `UPDATE orders
                             SET status=$2, delivered_at=COALESCE($3, delivered_at), stock_deducted=(stock_deducted OR $4)
                             WHERE id=$1`
		_, err := tx.Exec(ctx, updateOrder, upd.OrderID, string(upd.Status), upd.DeliveredAt, deduct)
		return err
	})
}

type stockLine struct {
	productID uuid.UUID
	quantity  int
}

func (r *orderRepository) deductStock(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) error {
	const selectItems = `SELECT product_id, quantity FROM order_items WHERE order_id=$1 ORDER BY position`
	rows, err := tx.Query(ctx, selectItems, orderID)
	if err != nil {
		return err
	}
	var lines []stockLine
	for rows.Next() {
		var l stockLine
		if err := rows.Scan(&l.productID, &l.quantity); err != nil {
			rows.Close()
			return err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	const decrement = `UPDATE products SET stock = stock - $2 WHERE id=$1 AND stock >= $2`
	for _, l := range lines {
		tag, err := tx.Exec(ctx, decrement, l.productID, l.quantity)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			continue
		}

		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, l.productID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("product %s: %w", l.productID, domainErrors.ErrNotFound)
		}
		return fmt.Errorf("product %s: %w", l.productID, domainErrors.ErrInsufficientStock)
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// orderRow holds raw column values before decoding into model.Order.
type orderRow struct {
	base                                   model.Order
	status                                 string
	shipping, payment                      []byte
	itemsPrice, taxPrice, shipPrice, total string
}

func (o *orderRow) targets() []any {
	return []any{
		&o.base.ID, &o.base.UserID, &o.shipping, &o.payment,
		&o.itemsPrice, &o.taxPrice, &o.shipPrice, &o.total,
		&o.status, &o.base.StockDeducted, &o.base.PaidAt, &o.base.DeliveredAt, &o.base.CreatedAt,
	}
}

func (o *orderRow) order() (model.Order, error) {
	order := o.base
	order.Status = model.OrderStatus(o.status)
	if err := json.Unmarshal(o.shipping, &order.Shipping); err != nil {
		return model.Order{}, fmt.Errorf("decode shipping: %w", err)
	}
	if err := json.Unmarshal(o.payment, &order.Payment); err != nil {
		return model.Order{}, fmt.Errorf("decode payment: %w", err)
	}

	var err error
	if order.ItemsPrice, err = decimal.NewFromString(o.itemsPrice); err != nil {
		return model.Order{}, fmt.Errorf("decode items price: %w", err)
	}
	if order.TaxPrice, err = decimal.NewFromString(o.taxPrice); err != nil {
		return model.Order{}, fmt.Errorf("decode tax price: %w", err)
	}
	if order.ShippingPrice, err = decimal.NewFromString(o.shipPrice); err != nil {
		return model.Order{}, fmt.Errorf("decode shipping price: %w", err)
	}
	if order.TotalPrice, err = decimal.NewFromString(o.total); err != nil {
		return model.Order{}, fmt.Errorf("decode total price: %w", err)
	}
	return order, nil
}

// attachItems loads line items for orders with a single query.
func attachItems(ctx context.Context, q querier, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	const query = `SELECT order_id, product_id, name, image, quantity, price::text
                   FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, position`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID uuid.UUID
			item    model.OrderItem
			price   string
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.Image, &item.Quantity, &price); err != nil {
			return err
		}
		if item.Price, err = decimal.NewFromString(price); err != nil {
			return fmt.Errorf("decode item price: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return rows.Err()
}
