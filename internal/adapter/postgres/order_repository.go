package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

// Create stores the order and its lines in one transaction. Line snapshots
// (menu item copy + selected customizations) go into JSONB columns: the
// reorder flow reads them back as a unit and nothing queries inside them.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	restaurant, err := json.Marshal(order.Restaurant)
	if err != nil {
		return fmt.Errorf("failed to encode restaurant snapshot: %w", err)
	}
	address, err := json.Marshal(order.DeliveryAddress)
	if err != nil {
		return fmt.Errorf("failed to encode delivery address: %w", err)
	}

	query := `
		INSERT INTO orders (id, number, user_id, restaurant, subtotal, delivery_fee,
		                    tax, discount, total, status, delivery_address, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = tx.Exec(ctx, query,
		order.ID, order.Number, order.UserID, restaurant, order.Subtotal, order.DeliveryFee,
		order.Tax, order.Discount, order.Total, order.Status, address, order.PaymentMethod, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i, item := range order.Items {
		menuItem, err := json.Marshal(item.MenuItem)
		if err != nil {
			return fmt.Errorf("failed to encode menu item snapshot: %w", err)
		}
		selections, err := json.Marshal(item.SelectedCustomizations)
		if err != nil {
			return fmt.Errorf("failed to encode customizations: %w", err)
		}

		itemQuery := `
			INSERT INTO order_items (id, order_id, position, menu_item, quantity,
			                         customizations, special_instructions, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		_, err = tx.Exec(ctx, itemQuery,
			item.ID, order.ID, i, menuItem, item.Quantity,
			selections, item.SpecialInstructions, item.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) OrderByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, number, user_id, restaurant, subtotal, delivery_fee,
		       tax, discount, total, status, delivery_address, payment_method, created_at
		FROM orders
		WHERE id = $1
	`

	var order domain.Order
	var restaurant, address []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.Number, &order.UserID, &restaurant, &order.Subtotal, &order.DeliveryFee,
		&order.Tax, &order.Discount, &order.Total, &order.Status, &address, &order.PaymentMethod, &order.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	if err := json.Unmarshal(restaurant, &order.Restaurant); err != nil {
		return nil, fmt.Errorf("failed to decode restaurant snapshot: %w", err)
	}
	if err := json.Unmarshal(address, &order.DeliveryAddress); err != nil {
		return nil, fmt.Errorf("failed to decode delivery address: %w", err)
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *orderRepository) OrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := `SELECT id FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan order id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()

	orders := make([]*domain.Order, 0, len(ids))
	for _, id := range ids {
		order, err := r.OrderByID(ctx, id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID string) ([]domain.CartItem, error) {
	query := `
		SELECT id, menu_item, quantity, customizations, special_instructions, total_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY position
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		var menuItem, selections []byte
		if err := rows.Scan(&item.ID, &menuItem, &item.Quantity, &selections,
			&item.SpecialInstructions, &item.TotalPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if err := json.Unmarshal(menuItem, &item.MenuItem); err != nil {
			return nil, fmt.Errorf("failed to decode menu item snapshot: %w", err)
		}
		if len(selections) > 0 {
			if err := json.Unmarshal(selections, &item.SelectedCustomizations); err != nil {
				return nil, fmt.Errorf("failed to decode customizations: %w", err)
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *orderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	now := time.Now().UTC()
	prefix := fmt.Sprintf("ORD_%s_", now.Format("20060102"))

	query := `SELECT COUNT(*) FROM orders WHERE number LIKE $1`

	var count int
	if err := r.db.QueryRow(ctx, query, prefix+"%").Scan(&count); err != nil {
		return "", fmt.Errorf("failed to count orders: %w", err)
	}
	return fmt.Sprintf("%s%03d", prefix, count+1), nil
}
