package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"catbox/internal/domain/orders"
)

type OrderRepo struct {
	db *sqlx.DB
}

func NewOrderRepo(db *sqlx.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

type orderRow struct {
	ID                 string    `db:"id"`
	UserID             string    `db:"user_id"`
	PlanID             string    `db:"plan_id"`
	PlanName           string    `db:"plan_name"`
	SubscriptionID     string    `db:"subscription_id"`
	Renewal            bool      `db:"renewal"`
	Status             string    `db:"status"`
	TotalPrice         float64   `db:"total_price"`
	Currency           string    `db:"currency"`
	CustomerName       string    `db:"customer_name"`
	Phone              string    `db:"phone"`
	City               string    `db:"city"`
	Address            string    `db:"address"`
	Notes              string    `db:"notes"`
	TotalDailyCalories int       `db:"total_daily_calories"`
	TotalDailyGrams    float64   `db:"total_daily_grams"`
	CatsCount          int       `db:"cats_count"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

type orderItemRow struct {
	ID                 string    `db:"id"`
	OrderID            string    `db:"order_id"`
	Position           int       `db:"position"`
	CatID              string    `db:"cat_id"`
	CatName            string    `db:"cat_name"`
	DailyCalories      int       `db:"daily_calories"`
	DailyGrams         float64   `db:"daily_grams"`
	MenuRotation       jsonList  `db:"menu_rotation"`
	AddOns             jsonList  `db:"add_ons"`
	FeedingTimesPerDay int       `db:"feeding_times_per_day"`
	PortionSizeGrams   float64   `db:"portion_size_grams"`
	CreatedAt          time.Time `db:"created_at"`
}

type statusChangeRow struct {
	ID         string    `db:"id"`
	OrderID    string    `db:"order_id"`
	FromStatus string    `db:"from_status"`
	ToStatus   string    `db:"to_status"`
	ActorType  string    `db:"actor_type"`
	ActorID    string    `db:"actor_id"`
	Note       string    `db:"note"`
	OccurredAt time.Time `db:"occurred_at"`
}

const (
	orderColumns = `id, user_id, plan_id, plan_name, subscription_id, renewal, status, total_price, currency,
  customer_name, phone, city, address, notes, total_daily_calories, total_daily_grams, cats_count,
  created_at, updated_at`

	orderItemColumns = `id, order_id, position, cat_id, cat_name, daily_calories, daily_grams,
  menu_rotation, add_ons, feeding_times_per_day, portion_size_grams, created_at`

	statusChangeColumns = `id, order_id, from_status, to_status, actor_type, actor_id, note, occurred_at`

	insertStatusChange = `
INSERT INTO order_status_changes (` + statusChangeColumns + `)
VALUES (:id, :order_id, :from_status, :to_status, :actor_type, :actor_id, :note, :occurred_at)`
)

// Create inserta pedido, ítems y el cambio inicial en una sola transacción.
func (r *OrderRepo) Create(ctx context.Context, o orders.Order, initial orders.StatusChange) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer rollback(tx)

	const insertOrder = `
INSERT INTO orders (` + orderColumns + `)
VALUES (:id, :user_id, :plan_id, :plan_name, :subscription_id, :renewal, :status, :total_price, :currency,
  :customer_name, :phone, :city, :address, :notes, :total_daily_calories, :total_daily_grams, :cats_count,
  :created_at, :updated_at)`

	if _, err := tx.NamedExecContext(ctx, insertOrder, orderToRow(o)); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	const insertItem = `
INSERT INTO order_items (` + orderItemColumns + `)
VALUES (:id, :order_id, :position, :cat_id, :cat_name, :daily_calories, :daily_grams,
  :menu_rotation, :add_ons, :feeding_times_per_day, :portion_size_grams, :created_at)`

	for i, it := range o.Items {
		if _, err := tx.NamedExecContext(ctx, insertItem, itemToRow(it, i)); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if _, err := tx.NamedExecContext(ctx, insertStatusChange, changeToRow(initial)); err != nil {
		return fmt.Errorf("insert status change: %w", err)
	}

	return tx.Commit()
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (orders.Order, error) {
	var row orderRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id); err != nil {
		if isNoRows(err) {
			return orders.Order{}, orders.ErrNotFound
		}
		return orders.Order{}, err
	}

	items, err := r.itemsFor(ctx, []string{id})
	if err != nil {
		return orders.Order{}, err
	}

	o := row.toDomain()
	o.Items = items[id]
	return o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]orders.Order, error) {
	const q = `SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC`

	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []orders.Order{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]orders.Order, 0, len(rows))
	for _, row := range rows {
		o := row.toDomain()
		o.Items = items[o.ID]
		out = append(out, o)
	}
	return out, nil
}

// UpdateStatus usa el estado anterior como condición (optimistic lock).
func (r *OrderRepo) UpdateStatus(ctx context.Context, c orders.StatusChange, updatedAt time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer rollback(tx)

	res, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		string(c.To), updatedAt, c.OrderID, string(c.From))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, c.OrderID); err != nil {
			return err
		}
		if !exists {
			return orders.ErrNotFound
		}
		return orders.ErrBadState
	}

	if _, err := tx.NamedExecContext(ctx, insertStatusChange, changeToRow(c)); err != nil {
		return fmt.Errorf("insert status change: %w", err)
	}

	return tx.Commit()
}

func (r *OrderRepo) ListStatusChanges(ctx context.Context, orderID string) ([]orders.StatusChange, error) {
	const q = `SELECT ` + statusChangeColumns + `
FROM order_status_changes
WHERE order_id = $1
ORDER BY occurred_at ASC, id ASC`

	var rows []statusChangeRow
	if err := r.db.SelectContext(ctx, &rows, q, orderID); err != nil {
		return nil, err
	}

	out := make([]orders.StatusChange, 0, len(rows))
	for _, row := range rows {
		out = append(out, orders.StatusChange{
			ID:         row.ID,
			OrderID:    row.OrderID,
			From:       orders.Status(row.FromStatus),
			To:         orders.Status(row.ToStatus),
			Actor:      orders.Actor{Type: orders.ActorType(row.ActorType), ID: row.ActorID},
			Note:       row.Note,
			OccurredAt: row.OccurredAt,
		})
	}
	return out, nil
}

// itemsFor trae los ítems de varios pedidos en una query (sqlx.In + Rebind).
func (r *OrderRepo) itemsFor(ctx context.Context, orderIDs []string) (map[string][]orders.Item, error) {
	q, args, err := sqlx.In(`SELECT `+orderItemColumns+`
FROM order_items
WHERE order_id IN (?)
ORDER BY order_id, position`, orderIDs)
	if err != nil {
		return nil, err
	}

	var rows []orderItemRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), args...); err != nil {
		return nil, err
	}

	out := make(map[string][]orders.Item, len(orderIDs))
	for _, row := range rows {
		out[row.OrderID] = append(out[row.OrderID], orders.Item{
			ID:                 row.ID,
			OrderID:            row.OrderID,
			CatID:              row.CatID,
			CatName:            row.CatName,
			DailyCalories:      row.DailyCalories,
			DailyGrams:         row.DailyGrams,
			MenuRotation:       []string(row.MenuRotation),
			AddOns:             []string(row.AddOns),
			FeedingTimesPerDay: row.FeedingTimesPerDay,
			PortionSizeGrams:   row.PortionSizeGrams,
			CreatedAt:          row.CreatedAt,
		})
	}
	return out, nil
}

func orderToRow(o orders.Order) orderRow {
	return orderRow{
		ID:                 o.ID,
		UserID:             o.UserID,
		PlanID:             o.PlanID,
		PlanName:           o.PlanName,
		SubscriptionID:     o.SubscriptionID,
		Renewal:            o.Renewal,
		Status:             string(o.Status),
		TotalPrice:         o.Total,
		Currency:           o.Currency,
		CustomerName:       o.CustomerName,
		Phone:              o.Phone,
		City:               o.City,
		Address:            o.Address,
		Notes:              o.Notes,
		TotalDailyCalories: o.Summary.TotalDailyCalories,
		TotalDailyGrams:    o.Summary.TotalDailyGrams,
		CatsCount:          o.Summary.CatCount,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func (row orderRow) toDomain() orders.Order {
	return orders.Order{
		ID:             row.ID,
		UserID:         row.UserID,
		PlanID:         row.PlanID,
		PlanName:       row.PlanName,
		SubscriptionID: row.SubscriptionID,
		Renewal:        row.Renewal,
		Status:         orders.Status(row.Status),
		Total:          row.TotalPrice,
		Currency:       row.Currency,
		CustomerName:   row.CustomerName,
		Phone:          row.Phone,
		City:           row.City,
		Address:        row.Address,
		Notes:          row.Notes,
		Summary: orders.NutritionSummary{
			TotalDailyCalories: row.TotalDailyCalories,
			TotalDailyGrams:    row.TotalDailyGrams,
			CatCount:           row.CatsCount,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func itemToRow(it orders.Item, position int) orderItemRow {
	return orderItemRow{
		ID:                 it.ID,
		OrderID:            it.OrderID,
		Position:           position,
		CatID:              it.CatID,
		CatName:            it.CatName,
		DailyCalories:      it.DailyCalories,
		DailyGrams:         it.DailyGrams,
		MenuRotation:       jsonList(it.MenuRotation),
		AddOns:             jsonList(it.AddOns),
		FeedingTimesPerDay: it.FeedingTimesPerDay,
		PortionSizeGrams:   it.PortionSizeGrams,
		CreatedAt:          it.CreatedAt,
	}
}

func changeToRow(c orders.StatusChange) statusChangeRow {
	return statusChangeRow{
		ID:         c.ID,
		OrderID:    c.OrderID,
		FromStatus: string(c.From),
		ToStatus:   string(c.To),
		ActorType:  string(c.Actor.Type),
		ActorID:    c.Actor.ID,
		Note:       c.Note,
		OccurredAt: c.OccurredAt,
	}
}
