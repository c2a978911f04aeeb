package database

// Menu queries (PostgreSQL)
const (
	SelectMenuSQL = `
		SELECT id, name, description, price, image, category
		FROM menu_items
		ORDER BY position ASC, id ASC`

	UpsertMenuItemSQL = `
		INSERT INTO menu_items (id, name, description, price, image, category, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			price = excluded.price,
			image = excluded.image,
			category = excluded.category,
			position = excluded.position`
)

// Menu queries (sqlite)
const (
	SQLiteSelectMenuSQL = SelectMenuSQL

	SQLiteUpsertMenuItemSQL = `
		INSERT INTO menu_items (id, name, description, price, image, category, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			price = excluded.price,
			image = excluded.image,
			category = excluded.category,
			position = excluded.position`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (id, message_id, number, subtotal, delivery_fee, total_amount, finalized_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT DO NOTHING`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, line_no, item_id, name, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)`

	GetOrderByNumberSQL = `
		SELECT id, number, subtotal, delivery_fee, total_amount, finalized_at
		FROM orders
		WHERE number = $1
		ORDER BY recorded_at DESC
		LIMIT 1`

	GetOrderItemsSQL = `
		SELECT item_id, name, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY line_no ASC`
)

// Reservation queries
const (
	InsertReservationSQL = `
		INSERT INTO reservations (id, message_id, day, slot, confirmed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING`
)
