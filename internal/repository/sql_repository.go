package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dashboard-service/internal/models"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// dialect captures what differs between the supported SQL backends
type dialect struct {
	name        string
	placeholder func(n int) string
	schema      []string
}

var sqliteDialect = dialect{
	name:        "sqlite3",
	placeholder: func(int) string { return "?" },
	schema: []string{
		`CREATE TABLE IF NOT EXISTS inventory_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			value REAL NOT NULL DEFAULT 0,
			start_at TEXT,
			end_at TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			inventory_id TEXT,
			capacity REAL NOT NULL DEFAULT 0,
			start_at TEXT,
			end_at TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_inventory_id ON sales (inventory_id)`,
	},
}

var postgresDialect = dialect{
	name:        "postgres",
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	schema: []string{
		`CREATE TABLE IF NOT EXISTS inventory_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			value DOUBLE PRECISION NOT NULL DEFAULT 0,
			start_at TEXT,
			end_at TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			inventory_id TEXT,
			capacity DOUBLE PRECISION NOT NULL DEFAULT 0,
			start_at TEXT,
			end_at TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_inventory_id ON sales (inventory_id)`,
	},
}

// SQLReadRepository reads the dashboard read model from SQLite or PostgreSQL.
// Dates are stored as ISO-8601 text exactly as received.
type SQLReadRepository struct {
	db      *sql.DB
	dialect dialect
}

// NewSQLiteReadRepository opens the SQLite read model
func NewSQLiteReadRepository(dbPath string) (*SQLReadRepository, error) {
	// Use WAL mode for better read concurrency
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return newSQLReadRepository(db, sqliteDialect)
}

// NewPostgresReadRepository opens the PostgreSQL read model
func NewPostgresReadRepository(dsn string) (*SQLReadRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return newSQLReadRepository(db, postgresDialect)
}

func newSQLReadRepository(db *sql.DB, d dialect) (*SQLReadRepository, error) {
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &SQLReadRepository{db: db, dialect: d}, nil
}

// Migrate creates the read model tables if they do not exist
func (r *SQLReadRepository) Migrate(ctx context.Context) error {
	for _, stmt := range r.dialect.schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func (r *SQLReadRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Driver returns the database/sql driver name
func (r *SQLReadRepository) Driver() string {
	return r.dialect.name
}

// rebind rewrites ? placeholders for the active dialect
func (r *SQLReadRepository) rebind(query string) string {
	if r.dialect.name == sqliteDialect.name {
		return query
	}

	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString(r.dialect.placeholder(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// fixed width so that text ordering matches time ordering
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

const itemColumns = `id, name, description, value, start_at, end_at, created_at, updated_at`

const saleColumns = `id, name, inventory_id, capacity, start_at, end_at, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (models.InventoryItem, error) {
	var item models.InventoryItem
	var start, end sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Value,
		&start,
		&end,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return item, err
	}

	item.Start = start.String
	item.End = end.String
	item.CreatedAt = parseTimestamp(createdAtStr)
	item.UpdatedAt = parseTimestamp(updatedAtStr)
	return item, nil
}

func scanSale(row rowScanner) (models.SaleRecord, error) {
	var sale models.SaleRecord
	var link, start, end sql.NullString
	var createdAtStr string

	err := row.Scan(
		&sale.ID,
		&sale.Name,
		&link,
		&sale.Capacity.Value,
		&start,
		&end,
		&createdAtStr,
	)
	if err != nil {
		return sale, err
	}

	sale.InventoryLink = link.String
	sale.Start = start.String
	sale.End = end.String
	sale.CreatedAt = parseTimestamp(createdAtStr)
	return sale, nil
}

func parseTimestamp(value string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	return time.Time{}
}

// FindItemByID finds an item by ID
func (r *SQLReadRepository) FindItemByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	query := r.rebind(`SELECT ` + itemColumns + ` FROM inventory_items WHERE id = ?`)

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return &item, nil
}

// ListItems lists items with pagination, newest first
func (r *SQLReadRepository) ListItems(ctx context.Context, page, pageSize int) ([]models.InventoryItem, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory_items`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	offset := (page - 1) * pageSize
	query := r.rebind(`SELECT ` + itemColumns + ` FROM inventory_items
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?`)

	items, err := r.queryItems(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListAllItems lists every item, newest first
func (r *SQLReadRepository) ListAllItems(ctx context.Context) ([]models.InventoryItem, error) {
	return r.queryItems(ctx, `SELECT `+itemColumns+` FROM inventory_items ORDER BY created_at DESC, id`)
}

func (r *SQLReadRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]models.InventoryItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]models.InventoryItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}
	return items, nil
}

// FindSaleByID finds a sale by ID
func (r *SQLReadRepository) FindSaleByID(ctx context.Context, id string) (*models.SaleRecord, error) {
	query := r.rebind(`SELECT ` + saleColumns + ` FROM sales WHERE id = ?`)

	sale, err := scanSale(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID: %w", err)
	}
	return &sale, nil
}

// ListSales lists every sale, oldest first
func (r *SQLReadRepository) ListSales(ctx context.Context) ([]models.SaleRecord, error) {
	return r.querySales(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY created_at, id`)
}

// ListSalesByItem lists the sales linked to an item, oldest first
func (r *SQLReadRepository) ListSalesByItem(ctx context.Context, itemID string) ([]models.SaleRecord, error) {
	query := r.rebind(`SELECT ` + saleColumns + ` FROM sales WHERE inventory_id = ? ORDER BY created_at, id`)
	return r.querySales(ctx, query, itemID)
}

func (r *SQLReadRepository) querySales(ctx context.Context, query string, args ...interface{}) ([]models.SaleRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	sales := make([]models.SaleRecord, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}
	return sales, nil
}

// UpsertItem writes an item into the read model
func (r *SQLReadRepository) UpsertItem(ctx context.Context, item models.InventoryItem) error {
	query := r.rebind(`INSERT INTO inventory_items (` + itemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			value = excluded.value,
			start_at = excluded.start_at,
			end_at = excluded.end_at,
			updated_at = excluded.updated_at`)

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Value,
		nullString(item.Start),
		nullString(item.End),
		formatTimestamp(item.CreatedAt),
		formatTimestamp(item.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert item: %w", err)
	}
	return nil
}

// UpsertSale writes a sale into the read model
func (r *SQLReadRepository) UpsertSale(ctx context.Context, sale models.SaleRecord) error {
	query := r.rebind(`INSERT INTO sales (` + saleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			inventory_id = excluded.inventory_id,
			capacity = excluded.capacity,
			start_at = excluded.start_at,
			end_at = excluded.end_at`)

	_, err := r.db.ExecContext(ctx, query,
		sale.ID,
		sale.Name,
		nullString(sale.InventoryLink),
		sale.Capacity.Value,
		nullString(sale.Start),
		nullString(sale.End),
		formatTimestamp(sale.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert sale: %w", err)
	}
	return nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timestampLayout)
}

// DeleteItem removes an item from the read model. Linked sales are kept.
func (r *SQLReadRepository) DeleteItem(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM inventory_items WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// DeleteSale removes a sale from the read model
func (r *SQLReadRepository) DeleteSale(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM sales WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	return nil
}
