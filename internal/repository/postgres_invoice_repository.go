package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salonhq/invoice-delivery-service/internal/domain"
)

// PostgresInvoiceRepository implements InvoiceRepository using PostgreSQL
type PostgresInvoiceRepository struct {
	db *pgxpool.Pool
}

// Compile-time interface check
var _ InvoiceRepository = (*PostgresInvoiceRepository)(nil)

// NewPostgresInvoiceRepository creates a new PostgreSQL invoice repository
func NewPostgresInvoiceRepository(db *pgxpool.Pool) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{
		db: db,
	}
}

// RecordInvoice saves a new invoice history record to the database
func (r *PostgresInvoiceRepository) RecordInvoice(ctx context.Context, record *domain.InvoiceRecord) (*domain.InvoiceRecord, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO invoice_records (customer_name, order_id, storage_key, public_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, record.CustomerName, record.OrderID, record.StorageKey, record.PublicURL).Scan(
		&record.ID, &record.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert invoice record: %w", err)
	}

	return record, nil
}

// GetInvoiceByID retrieves a history record by its ID
func (r *PostgresInvoiceRepository) GetInvoiceByID(ctx context.Context, id string) (*domain.InvoiceRecord, error) {
	var record domain.InvoiceRecord
	err := r.db.QueryRow(ctx, `
		SELECT id, customer_name, order_id, storage_key, public_url, created_at
		FROM invoice_records
		WHERE id = $1
	`, id).Scan(
		&record.ID, &record.CustomerName, &record.OrderID,
		&record.StorageKey, &record.PublicURL, &record.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("invoice record not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get invoice record: %w", err)
	}

	return &record, nil
}

// ListInvoices retrieves history records with pagination, newest first
func (r *PostgresInvoiceRepository) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.PaginatedInvoices, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM invoice_records`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count invoice records: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, customer_name, order_id, storage_key, public_url, created_at
		FROM invoice_records
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice records: %w", err)
	}
	defer rows.Close()

	records := []domain.InvoiceRecord{}
	for rows.Next() {
		var record domain.InvoiceRecord
		if err := rows.Scan(
			&record.ID, &record.CustomerName, &record.OrderID,
			&record.StorageKey, &record.PublicURL, &record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice records: %w", err)
	}

	return &domain.PaginatedInvoices{
		Records:     records,
		TotalItems:  total,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
		Limit:       limit,
	}, nil
}
