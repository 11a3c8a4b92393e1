package store

import (
	"context"
	"database/sql"
	"fmt"

	"brickgate/internal/domain"
	id "brickgate/pkg/domain"
)

// PostgresStore persists listings in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Upsert(ctx context.Context, record domain.Listing) error {
	query := `
		INSERT INTO listings (token, title, city, description, surface_m2, rooms,
			property_price, expected_yield, spv_name, spv_registry_id, published, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (token) DO UPDATE SET
			title = EXCLUDED.title,
			city = EXCLUDED.city,
			description = EXCLUDED.description,
			surface_m2 = EXCLUDED.surface_m2,
			rooms = EXCLUDED.rooms,
			property_price = EXCLUDED.property_price,
			expected_yield = EXCLUDED.expected_yield,
			spv_name = EXCLUDED.spv_name,
			spv_registry_id = EXCLUDED.spv_registry_id,
			published = EXCLUDED.published,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		string(record.Token),
		record.Title,
		record.City,
		record.Description,
		record.SurfaceM2,
		record.Rooms,
		record.PropertyPrice,
		record.ExpectedYield,
		record.SPVName,
		record.SPVRegistryID,
		record.Published,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert listing: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, token id.Address) (domain.Listing, error) {
	query := `
		SELECT token, title, city, description, surface_m2, rooms,
			property_price, expected_yield, spv_name, spv_registry_id, published, updated_at
		FROM listings
		WHERE token = $1
	`
	record, err := scanListing(s.db.QueryRowContext(ctx, query, string(token)))
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Listing{}, ErrNotFound
		}
		return domain.Listing{}, fmt.Errorf("find listing: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]domain.Listing, error) {
	query := `
		SELECT token, title, city, description, surface_m2, rooms,
			property_price, expected_yield, spv_name, spv_registry_id, published, updated_at
		FROM listings
		ORDER BY token
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		record, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) SetPublished(ctx context.Context, token id.Address, published bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE listings SET published = $2, updated_at = NOW() WHERE token = $1`,
		string(token), published)
	if err != nil {
		return fmt.Errorf("set listing published: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set listing published: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type listingRow interface {
	Scan(dest ...any) error
}

func scanListing(row listingRow) (domain.Listing, error) {
	var (
		record domain.Listing
		token  string
	)
	err := row.Scan(
		&token,
		&record.Title,
		&record.City,
		&record.Description,
		&record.SurfaceM2,
		&record.Rooms,
		&record.PropertyPrice,
		&record.ExpectedYield,
		&record.SPVName,
		&record.SPVRegistryID,
		&record.Published,
		&record.UpdatedAt,
	)
	if err != nil {
		return domain.Listing{}, err
	}
	record.Token = id.Address(token)
	return record, nil
}
