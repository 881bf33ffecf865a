package repository

import (
	"context"
	"errors"
	"fmt"

	"slay-store/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const addressColumns = `id, user_id, full_name, phone, address_line1, address_line2, landmark, city, state, pincode, country, address_type, is_default, created_at, updated_at`

// addressRepository implements the AddressRepository interface using PostgreSQL.
type addressRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAddressRepository creates a new PostgreSQL-backed address repository.
func NewAddressRepository(pool *pgxpool.Pool, logger zerolog.Logger) AddressRepository {
	return &addressRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "address").Logger(),
	}
}

func scanAddress(row pgx.Row) (*model.Address, error) {
	var a model.Address
	err := row.Scan(
		&a.ID, &a.UserID, &a.FullName, &a.Phone, &a.AddressLine1, &a.AddressLine2,
		&a.Landmark, &a.City, &a.State, &a.Pincode, &a.Country, &a.AddressType,
		&a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByUser returns the user's addresses, default first then newest first.
func (r *addressRepository) ListByUser(ctx context.Context, userID string) ([]model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query addresses")
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	addresses := []model.Address{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan address row")
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, *a)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating address rows")
		return nil, fmt.Errorf("error iterating addresses: %w", err)
	}

	return addresses, nil
}

// GetByID retrieves an address by its ID.
func (r *addressRepository) GetByID(ctx context.Context, id string) (*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	a, err := scanAddress(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("address_id", id).Msg("address not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("address_id", id).Msg("failed to query address")
		return nil, fmt.Errorf("failed to query address: %w", err)
	}

	return a, nil
}

// clearDefaultAddresses unsets the default flag on every other address of the user.
func clearDefaultAddresses(ctx context.Context, tx pgx.Tx, userID, keepID string) error {
	_, err := tx.Exec(ctx,
		`UPDATE addresses SET is_default = FALSE, updated_at = NOW() WHERE user_id = $1 AND id <> $2 AND is_default`,
		userID, keepID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear default addresses: %w", err)
	}
	return nil
}

// Create inserts an address.
func (r *addressRepository) Create(ctx context.Context, a *model.Address) error {
	query := `
		INSERT INTO addresses (` + addressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		if a.IsDefault {
			if err := clearDefaultAddresses(ctx, tx, a.UserID, a.ID); err != nil {
				return err
			}
		}
		_, err := tx.Exec(ctx, query,
			a.ID, a.UserID, a.FullName, a.Phone, a.AddressLine1, a.AddressLine2,
			a.Landmark, a.City, a.State, a.Pincode, a.Country, a.AddressType,
			a.IsDefault, a.CreatedAt, a.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create address: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", a.UserID).Msg("failed to create address")
		return err
	}

	r.logger.Debug().Str("address_id", a.ID).Bool("default", a.IsDefault).Msg("address created successfully")

	return nil
}

// Update overwrites an address.
func (r *addressRepository) Update(ctx context.Context, a *model.Address) error {
	query := `
		UPDATE addresses
		SET full_name = $2, phone = $3, address_line1 = $4, address_line2 = $5, landmark = $6,
			city = $7, state = $8, pincode = $9, country = $10, address_type = $11,
			is_default = $12, updated_at = $13
		WHERE id = $1
	`

	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		if a.IsDefault {
			if err := clearDefaultAddresses(ctx, tx, a.UserID, a.ID); err != nil {
				return err
			}
		}
		tag, err := tx.Exec(ctx, query,
			a.ID, a.FullName, a.Phone, a.AddressLine1, a.AddressLine2, a.Landmark,
			a.City, a.State, a.Pincode, a.Country, a.AddressType, a.IsDefault, a.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update address: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrAddressNotFound
		}
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Str("address_id", a.ID).Msg("failed to update address")
		return err
	}

	return nil
}

// Delete removes an address owned by userID.
func (r *addressRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("address_id", id).Msg("failed to delete address")
		return false, fmt.Errorf("failed to delete address: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
