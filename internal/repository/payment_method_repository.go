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

const paymentMethodColumns = `id, user_id, card_number, card_holder_name, expiry_date, card_type, is_default, created_at, updated_at`

// paymentMethodRepository implements the PaymentMethodRepository interface using PostgreSQL.
type paymentMethodRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPaymentMethodRepository creates a new PostgreSQL-backed saved card repository.
func NewPaymentMethodRepository(pool *pgxpool.Pool, logger zerolog.Logger) PaymentMethodRepository {
	return &paymentMethodRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "payment_method").Logger(),
	}
}

func scanPaymentMethod(row pgx.Row) (*model.PaymentMethod, error) {
	var p model.PaymentMethod
	err := row.Scan(
		&p.ID, &p.UserID, &p.CardNumber, &p.CardHolderName, &p.ExpiryDate,
		&p.CardType, &p.IsDefault, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentMethodRepository) ListByUser(ctx context.Context, userID string) ([]model.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE user_id = $1 ORDER BY is_default DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query payment methods")
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}
	defer rows.Close()

	methods := []model.PaymentMethod{}
	for rows.Next() {
		p, err := scanPaymentMethod(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan payment method row")
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		methods = append(methods, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating payment method rows")
		return nil, fmt.Errorf("error iterating payment methods: %w", err)
	}

	return methods, nil
}

func (r *paymentMethodRepository) GetByID(ctx context.Context, id string) (*model.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE id = $1`

	p, err := scanPaymentMethod(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("payment_method_id", id).Msg("payment method not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("payment_method_id", id).Msg("failed to query payment method")
		return nil, fmt.Errorf("failed to query payment method: %w", err)
	}

	return p, nil
}

func clearDefaultPaymentMethods(ctx context.Context, tx pgx.Tx, userID, keepID string) error {
	_, err := tx.Exec(ctx,
		`UPDATE payment_methods SET is_default = FALSE, updated_at = NOW() WHERE user_id = $1 AND id <> $2 AND is_default`,
		userID, keepID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear default payment methods: %w", err)
	}
	return nil
}

func (r *paymentMethodRepository) Create(ctx context.Context, p *model.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (` + paymentMethodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		if p.IsDefault {
			if err := clearDefaultPaymentMethods(ctx, tx, p.UserID, p.ID); err != nil {
				return err
			}
		}
		_, err := tx.Exec(ctx, query,
			p.ID, p.UserID, p.CardNumber, p.CardHolderName, p.ExpiryDate,
			p.CardType, p.IsDefault, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create payment method: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", p.UserID).Msg("failed to create payment method")
		return err
	}

	r.logger.Debug().Str("payment_method_id", p.ID).Bool("default", p.IsDefault).Msg("payment method created successfully")

	return nil
}

func (r *paymentMethodRepository) Update(ctx context.Context, p *model.PaymentMethod) error {
	query := `
		UPDATE payment_methods
		SET card_number = $2, card_holder_name = $3, expiry_date = $4, card_type = $5,
			is_default = $6, updated_at = $7
		WHERE id = $1
	`

	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		if p.IsDefault {
			if err := clearDefaultPaymentMethods(ctx, tx, p.UserID, p.ID); err != nil {
				return err
			}
		}
		tag, err := tx.Exec(ctx, query,
			p.ID, p.CardNumber, p.CardHolderName, p.ExpiryDate, p.CardType, p.IsDefault, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update payment method: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrPaymentNotFound
		}
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Str("payment_method_id", p.ID).Msg("failed to update payment method")
		return err
	}

	return nil
}

func (r *paymentMethodRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payment_methods WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("payment_method_id", id).Msg("failed to delete payment method")
		return false, fmt.Errorf("failed to delete payment method: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
