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

const bannerColumns = `id, title, subtitle, image, link, sort_order, active, created_at, updated_at`

type bannerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBannerRepository creates a new PostgreSQL-backed banner repository.
func NewBannerRepository(pool *pgxpool.Pool, logger zerolog.Logger) BannerRepository {
	return &bannerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "banner").Logger(),
	}
}

func scanBanner(row pgx.Row) (*model.Banner, error) {
	var b model.Banner
	err := row.Scan(&b.ID, &b.Title, &b.Subtitle, &b.Image, &b.Link, &b.Order, &b.Active, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bannerRepository) List(ctx context.Context, activeOnly bool) ([]model.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY sort_order ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Bool("active_only", activeOnly).Msg("failed to query banners")
		return nil, fmt.Errorf("failed to query banners: %w", err)
	}
	defer rows.Close()

	banners := []model.Banner{}
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan banner row")
			return nil, fmt.Errorf("failed to scan banner: %w", err)
		}
		banners = append(banners, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating banners: %w", err)
	}

	return banners, nil
}

func (r *bannerRepository) GetByID(ctx context.Context, id string) (*model.Banner, error) {
	b, err := scanBanner(r.pool.QueryRow(ctx, `SELECT `+bannerColumns+` FROM banners WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("banner_id", id).Msg("failed to query banner")
		return nil, fmt.Errorf("failed to query banner: %w", err)
	}
	return b, nil
}

func (r *bannerRepository) Create(ctx context.Context, b *model.Banner) error {
	query := `
		INSERT INTO banners (` + bannerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID, b.Title, b.Subtitle, b.Image, b.Link, b.Order, b.Active, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("title", b.Title).Msg("failed to create banner")
		return fmt.Errorf("failed to create banner: %w", err)
	}
	return nil
}

func (r *bannerRepository) Update(ctx context.Context, b *model.Banner) (bool, error) {
	query := `
		UPDATE banners
		SET title = $2, subtitle = $3, image = $4, link = $5, sort_order = $6, active = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		b.ID, b.Title, b.Subtitle, b.Image, b.Link, b.Order, b.Active, b.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("banner_id", b.ID).Msg("failed to update banner")
		return false, fmt.Errorf("failed to update banner: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *bannerRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("banner_id", id).Msg("failed to delete banner")
		return false, fmt.Errorf("failed to delete banner: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
