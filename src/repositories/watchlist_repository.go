package repositories

import (
	"context"
	"errors"

	"cryptotracker/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WatchlistRepository interface {
	ListByUser(ctx context.Context, userID int) ([]models.WatchlistItem, error)
	GetByUserAndCoin(ctx context.Context, userID int, coinID string) (*models.WatchlistItem, error)
	Create(ctx context.Context, item *models.WatchlistItem) error
	Delete(ctx context.Context, userID, watchlistID int) (int64, error)
}

type watchlistRepo struct {
	db *pgxpool.Pool
}

func NewWatchlistRepository(db *pgxpool.Pool) WatchlistRepository {
	return &watchlistRepo{db: db}
}

func (r *watchlistRepo) ListByUser(ctx context.Context, userID int) ([]models.WatchlistItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT watchlist_id, user_id, coin_id, notes, target_price, created_at
		FROM watchlist
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.WatchlistItem{}
	for rows.Next() {
		var item models.WatchlistItem
		if err := rows.Scan(&item.WatchlistID, &item.UserID, &item.CoinID,
			&item.Notes, &item.TargetPrice, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *watchlistRepo) GetByUserAndCoin(ctx context.Context, userID int, coinID string) (*models.WatchlistItem, error) {
	var item models.WatchlistItem
	err := r.db.QueryRow(ctx,
		`SELECT watchlist_id, user_id, coin_id, notes, target_price, created_at
		FROM watchlist
		WHERE user_id = $1 AND coin_id = $2`,
		userID, coinID,
	).Scan(&item.WatchlistID, &item.UserID, &item.CoinID,
		&item.Notes, &item.TargetPrice, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *watchlistRepo) Create(ctx context.Context, item *models.WatchlistItem) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO watchlist (user_id, coin_id, notes, target_price, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING watchlist_id, created_at`,
		item.UserID, item.CoinID, item.Notes, item.TargetPrice,
	).Scan(&item.WatchlistID, &item.CreatedAt)
}

// Delete removes an item only when it belongs to the caller, so ownership is
// enforced at the data-access boundary.
func (r *watchlistRepo) Delete(ctx context.Context, userID, watchlistID int) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM watchlist WHERE user_id = $1 AND watchlist_id = $2`,
		userID, watchlistID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
