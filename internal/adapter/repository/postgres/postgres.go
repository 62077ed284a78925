// Package postgres implements the link store on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/trimmer/internal/entity"
)

type linkDB struct {
	ID          string    `db:"id"`
	ShortCode   string    `db:"short_code"`
	CustomAlias string    `db:"custom_alias"`
	LongURL     string    `db:"long_url"`
	Title       string    `db:"title"`
	OwnerID     string    `db:"owner_id"`
	ClickCount  int64     `db:"click_count"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (l *linkDB) toEntity() *entity.Link {
	return &entity.Link{
		ID:          l.ID,
		ShortCode:   l.ShortCode,
		CustomAlias: l.CustomAlias,
		LongURL:     l.LongURL,
		Title:       l.Title,
		OwnerID:     l.OwnerID,
		ClickCount:  l.ClickCount,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

type clickDB struct {
	LinkID    string    `db:"link_id"`
	ClickedAt time.Time `db:"clicked_at"`
	Referrer  string    `db:"referrer"`
	Device    string    `db:"device"`
	Country   string    `db:"country"`
}

type bucketDB struct {
	Name  string `db:"name"`
	Total int64  `db:"total"`
}

type LinkRepository struct {
	db *sqlx.DB
}

func NewLinkRepository(db *sqlx.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// Save inserts the link and reserves its keys in one transaction. A taken
// key aborts the whole transaction with an *entity.KeyConflictError naming
// that key.
func (r *LinkRepository) Save(ctx context.Context, link *entity.Link) (*entity.Link, error) {
	const op = "adapter.repository.postgres.LinkRepository.Save"
	const insertLink = `INSERT INTO links(id, short_code, custom_alias, long_url, title, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING *`
	const insertKey = `INSERT INTO link_keys(key, link_id) VALUES ($1, $2)`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, storeError(err))
	}
	defer tx.Rollback()

	var saved linkDB

	err = tx.GetContext(ctx, &saved, insertLink,
		link.ID, link.ShortCode, link.CustomAlias, link.LongURL, link.Title, link.OwnerID, link.CreatedAt, link.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to insert into links table: %w", op, storeError(err))
	}

	for _, key := range link.Keys() {
		if _, err := tx.ExecContext(ctx, insertKey, key, link.ID); err != nil {
			if isUniqueViolationError(err) {
				return nil, fmt.Errorf("%s: %w", op, &entity.KeyConflictError{Key: key})
			}

			return nil, fmt.Errorf("%s: failed to insert into link_keys table: %w", op, storeError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, storeError(err))
	}

	return saved.toEntity(), nil
}

func (r *LinkRepository) FindByKey(ctx context.Context, key string) (*entity.Link, error) {
	const op = "adapter.repository.postgres.LinkRepository.FindByKey"
	const query = `SELECT l.* FROM link_keys k JOIN links l ON l.id = k.link_id WHERE k.key = $1`

	var link linkDB

	if err := r.db.GetContext(ctx, &link, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from links table: %w", op, storeError(err))
	}

	return link.toEntity(), nil
}

func (r *LinkRepository) FindByID(ctx context.Context, id string) (*entity.Link, error) {
	const op = "adapter.repository.postgres.LinkRepository.FindByID"
	const query = `SELECT * FROM links WHERE id = $1`

	var link linkDB

	if err := r.db.GetContext(ctx, &link, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidIDError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from links table: %w", op, storeError(err))
	}

	return link.toEntity(), nil
}

func (r *LinkRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Link, error) {
	const op = "adapter.repository.postgres.LinkRepository.ListByOwner"
	const query = `SELECT * FROM links WHERE owner_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`

	var rows []linkDB

	if err := r.db.SelectContext(ctx, &rows, query, ownerID, limit, offset); err != nil {
		return nil, fmt.Errorf("%s: failed to select from links table: %w", op, storeError(err))
	}

	links := make([]*entity.Link, 0, len(rows))
	for i := range rows {
		links = append(links, rows[i].toEntity())
	}

	return links, nil
}

func (r *LinkRepository) UpdateTitle(ctx context.Context, id, ownerID, title string) (*entity.Link, error) {
	const op = "adapter.repository.postgres.LinkRepository.UpdateTitle"
	const query = `UPDATE links SET title = $1, updated_at = NOW() WHERE id = $2 AND owner_id = $3 RETURNING *`

	var link linkDB

	if err := r.db.GetContext(ctx, &link, query, title, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidIDError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
		}

		return nil, fmt.Errorf("%s: failed to update links table row: %w", op, storeError(err))
	}

	return link.toEntity(), nil
}

// IncrementClick bumps the counter in place; there is no read-modify-write.
func (r *LinkRepository) IncrementClick(ctx context.Context, linkID string) error {
	const op = "adapter.repository.postgres.LinkRepository.IncrementClick"
	const query = `UPDATE links SET click_count = click_count + 1 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, linkID)
	if err != nil {
		if isInvalidIDError(err) {
			return fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
		}

		return fmt.Errorf("%s: failed to update links table row: %w", op, storeError(err))
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get number of affected rows: %w", op, err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
	}

	return nil
}

// SaveClick bumps the counter and appends the event in one transaction.
func (r *LinkRepository) SaveClick(ctx context.Context, event entity.ClickEvent) error {
	const op = "adapter.repository.postgres.LinkRepository.SaveClick"
	const updateCount = `UPDATE links SET click_count = click_count + 1 WHERE id = $1`
	const insertClick = `INSERT INTO clicks(link_id, clicked_at, referrer, device, country) VALUES ($1, $2, $3, $4, $5)`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, storeError(err))
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, updateCount, event.LinkID)
	if err != nil {
		if isInvalidIDError(err) {
			return fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
		}

		return fmt.Errorf("%s: failed to update links table row: %w", op, storeError(err))
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get number of affected rows: %w", op, err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
	}

	m := event.Metadata
	if _, err := tx.ExecContext(ctx, insertClick, event.LinkID, event.Timestamp, m.Referrer, m.Device, m.Country); err != nil {
		return fmt.Errorf("%s: failed to insert into clicks table: %w", op, storeError(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, storeError(err))
	}

	return nil
}

func (r *LinkRepository) ClickStats(ctx context.Context, linkID string, recentLimit int) (*entity.LinkStats, error) {
	const op = "adapter.repository.postgres.LinkRepository.ClickStats"
	const countQuery = `SELECT click_count FROM links WHERE id = $1`
	const recentQuery = `SELECT link_id, clicked_at, referrer, device, country FROM clicks
		WHERE link_id = $1 ORDER BY clicked_at DESC, id DESC LIMIT $2`
	const devicesQuery = `SELECT device AS name, COUNT(*) AS total FROM clicks
		WHERE link_id = $1 AND device <> '' GROUP BY device`
	const countriesQuery = `SELECT country AS name, COUNT(*) AS total FROM clicks
		WHERE link_id = $1 AND country <> '' GROUP BY country`

	stats := &entity.LinkStats{LinkID: linkID}

	if err := r.db.GetContext(ctx, &stats.ClickCount, countQuery, linkID); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidIDError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from links table: %w", op, storeError(err))
	}

	var clicks []clickDB
	if err := r.db.SelectContext(ctx, &clicks, recentQuery, linkID, recentLimit); err != nil {
		return nil, fmt.Errorf("%s: failed to select recent clicks: %w", op, storeError(err))
	}

	stats.RecentEvents = make([]entity.ClickEvent, 0, len(clicks))
	for _, c := range clicks {
		stats.RecentEvents = append(stats.RecentEvents, entity.ClickEvent{
			LinkID:    c.LinkID,
			Timestamp: c.ClickedAt,
			Metadata: entity.ClickMetadata{
				Referrer: c.Referrer,
				Device:   c.Device,
				Country:  c.Country,
			},
		})
	}

	var err error
	if stats.Devices, err = r.buckets(ctx, devicesQuery, linkID); err != nil {
		return nil, fmt.Errorf("%s: failed to count clicks per device: %w", op, err)
	}
	if stats.Countries, err = r.buckets(ctx, countriesQuery, linkID); err != nil {
		return nil, fmt.Errorf("%s: failed to count clicks per country: %w", op, err)
	}

	return stats, nil
}

func (r *LinkRepository) buckets(ctx context.Context, query, linkID string) (map[string]int64, error) {
	var rows []bucketDB
	if err := r.db.SelectContext(ctx, &rows, query, linkID); err != nil {
		return nil, storeError(err)
	}

	m := make(map[string]int64, len(rows))
	for _, b := range rows {
		m[b.Name] = b.Total
	}

	return m, nil
}
