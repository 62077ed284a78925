// Package memory provides an in-process link store. It keeps every key of
// every link in one map, so short codes and aliases share a single
// uniqueness domain exactly as the SQL stores do.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vadimbarashkov/trimmer/internal/entity"
)

type record struct {
	link   entity.Link
	clicks atomic.Int64
	events []entity.ClickEvent
}

func (r *record) snapshot() *entity.Link {
	link := r.link
	link.ClickCount = r.clicks.Load()
	return &link
}

// LinkRepository is a concurrency-safe in-memory link store.
type LinkRepository struct {
	mu   sync.RWMutex
	byID map[string]*record
	keys map[string]*record
	now  func() time.Time
}

func NewLinkRepository() *LinkRepository {
	return &LinkRepository{
		byID: make(map[string]*record),
		keys: make(map[string]*record),
		now:  time.Now,
	}
}

// Save reserves every key of link and stores it. Either all keys are
// reserved or none is.
func (r *LinkRepository) Save(ctx context.Context, link *entity.Link) (*entity.Link, error) {
	const op = "adapter.repository.memory.LinkRepository.Save"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range link.Keys() {
		if _, ok := r.keys[key]; ok {
			return nil, fmt.Errorf("%s: %w", op, &entity.KeyConflictError{Key: key})
		}
	}

	rec := &record{link: *link}
	rec.link.ClickCount = 0
	rec.clicks.Store(link.ClickCount)

	r.byID[link.ID] = rec
	for _, key := range link.Keys() {
		r.keys[key] = rec
	}

	return rec.snapshot(), nil
}

func (r *LinkRepository) FindByKey(ctx context.Context, key string) (*entity.Link, error) {
	const op = "adapter.repository.memory.LinkRepository.FindByKey"

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.keys[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
	}

	return rec.snapshot(), nil
}

func (r *LinkRepository) FindByID(ctx context.Context, id string) (*entity.Link, error) {
	const op = "adapter.repository.memory.LinkRepository.FindByID"

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
	}

	return rec.snapshot(), nil
}

// ListByOwner returns the links of ownerID, newest first.
func (r *LinkRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var links []*entity.Link
	for _, rec := range r.byID {
		if rec.link.OwnerID == ownerID {
			links = append(links, rec.snapshot())
		}
	}

	slices.SortFunc(links, func(a, b *entity.Link) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	if offset >= len(links) {
		return []*entity.Link{}, nil
	}
	links = links[offset:]
	if limit > 0 && limit < len(links) {
		links = links[:limit]
	}

	return links, nil
}

// UpdateTitle sets the title of a link owned by ownerID. Links of other
// owners are reported as missing.
func (r *LinkRepository) UpdateTitle(ctx context.Context, id, ownerID, title string) (*entity.Link, error) {
	const op = "adapter.repository.memory.LinkRepository.UpdateTitle"

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok || rec.link.OwnerID != ownerID {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
	}

	rec.link.Title = title
	rec.link.UpdatedAt = r.now().UTC()

	return rec.snapshot(), nil
}

// IncrementClick atomically bumps the click counter of a link.
func (r *LinkRepository) IncrementClick(ctx context.Context, linkID string) error {
	const op = "adapter.repository.memory.LinkRepository.IncrementClick"

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[linkID]
	if !ok {
		return fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
	}

	rec.clicks.Add(1)
	return nil
}

// SaveClick appends the event and bumps the counter of its link.
func (r *LinkRepository) SaveClick(ctx context.Context, event entity.ClickEvent) error {
	const op = "adapter.repository.memory.LinkRepository.SaveClick"

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[event.LinkID]
	if !ok {
		return fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
	}

	rec.events = append(rec.events, event)
	rec.clicks.Add(1)

	return nil
}

func (r *LinkRepository) ClickStats(ctx context.Context, linkID string, recentLimit int) (*entity.LinkStats, error) {
	const op = "adapter.repository.memory.LinkRepository.ClickStats"

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[linkID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
	}

	stats := &entity.LinkStats{
		LinkID:       linkID,
		ClickCount:   rec.clicks.Load(),
		RecentEvents: []entity.ClickEvent{},
		Devices:      make(map[string]int64),
		Countries:    make(map[string]int64),
	}

	for _, e := range rec.events {
		if e.Metadata.Device != "" {
			stats.Devices[e.Metadata.Device]++
		}
		if e.Metadata.Country != "" {
			stats.Countries[e.Metadata.Country]++
		}
	}

	recent := slices.Clone(rec.events)
	slices.Reverse(recent)
	slices.SortStableFunc(recent, func(a, b entity.ClickEvent) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if recentLimit >= 0 && len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	stats.RecentEvents = append(stats.RecentEvents, recent...)

	return stats, nil
}
