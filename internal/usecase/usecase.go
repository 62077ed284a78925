package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vadimbarashkov/trimmer/internal/entity"
	"github.com/vadimbarashkov/trimmer/internal/shortcode"
)

const (
	defaultMaxAttempts  = 5
	defaultRecentEvents = 20
	defaultListLimit    = 20
	maxListLimit        = 100
)

type linkRepository interface {
	Save(ctx context.Context, link *entity.Link) (*entity.Link, error)
	FindByKey(ctx context.Context, key string) (*entity.Link, error)
	FindByID(ctx context.Context, id string) (*entity.Link, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Link, error)
	UpdateTitle(ctx context.Context, id, ownerID, title string) (*entity.Link, error)
	ClickStats(ctx context.Context, linkID string, recentLimit int) (*entity.LinkStats, error)
}

type codeGenerator interface {
	Generate() (string, error)
}

type aliasValidator interface {
	Validate(alias string) error
}

type clickRecorder interface {
	Record(event entity.ClickEvent) bool
}

// CreateLinkInput carries the user-supplied fields of a new link.
type CreateLinkInput struct {
	LongURL string
	Title   string
	OwnerID string
	Alias   string
}

type Option func(*LinkUseCase)

func WithMaxAttempts(n int) Option {
	return func(uc *LinkUseCase) {
		if n > 0 {
			uc.maxAttempts = n
		}
	}
}

func WithRecentEvents(n int) Option {
	return func(uc *LinkUseCase) {
		if n > 0 {
			uc.recentEvents = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(uc *LinkUseCase) {
		uc.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *LinkUseCase) {
		uc.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(uc *LinkUseCase) {
		uc.newID = newID
	}
}

// LinkUseCase creates links, resolves keys to destinations and reads the
// click statistics of a link.
type LinkUseCase struct {
	linkRepo     linkRepository
	recorder     clickRecorder
	codes        codeGenerator
	aliases      aliasValidator
	maxAttempts  int
	recentEvents int
	logger       *slog.Logger
	now          func() time.Time
	newID        func() string
}

func New(linkRepo linkRepository, recorder clickRecorder, codes codeGenerator, aliases aliasValidator, opts ...Option) *LinkUseCase {
	uc := &LinkUseCase{
		linkRepo:     linkRepo,
		recorder:     recorder,
		codes:        codes,
		aliases:      aliases,
		maxAttempts:  defaultMaxAttempts,
		recentEvents: defaultRecentEvents,
		logger:       slog.Default(),
		now:          time.Now,
		newID:        newLinkID,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

func newLinkID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// CreateLink validates the input and persists a new link.
//
// A requested alias is a hard request: if it is taken the call fails with
// entity.ErrAliasTaken and nothing else is tried. Without an alias, a fresh
// short code is generated after every conflict until the attempts run out.
func (uc *LinkUseCase) CreateLink(ctx context.Context, in CreateLinkInput) (*entity.Link, error) {
	const op = "usecase.LinkUseCase.CreateLink"

	if err := shortcode.ValidateURL(in.LongURL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if in.OwnerID == "" {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrOwnerRequired)
	}

	if in.Alias != "" {
		if err := uc.aliases.Validate(in.Alias); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		code, err := uc.codes.Generate()
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}
		if code == in.Alias {
			continue
		}

		link, err := uc.linkRepo.Save(ctx, uc.draft(in, code))
		if err == nil {
			return link, nil
		}
		if !errors.Is(err, entity.ErrKeyExists) {
			return nil, fmt.Errorf("%s: failed to save link: %w", op, err)
		}

		var conflict *entity.KeyConflictError
		if in.Alias != "" && (!errors.As(err, &conflict) || conflict.Key == in.Alias) {
			return nil, fmt.Errorf("%s: %q: %w", op, in.Alias, entity.ErrAliasTaken)
		}

		uc.logger.Debug("short code collision, retrying",
			slog.String("op", op),
			slog.String("short_code", code),
			slog.Int("attempt", attempt),
		)
	}

	uc.logger.Error("short code generation exhausted",
		slog.String("op", op),
		slog.Int("attempts", uc.maxAttempts),
	)

	return nil, fmt.Errorf("%s: %w", op, entity.ErrGenerationExhausted)
}

func (uc *LinkUseCase) draft(in CreateLinkInput, code string) *entity.Link {
	now := uc.now().UTC()

	return &entity.Link{
		ID:          uc.newID(),
		ShortCode:   code,
		CustomAlias: in.Alias,
		LongURL:     in.LongURL,
		Title:       in.Title,
		OwnerID:     in.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Resolve returns the link stored under key, which may be a short code or a
// custom alias, and schedules a click record for it. The click is recorded
// in the background; Resolve never waits for it.
func (uc *LinkUseCase) Resolve(ctx context.Context, key string, meta entity.ClickMetadata) (*entity.Link, error) {
	const op = "usecase.LinkUseCase.Resolve"

	if !shortcode.IsURLSafe(key) {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
	}

	link, err := uc.linkRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve key: %w", op, err)
	}

	uc.recorder.Record(entity.ClickEvent{
		LinkID:    link.ID,
		Timestamp: uc.now().UTC(),
		Metadata:  meta,
	})

	return link, nil
}

// GetLink returns a link owned by ownerID.
func (uc *LinkUseCase) GetLink(ctx context.Context, id, ownerID string) (*entity.Link, error) {
	const op = "usecase.LinkUseCase.GetLink"

	link, err := uc.linkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get link: %w", op, err)
	}
	if link.OwnerID != ownerID {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrLinkNotFound)
	}

	return link, nil
}

// ListLinks returns the links of ownerID, newest first.
func (uc *LinkUseCase) ListLinks(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Link, error) {
	const op = "usecase.LinkUseCase.ListLinks"

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	links, err := uc.linkRepo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list links: %w", op, err)
	}

	return links, nil
}

// UpdateTitle changes the title of a link owned by ownerID.
func (uc *LinkUseCase) UpdateTitle(ctx context.Context, id, ownerID, title string) (*entity.Link, error) {
	const op = "usecase.LinkUseCase.UpdateTitle"

	link, err := uc.linkRepo.UpdateTitle(ctx, id, ownerID, title)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update title: %w", op, err)
	}

	return link, nil
}

// GetLinkStats returns the click count and the most recent click events of a
// link owned by ownerID. Counts are eventually consistent with Resolve.
func (uc *LinkUseCase) GetLinkStats(ctx context.Context, id, ownerID string) (*entity.LinkStats, error) {
	const op = "usecase.LinkUseCase.GetLinkStats"

	if _, err := uc.GetLink(ctx, id, ownerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stats, err := uc.linkRepo.ClickStats(ctx, id, uc.recentEvents)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get link stats: %w", op, err)
	}

	return stats, nil
}
