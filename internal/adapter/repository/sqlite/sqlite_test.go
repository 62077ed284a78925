package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/trimmer/internal/entity"
	"github.com/vadimbarashkov/trimmer/migrations"
	"github.com/vadimbarashkov/trimmer/pkg/sqlite"
)

type LinkRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	now  time.Time
	repo *LinkRepository
}

func (suite *LinkRepositoryTestSuite) SetupSuite() {
	suite.ctx = context.Background()
	suite.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (suite *LinkRepositoryTestSuite) SetupSubTest() {
	path := filepath.Join(suite.T().TempDir(), "trimmer.db")

	if err := sqlite.RunMigrations(migrations.SQLite, "sqlite", path); err != nil {
		suite.T().Fatalf("Failed to run migrations: %v", err)
	}

	db, err := sqlite.New(suite.ctx, path, time.Second)
	if err != nil {
		suite.T().Fatalf("Failed to open database: %v", err)
	}
	suite.T().Cleanup(func() {
		db.Close()
	})

	suite.repo = NewLinkRepository(db)
}

func (suite *LinkRepositoryTestSuite) link(id, code, alias string) *entity.Link {
	return &entity.Link{
		ID:          id,
		ShortCode:   code,
		CustomAlias: alias,
		LongURL:     "https://example.com/" + id,
		Title:       "Example " + id,
		OwnerID:     "alice",
		CreatedAt:   suite.now,
		UpdatedAt:   suite.now,
	}
}

func (suite *LinkRepositoryTestSuite) mustSave(link *entity.Link) *entity.Link {
	saved, err := suite.repo.Save(suite.ctx, link)
	suite.Require().NoError(err)
	return saved
}

func (suite *LinkRepositoryTestSuite) TestSave() {
	suite.Run("success", func() {
		link, err := suite.repo.Save(suite.ctx, suite.link("1", "abc2345", "launch"))

		suite.NoError(err)
		suite.Equal("launch", link.Key())
		suite.Zero(link.ClickCount)
	})

	suite.Run("short code exists", func() {
		suite.mustSave(suite.link("1", "abc2345", ""))

		link, err := suite.repo.Save(suite.ctx, suite.link("2", "abc2345", ""))

		var conflict *entity.KeyConflictError
		suite.ErrorAs(err, &conflict)
		suite.Equal("abc2345", conflict.Key)
		suite.Nil(link)
	})

	suite.Run("alias colliding with a short code rolls back", func() {
		suite.mustSave(suite.link("1", "abc2345", ""))

		_, err := suite.repo.Save(suite.ctx, suite.link("2", "xyz6789", "abc2345"))

		var conflict *entity.KeyConflictError
		suite.ErrorAs(err, &conflict)
		suite.Equal("abc2345", conflict.Key)

		_, err = suite.repo.FindByID(suite.ctx, "2")
		suite.ErrorIs(err, entity.ErrLinkNotFound)
		_, err = suite.repo.FindByKey(suite.ctx, "xyz6789")
		suite.ErrorIs(err, entity.ErrLinkNotFound)
	})

	suite.Run("short code colliding with an alias", func() {
		suite.mustSave(suite.link("1", "abc2345", "promo"))

		_, err := suite.repo.Save(suite.ctx, suite.link("2", "promo", ""))

		suite.ErrorIs(err, entity.ErrKeyExists)
	})

	suite.Run("concurrent same alias has one winner", func() {
		const n = 16

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := suite.repo.Save(suite.ctx, suite.link(fmt.Sprint(i), fmt.Sprintf("code%03d", i), "race"))
				if err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				} else if !errors.Is(err, entity.ErrKeyExists) {
					suite.T().Errorf("unexpected error: %v", err)
				}
			}(i)
		}
		wg.Wait()

		suite.Equal(1, wins)
	})
}

func (suite *LinkRepositoryTestSuite) TestFind() {
	suite.Run("by either key", func() {
		suite.mustSave(suite.link("1", "abc2345", "launch"))

		for _, key := range []string{"abc2345", "launch"} {
			link, err := suite.repo.FindByKey(suite.ctx, key)

			suite.NoError(err)
			suite.Equal("1", link.ID)
			suite.Equal("https://example.com/1", link.LongURL)
			suite.True(suite.now.Equal(link.CreatedAt))
		}
	})

	suite.Run("keys are case sensitive", func() {
		suite.mustSave(suite.link("1", "abc2345", "Launch"))

		_, err := suite.repo.FindByKey(suite.ctx, "launch")

		suite.ErrorIs(err, entity.ErrLinkNotFound)
	})

	suite.Run("missing", func() {
		_, err := suite.repo.FindByKey(suite.ctx, "zzzzzzz")
		suite.ErrorIs(err, entity.ErrLinkNotFound)

		_, err = suite.repo.FindByID(suite.ctx, "nope")
		suite.ErrorIs(err, entity.ErrLinkNotFound)
	})
}

func (suite *LinkRepositoryTestSuite) TestListByOwner() {
	suite.Run("newest first with paging", func() {
		for i := 0; i < 4; i++ {
			link := suite.link(fmt.Sprint(i), fmt.Sprintf("code%03d", i), "")
			link.CreatedAt = suite.now.Add(time.Duration(i) * time.Minute)
			suite.mustSave(link)
		}
		other := suite.link("bob", "bobcode", "")
		other.OwnerID = "bob"
		suite.mustSave(other)

		links, err := suite.repo.ListByOwner(suite.ctx, "alice", 2, 1)

		suite.NoError(err)
		suite.Len(links, 2)
		suite.Equal("2", links[0].ID)
		suite.Equal("1", links[1].ID)
	})

	suite.Run("empty", func() {
		links, err := suite.repo.ListByOwner(suite.ctx, "carol", 20, 0)

		suite.NoError(err)
		suite.NotNil(links)
		suite.Empty(links)
	})
}

func (suite *LinkRepositoryTestSuite) TestUpdateTitle() {
	suite.Run("owner scoped", func() {
		suite.mustSave(suite.link("1", "abc2345", ""))

		_, err := suite.repo.UpdateTitle(suite.ctx, "1", "bob", "Stolen")
		suite.ErrorIs(err, entity.ErrLinkNotFound)

		link, err := suite.repo.UpdateTitle(suite.ctx, "1", "alice", "Renamed")
		suite.NoError(err)
		suite.Equal("Renamed", link.Title)
		suite.True(link.UpdatedAt.After(suite.now))
		suite.True(suite.now.Equal(link.CreatedAt))
	})
}

func (suite *LinkRepositoryTestSuite) TestClicks() {
	suite.Run("unknown link", func() {
		err := suite.repo.SaveClick(suite.ctx, entity.ClickEvent{LinkID: "nope", Timestamp: suite.now})
		suite.ErrorIs(err, entity.ErrLinkNotFound)

		suite.ErrorIs(suite.repo.IncrementClick(suite.ctx, "nope"), entity.ErrLinkNotFound)

		_, err = suite.repo.ClickStats(suite.ctx, "nope", 10)
		suite.ErrorIs(err, entity.ErrLinkNotFound)
	})

	suite.Run("stats", func() {
		suite.mustSave(suite.link("1", "abc2345", ""))

		events := []entity.ClickEvent{
			{LinkID: "1", Timestamp: suite.now, Metadata: entity.ClickMetadata{Device: entity.DeviceMobile, Country: "DE", Referrer: "news.example.com"}},
			{LinkID: "1", Timestamp: suite.now.Add(time.Minute), Metadata: entity.ClickMetadata{Device: entity.DeviceDesktop, Country: "DE"}},
			{LinkID: "1", Timestamp: suite.now.Add(2 * time.Minute), Metadata: entity.ClickMetadata{Device: entity.DeviceMobile}},
		}
		for _, e := range events {
			suite.Require().NoError(suite.repo.SaveClick(suite.ctx, e))
		}
		suite.Require().NoError(suite.repo.IncrementClick(suite.ctx, "1"))

		stats, err := suite.repo.ClickStats(suite.ctx, "1", 2)

		suite.NoError(err)
		suite.EqualValues(4, stats.ClickCount)
		suite.Len(stats.RecentEvents, 2)
		suite.True(suite.now.Add(2 * time.Minute).Equal(stats.RecentEvents[0].Timestamp))
		suite.True(suite.now.Add(time.Minute).Equal(stats.RecentEvents[1].Timestamp))
		suite.Equal(map[string]int64{entity.DeviceMobile: 2, entity.DeviceDesktop: 1}, stats.Devices)
		suite.Equal(map[string]int64{"DE": 2}, stats.Countries)

		link, err := suite.repo.FindByKey(suite.ctx, "abc2345")
		suite.NoError(err)
		suite.EqualValues(4, link.ClickCount)
	})

	suite.Run("concurrent clicks are not lost", func() {
		const n = 50

		suite.mustSave(suite.link("1", "abc2345", ""))

		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := suite.repo.SaveClick(suite.ctx, entity.ClickEvent{LinkID: "1", Timestamp: time.Now()}); err != nil {
					suite.T().Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		link, err := suite.repo.FindByID(suite.ctx, "1")
		suite.NoError(err)
		suite.EqualValues(n, link.ClickCount)
	})
}

func TestLinkRepository(t *testing.T) {
	suite.Run(t, new(LinkRepositoryTestSuite))
}
