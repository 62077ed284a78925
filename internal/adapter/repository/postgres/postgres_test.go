package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/trimmer/internal/entity"
)

const linkID = "01912e4a-7b3c-7def-8a12-3456789abcde"

type LinkRepositoryTestSuite struct {
	suite.Suite
	ctx             context.Context
	errUnknown      error
	errAffectedRows error
	columns         []string
	now             time.Time
	mock            sqlmock.Sqlmock
	repo            *LinkRepository
}

func (suite *LinkRepositoryTestSuite) SetupSuite() {
	suite.ctx = context.Background()
	suite.errUnknown = errors.New("unknown error")
	suite.errAffectedRows = errors.New("affected rows error")
	suite.columns = []string{"id", "short_code", "custom_alias", "long_url", "title", "owner_id", "click_count", "created_at", "updated_at"}
	suite.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (suite *LinkRepositoryTestSuite) SetupSubTest() {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}
	suite.T().Cleanup(func() {
		mockDB.Close()
	})

	db := sqlx.NewDb(mockDB, "sqlmock")
	suite.T().Cleanup(func() {
		db.Close()
	})

	suite.mock = mock
	suite.repo = NewLinkRepository(db)
}

func (suite *LinkRepositoryTestSuite) TearDownSubTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *LinkRepositoryTestSuite) link(alias string) *entity.Link {
	return &entity.Link{
		ID:          linkID,
		ShortCode:   "abc2345",
		CustomAlias: alias,
		LongURL:     "https://example.com",
		Title:       "Example",
		OwnerID:     "alice",
		CreatedAt:   suite.now,
		UpdatedAt:   suite.now,
	}
}

func (suite *LinkRepositoryTestSuite) linkRows(alias string, clicks int64) *sqlmock.Rows {
	return sqlmock.NewRows(suite.columns).
		AddRow(linkID, "abc2345", alias, "https://example.com", "Example", "alice", clicks, suite.now, suite.now)
}

func (suite *LinkRepositoryTestSuite) TestSave() {
	suite.Run("begin error", func() {
		suite.mock.ExpectBegin().WillReturnError(&pgconn.PgError{Code: "08001"})

		link, err := suite.repo.Save(suite.ctx, suite.link(""))

		suite.ErrorIs(err, entity.ErrStoreUnavailable)
		suite.Nil(link)
	})

	suite.Run("insert link error", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectQuery(`INSERT INTO links`).
			WithArgs(linkID, "abc2345", "", "https://example.com", "Example", "alice", suite.now, suite.now).
			WillReturnError(suite.errUnknown)
		suite.mock.ExpectRollback()

		link, err := suite.repo.Save(suite.ctx, suite.link(""))

		suite.ErrorIs(err, suite.errUnknown)
		suite.NotErrorIs(err, entity.ErrStoreUnavailable)
		suite.Nil(link)
	})

	suite.Run("short code exists", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectQuery(`INSERT INTO links`).WillReturnRows(suite.linkRows("", 0))
		suite.mock.ExpectExec(`INSERT INTO link_keys`).
			WithArgs("abc2345", linkID).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationErrCode})
		suite.mock.ExpectRollback()

		link, err := suite.repo.Save(suite.ctx, suite.link(""))

		var conflict *entity.KeyConflictError
		suite.ErrorAs(err, &conflict)
		suite.Equal("abc2345", conflict.Key)
		suite.ErrorIs(err, entity.ErrKeyExists)
		suite.Nil(link)
	})

	suite.Run("alias exists", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectQuery(`INSERT INTO links`).WillReturnRows(suite.linkRows("launch", 0))
		suite.mock.ExpectExec(`INSERT INTO link_keys`).
			WithArgs("abc2345", linkID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		suite.mock.ExpectExec(`INSERT INTO link_keys`).
			WithArgs("launch", linkID).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationErrCode})
		suite.mock.ExpectRollback()

		link, err := suite.repo.Save(suite.ctx, suite.link("launch"))

		var conflict *entity.KeyConflictError
		suite.ErrorAs(err, &conflict)
		suite.Equal("launch", conflict.Key)
		suite.Nil(link)
	})

	suite.Run("commit error", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectQuery(`INSERT INTO links`).WillReturnRows(suite.linkRows("", 0))
		suite.mock.ExpectExec(`INSERT INTO link_keys`).WillReturnResult(sqlmock.NewResult(0, 1))
		suite.mock.ExpectCommit().WillReturnError(suite.errUnknown)

		link, err := suite.repo.Save(suite.ctx, suite.link(""))

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(link)
	})

	suite.Run("success", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectQuery(`INSERT INTO links`).WillReturnRows(suite.linkRows("launch", 0))
		suite.mock.ExpectExec(`INSERT INTO link_keys`).
			WithArgs("abc2345", linkID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		suite.mock.ExpectExec(`INSERT INTO link_keys`).
			WithArgs("launch", linkID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		suite.mock.ExpectCommit()

		link, err := suite.repo.Save(suite.ctx, suite.link("launch"))

		suite.NoError(err)
		suite.Equal(linkID, link.ID)
		suite.Equal("abc2345", link.ShortCode)
		suite.Equal("launch", link.CustomAlias)
		suite.Equal(suite.now, link.CreatedAt)
		suite.Zero(link.ClickCount)
	})
}

func (suite *LinkRepositoryTestSuite) TestFindByKey() {
	suite.Run("link not found", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM link_keys`).
			WithArgs("abc2345").
			WillReturnError(sql.ErrNoRows)

		link, err := suite.repo.FindByKey(suite.ctx, "abc2345")

		suite.ErrorIs(err, entity.ErrLinkNotFound)
		suite.Nil(link)
	})

	suite.Run("store unavailable", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM link_keys`).
			WithArgs("abc2345").
			WillReturnError(&pgconn.PgError{Code: "08006"})

		link, err := suite.repo.FindByKey(suite.ctx, "abc2345")

		suite.ErrorIs(err, entity.ErrStoreUnavailable)
		suite.Nil(link)
	})

	suite.Run("success", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM link_keys`).
			WithArgs("launch").
			WillReturnRows(suite.linkRows("launch", 7))

		link, err := suite.repo.FindByKey(suite.ctx, "launch")

		suite.NoError(err)
		suite.Equal("https://example.com", link.LongURL)
		suite.Equal("launch", link.Key())
		suite.EqualValues(7, link.ClickCount)
	})
}

func (suite *LinkRepositoryTestSuite) TestFindByID() {
	suite.Run("malformed id", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM links`).
			WithArgs("nope").
			WillReturnError(&pgconn.PgError{Code: invalidTextRepresentationCode})

		link, err := suite.repo.FindByID(suite.ctx, "nope")

		suite.ErrorIs(err, entity.ErrLinkNotFound)
		suite.Nil(link)
	})

	suite.Run("success", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM links`).
			WithArgs(linkID).
			WillReturnRows(suite.linkRows("", 0))

		link, err := suite.repo.FindByID(suite.ctx, linkID)

		suite.NoError(err)
		suite.Equal("abc2345", link.Key())
	})
}

func (suite *LinkRepositoryTestSuite) TestListByOwner() {
	suite.Run("unknown error", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM links`).
			WithArgs("alice", 20, 0).
			WillReturnError(suite.errUnknown)

		links, err := suite.repo.ListByOwner(suite.ctx, "alice", 20, 0)

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(links)
	})

	suite.Run("empty", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM links`).
			WithArgs("alice", 20, 0).
			WillReturnRows(sqlmock.NewRows(suite.columns))

		links, err := suite.repo.ListByOwner(suite.ctx, "alice", 20, 0)

		suite.NoError(err)
		suite.NotNil(links)
		suite.Empty(links)
	})

	suite.Run("success", func() {
		rows := sqlmock.NewRows(suite.columns).
			AddRow(linkID, "abc2345", "", "https://example.com", "Example", "alice", 1, suite.now, suite.now).
			AddRow("01912e4a-0000-7def-8a12-3456789abcde", "xyz6789", "promo", "https://example.org", "", "alice", 0, suite.now, suite.now)

		suite.mock.ExpectQuery(`SELECT (.+) FROM links`).
			WithArgs("alice", 20, 0).
			WillReturnRows(rows)

		links, err := suite.repo.ListByOwner(suite.ctx, "alice", 20, 0)

		suite.NoError(err)
		suite.Len(links, 2)
		suite.Equal("promo", links[1].Key())
	})
}

func (suite *LinkRepositoryTestSuite) TestUpdateTitle() {
	suite.Run("link not found", func() {
		suite.mock.ExpectQuery(`UPDATE links`).
			WithArgs("New", linkID, "bob").
			WillReturnError(sql.ErrNoRows)

		link, err := suite.repo.UpdateTitle(suite.ctx, linkID, "bob", "New")

		suite.ErrorIs(err, entity.ErrLinkNotFound)
		suite.Nil(link)
	})

	suite.Run("success", func() {
		rows := sqlmock.NewRows(suite.columns).
			AddRow(linkID, "abc2345", "", "https://example.com", "New", "alice", 0, suite.now, suite.now.Add(time.Hour))

		suite.mock.ExpectQuery(`UPDATE links`).
			WithArgs("New", linkID, "alice").
			WillReturnRows(rows)

		link, err := suite.repo.UpdateTitle(suite.ctx, linkID, "alice", "New")

		suite.NoError(err)
		suite.Equal("New", link.Title)
		suite.Equal(suite.now.Add(time.Hour), link.UpdatedAt)
	})
}

func (suite *LinkRepositoryTestSuite) TestIncrementClick() {
	suite.Run("unknown error", func() {
		suite.mock.ExpectExec(`UPDATE links SET click_count`).
			WithArgs(linkID).
			WillReturnError(suite.errUnknown)

		suite.ErrorIs(suite.repo.IncrementClick(suite.ctx, linkID), suite.errUnknown)
	})

	suite.Run("rows affected error", func() {
		suite.mock.ExpectExec(`UPDATE links SET click_count`).
			WithArgs(linkID).
			WillReturnResult(sqlmock.NewErrorResult(suite.errAffectedRows))

		suite.ErrorIs(suite.repo.IncrementClick(suite.ctx, linkID), suite.errAffectedRows)
	})

	suite.Run("link not found", func() {
		suite.mock.ExpectExec(`UPDATE links SET click_count`).
			WithArgs(linkID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		suite.ErrorIs(suite.repo.IncrementClick(suite.ctx, linkID), entity.ErrLinkNotFound)
	})

	suite.Run("success", func() {
		suite.mock.ExpectExec(`UPDATE links SET click_count = click_count \+ 1`).
			WithArgs(linkID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		suite.NoError(suite.repo.IncrementClick(suite.ctx, linkID))
	})
}

func (suite *LinkRepositoryTestSuite) TestSaveClick() {
	event := entity.ClickEvent{
		LinkID:    linkID,
		Timestamp: suite.now,
		Metadata:  entity.ClickMetadata{Referrer: "news.example.com", Device: entity.DeviceMobile, Country: "DE"},
	}

	suite.Run("link not found", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectExec(`UPDATE links SET click_count`).
			WithArgs(linkID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		suite.mock.ExpectRollback()

		suite.ErrorIs(suite.repo.SaveClick(suite.ctx, event), entity.ErrLinkNotFound)
	})

	suite.Run("insert error rolls back", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectExec(`UPDATE links SET click_count`).
			WithArgs(linkID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		suite.mock.ExpectExec(`INSERT INTO clicks`).
			WillReturnError(&pgconn.PgError{Code: "08006"})
		suite.mock.ExpectRollback()

		suite.ErrorIs(suite.repo.SaveClick(suite.ctx, event), entity.ErrStoreUnavailable)
	})

	suite.Run("success", func() {
		suite.mock.ExpectBegin()
		suite.mock.ExpectExec(`UPDATE links SET click_count`).
			WithArgs(linkID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		suite.mock.ExpectExec(`INSERT INTO clicks`).
			WithArgs(linkID, suite.now, "news.example.com", entity.DeviceMobile, "DE").
			WillReturnResult(sqlmock.NewResult(1, 1))
		suite.mock.ExpectCommit()

		suite.NoError(suite.repo.SaveClick(suite.ctx, event))
	})
}

func (suite *LinkRepositoryTestSuite) TestClickStats() {
	suite.Run("link not found", func() {
		suite.mock.ExpectQuery(`SELECT click_count FROM links`).
			WithArgs(linkID).
			WillReturnError(sql.ErrNoRows)

		stats, err := suite.repo.ClickStats(suite.ctx, linkID, 10)

		suite.ErrorIs(err, entity.ErrLinkNotFound)
		suite.Nil(stats)
	})

	suite.Run("success", func() {
		suite.mock.ExpectQuery(`SELECT click_count FROM links`).
			WithArgs(linkID).
			WillReturnRows(sqlmock.NewRows([]string{"click_count"}).AddRow(3))
		suite.mock.ExpectQuery(`SELECT (.+) FROM clicks`).
			WithArgs(linkID, 10).
			WillReturnRows(sqlmock.NewRows([]string{"link_id", "clicked_at", "referrer", "device", "country"}).
				AddRow(linkID, suite.now.Add(time.Minute), "", entity.DeviceDesktop, "").
				AddRow(linkID, suite.now, "news.example.com", entity.DeviceMobile, "DE"))
		suite.mock.ExpectQuery(`SELECT device AS name`).
			WithArgs(linkID).
			WillReturnRows(sqlmock.NewRows([]string{"name", "total"}).
				AddRow(entity.DeviceDesktop, 2).
				AddRow(entity.DeviceMobile, 1))
		suite.mock.ExpectQuery(`SELECT country AS name`).
			WithArgs(linkID).
			WillReturnRows(sqlmock.NewRows([]string{"name", "total"}).AddRow("DE", 1))

		stats, err := suite.repo.ClickStats(suite.ctx, linkID, 10)

		suite.NoError(err)
		suite.EqualValues(3, stats.ClickCount)
		suite.Len(stats.RecentEvents, 2)
		suite.Equal(suite.now.Add(time.Minute), stats.RecentEvents[0].Timestamp)
		suite.Equal("news.example.com", stats.RecentEvents[1].Metadata.Referrer)
		suite.Equal(map[string]int64{entity.DeviceDesktop: 2, entity.DeviceMobile: 1}, stats.Devices)
		suite.Equal(map[string]int64{"DE": 1}, stats.Countries)
	})
}

func TestStoreError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		unavailable bool
	}{
		{"bad conn", driver.ErrBadConn, true},
		{"conn done", sql.ErrConnDone, true},
		{"dial error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, true},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"admin shutdown", &pgconn.PgError{Code: adminShutdownErrCode}, true},
		{"unique violation", &pgconn.PgError{Code: uniqueViolationErrCode}, false},
		{"no rows", sql.ErrNoRows, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := storeError(tt.err)

			if got := errors.Is(err, entity.ErrStoreUnavailable); got != tt.unavailable {
				t.Errorf("errors.Is(storeError(%v), ErrStoreUnavailable) = %v, want %v", tt.err, got, tt.unavailable)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("storeError(%v) lost the original error", tt.err)
			}
		})
	}
}

func TestLinkRepository(t *testing.T) {
	suite.Run(t, new(LinkRepositoryTestSuite))
}
