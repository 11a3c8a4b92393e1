//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"brickgate/internal/domain"
	"brickgate/internal/listing/store"
	id "brickgate/pkg/domain"
	"brickgate/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "listings")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) record(token id.Address) domain.Listing {
	return domain.Listing{
		Token:         token,
		Title:         "12 Rue des Lilas",
		City:          "Paris",
		Description:   "Haussmann building, 3rd floor",
		SurfaceM2:     64,
		Rooms:         3,
		PropertyPrice: "450000",
		ExpectedYield: "5.2",
		SPVName:       "SCI Lilas",
		SPVRegistryID: "RCS-123456",
		UpdatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresStoreSuite) TestUpsertAndFindRoundTrip() {
	ctx := context.Background()
	token := id.Address("0x0000000000000000000000000000000000000010")
	saved := s.record(token)

	s.Require().NoError(s.store.Upsert(ctx, saved))

	found, err := s.store.Find(ctx, token)
	s.Require().NoError(err)
	s.Equal(saved.Title, found.Title)
	s.Equal(saved.SPVRegistryID, found.SPVRegistryID)
	s.False(found.Published)
}

func (s *PostgresStoreSuite) TestUpsertOverwrites() {
	ctx := context.Background()
	token := id.Address("0x0000000000000000000000000000000000000010")

	first := s.record(token)
	s.Require().NoError(s.store.Upsert(ctx, first))

	second := first
	second.Rooms = 4
	s.Require().NoError(s.store.Upsert(ctx, second))

	found, err := s.store.Find(ctx, token)
	s.Require().NoError(err)
	s.Equal(4, found.Rooms)

	all, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *PostgresStoreSuite) TestSetPublished() {
	ctx := context.Background()
	token := id.Address("0x0000000000000000000000000000000000000010")
	s.Require().NoError(s.store.Upsert(ctx, s.record(token)))

	s.Require().NoError(s.store.SetPublished(ctx, token, true))
	found, err := s.store.Find(ctx, token)
	s.Require().NoError(err)
	s.True(found.Published)

	s.Require().NoError(s.store.SetPublished(ctx, token, false))
	found, err = s.store.Find(ctx, token)
	s.Require().NoError(err)
	s.False(found.Published)
}

func (s *PostgresStoreSuite) TestSetPublishedUnknownToken() {
	err := s.store.SetPublished(context.Background(), id.Address("0x00000000000000000000000000000000000000ff"), true)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *PostgresStoreSuite) TestFindMissing() {
	_, err := s.store.Find(context.Background(), id.Address("0x00000000000000000000000000000000000000ff"))
	s.ErrorIs(err, store.ErrNotFound)
}
