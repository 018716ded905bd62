package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/livemap-service/internal/domain"
	"github.com/livemap-service/internal/domain/repository"
	"github.com/livemap-service/internal/pkg/errors"
	"github.com/livemap-service/internal/repository/postgres"
	"github.com/livemap-service/internal/repository/postgres/testhelpers"
)

type StreamRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.StreamRepository
	ctx    context.Context
	lotID  int64
}

func (s *StreamRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.NoError(err, "Failed to apply migrations")

	err = s.testDB.Cleanup(context.Background())
	s.NoError(err, "Failed to cleanup test database")

	s.lotID, err = testhelpers.SeedParkingLot(s.testDB.DB, "Russia", "Moscow", "Tverskaya 1", 100)
	s.NoError(err, "Failed to seed parking lot")

	s.repo = postgres.NewStreamRepository(
		postgres.NewDBForTest(s.testDB.DB, s.testDB.Logger),
	)
}

func (s *StreamRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *StreamRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	_, err := s.testDB.DB.Exec("TRUNCATE TABLE video_stream_sources")
	s.NoError(err)
}

func (s *StreamRepositoryTestSuite) TestCreate_And_GetByID() {
	stream := &domain.VideoStreamSource{
		ParkingLotID:   s.lotID,
		StreamSource:   "rtsp://camera-1/stream",
		ProcessingRate: 30,
		IsActive:       true,
	}

	err := s.repo.Create(s.ctx, stream)
	s.NoError(err)
	s.NotZero(stream.ID)

	got, err := s.repo.GetByID(s.ctx, stream.ID)
	s.NoError(err)
	s.Equal("rtsp://camera-1/stream", got.StreamSource)
	s.Equal("Tverskaya 1", got.ParkingLotAddress)
	s.Equal("Moscow", got.CityName)
	s.Equal("Russia", got.CountryName)
	s.Nil(got.InUseUntil)
}

func (s *StreamRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(s.ctx, 999999)
	s.ErrorIs(err, errors.ErrStreamNotFound)
}

func (s *StreamRepositoryTestSuite) TestList_ActiveOnly() {
	_, err := testhelpers.SeedStream(s.testDB.DB, s.lotID, "rtsp://a", 30, true, nil)
	s.NoError(err)
	_, err = testhelpers.SeedStream(s.testDB.DB, s.lotID, "rtsp://b", 30, false, nil)
	s.NoError(err)

	all, err := s.repo.List(s.ctx, false)
	s.NoError(err)
	s.Len(all, 2)

	active, err := s.repo.List(s.ctx, true)
	s.NoError(err)
	s.Len(active, 1)
	s.Equal("rtsp://a", active[0].StreamSource)
}

func (s *StreamRepositoryTestSuite) TestAcquireLease_OnlyFreeRows() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	freeID, err := testhelpers.SeedStream(s.testDB.DB, s.lotID, "rtsp://free", 30, true, nil)
	s.NoError(err)
	expiredID, err := testhelpers.SeedStream(s.testDB.DB, s.lotID, "rtsp://expired", 30, true, &past)
	s.NoError(err)
	busyID, err := testhelpers.SeedStream(s.testDB.DB, s.lotID, "rtsp://busy", 30, true, &future)
	s.NoError(err)

	leased, err := s.repo.AcquireLease(s.ctx,
		[]int64{freeID, expiredID, busyID}, now.Add(30*time.Minute), now)
	s.NoError(err)
	s.ElementsMatch([]int64{freeID, expiredID}, leased)

	// The busy row keeps its original lease.
	got, err := s.repo.GetByID(s.ctx, busyID)
	s.NoError(err)
	s.NotNil(got.InUseUntil)
	s.WithinDuration(future, *got.InUseUntil, time.Second)
}

func (s *StreamRepositoryTestSuite) TestAcquireLease_ExpiryEqualNowIsFree() {
	now := time.Now().UTC().Truncate(time.Microsecond)

	id, err := testhelpers.SeedStream(s.testDB.DB, s.lotID, "rtsp://edge", 30, true, &now)
	s.NoError(err)

	leased, err := s.repo.AcquireLease(s.ctx, []int64{id}, now.Add(time.Hour), now)
	s.NoError(err)
	s.Equal([]int64{id}, leased)
}

func (s *StreamRepositoryTestSuite) TestAcquireLease_SecondCallGetsNothing() {
	now := time.Now().UTC().Truncate(time.Microsecond)

	id, err := testhelpers.SeedStream(s.testDB.DB, s.lotID, "rtsp://once", 30, true, nil)
	s.NoError(err)

	first, err := s.repo.AcquireLease(s.ctx, []int64{id}, now.Add(time.Hour), now)
	s.NoError(err)
	s.Len(first, 1)

	second, err := s.repo.AcquireLease(s.ctx, []int64{id}, now.Add(2*time.Hour), now)
	s.NoError(err)
	s.Empty(second)
}

func (s *StreamRepositoryTestSuite) TestUpdate_CascadeRate() {
	firstID, err := testhelpers.SeedStream(s.testDB.DB, s.lotID, "rtsp://a", 30, true, nil)
	s.NoError(err)
	secondID, err := testhelpers.SeedStream(s.testDB.DB, s.lotID, "rtsp://b", 30, true, nil)
	s.NoError(err)

	err = s.repo.Update(s.ctx, &domain.VideoStreamSource{
		ID:             firstID,
		ParkingLotID:   s.lotID,
		StreamSource:   "rtsp://a",
		ProcessingRate: 60,
		IsActive:       true,
	}, true)
	s.NoError(err)

	sibling, err := s.repo.GetByID(s.ctx, secondID)
	s.NoError(err)
	s.Equal(60, sibling.ProcessingRate)
}

func (s *StreamRepositoryTestSuite) TestActiveRateForLot() {
	id, err := testhelpers.SeedStream(s.testDB.DB, s.lotID, "rtsp://a", 120, true, nil)
	s.NoError(err)
	_, err = testhelpers.SeedStream(s.testDB.DB, s.lotID, "rtsp://inactive", 5, false, nil)
	s.NoError(err)

	rate, found, err := s.repo.ActiveRateForLot(s.ctx, s.lotID, 0)
	s.NoError(err)
	s.True(found)
	s.Equal(120, rate)

	// Excluding the only active stream leaves no rate to conflict with.
	_, found, err = s.repo.ActiveRateForLot(s.ctx, s.lotID, id)
	s.NoError(err)
	s.False(found)
}

func (s *StreamRepositoryTestSuite) TestDelete_NotFound() {
	err := s.repo.Delete(s.ctx, 424242)
	s.ErrorIs(err, errors.ErrStreamNotFound)
}

func TestStreamRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(StreamRepositoryTestSuite))
}
