package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/domain/repository"
	"github.com/geo-directory/internal/repository/postgres/testhelpers"
)

// StatsRepositoryTestSuite тестирует подсчёт статистики по коллекциям
type StatsRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.StatsRepository
	cities repository.CityRepository
	ctx    context.Context
}

// SetupSuite выполняется один раз перед всеми тестами
func (s *StatsRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())
	s.Require().NoError(s.testDB.ApplyMigrations(), "Failed to apply migrations")

	s.repo = testhelpers.NewStatsRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.cities = testhelpers.NewCityRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

// TearDownSuite выполняется один раз после всех тестов
func (s *StatsRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

// SetupTest выполняется перед каждым тестом
func (s *StatsRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

func (s *StatsRepositoryTestSuite) TestGetStatistics_Empty() {
	stats, err := s.repo.GetStatistics(s.ctx)

	s.NoError(err)
	s.Zero(stats.Cities)
	s.Zero(stats.Countries)
	s.Zero(stats.States)
}

func (s *StatsRepositoryTestSuite) TestGetStatistics_Fixtures() {
	s.Require().NoError(s.testDB.LoadFixtures(s.ctx))

	stats, err := s.repo.GetStatistics(s.ctx)

	s.NoError(err)
	s.Equal(4, stats.Cities)
	s.Equal(3, stats.Countries)
	s.Equal(3, stats.States)
	s.NotZero(stats.LastUpdated)
}

func (s *StatsRepositoryTestSuite) TestGetStatistics_FollowsWrites() {
	s.Require().NoError(s.testDB.LoadFixtures(s.ctx))

	_, err := s.cities.Create(s.ctx, domain.City{Name: "Buffalo", StateCode: "NY"})
	s.Require().NoError(err)
	s.Require().NoError(s.cities.Delete(s.ctx, domain.Key{Name: "Boston", StateCode: "MA"}))
	s.Require().NoError(s.cities.Delete(s.ctx, domain.Key{Name: "Albany", StateCode: "NY"}))

	stats, err := s.repo.GetStatistics(s.ctx)

	s.NoError(err)
	s.Equal(3, stats.Cities)
}

// TestStatsRepositoryTestSuite запускает test suite
func TestStatsRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(StatsRepositoryTestSuite))
}
