package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/domain/repository"
	"github.com/geo-directory/internal/pkg/errors"
	"github.com/geo-directory/internal/repository/postgres/testhelpers"
)

// EntityRepositoryTestSuite тестирует репозитории коллекций на реальной БД
type EntityRepositoryTestSuite struct {
	suite.Suite
	testDB    *testhelpers.TestDB
	cities    repository.CityRepository
	countries repository.CountryRepository
	states    repository.StateRepository
	ctx       context.Context
}

// SetupSuite выполняется один раз перед всеми тестами
func (s *EntityRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())
	s.Require().NoError(s.testDB.ApplyMigrations(), "Failed to apply migrations")

	s.cities = testhelpers.NewCityRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.countries = testhelpers.NewCountryRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.states = testhelpers.NewStateRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

// TearDownSuite выполняется один раз после всех тестов
func (s *EntityRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

// SetupTest выполняется перед каждым тестом
func (s *EntityRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
	s.Require().NoError(s.testDB.LoadFixtures(s.ctx))
}

// ============================================================================
// Search
// ============================================================================

func (s *EntityRepositoryTestSuite) TestSearchCities_NameSubstring() {
	found, err := s.cities.Search(s.ctx, domain.CityKind.NewFilter(map[string]string{"name": "new"}))

	s.NoError(err)
	s.Require().Len(found, 2)
	s.Equal("New Orleans", found[0].Name)
	s.Equal("New York", found[1].Name)
}

func (s *EntityRepositoryTestSuite) TestSearchCities_NameAndCode() {
	found, err := s.cities.Search(s.ctx, domain.CityKind.NewFilter(map[string]string{"name": "a", "state_code": "ny"}))

	s.NoError(err)
	s.Require().Len(found, 1)
	s.Equal("Albany", found[0].Name)
}

func (s *EntityRepositoryTestSuite) TestSearchCountries_ExactISOCode() {
	found, err := s.countries.Search(s.ctx, domain.CountryKind.NewFilter(map[string]string{"iso_code": "us"}))

	s.NoError(err)
	s.Require().Len(found, 1)
	s.Equal("United States", found[0].Name)
}

func (s *EntityRepositoryTestSuite) TestSearchStates_LikeMetacharactersAreLiteral() {
	found, err := s.states.Search(s.ctx, domain.StateKind.NewFilter(map[string]string{"name": "%"}))

	s.NoError(err)
	s.Empty(found)
}

// ============================================================================
// CRUD
// ============================================================================

func (s *EntityRepositoryTestSuite) TestCreateGetDelete() {
	id, err := s.cities.Create(s.ctx, domain.City{Name: "Springfield", StateCode: "il"})
	s.Require().NoError(err)
	s.NotEmpty(id)

	got, err := s.cities.Get(s.ctx, domain.Key{Name: "Springfield", StateCode: "IL"})
	s.Require().NoError(err)
	s.Equal(domain.City{ID: id, Name: "Springfield", StateCode: "IL"}, got)

	s.NoError(s.cities.Delete(s.ctx, domain.Key{Name: "Springfield", StateCode: "IL"}))

	_, err = s.cities.Get(s.ctx, domain.Key{Name: "Springfield", StateCode: "IL"})
	s.True(errors.Is(err, errors.ErrNotFound))
}

func (s *EntityRepositoryTestSuite) TestCreate_Conflict() {
	_, err := s.cities.Create(s.ctx, domain.City{Name: "Boston", StateCode: "MA"})
	s.True(errors.Is(err, errors.ErrConflict))

	_, err = s.states.Create(s.ctx, domain.State{Name: "Other York", StateCode: "NY"})
	s.True(errors.Is(err, errors.ErrConflict))
}

func (s *EntityRepositoryTestSuite) TestUpdate() {
	population := 7100000
	updated, err := s.states.Update(s.ctx, domain.Key{Name: "Massachusetts"}, domain.Patch{"population": population})

	s.Require().NoError(err)
	s.Require().NotNil(updated.Population)
	s.Equal(population, *updated.Population)
	s.Equal("Boston", updated.Capital)

	_, err = s.states.Update(s.ctx, domain.Key{Name: "Nowhere"}, domain.Patch{"capital": "X"})
	s.True(errors.Is(err, errors.ErrNotFound))

	_, err = s.cities.Update(s.ctx, domain.Key{Name: "Albany", StateCode: "NY"}, domain.Patch{"name": "New York"})
	s.True(errors.Is(err, errors.ErrConflict))
}

func (s *EntityRepositoryTestSuite) TestDelete_NotFound() {
	err := s.countries.Delete(s.ctx, domain.Key{Name: "Atlantis"})
	s.True(errors.Is(err, errors.ErrNotFound))
}

func (s *EntityRepositoryTestSuite) TestList_Paginated() {
	page, total, err := s.cities.List(s.ctx, domain.ListOptions{Page: 2, Limit: 2})

	s.NoError(err)
	s.Equal(4, total)
	s.Require().Len(page, 2)
	s.Equal("New Orleans", page[0].Name)
	s.Equal("New York", page[1].Name)
}

func TestEntityRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(EntityRepositoryTestSuite))
}
