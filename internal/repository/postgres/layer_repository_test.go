package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/suite"

	"github.com/landscape-review/internal/domain"
	apperrors "github.com/landscape-review/internal/pkg/errors"
	"github.com/landscape-review/internal/repository/postgres"
	"github.com/landscape-review/internal/repository/postgres/testhelpers"
)

// LayerRepositoryTestSuite тестирует хранилище слоев в PostgreSQL
type LayerRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   *postgres.LayerRepository
	ctx    context.Context
}

func (s *LayerRepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.testDB = testhelpers.SetupTestDB(s.T())

	_, err := testhelpers.ApplyMigrations(s.ctx, s.testDB.DB, "../../../migrations")
	s.Require().NoError(err, "Failed to apply migrations")
}

func (s *LayerRepositoryTestSuite) SetupTest() {
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
	s.repo = postgres.NewLayerRepository(s.testDB.Postgres(), nil, s.testDB.Logger)
}

func (s *LayerRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func districtLayer() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(orb.Polygon{{{126.8, 35.1}, {126.9, 35.1}, {126.9, 35.2}, {126.8, 35.2}, {126.8, 35.1}}})
	f.Properties["name"] = "district"
	fc.Append(f)
	return fc
}

func (s *LayerRepositoryTestSuite) TestUpsertAndLoad() {
	ref := domain.LayerRef{Region: "광주광역시", Category: "경관지구", Name: "A", File: "A.geojson"}
	s.Require().NoError(s.repo.UpsertLayer(s.ctx, ref, districtLayer()))

	fc, err := s.repo.LoadLayer(s.ctx, ref)
	s.Require().NoError(err)
	s.Require().Len(fc.Features, 1)
	s.Equal("district", fc.Features[0].Properties.MustString("name"))

	// повторная загрузка берется из кеша и возвращает тот же объект
	again, err := s.repo.LoadLayer(s.ctx, ref)
	s.Require().NoError(err)
	s.Same(fc, again)
}

func (s *LayerRepositoryTestSuite) TestListLayers() {
	s.Require().NoError(s.repo.UpsertLayer(s.ctx,
		domain.LayerRef{Region: "광주광역시", Category: "경관지구", Name: "A", File: "A.geojson"}, districtLayer()))
	broken := `[1, 2, 3]`
	s.Require().NoError(s.testDB.InsertRawLayer(s.ctx, "광주광역시", "경관지구", "B", "B.geojson", &broken))
	s.Require().NoError(s.testDB.InsertRawLayer(s.ctx, "전라남도", "경관구조", "C", "C.geojson", nil))

	inv, err := s.repo.ListLayers(s.ctx)
	s.Require().NoError(err)

	s.Equal([]domain.LayerEntry{
		{Name: "A", File: "A.geojson", Exists: true},
		{Name: "B", File: "B.geojson", Exists: false},
	}, inv["광주광역시"]["경관지구"])
	s.Equal([]domain.LayerEntry{{Name: "C", File: "C.geojson", Exists: false}}, inv["전라남도"]["경관구조"])

	_, err = s.repo.LoadLayer(s.ctx, domain.LayerRef{Region: "전라남도", Category: "경관구조", File: "C.geojson"})
	s.True(errors.Is(err, apperrors.ErrLayerCorrupted))

	_, err = s.repo.LoadLayer(s.ctx, domain.LayerRef{Region: "광주광역시", Category: "경관지구", File: "B.geojson"})
	s.True(errors.Is(err, apperrors.ErrLayerCorrupted))
}

func (s *LayerRepositoryTestSuite) TestRegionFilter() {
	s.Require().NoError(s.repo.UpsertLayer(s.ctx,
		domain.LayerRef{Region: "광주광역시", Category: "경관지구", File: "A.geojson"}, districtLayer()))
	s.Require().NoError(s.repo.UpsertLayer(s.ctx,
		domain.LayerRef{Region: "전라남도", Category: "경관지구", File: "A.geojson"}, districtLayer()))

	filtered := postgres.NewLayerRepository(s.testDB.Postgres(), []string{"전라남도"}, s.testDB.Logger)
	inv, err := filtered.Reload(s.ctx)
	s.Require().NoError(err)

	s.Contains(inv, "전라남도")
	s.NotContains(inv, "광주광역시")
}

func (s *LayerRepositoryTestSuite) TestLoadLayer_NotFound() {
	_, err := s.repo.LoadLayer(s.ctx, domain.LayerRef{Region: "x", Category: "y", File: "z"})
	s.True(errors.Is(err, apperrors.ErrLayerNotFound))
}

func TestLayerRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(LayerRepositoryTestSuite))
}
