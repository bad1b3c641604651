package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/trainermarkt/backend/internal/service"
)

type mockSearchService struct {
	searchFn func(ctx context.Context, f service.SearchFilters) ([]service.TrainerMatch, error)
}

func (m *mockSearchService) SearchTrainers(ctx context.Context, f service.SearchFilters) ([]service.TrainerMatch, error) {
	return m.searchFn(ctx, f)
}

func newSearchContext(t *testing.T, query string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/trainers?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSearchTrainers_LocationIDResolved(t *testing.T) {
	var got service.SearchFilters
	svc := &mockSearchService{
		searchFn: func(ctx context.Context, f service.SearchFilters) ([]service.TrainerMatch, error) {
			got = f
			return nil, nil
		},
	}

	c, rec := newSearchContext(t, "location_id=7")
	h := NewSearchHandler(svc)

	assert.NoError(t, h.SearchTrainers(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, got.LocationID) {
		assert.Equal(t, uint(7), *got.LocationID)
	}
}

func TestSearchTrainers_LocationIDAndCoords_Rejected(t *testing.T) {
	c, _ := newSearchContext(t, "location_id=7&lat=52.52&lon=13.40")
	h := NewSearchHandler(&mockSearchService{})

	err := h.SearchTrainers(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestSearchTrainers_LocationIDUnknown(t *testing.T) {
	svc := &mockSearchService{
		searchFn: func(ctx context.Context, f service.SearchFilters) ([]service.TrainerMatch, error) {
			return nil, service.ErrTrainingNotFound
		},
	}

	c, _ := newSearchContext(t, "location_id=99")
	h := NewSearchHandler(svc)

	err := h.SearchTrainers(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestSearchTrainers_LoneLat_Rejected(t *testing.T) {
	c, _ := newSearchContext(t, "lat=52.52")
	h := NewSearchHandler(&mockSearchService{})

	err := h.SearchTrainers(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
