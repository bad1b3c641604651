package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/trainermarkt/backend/internal/dto"
	"github.com/trainermarkt/backend/internal/service"
)

type SearchHandler struct {
	svc service.SearchService
}

func NewSearchHandler(svc service.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

func (h *SearchHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/trainers", h.SearchTrainers)
}

func (h *SearchHandler) SearchTrainers(c echo.Context) error {
	var f service.SearchFilters
	f.Topic = c.QueryParam("topic")

	if v := c.QueryParam("max_rate"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid max_rate")
		}
		f.MaxRate = &rate
	}

	if v := c.QueryParam("online"); v != "" {
		online, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid online flag")
		}
		f.Online = online
	}

	lat, lon := c.QueryParam("lat"), c.QueryParam("lon")
	if (lat == "") != (lon == "") {
		return echo.NewHTTPError(http.StatusBadRequest, "lat and lon must be given together")
	}
	if v := c.QueryParam("location_id"); v != "" {
		if lat != "" {
			return echo.NewHTTPError(http.StatusBadRequest, "location_id and lat/lon are mutually exclusive")
		}
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid location_id")
		}
		locationID := uint(id)
		f.LocationID = &locationID
	}
	if lat != "" {
		latF, err := strconv.ParseFloat(lat, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid lat")
		}
		lonF, err := strconv.ParseFloat(lon, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid lon")
		}
		f.Lat, f.Lon = &latF, &lonF
	}

	matches, err := h.svc.SearchTrainers(c.Request().Context(), f)
	if err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.TrainerSearchResult, len(matches))
	for i, m := range matches {
		resp[i] = dto.ToTrainerSearchResult(m)
	}
	return c.JSON(http.StatusOK, resp)
}
