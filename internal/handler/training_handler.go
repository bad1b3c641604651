package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/trainermarkt/backend/internal/dto"
	"github.com/trainermarkt/backend/internal/middleware"
	"github.com/trainermarkt/backend/internal/service"
)

type TrainingHandler struct {
	svc service.TrainingService
}

func NewTrainingHandler(svc service.TrainingService) *TrainingHandler {
	return &TrainingHandler{svc: svc}
}

func (h *TrainingHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.POST("/api/v1/trainings", h.CreateTraining, auth)
	e.GET("/api/v1/trainings", h.ListTrainings)
	e.GET("/api/v1/trainings/:id", h.GetTraining)
}

func (h *TrainingHandler) CreateTraining(c echo.Context) error {
	var req dto.CreateTrainingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Topic == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and topic are required")
	}
	if req.DailyRate <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "daily_rate must be positive")
	}

	training, err := h.svc.CreateTraining(c.Request().Context(), middleware.ActorFrom(c), service.TrainingInput{
		Title:        req.Title,
		Topic:        req.Topic,
		DailyRate:    req.DailyRate,
		StartAt:      req.StartAt,
		DurationDays: req.DurationDays,
		LocationType: req.LocationType,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompanyOnly):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrInvalidLocation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToTrainingResponse(training))
}

func (h *TrainingHandler) GetTraining(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid training id")
	}

	training, err := h.svc.GetTraining(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "training not found")
	}
	return c.JSON(http.StatusOK, dto.ToTrainingResponse(training))
}

func (h *TrainingHandler) ListTrainings(c echo.Context) error {
	trainings, err := h.svc.ListTrainings(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.TrainingResponse, len(trainings))
	for i, t := range trainings {
		resp[i] = dto.ToTrainingResponse(&t)
	}
	return c.JSON(http.StatusOK, resp)
}
