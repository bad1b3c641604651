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

type TrainerHandler struct {
	svc service.TrainerService
}

func NewTrainerHandler(svc service.TrainerService) *TrainerHandler {
	return &TrainerHandler{svc: svc}
}

func (h *TrainerHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.PUT("/api/v1/trainers/me/profile", h.UpdateProfile, auth)
	e.GET("/api/v1/trainers/me/messages", h.ListMessages, auth)
	e.GET("/api/v1/trainers/:id", h.GetTrainer)
}

func (h *TrainerHandler) UpdateProfile(c echo.Context) error {
	var req dto.UpdateTrainerProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	trainer, err := h.svc.UpdateProfile(c.Request().Context(), middleware.ActorFrom(c), service.TrainerProfileInput{
		Name:           req.Name,
		DailyRate:      req.DailyRate,
		Topics:         req.Topics,
		DeliveryTypes:  req.DeliveryTypes,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		TravelRadiusKm: req.TravelRadiusKm,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotParty) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, trainer)
}

func (h *TrainerHandler) GetTrainer(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid trainer id")
	}

	trainer, err := h.svc.GetTrainer(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "trainer not found")
	}
	return c.JSON(http.StatusOK, trainer)
}

func (h *TrainerHandler) ListMessages(c echo.Context) error {
	msgs, err := h.svc.ListMessages(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		if errors.Is(err, service.ErrNotParty) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	resp := make([]dto.MessageResponse, len(msgs))
	for i, m := range msgs {
		resp[i] = dto.ToMessageResponse(&m)
	}
	return c.JSON(http.StatusOK, resp)
}
