package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/trainermarkt/backend/internal/dto"
	"github.com/trainermarkt/backend/internal/middleware"
	"github.com/trainermarkt/backend/internal/models"
	"github.com/trainermarkt/backend/internal/service"
)

type RequestHandler struct {
	svc service.NegotiationService
}

func NewRequestHandler(svc service.NegotiationService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

func (h *RequestHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.POST("/api/v1/trainings/:id/requests", h.CreateRequest, auth)
	e.GET("/api/v1/trainings/:id/requests", h.ListByTraining, auth)
	e.GET("/api/v1/requests", h.ListOwn, auth)
	e.GET("/api/v1/requests/:id", h.GetRequest, auth)
	e.PATCH("/api/v1/requests/:id", h.UpdateRequest, auth)
}

func (h *RequestHandler) CreateRequest(c echo.Context) error {
	trainingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid training id")
	}

	actor := middleware.ActorFrom(c)

	var body dto.CreateRequestBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if actor.Role == models.RoleCompany && body.TrainerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "trainer_id is required")
	}

	req, err := h.svc.CreateRequest(c.Request().Context(), actor, uint(trainingID), body.TrainerID)
	if err != nil {
		return mapNegotiationError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToRequestResponse(req))
}

// UpdateRequest is the single entry point into the negotiation state
// machine: counter, accept, decline and book all arrive here.
func (h *RequestHandler) UpdateRequest(c echo.Context) error {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}

	actor := middleware.ActorFrom(c)

	var body dto.UpdateRequestBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	var req *models.TrainingRequest

	switch body.Action {
	case dto.ActionCounter:
		if body.CounterPrice == nil {
			return echo.NewHTTPError(http.StatusBadRequest, "counter_price is required")
		}
		req, err = h.svc.Counter(ctx, actor, uint(requestID), *body.CounterPrice)
	case dto.ActionAccept:
		req, err = h.svc.Accept(ctx, actor, uint(requestID))
	case dto.ActionDecline:
		req, err = h.svc.Decline(ctx, actor, uint(requestID))
	case dto.ActionBook:
		req, err = h.svc.Book(ctx, actor, uint(requestID))
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown action")
	}

	if err != nil {
		return mapNegotiationError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRequestResponse(req))
}

func (h *RequestHandler) GetRequest(c echo.Context) error {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}

	req, err := h.svc.GetRequest(c.Request().Context(), middleware.ActorFrom(c), uint(requestID))
	if err != nil {
		return mapNegotiationError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRequestResponse(req))
}

func (h *RequestHandler) ListByTraining(c echo.Context) error {
	trainingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid training id")
	}

	var status *models.RequestStatus
	if s := c.QueryParam("status"); s != "" {
		rs := models.RequestStatus(s)
		status = &rs
	}

	reqs, err := h.svc.ListByTraining(c.Request().Context(), middleware.ActorFrom(c), uint(trainingID), status)
	if err != nil {
		return mapNegotiationError(err)
	}

	resp := make([]dto.RequestResponse, len(reqs))
	for i, r := range reqs {
		resp[i] = dto.ToRequestResponse(&r)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *RequestHandler) ListOwn(c echo.Context) error {
	reqs, err := h.svc.ListOwn(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return mapNegotiationError(err)
	}

	resp := make([]dto.RequestResponse, len(reqs))
	for i, r := range reqs {
		resp[i] = dto.ToRequestResponse(&r)
	}
	return c.JSON(http.StatusOK, resp)
}

func mapNegotiationError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrTrainingNotFound),
		errors.Is(err, service.ErrTrainerNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotParty),
		errors.Is(err, service.ErrCompanyOnly):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrDuplicateRequest),
		errors.Is(err, service.ErrNotPending),
		errors.Is(err, service.ErrAlreadyAccepted),
		errors.Is(err, service.ErrPricesLocked),
		errors.Is(err, service.ErrRequestClosed),
		errors.Is(err, service.ErrNotAccepted),
		errors.Is(err, service.ErrTrainingBooked):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidPrice):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
