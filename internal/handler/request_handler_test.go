package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/trainermarkt/backend/internal/dto"
	"github.com/trainermarkt/backend/internal/models"
	"github.com/trainermarkt/backend/internal/service"
)

// --- Mock NegotiationService ---

type mockNegotiationService struct {
	createFn  func(ctx context.Context, actor models.Actor, trainingID, trainerID uint) (*models.TrainingRequest, error)
	counterFn func(ctx context.Context, actor models.Actor, requestID uint, price float64) (*models.TrainingRequest, error)
	acceptFn  func(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error)
	declineFn func(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error)
	bookFn    func(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error)
	getFn     func(ctx context.Context, actor models.Actor, id uint) (*models.TrainingRequest, error)
	listFn    func(ctx context.Context, actor models.Actor, trainingID uint, status *models.RequestStatus) ([]models.TrainingRequest, error)
	listOwnFn func(ctx context.Context, actor models.Actor) ([]models.TrainingRequest, error)
}

func (m *mockNegotiationService) CreateRequest(ctx context.Context, actor models.Actor, trainingID, trainerID uint) (*models.TrainingRequest, error) {
	return m.createFn(ctx, actor, trainingID, trainerID)
}
func (m *mockNegotiationService) Counter(ctx context.Context, actor models.Actor, requestID uint, price float64) (*models.TrainingRequest, error) {
	return m.counterFn(ctx, actor, requestID, price)
}
func (m *mockNegotiationService) Accept(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error) {
	return m.acceptFn(ctx, actor, requestID)
}
func (m *mockNegotiationService) Decline(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error) {
	return m.declineFn(ctx, actor, requestID)
}
func (m *mockNegotiationService) Book(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error) {
	return m.bookFn(ctx, actor, requestID)
}
func (m *mockNegotiationService) GetRequest(ctx context.Context, actor models.Actor, id uint) (*models.TrainingRequest, error) {
	return m.getFn(ctx, actor, id)
}
func (m *mockNegotiationService) ListByTraining(ctx context.Context, actor models.Actor, trainingID uint, status *models.RequestStatus) ([]models.TrainingRequest, error) {
	return m.listFn(ctx, actor, trainingID, status)
}
func (m *mockNegotiationService) ListOwn(ctx context.Context, actor models.Actor) ([]models.TrainingRequest, error) {
	return m.listOwnFn(ctx, actor)
}

func newPatchContext(t *testing.T, body, requestID string, actor models.Actor) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/requests/"+requestID, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(requestID)
	c.Set("actor", actor)
	return c, rec
}

func TestUpdateRequest_Counter_Success(t *testing.T) {
	price := 900.0
	svc := &mockNegotiationService{
		counterFn: func(ctx context.Context, actor models.Actor, requestID uint, p float64) (*models.TrainingRequest, error) {
			return &models.TrainingRequest{
				ID:           requestID,
				TrainingID:   1,
				TrainerID:    2,
				Status:       models.StatusPending,
				CounterPrice: &p,
			}, nil
		},
	}

	c, rec := newPatchContext(t, `{"action":"counter","counter_price":900}`, "1",
		models.Actor{UserID: "trainer-1", Role: models.RoleTrainer})

	h := NewRequestHandler(svc)
	assert.NoError(t, h.UpdateRequest(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.RequestResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusPending, resp.Status)
	if assert.NotNil(t, resp.CounterPrice) {
		assert.Equal(t, price, *resp.CounterPrice)
	}
	assert.Nil(t, resp.AgreedRate)
}

func TestUpdateRequest_Counter_MissingPrice(t *testing.T) {
	c, _ := newPatchContext(t, `{"action":"counter"}`, "1",
		models.Actor{UserID: "trainer-1", Role: models.RoleTrainer})

	h := NewRequestHandler(&mockNegotiationService{})
	err := h.UpdateRequest(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestUpdateRequest_Counter_Locked(t *testing.T) {
	svc := &mockNegotiationService{
		counterFn: func(ctx context.Context, actor models.Actor, requestID uint, p float64) (*models.TrainingRequest, error) {
			return nil, service.ErrPricesLocked
		},
	}

	c, _ := newPatchContext(t, `{"action":"counter","counter_price":700}`, "1",
		models.Actor{UserID: "company-1", Role: models.RoleCompany})

	h := NewRequestHandler(svc)
	err := h.UpdateRequest(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
	assert.Equal(t, service.ErrPricesLocked.Error(), he.Message)
}

func TestUpdateRequest_Accept_Duplicate(t *testing.T) {
	svc := &mockNegotiationService{
		acceptFn: func(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error) {
			return nil, service.ErrAlreadyAccepted
		},
	}

	c, _ := newPatchContext(t, `{"action":"accept"}`, "1",
		models.Actor{UserID: "trainer-1", Role: models.RoleTrainer})

	h := NewRequestHandler(svc)
	err := h.UpdateRequest(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestUpdateRequest_Accept_CompanyConfirms(t *testing.T) {
	svc := &mockNegotiationService{
		acceptFn: func(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error) {
			return &models.TrainingRequest{
				ID:         requestID,
				TrainingID: 1,
				TrainerID:  2,
				Status:     models.StatusAccepted,
				Training:   &models.Training{DailyRate: 850},
			}, nil
		},
	}

	c, rec := newPatchContext(t, `{"action":"accept"}`, "1",
		models.Actor{UserID: "company-1", Role: models.RoleCompany})

	h := NewRequestHandler(svc)
	assert.NoError(t, h.UpdateRequest(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.RequestResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusAccepted, resp.Status)
	if assert.NotNil(t, resp.AgreedRate) {
		assert.Equal(t, 850.0, *resp.AgreedRate)
	}
}

func TestUpdateRequest_Decline_NotParty(t *testing.T) {
	svc := &mockNegotiationService{
		declineFn: func(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error) {
			return nil, service.ErrNotParty
		},
	}

	c, _ := newPatchContext(t, `{"action":"decline"}`, "1",
		models.Actor{UserID: "company-2", Role: models.RoleCompany})

	h := NewRequestHandler(svc)
	err := h.UpdateRequest(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestUpdateRequest_Book_NotAccepted(t *testing.T) {
	svc := &mockNegotiationService{
		bookFn: func(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error) {
			return nil, service.ErrNotAccepted
		},
	}

	c, _ := newPatchContext(t, `{"action":"book"}`, "1",
		models.Actor{UserID: "company-1", Role: models.RoleCompany})

	h := NewRequestHandler(svc)
	err := h.UpdateRequest(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestUpdateRequest_UnknownAction(t *testing.T) {
	c, _ := newPatchContext(t, `{"action":"escalate"}`, "1",
		models.Actor{UserID: "company-1", Role: models.RoleCompany})

	h := NewRequestHandler(&mockNegotiationService{})
	err := h.UpdateRequest(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestUpdateRequest_InvalidID(t *testing.T) {
	c, _ := newPatchContext(t, `{"action":"accept"}`, "abc",
		models.Actor{UserID: "company-1", Role: models.RoleCompany})

	h := NewRequestHandler(&mockNegotiationService{})
	err := h.UpdateRequest(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateRequest_Company_MissingTrainerID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trainings/1/requests", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("actor", models.Actor{UserID: "company-1", Role: models.RoleCompany})

	h := NewRequestHandler(&mockNegotiationService{})
	err := h.CreateRequest(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateRequest_Duplicate(t *testing.T) {
	svc := &mockNegotiationService{
		createFn: func(ctx context.Context, actor models.Actor, trainingID, trainerID uint) (*models.TrainingRequest, error) {
			return nil, service.ErrDuplicateRequest
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trainings/1/requests", strings.NewReader(`{"trainer_id":2}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("actor", models.Actor{UserID: "company-1", Role: models.RoleCompany})

	h := NewRequestHandler(svc)
	err := h.CreateRequest(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestGetRequest_NotFound(t *testing.T) {
	svc := &mockNegotiationService{
		getFn: func(ctx context.Context, actor models.Actor, id uint) (*models.TrainingRequest, error) {
			return nil, service.ErrRequestNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests/999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")
	c.Set("actor", models.Actor{UserID: "trainer-1", Role: models.RoleTrainer})

	h := NewRequestHandler(svc)
	err := h.GetRequest(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
