package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/trainermarkt/backend/internal/models"
	"github.com/trainermarkt/backend/internal/notify"
	"github.com/trainermarkt/backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTrainingNotFound = errors.New("training not found")
	ErrRequestNotFound  = errors.New("request not found")
	ErrTrainerNotFound  = errors.New("trainer not found")
	ErrNotParty         = errors.New("caller is not a party to this request")
	ErrCompanyOnly      = errors.New("only the company can perform this action")
	ErrDuplicateRequest = errors.New("a request for this trainer and training already exists")
	ErrNotPending       = errors.New("request must be pending")
	ErrAlreadyAccepted  = errors.New("trainer already accepted this request")
	ErrPricesLocked     = errors.New("prices are locked once a request is accepted")
	ErrRequestClosed    = errors.New("request is no longer open")
	ErrNotAccepted      = errors.New("request must be accepted before booking")
	ErrTrainingBooked   = errors.New("training already has an accepted trainer")
	ErrInvalidPrice     = errors.New("counter price must be a positive amount")
)

type NegotiationService interface {
	CreateRequest(ctx context.Context, actor models.Actor, trainingID, trainerID uint) (*models.TrainingRequest, error)
	Counter(ctx context.Context, actor models.Actor, requestID uint, price float64) (*models.TrainingRequest, error)
	Accept(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error)
	Decline(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error)
	Book(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error)
	GetRequest(ctx context.Context, actor models.Actor, id uint) (*models.TrainingRequest, error)
	ListByTraining(ctx context.Context, actor models.Actor, trainingID uint, status *models.RequestStatus) ([]models.TrainingRequest, error)
	ListOwn(ctx context.Context, actor models.Actor) ([]models.TrainingRequest, error)
}

type negotiationService struct {
	requestRepo  repository.RequestRepository
	trainingRepo repository.TrainingRepository
	trainerRepo  repository.TrainerRepository
	messageRepo  repository.MessageRepository
	notifier     notify.Notifier
}

func NewNegotiationService(
	requestRepo repository.RequestRepository,
	trainingRepo repository.TrainingRepository,
	trainerRepo repository.TrainerRepository,
	messageRepo repository.MessageRepository,
	notifier notify.Notifier,
) NegotiationService {
	return &negotiationService{
		requestRepo:  requestRepo,
		trainingRepo: trainingRepo,
		trainerRepo:  trainerRepo,
		messageRepo:  messageRepo,
		notifier:     notifier,
	}
}

func (s *negotiationService) CreateRequest(ctx context.Context, actor models.Actor, trainingID, trainerID uint) (*models.TrainingRequest, error) {
	var result *models.TrainingRequest

	err := s.requestRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		training, err := s.trainingRepo.FindByIDForUpdate(ctx, tx, trainingID)
		if err != nil {
			return ErrTrainingNotFound
		}

		var trainer *models.Trainer
		switch actor.Role {
		case models.RoleCompany:
			if training.CompanyID != actor.UserID {
				return ErrNotParty
			}
			trainer, err = s.trainerRepo.FindByID(ctx, trainerID)
			if err != nil {
				return ErrTrainerNotFound
			}
		case models.RoleTrainer:
			// A trainer applies with their own profile.
			trainer, err = s.trainerRepo.FindByUserID(ctx, actor.UserID)
			if err != nil {
				return ErrTrainerNotFound
			}
		default:
			return ErrNotParty
		}

		// A training that already has an accepted or booked trainer is
		// closed to new requests.
		won, err := s.requestRepo.CountWon(ctx, tx, trainingID)
		if err != nil {
			return err
		}
		if won > 0 {
			return ErrTrainingBooked
		}

		_, err = s.requestRepo.FindByPair(ctx, tx, trainingID, trainer.ID)
		if err == nil {
			return ErrDuplicateRequest
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		req := &models.TrainingRequest{
			TrainingID: trainingID,
			TrainerID:  trainer.ID,
			Status:     models.StatusPending,
		}
		if err := s.requestRepo.Create(ctx, tx, req); err != nil {
			return err
		}
		result = req
		return nil
	})

	return result, err
}

func (s *negotiationService) Counter(ctx context.Context, actor models.Actor, requestID uint, price float64) (*models.TrainingRequest, error) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, ErrInvalidPrice
	}

	var result *models.TrainingRequest

	err := s.requestRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, _, err := s.loadForUpdate(ctx, tx, actor, requestID)
		if err != nil {
			return err
		}

		switch req.Status {
		case models.StatusAccepted, models.StatusBooked:
			return ErrPricesLocked
		case models.StatusDeclined:
			return ErrNotPending
		}

		// Only the latest counter from each side is kept.
		switch actor.Role {
		case models.RoleTrainer:
			if req.TrainerAccepted {
				return ErrAlreadyAccepted
			}
			req.CounterPrice = &price
		case models.RoleCompany:
			req.CompanyCounterPrice = &price
		}

		if err := s.requestRepo.Save(ctx, tx, req); err != nil {
			return err
		}
		result = req
		return nil
	})

	return result, err
}

func (s *negotiationService) Accept(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error) {
	var result *models.TrainingRequest
	var notifications []models.Message

	err := s.requestRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, training, err := s.loadForUpdate(ctx, tx, actor, requestID)
		if err != nil {
			return err
		}

		if req.Status != models.StatusPending {
			return ErrNotPending
		}

		switch actor.Role {
		case models.RoleTrainer:
			if req.TrainerAccepted {
				return ErrAlreadyAccepted
			}
			// The trainer's accept alone does not conclude the deal;
			// the company confirms.
			req.TrainerAccepted = true
			if err := s.requestRepo.Save(ctx, tx, req); err != nil {
				return err
			}

		case models.RoleCompany:
			// At most one request per training may win.
			won, err := s.requestRepo.CountWon(ctx, tx, training.ID)
			if err != nil {
				return err
			}
			if won > 0 {
				return ErrTrainingBooked
			}

			// The company may confirm unilaterally, with or without the
			// trainer's formal accept.
			req.Status = models.StatusAccepted
			if err := s.requestRepo.Save(ctx, tx, req); err != nil {
				return err
			}

			notifications, err = s.declineSiblings(ctx, tx, training, req)
			if err != nil {
				return err
			}

			accepted, err := s.createMessage(ctx, tx, req.TrainerID, req.ID, models.MessageRequestAccepted,
				fmt.Sprintf("Your request for %q was accepted.", training.Title))
			if err != nil {
				return err
			}
			notifications = append(notifications, *accepted)
		}

		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(notifications)
	return result, nil
}

func (s *negotiationService) Decline(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error) {
	var result *models.TrainingRequest
	var notifications []models.Message

	err := s.requestRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, training, err := s.loadForUpdate(ctx, tx, actor, requestID)
		if err != nil {
			return err
		}

		// Re-declining is a no-op, not an error.
		if req.Status == models.StatusDeclined {
			result = req
			return nil
		}
		if req.Status != models.StatusPending {
			return ErrRequestClosed
		}

		req.Status = models.StatusDeclined
		if err := s.requestRepo.Save(ctx, tx, req); err != nil {
			return err
		}

		if actor.Role == models.RoleCompany {
			declined, err := s.createMessage(ctx, tx, req.TrainerID, req.ID, models.MessageRequestDeclined,
				fmt.Sprintf("Your request for %q was declined.", training.Title))
			if err != nil {
				return err
			}
			notifications = append(notifications, *declined)
		}

		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(notifications)
	return result, nil
}

func (s *negotiationService) Book(ctx context.Context, actor models.Actor, requestID uint) (*models.TrainingRequest, error) {
	var result *models.TrainingRequest
	var notifications []models.Message

	err := s.requestRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, training, err := s.loadForUpdate(ctx, tx, actor, requestID)
		if err != nil {
			return err
		}

		if actor.Role != models.RoleCompany {
			return ErrCompanyOnly
		}
		if req.Status != models.StatusAccepted {
			return ErrNotAccepted
		}

		req.Status = models.StatusBooked
		if err := s.requestRepo.Save(ctx, tx, req); err != nil {
			return err
		}

		booked, err := s.createMessage(ctx, tx, req.TrainerID, req.ID, models.MessageRequestBooked,
			fmt.Sprintf("Your engagement for %q is booked.", training.Title))
		if err != nil {
			return err
		}
		notifications = append(notifications, *booked)

		result = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(notifications)
	return result, nil
}

func (s *negotiationService) GetRequest(ctx context.Context, actor models.Actor, id uint) (*models.TrainingRequest, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrRequestNotFound
	}

	training := req.Training
	if training == nil {
		training, err = s.trainingRepo.FindByID(ctx, req.TrainingID)
		if err != nil {
			return nil, ErrTrainingNotFound
		}
	}
	if err := s.authorize(ctx, actor, training, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *negotiationService) ListByTraining(ctx context.Context, actor models.Actor, trainingID uint, status *models.RequestStatus) ([]models.TrainingRequest, error) {
	training, err := s.trainingRepo.FindByID(ctx, trainingID)
	if err != nil {
		return nil, ErrTrainingNotFound
	}
	if actor.Role != models.RoleCompany || training.CompanyID != actor.UserID {
		return nil, ErrNotParty
	}
	return s.requestRepo.FindByTrainingID(ctx, trainingID, status)
}

func (s *negotiationService) ListOwn(ctx context.Context, actor models.Actor) ([]models.TrainingRequest, error) {
	if actor.Role != models.RoleTrainer {
		return nil, ErrNotParty
	}
	trainer, err := s.trainerRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, ErrTrainerNotFound
	}
	return s.requestRepo.FindByTrainerID(ctx, trainer.ID)
}

// loadForUpdate locks the parent training row, re-reads the request under
// that lock and verifies the actor is a party to it. Every transition goes
// through here, so competing transitions for one training serialize.
func (s *negotiationService) loadForUpdate(ctx context.Context, tx *gorm.DB, actor models.Actor, requestID uint) (*models.TrainingRequest, *models.Training, error) {
	req, err := s.requestRepo.FindByIDTx(ctx, tx, requestID)
	if err != nil {
		return nil, nil, ErrRequestNotFound
	}

	training, err := s.trainingRepo.FindByIDForUpdate(ctx, tx, req.TrainingID)
	if err != nil {
		return nil, nil, ErrTrainingNotFound
	}

	// Re-read now that the lock is held; a competing transition may have
	// committed between the first read and the lock.
	req, err = s.requestRepo.FindByIDTx(ctx, tx, requestID)
	if err != nil {
		return nil, nil, ErrRequestNotFound
	}

	if err := s.authorize(ctx, actor, training, req); err != nil {
		return nil, nil, err
	}
	return req, training, nil
}

func (s *negotiationService) authorize(ctx context.Context, actor models.Actor, training *models.Training, req *models.TrainingRequest) error {
	switch actor.Role {
	case models.RoleCompany:
		if training.CompanyID != actor.UserID {
			return ErrNotParty
		}
	case models.RoleTrainer:
		trainer, err := s.trainerRepo.FindByUserID(ctx, actor.UserID)
		if err != nil || trainer.ID != req.TrainerID {
			return ErrNotParty
		}
	default:
		return ErrNotParty
	}
	return nil
}

// declineSiblings force-declines every other pending request for the same
// training and writes one notification per declined trainer.
func (s *negotiationService) declineSiblings(ctx context.Context, tx *gorm.DB, training *models.Training, accepted *models.TrainingRequest) ([]models.Message, error) {
	siblings, err := s.requestRepo.FindPendingSiblings(ctx, tx, training.ID, accepted.ID)
	if err != nil {
		return nil, err
	}

	var msgs []models.Message
	for _, sibling := range siblings {
		if err := s.requestRepo.UpdateStatus(ctx, tx, sibling.ID, models.StatusDeclined); err != nil {
			return nil, err
		}
		msg, err := s.createMessage(ctx, tx, sibling.TrainerID, sibling.ID, models.MessageRequestDeclined,
			fmt.Sprintf("Your request for %q was declined: another trainer was booked.", training.Title))
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *msg)
	}
	return msgs, nil
}

func (s *negotiationService) createMessage(ctx context.Context, tx *gorm.DB, trainerID, requestID uint, kind models.MessageKind, body string) (*models.Message, error) {
	msg := &models.Message{
		PublicID:  uuid.NewString(),
		TrainerID: trainerID,
		RequestID: requestID,
		Kind:      kind,
		Body:      body,
	}
	if err := s.messageRepo.Create(ctx, tx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
