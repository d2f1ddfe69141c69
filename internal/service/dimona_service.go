package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"secretariat/api/internal/ids"
	"secretariat/api/internal/models"
	"secretariat/api/internal/validate"
)

var ErrIllegalTransition = errors.New("illegal dimona status transition")

// dimonaTransitions is the authoritative transition table for declarations.
// A rejected declaration may be corrected and sent again; that is the only
// backward edge.
var dimonaTransitions = map[models.DimonaStatus][]models.DimonaStatus{
	models.DimonaStatusToConfirm:  {models.DimonaStatusToSend},
	models.DimonaStatusToSend:     {models.DimonaStatusInProgress},
	models.DimonaStatusInProgress: {models.DimonaStatusAccepted, models.DimonaStatusRejected},
	models.DimonaStatusRejected:   {models.DimonaStatusToSend},
	models.DimonaStatusAccepted:   {},
}

// CanTransition reports whether a declaration may move from one status to
// another.
func CanTransition(from, to models.DimonaStatus) bool {
	for _, next := range dimonaTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DimonaStore is the slice of the dimona repository the workflow needs.
type DimonaStore interface {
	Create(ctx context.Context, dimona models.Dimona) error
	GetByID(ctx context.Context, id string) (models.Dimona, error)
	UpdateStatus(ctx context.Context, id string, from, to models.DimonaStatus, reason string) error
	SetONSSReference(ctx context.Context, id string, reference string) error
}

type DimonaService struct {
	dimonas DimonaStore
	log     zerolog.Logger
}

func NewDimonaService(dimonas DimonaStore, log zerolog.Logger) *DimonaService {
	return &DimonaService{
		dimonas: dimonas,
		log:     log,
	}
}

type CreateDimonaInput struct {
	CompanyID      string
	CollaboratorID string
	Type           models.DimonaType
	NationalNumber string
	PeriodStart    time.Time
	PeriodEnd      *time.Time
}

func (s *DimonaService) Create(ctx context.Context, input CreateDimonaInput) (models.Dimona, error) {
	if input.CompanyID == "" || input.CollaboratorID == "" {
		return models.Dimona{}, fmt.Errorf("company and collaborator required")
	}
	switch input.Type {
	case models.DimonaTypeIn, models.DimonaTypeOut, models.DimonaTypeUpdate:
	default:
		return models.Dimona{}, fmt.Errorf("unknown dimona type %q", input.Type)
	}
	if input.NationalNumber != "" {
		if err := validate.NationalNumber(input.NationalNumber); err != nil {
			return models.Dimona{}, err
		}
	}

	dimona := models.Dimona{
		ID:             ids.New(),
		CompanyID:      input.CompanyID,
		CollaboratorID: input.CollaboratorID,
		Type:           input.Type,
		Status:         models.DimonaStatusToConfirm,
		PeriodStart:    input.PeriodStart,
		PeriodEnd:      input.PeriodEnd,
	}
	if err := s.dimonas.Create(ctx, dimona); err != nil {
		return models.Dimona{}, err
	}
	return s.dimonas.GetByID(ctx, dimona.ID)
}

// Confirm moves a fresh declaration into the to-send queue.
func (s *DimonaService) Confirm(ctx context.Context, id, reason string) (models.Dimona, error) {
	return s.transition(ctx, id, models.DimonaStatusToSend, reason)
}

// SendToONSS hands the declaration to the ONSS and marks it in progress.
func (s *DimonaService) SendToONSS(ctx context.Context, id, reason string) (models.Dimona, error) {
	return s.transition(ctx, id, models.DimonaStatusInProgress, reason)
}

// MarkAccepted records the ONSS acceptance and its reference.
func (s *DimonaService) MarkAccepted(ctx context.Context, id, reference, reason string) (models.Dimona, error) {
	dimona, err := s.transition(ctx, id, models.DimonaStatusAccepted, reason)
	if err != nil {
		return models.Dimona{}, err
	}
	if reference != "" {
		if err := s.dimonas.SetONSSReference(ctx, id, reference); err != nil {
			return models.Dimona{}, err
		}
		return s.dimonas.GetByID(ctx, id)
	}
	return dimona, nil
}

// MarkRejected records an ONSS rejection; the declaration can be resent.
func (s *DimonaService) MarkRejected(ctx context.Context, id, reason string) (models.Dimona, error) {
	return s.transition(ctx, id, models.DimonaStatusRejected, reason)
}

// Resend puts a rejected declaration back in the to-send queue.
func (s *DimonaService) Resend(ctx context.Context, id, reason string) (models.Dimona, error) {
	return s.transition(ctx, id, models.DimonaStatusToSend, reason)
}

// transition validates the move against the transition table before touching
// the row, then re-reads it so callers always see the stored state. On any
// failure the prior state is left untouched; there are no retries.
func (s *DimonaService) transition(ctx context.Context, id string, to models.DimonaStatus, reason string) (models.Dimona, error) {
	dimona, err := s.dimonas.GetByID(ctx, id)
	if err != nil {
		return models.Dimona{}, err
	}

	if !CanTransition(dimona.Status, to) {
		return models.Dimona{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, dimona.Status, to)
	}

	if err := s.dimonas.UpdateStatus(ctx, id, dimona.Status, to, reason); err != nil {
		return models.Dimona{}, err
	}

	s.log.Info().
		Str("dimona_id", id).
		Str("from", string(dimona.Status)).
		Str("to", string(to)).
		Msg("dimona status changed")

	return s.dimonas.GetByID(ctx, id)
}
