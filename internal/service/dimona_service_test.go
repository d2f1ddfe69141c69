package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretariat/api/internal/models"
	"secretariat/api/internal/repository"
	"secretariat/api/internal/validate"
)

type fakeDimonas struct {
	byID map[string]models.Dimona

	updateCalls []updateCall
	updateErr   error
}

type updateCall struct {
	id   string
	from models.DimonaStatus
	to   models.DimonaStatus
}

var _ DimonaStore = (*fakeDimonas)(nil)

func newFakeDimonas(dimonas ...models.Dimona) *fakeDimonas {
	f := &fakeDimonas{byID: map[string]models.Dimona{}}
	for _, d := range dimonas {
		f.byID[d.ID] = d
	}
	return f
}

func (f *fakeDimonas) Create(_ context.Context, dimona models.Dimona) error {
	f.byID[dimona.ID] = dimona
	return nil
}

func (f *fakeDimonas) GetByID(_ context.Context, id string) (models.Dimona, error) {
	d, ok := f.byID[id]
	if !ok {
		return models.Dimona{}, repository.ErrDimonaNotFound
	}
	return d, nil
}

func (f *fakeDimonas) UpdateStatus(_ context.Context, id string, from, to models.DimonaStatus, reason string) error {
	f.updateCalls = append(f.updateCalls, updateCall{id: id, from: from, to: to})
	if f.updateErr != nil {
		return f.updateErr
	}
	d, ok := f.byID[id]
	if !ok || d.Status != from {
		return repository.ErrDimonaNotFound
	}
	d.Status = to
	d.StatusReason = reason
	f.byID[id] = d
	return nil
}

func (f *fakeDimonas) SetONSSReference(_ context.Context, id string, reference string) error {
	d, ok := f.byID[id]
	if !ok {
		return repository.ErrDimonaNotFound
	}
	d.ONSSReference = reference
	f.byID[id] = d
	return nil
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to models.DimonaStatus }{
		{models.DimonaStatusToConfirm, models.DimonaStatusToSend},
		{models.DimonaStatusToSend, models.DimonaStatusInProgress},
		{models.DimonaStatusInProgress, models.DimonaStatusAccepted},
		{models.DimonaStatusInProgress, models.DimonaStatusRejected},
		{models.DimonaStatusRejected, models.DimonaStatusToSend},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to models.DimonaStatus }{
		{models.DimonaStatusToConfirm, models.DimonaStatusInProgress},
		{models.DimonaStatusToConfirm, models.DimonaStatusAccepted},
		{models.DimonaStatusToSend, models.DimonaStatusAccepted},
		{models.DimonaStatusAccepted, models.DimonaStatusToSend},
		{models.DimonaStatusAccepted, models.DimonaStatusRejected},
		{models.DimonaStatusRejected, models.DimonaStatusAccepted},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestDimonaCreateStartsToConfirm(t *testing.T) {
	dimonas := newFakeDimonas()
	s := NewDimonaService(dimonas, zerolog.Nop())

	created, err := s.Create(context.Background(), CreateDimonaInput{
		CompanyID:      "c1",
		CollaboratorID: "col1",
		Type:           models.DimonaTypeIn,
		PeriodStart:    time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.DimonaStatusToConfirm, created.Status)
	assert.NotEmpty(t, created.ID)
}

func TestDimonaCreateRejectsBadInput(t *testing.T) {
	s := NewDimonaService(newFakeDimonas(), zerolog.Nop())

	_, err := s.Create(context.Background(), CreateDimonaInput{
		CompanyID: "c1", CollaboratorID: "col1", Type: "BOGUS",
	})
	assert.Error(t, err)

	_, err = s.Create(context.Background(), CreateDimonaInput{
		CollaboratorID: "col1", Type: models.DimonaTypeIn,
	})
	assert.Error(t, err, "company required")

	_, err = s.Create(context.Background(), CreateDimonaInput{
		CompanyID: "c1", CollaboratorID: "col1", Type: models.DimonaTypeIn,
		NationalNumber: "85011712300",
	})
	assert.ErrorIs(t, err, validate.ErrInvalidNationalNumber)
}

func TestDimonaWorkflowHappyPath(t *testing.T) {
	dimonas := newFakeDimonas(models.Dimona{ID: "d1", Status: models.DimonaStatusToConfirm})
	s := NewDimonaService(dimonas, zerolog.Nop())
	ctx := context.Background()

	d, err := s.Confirm(ctx, "d1", "")
	require.NoError(t, err)
	assert.Equal(t, models.DimonaStatusToSend, d.Status)

	d, err = s.SendToONSS(ctx, "d1", "")
	require.NoError(t, err)
	assert.Equal(t, models.DimonaStatusInProgress, d.Status)

	d, err = s.MarkAccepted(ctx, "d1", "REF-42", "")
	require.NoError(t, err)
	assert.Equal(t, models.DimonaStatusAccepted, d.Status)
	assert.Equal(t, "REF-42", d.ONSSReference)
}

func TestDimonaRejectedCanBeResent(t *testing.T) {
	dimonas := newFakeDimonas(models.Dimona{ID: "d1", Status: models.DimonaStatusInProgress})
	s := NewDimonaService(dimonas, zerolog.Nop())
	ctx := context.Background()

	d, err := s.MarkRejected(ctx, "d1", "missing period end")
	require.NoError(t, err)
	assert.Equal(t, models.DimonaStatusRejected, d.Status)
	assert.Equal(t, "missing period end", d.StatusReason)

	d, err = s.Resend(ctx, "d1", "corrected")
	require.NoError(t, err)
	assert.Equal(t, models.DimonaStatusToSend, d.Status)
}

func TestDimonaIllegalTransitionLeavesStateUntouched(t *testing.T) {
	dimonas := newFakeDimonas(models.Dimona{ID: "d1", Status: models.DimonaStatusAccepted})
	s := NewDimonaService(dimonas, zerolog.Nop())

	_, err := s.Resend(context.Background(), "d1", "")
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Empty(t, dimonas.updateCalls, "illegal moves never reach the store")

	d, _ := dimonas.GetByID(context.Background(), "d1")
	assert.Equal(t, models.DimonaStatusAccepted, d.Status)
}

func TestDimonaTransitionUsesCompareAndSet(t *testing.T) {
	dimonas := newFakeDimonas(models.Dimona{ID: "d1", Status: models.DimonaStatusToConfirm})
	s := NewDimonaService(dimonas, zerolog.Nop())

	_, err := s.Confirm(context.Background(), "d1", "")
	require.NoError(t, err)

	require.Len(t, dimonas.updateCalls, 1)
	assert.Equal(t, models.DimonaStatusToConfirm, dimonas.updateCalls[0].from,
		"update is conditioned on the status that was read")
}
