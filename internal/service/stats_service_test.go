package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretariat/api/internal/models"
)

type fakeDimonaLister struct {
	all    []models.Dimona
	allErr error
}

var _ DimonaLister = (*fakeDimonaLister)(nil)

func (f *fakeDimonaLister) ListAll(_ context.Context) ([]models.Dimona, error) {
	return f.all, f.allErr
}

func (f *fakeDimonaLister) ListByCompany(_ context.Context, companyID string) ([]models.Dimona, error) {
	var out []models.Dimona
	for _, d := range f.all {
		if d.CompanyID == companyID {
			out = append(out, d)
		}
	}
	return out, f.allErr
}

type fakeCollaboratorLister struct {
	all []models.Collaborator
}

var _ CollaboratorLister = (*fakeCollaboratorLister)(nil)

func (f *fakeCollaboratorLister) ListAll(_ context.Context) ([]models.Collaborator, error) {
	return f.all, nil
}

func (f *fakeCollaboratorLister) ListByCompany(_ context.Context, companyID string) ([]models.Collaborator, error) {
	var out []models.Collaborator
	for _, c := range f.all {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeCompanyCounter struct{ n int }

var _ CompanyCounter = (*fakeCompanyCounter)(nil)

func (f *fakeCompanyCounter) Count(_ context.Context) (int, error) { return f.n, nil }

type fakeUnreadCounter struct{ n int }

var _ UnreadCounter = (*fakeUnreadCounter)(nil)

func (f *fakeUnreadCounter) UnreadCount(_ context.Context, _ string) (int, error) {
	return f.n, nil
}

func TestGlobalStatsAreTotalOverEnums(t *testing.T) {
	dimonas := &fakeDimonaLister{all: []models.Dimona{
		{CompanyID: "c1", Type: models.DimonaTypeIn, Status: models.DimonaStatusAccepted},
		{CompanyID: "c1", Type: models.DimonaTypeIn, Status: models.DimonaStatusToSend},
		{CompanyID: "c2", Type: models.DimonaTypeOut, Status: models.DimonaStatusAccepted},
	}}
	collaborators := &fakeCollaboratorLister{all: []models.Collaborator{
		{CompanyID: "c1", Type: models.CollaboratorTypeEmployee},
		{CompanyID: "c2", Type: models.CollaboratorTypeStudent},
	}}
	s := NewStatsService(dimonas, collaborators, &fakeCompanyCounter{n: 2}, &fakeUnreadCounter{n: 5})

	result, err := s.Global(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 2, result.DimonasByStatus[models.DimonaStatusAccepted])
	assert.Equal(t, 1, result.DimonasByStatus[models.DimonaStatusToSend])
	assert.Equal(t, 0, result.DimonasByStatus[models.DimonaStatusRejected], "zero statuses still present")
	assert.Len(t, result.DimonasByStatus, len(models.DimonaStatuses()))
	assert.Len(t, result.DimonasByType, len(models.DimonaTypes()))
	assert.Len(t, result.CollaboratorsByType, len(models.CollaboratorTypes()))
	assert.Equal(t, 2, result.Companies)
	assert.Equal(t, 5, result.UnreadNotifications)
}

func TestGlobalStatsFailWhenAnyReadFails(t *testing.T) {
	dimonas := &fakeDimonaLister{allErr: errors.New("boom")}
	s := NewStatsService(dimonas, &fakeCollaboratorLister{}, &fakeCompanyCounter{}, &fakeUnreadCounter{})

	_, err := s.Global(context.Background(), "u1")
	assert.Error(t, err, "aggregation is all or nothing")
}

func TestForCompanyScopesToOneCompany(t *testing.T) {
	dimonas := &fakeDimonaLister{all: []models.Dimona{
		{CompanyID: "c1", Type: models.DimonaTypeIn, Status: models.DimonaStatusAccepted},
		{CompanyID: "c2", Type: models.DimonaTypeOut, Status: models.DimonaStatusRejected},
	}}
	collaborators := &fakeCollaboratorLister{all: []models.Collaborator{
		{CompanyID: "c1", Type: models.CollaboratorTypeEmployee},
		{CompanyID: "c1", Type: models.CollaboratorTypeFlexi},
		{CompanyID: "c2", Type: models.CollaboratorTypeWorker},
	}}
	s := NewStatsService(dimonas, collaborators, &fakeCompanyCounter{}, &fakeUnreadCounter{})

	result, err := s.ForCompany(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.DimonasByStatus[models.DimonaStatusAccepted])
	assert.Equal(t, 0, result.DimonasByStatus[models.DimonaStatusRejected])
	assert.Equal(t, 2, result.Collaborators)
	assert.Equal(t, 1, result.CollaboratorsByType[models.CollaboratorTypeEmployee])
	assert.Equal(t, 0, result.CollaboratorsByType[models.CollaboratorTypeWorker])
}
