package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretariat/api/internal/models"
	"secretariat/api/internal/repository"
	"secretariat/api/internal/validate"
)

type fakeCompanies struct {
	byID   map[string]models.Company
	getErr error
}

var _ CompanyStore = (*fakeCompanies)(nil)

func newFakeCompanies(companies ...models.Company) *fakeCompanies {
	f := &fakeCompanies{byID: map[string]models.Company{}}
	for _, c := range companies {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCompanies) Create(_ context.Context, company models.Company) error {
	f.byID[company.ID] = company
	return nil
}

func (f *fakeCompanies) GetByID(_ context.Context, id string) (models.Company, error) {
	if f.getErr != nil {
		return models.Company{}, f.getErr
	}
	c, ok := f.byID[id]
	if !ok {
		return models.Company{}, repository.ErrCompanyNotFound
	}
	return c, nil
}

func (f *fakeCompanies) Update(_ context.Context, company models.Company) error {
	if _, ok := f.byID[company.ID]; !ok {
		return repository.ErrCompanyNotFound
	}
	f.byID[company.ID] = company
	return nil
}

func (f *fakeCompanies) SetConfirmed(_ context.Context, id string, confirmed bool) error {
	c, ok := f.byID[id]
	if !ok {
		return repository.ErrCompanyNotFound
	}
	c.Confirmed = confirmed
	f.byID[id] = c
	return nil
}

type fakeAccounts struct {
	pending  []models.User
	statuses map[string]models.AccountStatus
}

var _ AccountStore = (*fakeAccounts)(nil)

func (f *fakeAccounts) ListPendingByCompany(_ context.Context, _ string) ([]models.User, error) {
	return f.pending, nil
}

func (f *fakeAccounts) UpdateAccountStatus(_ context.Context, id string, status models.AccountStatus) error {
	if f.statuses == nil {
		f.statuses = map[string]models.AccountStatus{}
	}
	f.statuses[id] = status
	return nil
}

type fakeNotifications struct {
	created []models.Notification
}

var _ NotificationStore = (*fakeNotifications)(nil)

func (f *fakeNotifications) Create(_ context.Context, n models.Notification) error {
	f.created = append(f.created, n)
	return nil
}

type fakeMarker struct {
	seen map[string]bool
}

var _ Marker = (*fakeMarker)(nil)

func (f *fakeMarker) Once(_ context.Context, key string) (bool, error) {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

type fakeFlags struct {
	values map[string]bool
	getErr error
	sets   int
}

var _ FlagCache = (*fakeFlags)(nil)

func (f *fakeFlags) GetFlag(_ context.Context, key string) (bool, bool, error) {
	if f.getErr != nil {
		return false, false, f.getErr
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeFlags) SetFlag(_ context.Context, key string, value bool, _ time.Duration) error {
	if f.values == nil {
		f.values = map[string]bool{}
	}
	f.values[key] = value
	f.sets++
	return nil
}

func newCompanyService(companies *fakeCompanies, accounts *fakeAccounts, notifications *fakeNotifications, marker *fakeMarker, flags *fakeFlags) *CompanyService {
	return NewCompanyService(companies, accounts, notifications, marker, flags, time.Minute, zerolog.Nop())
}

func TestCompanyCreateStartsUnconfirmed(t *testing.T) {
	companies := newFakeCompanies()
	s := newCompanyService(companies, &fakeAccounts{}, &fakeNotifications{}, &fakeMarker{}, &fakeFlags{})

	company, err := s.Create(context.Background(), CompanyInput{
		Name:      "Acme BVBA",
		BCENumber: "0202239951",
	})
	require.NoError(t, err)
	assert.False(t, company.Confirmed)
}

func TestCompanyCreateValidatesIdentifiers(t *testing.T) {
	s := newCompanyService(newFakeCompanies(), &fakeAccounts{}, &fakeNotifications{}, &fakeMarker{}, &fakeFlags{})

	_, err := s.Create(context.Background(), CompanyInput{Name: "Acme", BCENumber: "0202239950"})
	assert.ErrorIs(t, err, validate.ErrInvalidBCENumber)

	_, err = s.Create(context.Background(), CompanyInput{
		Name: "Acme", BCENumber: "0202239951", ONSSNumber: "12",
	})
	assert.ErrorIs(t, err, validate.ErrInvalidONSSNumber)

	_, err = s.Create(context.Background(), CompanyInput{
		Name: "Acme", BCENumber: "0202239951", VATNumber: "BE0202239950",
	})
	assert.ErrorIs(t, err, validate.ErrInvalidVATNumber)
}

func TestConfirmActivatesPendingAccounts(t *testing.T) {
	companies := newFakeCompanies(models.Company{ID: "c1"})
	accounts := &fakeAccounts{pending: []models.User{{ID: "u1"}, {ID: "u2"}}}
	notifications := &fakeNotifications{}
	s := newCompanyService(companies, accounts, notifications, &fakeMarker{}, &fakeFlags{})

	require.NoError(t, s.Confirm(context.Background(), "c1"))

	company, _ := companies.GetByID(context.Background(), "c1")
	assert.True(t, company.Confirmed)
	assert.Equal(t, models.AccountStatusActive, accounts.statuses["u1"])
	assert.Equal(t, models.AccountStatusActive, accounts.statuses["u2"])

	require.Len(t, notifications.created, 2)
	assert.Equal(t, models.NotificationTypeAccount, notifications.created[0].Type)
	assert.Equal(t, "Your account is active", notifications.created[0].Title)
}

func TestConfirmSendsActivationNoticeOnce(t *testing.T) {
	companies := newFakeCompanies(models.Company{ID: "c1"})
	accounts := &fakeAccounts{pending: []models.User{{ID: "u1"}}}
	notifications := &fakeNotifications{}
	s := newCompanyService(companies, accounts, notifications, &fakeMarker{}, &fakeFlags{})

	require.NoError(t, s.Confirm(context.Background(), "c1"))
	require.NoError(t, s.Confirm(context.Background(), "c1"))

	assert.Len(t, notifications.created, 1, "repeat confirmation never duplicates the notice")
}

func TestIsConfirmedPrefersCache(t *testing.T) {
	companies := newFakeCompanies()
	companies.getErr = errors.New("db down")
	flags := &fakeFlags{values: map[string]bool{"company_confirmed:c1": true}}
	s := newCompanyService(companies, &fakeAccounts{}, &fakeNotifications{}, &fakeMarker{}, flags)

	assert.True(t, s.IsConfirmed(context.Background(), "c1"), "cache hit avoids the repository")
}

func TestIsConfirmedFailsClosed(t *testing.T) {
	companies := newFakeCompanies()
	companies.getErr = errors.New("db down")
	s := newCompanyService(companies, &fakeAccounts{}, &fakeNotifications{}, &fakeMarker{}, &fakeFlags{})

	assert.False(t, s.IsConfirmed(context.Background(), "c1"))
	assert.False(t, s.IsConfirmed(context.Background(), ""))
}

func TestIsConfirmedCachesLookup(t *testing.T) {
	companies := newFakeCompanies(models.Company{ID: "c1", Confirmed: true})
	flags := &fakeFlags{}
	s := newCompanyService(companies, &fakeAccounts{}, &fakeNotifications{}, &fakeMarker{}, flags)

	assert.True(t, s.IsConfirmed(context.Background(), "c1"))
	assert.Equal(t, 1, flags.sets)

	companies.getErr = errors.New("db down")
	assert.True(t, s.IsConfirmed(context.Background(), "c1"), "second call served from cache")
}
