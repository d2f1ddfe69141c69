package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretariat/api/internal/config"
	"secretariat/api/internal/models"
	"secretariat/api/internal/repository"
	"secretariat/api/internal/security"
)

type fakeUsers struct {
	byEmail map[string]models.User
}

var _ UserStore = (*fakeUsers)(nil)

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{byEmail: map[string]models.User{}}
	for _, u := range users {
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, user models.User) error {
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

type fakeSessions struct {
	byID map[string]models.Session
}

var _ SessionStore = (*fakeSessions)(nil)

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byID: map[string]models.Session{}}
}

func (f *fakeSessions) Create(_ context.Context, session models.Session) error {
	f.byID[session.ID] = session
	return nil
}

func (f *fakeSessions) CountByUser(_ context.Context, userID string) (int, error) {
	count := 0
	for _, s := range f.byID {
		if s.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeSessions) DeleteOldestSessions(_ context.Context, _ string, _ int) error {
	return nil
}

func (f *fakeSessions) FindByRefreshHash(_ context.Context, userID string, refreshHash []byte) (models.Session, error) {
	for _, s := range f.byID {
		if s.UserID == userID && string(s.RefreshTokenHash) == string(refreshHash) {
			return s, nil
		}
	}
	return models.Session{}, repository.ErrSessionNotFound
}

func (f *fakeSessions) DeleteByID(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeSessions) DeleteByDevice(_ context.Context, userID string, deviceID string) error {
	for id, s := range f.byID {
		if s.UserID == userID && s.DeviceID == deviceID {
			delete(f.byID, id)
		}
	}
	return nil
}

func authTestConfig() *config.AppConfig {
	return &config.AppConfig{
		Security: config.SecurityConfig{
			JWTAccessSecret: "test-secret",
			JWTAccessTTL:    time.Minute,
			JWTRefreshTTL:   time.Hour,
			MaxSessions:     5,
		},
	}
}

func activeUser(t *testing.T, email, password string) models.User {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	return models.User{
		ID:            "u-" + email,
		Email:         email,
		PasswordHash:  hash,
		Roles:         []models.Role{models.RoleCompany},
		AccountStatus: models.AccountStatusActive,
	}
}

func TestRegisterWithCompanyStartsPending(t *testing.T) {
	users := newFakeUsers()
	s := NewAuthService(users, newFakeSessions(), authTestConfig(), zerolog.Nop())

	companyID := "c1"
	result, err := s.Register(context.Background(), RegisterInput{
		Email:     "owner@acme.be",
		Password:  "secret123",
		CompanyID: &companyID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AccountStatusPending, result.User.AccountStatus)
	assert.True(t, result.User.HasRole(models.RoleCompany))
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
}

func TestRegisterWithoutCompanyIsActive(t *testing.T) {
	s := NewAuthService(newFakeUsers(), newFakeSessions(), authTestConfig(), zerolog.Nop())

	result, err := s.Register(context.Background(), RegisterInput{
		Email:    "solo@acme.be",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AccountStatusActive, result.User.AccountStatus)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := newFakeUsers(activeUser(t, "owner@acme.be", "pw"))
	s := NewAuthService(users, newFakeSessions(), authTestConfig(), zerolog.Nop())

	_, err := s.Register(context.Background(), RegisterInput{
		Email:    "Owner@Acme.BE",
		Password: "secret123",
	})
	assert.Error(t, err, "email comparison is case insensitive")
}

func TestLoginVerifiesPassword(t *testing.T) {
	users := newFakeUsers(activeUser(t, "owner@acme.be", "correct"))
	s := NewAuthService(users, newFakeSessions(), authTestConfig(), zerolog.Nop())

	_, err := s.Login(context.Background(), LoginInput{Email: "owner@acme.be", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	result, err := s.Login(context.Background(), LoginInput{Email: "owner@acme.be", Password: "correct"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.DeviceID)
}

func TestLoginUnknownEmailLooksLikeBadCredentials(t *testing.T) {
	s := NewAuthService(newFakeUsers(), newFakeSessions(), authTestConfig(), zerolog.Nop())

	_, err := s.Login(context.Background(), LoginInput{Email: "nobody@acme.be", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsLockedAndInactive(t *testing.T) {
	locked := activeUser(t, "locked@acme.be", "pw")
	locked.AccountStatus = models.AccountStatusLocked
	inactive := activeUser(t, "inactive@acme.be", "pw")
	inactive.AccountStatus = models.AccountStatusInactive

	users := newFakeUsers(locked, inactive)
	s := NewAuthService(users, newFakeSessions(), authTestConfig(), zerolog.Nop())

	_, err := s.Login(context.Background(), LoginInput{Email: "locked@acme.be", Password: "pw"})
	assert.ErrorIs(t, err, ErrAccountLocked)

	_, err = s.Login(context.Background(), LoginInput{Email: "inactive@acme.be", Password: "pw"})
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestLoginAllowsPendingAccounts(t *testing.T) {
	pending := activeUser(t, "pending@acme.be", "pw")
	pending.AccountStatus = models.AccountStatusPending

	s := NewAuthService(newFakeUsers(pending), newFakeSessions(), authTestConfig(), zerolog.Nop())

	result, err := s.Login(context.Background(), LoginInput{Email: "pending@acme.be", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.AccountStatusPending, result.User.AccountStatus)
}

func TestRefreshRotatesToken(t *testing.T) {
	user := activeUser(t, "owner@acme.be", "pw")
	users := newFakeUsers(user)
	sessions := newFakeSessions()
	s := NewAuthService(users, sessions, authTestConfig(), zerolog.Nop())

	login, err := s.Login(context.Background(), LoginInput{Email: "owner@acme.be", Password: "pw"})
	require.NoError(t, err)

	refreshed, err := s.Refresh(context.Background(), RefreshInput{
		UserID:       user.ID,
		DeviceID:     login.DeviceID,
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old refresh token is gone after rotation.
	_, err = s.Refresh(context.Background(), RefreshInput{
		UserID:       user.ID,
		DeviceID:     login.DeviceID,
		RefreshToken: login.RefreshToken,
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshChecksDeviceBinding(t *testing.T) {
	user := activeUser(t, "owner@acme.be", "pw")
	s := NewAuthService(newFakeUsers(user), newFakeSessions(), authTestConfig(), zerolog.Nop())

	login, err := s.Login(context.Background(), LoginInput{Email: "owner@acme.be", Password: "pw"})
	require.NoError(t, err)

	_, err = s.Refresh(context.Background(), RefreshInput{
		UserID:       user.ID,
		DeviceID:     "other-device",
		RefreshToken: login.RefreshToken,
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
