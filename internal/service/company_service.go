package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"secretariat/api/internal/ids"
	"secretariat/api/internal/models"
	"secretariat/api/internal/validate"
)

// CompanyStore is the slice of the company repository this service needs.
type CompanyStore interface {
	Create(ctx context.Context, company models.Company) error
	GetByID(ctx context.Context, id string) (models.Company, error)
	Update(ctx context.Context, company models.Company) error
	SetConfirmed(ctx context.Context, id string, confirmed bool) error
}

// AccountStore flips pending accounts once their company is confirmed.
type AccountStore interface {
	ListPendingByCompany(ctx context.Context, companyID string) ([]models.User, error)
	UpdateAccountStatus(ctx context.Context, id string, status models.AccountStatus) error
}

// NotificationStore delivers the activation notice.
type NotificationStore interface {
	Create(ctx context.Context, notification models.Notification) error
}

// Marker guards one-shot events; Once reports whether the caller owns the
// event.
type Marker interface {
	Once(ctx context.Context, key string) (bool, error)
}

// FlagCache caches the confirmation flag between navigations.
type FlagCache interface {
	GetFlag(ctx context.Context, key string) (value bool, ok bool, err error)
	SetFlag(ctx context.Context, key string, value bool, ttl time.Duration) error
}

type CompanyService struct {
	companies     CompanyStore
	accounts      AccountStore
	notifications NotificationStore
	marker        Marker
	flags         FlagCache
	flagTTL       time.Duration
	log           zerolog.Logger
}

func NewCompanyService(
	companies CompanyStore,
	accounts AccountStore,
	notifications NotificationStore,
	marker Marker,
	flags FlagCache,
	flagTTL time.Duration,
	log zerolog.Logger,
) *CompanyService {
	return &CompanyService{
		companies:     companies,
		accounts:      accounts,
		notifications: notifications,
		marker:        marker,
		flags:         flags,
		flagTTL:       flagTTL,
		log:           log,
	}
}

type CompanyInput struct {
	Name       string
	BCENumber  string
	ONSSNumber string
	VATNumber  string
	Address    string
	City       string
	PostalCode string
}

func (in CompanyInput) validate() error {
	if err := validate.BCENumber(in.BCENumber); err != nil {
		return err
	}
	if in.ONSSNumber != "" {
		if err := validate.ONSSNumber(in.ONSSNumber); err != nil {
			return err
		}
	}
	if in.VATNumber != "" {
		if err := validate.VATNumber(in.VATNumber); err != nil {
			return err
		}
	}
	return nil
}

// Create registers a company. New companies start unconfirmed; their users
// stay restricted until the secretariat confirms the record.
func (s *CompanyService) Create(ctx context.Context, input CompanyInput) (models.Company, error) {
	if err := input.validate(); err != nil {
		return models.Company{}, err
	}

	company := models.Company{
		ID:         ids.New(),
		Name:       input.Name,
		BCENumber:  input.BCENumber,
		ONSSNumber: input.ONSSNumber,
		VATNumber:  input.VATNumber,
		Address:    input.Address,
		City:       input.City,
		PostalCode: input.PostalCode,
		Confirmed:  false,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return models.Company{}, err
	}
	return s.companies.GetByID(ctx, company.ID)
}

func (s *CompanyService) Update(ctx context.Context, id string, input CompanyInput) (models.Company, error) {
	if err := input.validate(); err != nil {
		return models.Company{}, err
	}

	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return models.Company{}, err
	}

	company.Name = input.Name
	company.BCENumber = input.BCENumber
	company.ONSSNumber = input.ONSSNumber
	company.VATNumber = input.VATNumber
	company.Address = input.Address
	company.City = input.City
	company.PostalCode = input.PostalCode

	if err := s.companies.Update(ctx, company); err != nil {
		return models.Company{}, err
	}
	return s.companies.GetByID(ctx, id)
}

// Confirm marks the company record as verified, activates its pending
// accounts, and sends each of them a single activation notice. The notice is
// one-shot: confirming twice never duplicates it.
func (s *CompanyService) Confirm(ctx context.Context, companyID string) error {
	if err := s.companies.SetConfirmed(ctx, companyID, true); err != nil {
		return err
	}

	if err := s.flags.SetFlag(ctx, confirmationKey(companyID), true, s.flagTTL); err != nil {
		s.log.Warn().Err(err).Str("company_id", companyID).Msg("cache confirmation flag failed")
	}

	pending, err := s.accounts.ListPendingByCompany(ctx, companyID)
	if err != nil {
		return err
	}

	for _, user := range pending {
		if err := s.accounts.UpdateAccountStatus(ctx, user.ID, models.AccountStatusActive); err != nil {
			s.log.Error().Err(err).Str("user_id", user.ID).Msg("activate account failed")
			continue
		}

		created, err := s.marker.Once(ctx, activationNoticeKey(user.ID))
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("activation marker failed")
			continue
		}
		if !created {
			continue
		}

		notice := models.Notification{
			ID:          ids.New(),
			RecipientID: user.ID,
			Type:        models.NotificationTypeAccount,
			Title:       "Your account is active",
			Message:     "Your company record has been confirmed. You now have full access to the dashboard.",
		}
		if err := s.notifications.Create(ctx, notice); err != nil {
			s.log.Error().Err(err).Str("user_id", user.ID).Msg("activation notice failed")
		}
	}

	return nil
}

// IsConfirmed resolves the confirmation flag for the pending-account guard.
// Results are cached briefly; any failure to determine the flag counts as
// not confirmed, so the restriction errs toward applying.
func (s *CompanyService) IsConfirmed(ctx context.Context, companyID string) bool {
	if companyID == "" {
		return false
	}

	key := confirmationKey(companyID)
	if value, ok, err := s.flags.GetFlag(ctx, key); err == nil && ok {
		return value
	}

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		s.log.Warn().Err(err).Str("company_id", companyID).Msg("confirmation lookup failed")
		return false
	}

	if err := s.flags.SetFlag(ctx, key, company.Confirmed, s.flagTTL); err != nil {
		s.log.Warn().Err(err).Str("company_id", companyID).Msg("cache confirmation flag failed")
	}
	return company.Confirmed
}

func confirmationKey(companyID string) string {
	return "company_confirmed:" + companyID
}

func activationNoticeKey(userID string) string {
	return "activation_notice:" + userID
}
