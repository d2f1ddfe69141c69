package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"secretariat/api/internal/models"
	"secretariat/api/internal/stats"
)

// DimonaLister and friends are the read-only slices of the repositories the
// dashboard aggregates over.
type DimonaLister interface {
	ListAll(ctx context.Context) ([]models.Dimona, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.Dimona, error)
}

type CollaboratorLister interface {
	ListAll(ctx context.Context) ([]models.Collaborator, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.Collaborator, error)
}

type CompanyCounter interface {
	Count(ctx context.Context) (int, error)
}

type UnreadCounter interface {
	UnreadCount(ctx context.Context, recipientID string) (int, error)
}

// DashboardStats is total over every enum domain it reports on: each status
// and type appears as a key even when its count is zero.
type DashboardStats struct {
	DimonasByStatus     map[models.DimonaStatus]int     `json:"dimonasByStatus"`
	DimonasByType       map[models.DimonaType]int       `json:"dimonasByType"`
	CollaboratorsByType map[models.CollaboratorType]int `json:"collaboratorsByType"`
	Companies           int                             `json:"companies"`
	UnreadNotifications int                             `json:"unreadNotifications"`
}

type CompanyStats struct {
	DimonasByStatus     map[models.DimonaStatus]int     `json:"dimonasByStatus"`
	DimonasByType       map[models.DimonaType]int       `json:"dimonasByType"`
	CollaboratorsByType map[models.CollaboratorType]int `json:"collaboratorsByType"`
	Collaborators       int                             `json:"collaborators"`
}

type StatsService struct {
	dimonas       DimonaLister
	collaborators CollaboratorLister
	companies     CompanyCounter
	notifications UnreadCounter
}

func NewStatsService(
	dimonas DimonaLister,
	collaborators CollaboratorLister,
	companies CompanyCounter,
	notifications UnreadCounter,
) *StatsService {
	return &StatsService{
		dimonas:       dimonas,
		collaborators: collaborators,
		companies:     companies,
		notifications: notifications,
	}
}

// Global fans out the four reads concurrently and combines them only once
// all have settled. One failed read fails the whole aggregation.
func (s *StatsService) Global(ctx context.Context, userID string) (DashboardStats, error) {
	var (
		dimonas       []models.Dimona
		collaborators []models.Collaborator
		companies     int
		unread        int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		dimonas, err = s.dimonas.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		collaborators, err = s.collaborators.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		companies, err = s.companies.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		unread, err = s.notifications.UnreadCount(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}

	return DashboardStats{
		DimonasByStatus:     countDimonasByStatus(dimonas),
		DimonasByType:       countDimonasByType(dimonas),
		CollaboratorsByType: countCollaboratorsByType(collaborators),
		Companies:           companies,
		UnreadNotifications: unread,
	}, nil
}

// ForCompany aggregates the same figures scoped to one company.
func (s *StatsService) ForCompany(ctx context.Context, companyID string) (CompanyStats, error) {
	var (
		dimonas       []models.Dimona
		collaborators []models.Collaborator
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		dimonas, err = s.dimonas.ListByCompany(gctx, companyID)
		return err
	})
	g.Go(func() (err error) {
		collaborators, err = s.collaborators.ListByCompany(gctx, companyID)
		return err
	})
	if err := g.Wait(); err != nil {
		return CompanyStats{}, err
	}

	return CompanyStats{
		DimonasByStatus:     countDimonasByStatus(dimonas),
		DimonasByType:       countDimonasByType(dimonas),
		CollaboratorsByType: countCollaboratorsByType(collaborators),
		Collaborators:       len(collaborators),
	}, nil
}

func countDimonasByStatus(dimonas []models.Dimona) map[models.DimonaStatus]int {
	return stats.CountBy(dimonas, models.DimonaStatuses(), func(d models.Dimona) models.DimonaStatus {
		return d.Status
	})
}

func countDimonasByType(dimonas []models.Dimona) map[models.DimonaType]int {
	return stats.CountBy(dimonas, models.DimonaTypes(), func(d models.Dimona) models.DimonaType {
		return d.Type
	})
}

func countCollaboratorsByType(collaborators []models.Collaborator) map[models.CollaboratorType]int {
	return stats.CountBy(collaborators, models.CollaboratorTypes(), func(c models.Collaborator) models.CollaboratorType {
		return c.Type
	})
}
