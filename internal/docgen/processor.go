package docgen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"secretariat/api/internal/ids"
	"secretariat/api/internal/models"
	"secretariat/api/internal/repository"
	"secretariat/api/internal/storage"
)

type Processor struct {
	documents     *repository.DocumentRepository
	dimonas       *repository.DimonaRepository
	collaborators *repository.CollaboratorRepository
	companies     *repository.CompanyRepository
	users         *repository.UserRepository
	sessions      *repository.SessionRepository
	notifications *repository.NotificationRepository
	store         *storage.ObjectStore
	logger        zerolog.Logger
}

type TaskPayload struct {
	Type       string `json:"type"`
	DocumentID string `json:"documentId"`
	Kind       string `json:"kind"`
	DimonaID   string `json:"dimonaId"`
	SubjectID  string `json:"subjectId"`
}

func NewProcessor(
	documents *repository.DocumentRepository,
	dimonas *repository.DimonaRepository,
	collaborators *repository.CollaboratorRepository,
	companies *repository.CompanyRepository,
	users *repository.UserRepository,
	sessions *repository.SessionRepository,
	notifications *repository.NotificationRepository,
	store *storage.ObjectStore,
	logger zerolog.Logger,
) *Processor {
	return &Processor{
		documents:     documents,
		dimonas:       dimonas,
		collaborators: collaborators,
		companies:     companies,
		users:         users,
		sessions:      sessions,
		notifications: notifications,
		store:         store,
		logger:        logger,
	}
}

func (p *Processor) Handle(ctx context.Context, msg redis.XMessage) error {
	var payload TaskPayload
	if err := decodePayload(msg.Values, &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	switch payload.Type {
	case "document_generate":
		return p.handleGenerate(ctx, payload)
	case "dimona_reminder":
		return p.handleDimonaReminder(ctx)
	case "session_cleanup":
		return p.handleSessionCleanup(ctx)
	default:
		p.logger.Warn().Str("type", payload.Type).Msg("unknown task type")
		return nil
	}
}

func decodePayload(values map[string]interface{}, out *TaskPayload) error {
	bytes, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, out)
}

// handleGenerate renders the requested document and flips the row to READY.
// Rendering failures are terminal: the row is marked FAILED and the message
// acknowledged, so a broken request is never retried forever.
func (p *Processor) handleGenerate(ctx context.Context, payload TaskPayload) error {
	document, err := p.documents.GetByID(ctx, payload.DocumentID)
	if err != nil {
		return fmt.Errorf("load document %s: %w", payload.DocumentID, err)
	}
	if document.Status != models.DocumentStatusQueued {
		p.logger.Info().
			Str("document_id", document.ID).
			Str("status", string(document.Status)).
			Msg("document already processed")
		return nil
	}

	data, err := p.render(ctx, document, payload)
	if err != nil {
		p.logger.Error().Err(err).Str("document_id", document.ID).Msg("render failed")
		if err := p.documents.MarkFailed(ctx, document.ID); err != nil {
			p.logger.Error().Err(err).Str("document_id", document.ID).Msg("mark failed errored")
		}
		return nil
	}

	objectKey := fmt.Sprintf("%s/%s.txt", document.CompanyID, document.ID)
	if err := p.store.PutDocument(ctx, objectKey, data, renderedContentType); err != nil {
		return fmt.Errorf("store document %s: %w", document.ID, err)
	}

	if err := p.documents.MarkReady(ctx, document.ID, p.store.Bucket(), objectKey); err != nil {
		return fmt.Errorf("mark ready %s: %w", document.ID, err)
	}

	p.notify(ctx, document.RequesterID, models.NotificationTypeDocument,
		"Your document is ready",
		fmt.Sprintf("The requested %s can now be downloaded.", document.Kind),
	)

	p.logger.Info().
		Str("document_id", document.ID).
		Str("object_key", objectKey).
		Msg("document generated")
	return nil
}

func (p *Processor) render(ctx context.Context, document models.Document, payload TaskPayload) ([]byte, error) {
	company, err := p.companies.GetByID(ctx, document.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("load company: %w", err)
	}

	switch document.Kind {
	case models.DocumentKindDimonaConfirmation:
		dimona, err := p.dimonas.GetByID(ctx, payload.DimonaID)
		if err != nil {
			return nil, fmt.Errorf("load dimona: %w", err)
		}
		collaborator, err := p.collaborators.GetByID(ctx, dimona.CollaboratorID)
		if err != nil {
			return nil, fmt.Errorf("load collaborator: %w", err)
		}
		return RenderDimonaConfirmation(company, collaborator, dimona, time.Now()), nil

	case models.DocumentKindEmploymentCertificate:
		collaborator, err := p.collaborators.GetByID(ctx, payload.SubjectID)
		if err != nil {
			return nil, fmt.Errorf("load collaborator: %w", err)
		}
		return RenderEmploymentCertificate(company, collaborator, time.Now()), nil

	default:
		return nil, fmt.Errorf("unknown document kind %q", document.Kind)
	}
}

// handleDimonaReminder notifies each company's users about declarations
// still waiting on their confirmation or a resend.
func (p *Processor) handleDimonaReminder(ctx context.Context) error {
	waiting := make(map[string]int)
	for _, status := range []models.DimonaStatus{models.DimonaStatusToConfirm, models.DimonaStatusRejected} {
		dimonas, err := p.dimonas.ListByStatus(ctx, status)
		if err != nil {
			return fmt.Errorf("list dimonas %s: %w", status, err)
		}
		for _, dimona := range dimonas {
			waiting[dimona.CompanyID]++
		}
	}

	for companyID, count := range waiting {
		users, err := p.users.ListByCompany(ctx, companyID)
		if err != nil {
			p.logger.Error().Err(err).Str("company_id", companyID).Msg("list company users failed")
			continue
		}
		for _, user := range users {
			p.notify(ctx, user.ID, models.NotificationTypeDimona,
				"Dimona declarations need attention",
				fmt.Sprintf("%d declaration(s) are waiting on confirmation or a resend.", count),
			)
		}
	}

	p.logger.Info().Int("companies", len(waiting)).Msg("dimona reminders sent")
	return nil
}

func (p *Processor) handleSessionCleanup(ctx context.Context) error {
	deleted, err := p.sessions.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	p.logger.Info().Int64("deleted", deleted).Msg("expired sessions removed")
	return nil
}

func (p *Processor) notify(ctx context.Context, recipientID string, notificationType models.NotificationType, title, message string) {
	err := p.notifications.Create(ctx, models.Notification{
		ID:          ids.New(),
		RecipientID: recipientID,
		Type:        notificationType,
		Title:       title,
		Message:     message,
	})
	if err != nil {
		p.logger.Error().Err(err).Str("recipient_id", recipientID).Msg("create notification failed")
	}
}
