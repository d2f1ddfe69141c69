package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"secretariat/api/internal/ids"
	"secretariat/api/internal/models"
)

// DocumentStore is the slice of the document repository this service needs.
type DocumentStore interface {
	Create(ctx context.Context, document models.Document) error
	GetByID(ctx context.Context, id string) (models.Document, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.Document, error)
}

// Enqueuer hands generation tasks to the worker stream.
type Enqueuer interface {
	Enqueue(ctx context.Context, values map[string]any) error
}

// Presigner issues time-limited download URLs for stored documents.
type Presigner interface {
	PresignGet(ctx context.Context, bucket, objectKey string, ttl time.Duration) (string, error)
}

type DocumentService struct {
	documents DocumentStore
	queue     Enqueuer
	presigner Presigner
	log       zerolog.Logger
}

func NewDocumentService(documents DocumentStore, queue Enqueuer, presigner Presigner, log zerolog.Logger) *DocumentService {
	return &DocumentService{
		documents: documents,
		queue:     queue,
		presigner: presigner,
		log:       log,
	}
}

type RequestDocumentInput struct {
	CompanyID   string
	RequesterID string
	Kind        models.DocumentKind
	DimonaID    string
	SubjectID   string
}

// Request queues the generation of a document. The row is visible
// immediately with status QUEUED; the worker flips it to READY once the
// rendered file is in object storage.
func (s *DocumentService) Request(ctx context.Context, input RequestDocumentInput) (models.Document, error) {
	switch input.Kind {
	case models.DocumentKindDimonaConfirmation, models.DocumentKindEmploymentCertificate:
	default:
		return models.Document{}, fmt.Errorf("unknown document kind %q", input.Kind)
	}

	document := models.Document{
		ID:          ids.New(),
		CompanyID:   input.CompanyID,
		RequesterID: input.RequesterID,
		Kind:        input.Kind,
		Status:      models.DocumentStatusQueued,
	}
	if err := s.documents.Create(ctx, document); err != nil {
		return models.Document{}, err
	}

	err := s.queue.Enqueue(ctx, map[string]any{
		"type":       "document_generate",
		"documentId": document.ID,
		"kind":       string(document.Kind),
		"dimonaId":   input.DimonaID,
		"subjectId":  input.SubjectID,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("document_id", document.ID).Msg("enqueue generation failed")
	}

	return s.documents.GetByID(ctx, document.ID)
}

// DownloadURL returns a presigned URL for a ready document.
func (s *DocumentService) DownloadURL(ctx context.Context, id string) (string, error) {
	document, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if document.Status != models.DocumentStatusReady {
		return "", fmt.Errorf("document %s not ready", id)
	}
	return s.presigner.PresignGet(ctx, document.Bucket, document.ObjectKey, 0)
}

func (s *DocumentService) Get(ctx context.Context, id string) (models.Document, error) {
	return s.documents.GetByID(ctx, id)
}

func (s *DocumentService) ListByCompany(ctx context.Context, companyID string) ([]models.Document, error) {
	return s.documents.ListByCompany(ctx, companyID)
}
