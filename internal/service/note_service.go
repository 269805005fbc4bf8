package service

import (
	"context"
	"time"

	"notevault-be/internal/apperrors"
	"notevault-be/internal/dto"
	"notevault-be/internal/entity"
	"notevault-be/internal/pkg/logger"
	"notevault-be/internal/repository/specification"
	"notevault-be/internal/repository/unitofwork"
	"notevault-be/pkg/events"
	pktNats "notevault-be/pkg/nats"

	"github.com/google/uuid"
)

type INoteService interface {
	List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID) ([]*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		response = append(response, toNoteResponse(note))
	}
	return response, nil
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	note := entity.Note{
		Id:      uuid.New(),
		Title:   req.Title,
		Content: req.Content,
		// Owner comes from the authenticated caller, never from the body.
		UserId:    userId,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeNoteCreated, map[string]interface{}{
		"note_id": note.Id,
		"user_id": userId,
		"title":   note.Title,
	})

	return toNoteResponse(&note), nil
}

func (s *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

func (s *noteService) Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	// Title and content are always replaced together.
	note.Title = req.Title
	note.Content = req.Content
	note.UpdatedAt = time.Now()

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeNoteUpdated, map[string]interface{}{
		"note_id": note.Id,
		"user_id": userId,
	})

	return toNoteResponse(note), nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}

	if err := uow.NoteRepository().Delete(ctx, note.Id); err != nil {
		return err
	}

	s.publish(ctx, events.TypeNoteDeleted, map[string]interface{}{
		"note_id": note.Id,
		"user_id": userId,
	})

	return nil
}

// findOwned resolves a note with the ownership gate shared by show, update
// and delete. Existence is checked before ownership so the two outcomes stay
// distinguishable: absent id -> ErrNotFound, someone else's note ->
// ErrForbidden.
func (s *noteService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, id uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperrors.ErrNotFound
	}
	if note.UserId != userId {
		return nil, apperrors.ErrForbidden
	}
	return note, nil
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		UserId:    note.UserId,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func (s *noteService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.New(eventType, data)); err != nil && s.log != nil {
		s.log.Warn("note", "failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
