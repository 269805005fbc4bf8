package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"notevault-be/internal/entity"
	"notevault-be/internal/repository/contract"
	"notevault-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository struct {
	mu    sync.RWMutex
	notes map[uuid.UUID]*entity.Note
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{
		notes: make(map[uuid.UUID]*entity.Note),
	}
}

func (r *NoteRepository) Create(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if note.Id == uuid.Nil {
		note.Id = uuid.New()
	}
	now := time.Now()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = note.CreatedAt
	}
	clone := *note
	r.notes[note.Id] = &clone
	return nil
}

func (r *NoteRepository) Update(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	note.UpdatedAt = time.Now()
	clone := *note
	r.notes[note.Id] = &clone
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.notes, id)
	return nil
}

func (r *NoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.notes {
		if matchNote(n, specs) {
			clone := *n
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *NoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.Note, 0)
	for _, n := range r.notes {
		if matchNote(n, specs) {
			clone := *n
			result = append(result, &clone)
		}
	}

	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && s.Field == "created_at" {
			sort.Slice(result, func(i, j int) bool {
				if s.Desc {
					return result[i].CreatedAt.After(result[j].CreatedAt)
				}
				return result[i].CreatedAt.Before(result[j].CreatedAt)
			})
		}
	}
	return result, nil
}

func (r *NoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	notes, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(notes)), nil
}

func matchNote(n *entity.Note, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if n.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if n.UserId != s.UserID {
				return false
			}
		}
	}
	return true
}

var _ contract.NoteRepository = (*NoteRepository)(nil)
