package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note is owned by exactly one user; UserId is set at creation and never
// changes afterwards.
type Note struct {
	Id        uuid.UUID
	Title     string
	Content   string
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
