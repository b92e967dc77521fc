package shared

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities.
// All business data in the reporting store is written by the main ERP
// backend; this service only reads it.
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SoftDeletableEntity extends BaseEntity with a deletion mark.
// Soft-deleted rows are excluded from every report.
type SoftDeletableEntity struct {
	BaseEntity
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// IsDeleted reports whether the entity carries a deletion mark
func (e *SoftDeletableEntity) IsDeleted() bool {
	return e.DeletedAt.Valid
}
