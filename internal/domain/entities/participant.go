package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Participant is a named attendee of a meeting
type Participant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	MeetingID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
}

// TableName specifies the table name for Participant
func (Participant) TableName() string {
	return "participants"
}

// BeforeCreate assigns an ID when the caller left it empty
func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
