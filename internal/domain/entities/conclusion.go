package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conclusion is an ordered takeaway recorded for a meeting
type Conclusion struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	MeetingID  uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Conclusion string    `gorm:"type:text;not null" json:"conclusion"`
	OrderIndex int       `gorm:"not null;default:0" json:"order_index"`
}

// TableName specifies the table name for Conclusion
func (Conclusion) TableName() string {
	return "conclusions"
}

// BeforeCreate assigns an ID when the caller left it empty
func (c *Conclusion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
