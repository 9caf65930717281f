package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meeting represents one recorded meeting and its metadata
type Meeting struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Date         string         `gorm:"type:varchar(10);not null" json:"date"` // YYYY-MM-DD
	Department   *string        `gorm:"type:varchar(255);index" json:"department"`
	Objective    *string        `gorm:"type:text" json:"objective"`
	RawContent   *string        `gorm:"type:text" json:"raw_content"`
	ProcessCount *int           `json:"process_count"`
	SystemCount  *int           `json:"system_count"`
	FindingCount *int           `json:"finding_count"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	Participants []*Participant `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"participants"`
	Conclusions  []*Conclusion  `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"conclusions"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// BeforeCreate assigns an ID when the caller left it empty
func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// ParticipantNames returns the names of the meeting's participants in stored order
func (m *Meeting) ParticipantNames() []string {
	names := make([]string, 0, len(m.Participants))
	for _, p := range m.Participants {
		names = append(names, p.Name)
	}
	return names
}

// CountOrZero dereferences a nullable count column
func CountOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// Stats aggregates the count columns over all meetings
type Stats struct {
	TotalMeetings  int `json:"totalMeetings"`
	TotalProcesses int `json:"totalProcesses"`
	TotalSystems   int `json:"totalSystems"`
	TotalFindings  int `json:"totalFindings"`
}
