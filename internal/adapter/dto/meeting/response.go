package meeting

import "time"

// ParticipantResponse represents a participant in API responses
type ParticipantResponse struct {
	Name string `json:"name"`
}

// ConclusionResponse represents a conclusion in API responses
type ConclusionResponse struct {
	Conclusion string `json:"conclusion"`
	OrderIndex int    `json:"order_index"`
}

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Date         string                `json:"date"`
	Department   *string               `json:"department"`
	Objective    *string               `json:"objective"`
	RawContent   *string               `json:"raw_content"`
	ProcessCount int                   `json:"process_count"`
	SystemCount  int                   `json:"system_count"`
	FindingCount int                   `json:"finding_count"`
	CreatedAt    time.Time             `json:"created_at"`
	Participants []ParticipantResponse `json:"participants"`
	Conclusions  []ConclusionResponse  `json:"conclusions"`
}

// StatsResponse represents aggregate meeting counts
type StatsResponse struct {
	TotalMeetings  int `json:"totalMeetings"`
	TotalProcesses int `json:"totalProcesses"`
	TotalSystems   int `json:"totalSystems"`
	TotalFindings  int `json:"totalFindings"`
}
