package meeting

// CreateMeetingRequest represents the request to create a meeting
type CreateMeetingRequest struct {
	Title        string   `json:"title" validate:"required,max=255"`
	Date         string   `json:"date" validate:"required"`
	Department   *string  `json:"department,omitempty" validate:"omitempty,max=255"`
	Objective    *string  `json:"objective,omitempty"`
	RawContent   *string  `json:"rawContent,omitempty"`
	ProcessCount *int     `json:"processCount,omitempty"`
	SystemCount  *int     `json:"systemCount,omitempty"`
	FindingCount *int     `json:"findingCount,omitempty"`
	Participants []string `json:"participants,omitempty"`
	Conclusions  []string `json:"conclusions,omitempty"`
}
