package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RecordEventRequest struct {
	EventType   string   `json:"event_type"`
	EvidenceRef string   `json:"evidence_ref"`
	Note        string   `json:"note"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type AttendanceEventDTO struct {
	EventID     string   `json:"event_id,omitempty"`
	UserID      string   `json:"user_id"`
	Name        string   `json:"name,omitempty"`
	Role        string   `json:"role,omitempty"`
	EventType   string   `json:"event_type"`
	RecordedAt  string   `json:"recorded_at"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	EvidenceRef string   `json:"evidence_ref,omitempty"`
	Note        string   `json:"note,omitempty"`
}

type RecordEventResponse struct {
	Event AttendanceEventDTO `json:"event"`
}

type ListEventsResponse struct {
	Items []AttendanceEventDTO `json:"items"`
}

type ReportResponse struct {
	Items []AttendanceEventDTO `json:"items"`
}
