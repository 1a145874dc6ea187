package domain

const DefaultTaskStatus = "pending"

type Client struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

type Task struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Status      string `json:"status"`
	ClientID    *int64 `json:"client_id"`
}

type Appointment struct {
	ID            int64   `json:"id"`
	ClientID      int64   `json:"client_id"`
	ScheduledTime string  `json:"scheduled_time"`
	Description   *string `json:"description"`
}

// RecordKind names a persisted entity in events and metrics.
type RecordKind string

const (
	RecordClient      RecordKind = "client"
	RecordTask        RecordKind = "task"
	RecordAppointment RecordKind = "appointment"
)

type RecordCreated struct {
	Kind RecordKind `json:"kind"`
	ID   int64      `json:"id"`
}
