package domain

import (
	"time"

	"github.com/google/uuid"
)

// Worker is a day laborer whose attendance is tracked.
type Worker struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AttendanceRecord is the status of one worker on one day. There is at
// most one record per (WorkerID, Date).
type AttendanceRecord struct {
	WorkerID  uuid.UUID
	Date      Date
	Status    AttendanceStatus
	UpdatedAt time.Time
}
