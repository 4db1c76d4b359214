package domain

import "strings"

// MeasurementType is the way a production quantity is expressed.
type MeasurementType string

const (
	MeasurementBoard MeasurementType = "board"
	MeasurementMold  MeasurementType = "mold"
	MeasurementUnit  MeasurementType = "unit"
)

func (m MeasurementType) String() string { return string(m) }

func (m MeasurementType) IsValid() bool {
	switch m {
	case MeasurementBoard, MeasurementMold, MeasurementUnit:
		return true
	}
	return false
}

// NeedsFactor reports whether converting this type to base units requires
// a stored conversion factor.
func (m MeasurementType) NeedsFactor() bool {
	return m == MeasurementBoard || m == MeasurementMold
}

// Plural returns the pt-BR plural noun used in reports.
func (m MeasurementType) Plural() string {
	switch m {
	case MeasurementBoard:
		return "tábuas"
	case MeasurementMold:
		return "formas"
	default:
		return "unidades"
	}
}

// ParseMeasurementType accepts the canonical values and the legacy
// Portuguese ones ("tabuas", "formas", "unidades") still present in
// imported data.
func ParseMeasurementType(s string) (MeasurementType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "board", "tabuas", "tábuas":
		return MeasurementBoard, true
	case "mold", "formas":
		return MeasurementMold, true
	case "unit", "unidades":
		return MeasurementUnit, true
	}
	return "", false
}

// AttendanceStatus is a worker's attendance on a single day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceHalfDay AttendanceStatus = "half_day"
)

func (s AttendanceStatus) String() string { return string(s) }

func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceHalfDay:
		return true
	}
	return false
}

// ParseAttendanceStatus accepts the canonical values and the legacy
// Portuguese ones ("presente", "falta", "meia_diaria").
func ParseAttendanceStatus(s string) (AttendanceStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present", "presente":
		return AttendancePresent, true
	case "absent", "falta":
		return AttendanceAbsent, true
	case "half_day", "meia_diaria":
		return AttendanceHalfDay, true
	}
	return "", false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}
