package rest

import (
	"time"

	"github.com/heartmarshall/precast-backend/internal/domain"
	"github.com/heartmarshall/precast-backend/internal/service/attendance"
	"github.com/heartmarshall/precast-backend/internal/service/production"
)

type productResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type configResponse struct {
	Product       string    `json:"product"`
	UnitsPerBoard *int      `json:"units_per_board"`
	UnitsPerMold  *int      `json:"units_per_mold"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type categoryResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	MeasurementTypes []string `json:"measurement_types"`
	Description      string   `json:"description"`
	Protected        bool     `json:"protected"`
}

type lineItemResponse struct {
	ID              string `json:"id"`
	Product         string `json:"product"`
	Category        string `json:"category"`
	Quantity        int    `json:"quantity"`
	MeasurementType string `json:"measurement_type"`
	TotalUnits      *int   `json:"total_units"`
	Display         string `json:"display"`
}

type recordResponse struct {
	Date       domain.Date        `json:"date"`
	DateLong   string             `json:"date_long"`
	Items      []lineItemResponse `json:"items"`
	ReportText string             `json:"report_text"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type sessionResponse struct {
	ID         string             `json:"id"`
	Date       domain.Date        `json:"date"`
	State      string             `json:"state"`
	Items      []lineItemResponse `json:"items"`
	ReportText string             `json:"report_text"`
}

type workerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type attendanceResponse struct {
	WorkerID string      `json:"worker_id"`
	Date     domain.Date `json:"date"`
	Status   string      `json:"status"`
}

type dayEntryResponse struct {
	Worker workerResponse `json:"worker"`
	Status *string        `json:"status"`
}

type monthDayResponse struct {
	Date   domain.Date `json:"date"`
	Header string      `json:"header"`
}

type monthRowResponse struct {
	Worker  workerResponse  `json:"worker"`
	Cells   []*string       `json:"cells"`
	Summary summaryResponse `json:"summary"`
}

type summaryResponse struct {
	Present    int     `json:"present"`
	HalfDay    int     `json:"half_day"`
	Absent     int     `json:"absent"`
	DaysWorked float64 `json:"days_worked"`
}

type monthResponse struct {
	Month    domain.Date        `json:"month"`
	Title    string             `json:"title"`
	Previous domain.Date        `json:"previous"`
	Next     domain.Date        `json:"next"`
	Days     []monthDayResponse `json:"days"`
	Rows     []monthRowResponse `json:"rows"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// ---------------------------------------------------------------------------
// Mappers
// ---------------------------------------------------------------------------

func toProductResponse(p domain.Product) productResponse {
	return productResponse{ID: p.ID.String(), Name: p.Name.String(), CreatedAt: p.CreatedAt}
}

func toConfigResponse(c domain.ProductConfig) configResponse {
	return configResponse{
		Product:       c.Product.String(),
		UnitsPerBoard: c.UnitsPerBoard.Ptr(),
		UnitsPerMold:  c.UnitsPerMold.Ptr(),
		UpdatedAt:     c.UpdatedAt,
	}
}

func toCategoryResponse(c domain.Category) categoryResponse {
	types := make([]string, len(c.MeasurementTypes))
	for i, mt := range c.MeasurementTypes {
		types[i] = mt.String()
	}
	return categoryResponse{
		ID:               c.ID,
		Name:             c.Name,
		MeasurementTypes: types,
		Description:      c.Description,
		Protected:        c.Protected,
	}
}

func toLineItemResponse(it domain.LineItem) lineItemResponse {
	return lineItemResponse{
		ID:              it.ID.String(),
		Product:         it.Product.String(),
		Category:        it.Category,
		Quantity:        it.Quantity,
		MeasurementType: it.MeasurementType.String(),
		TotalUnits:      it.TotalUnits.Ptr(),
		Display:         production.DisplayQuantity(it),
	}
}

func toLineItemResponses(items []domain.LineItem) []lineItemResponse {
	out := make([]lineItemResponse, len(items))
	for i, it := range items {
		out[i] = toLineItemResponse(it)
	}
	return out
}

func toRecordResponse(rec domain.ProductionRecord) recordResponse {
	return recordResponse{
		Date:       rec.Date,
		DateLong:   rec.Date.FormatLong(),
		Items:      toLineItemResponses(rec.Items),
		ReportText: rec.ReportText,
		UpdatedAt:  rec.UpdatedAt,
	}
}

func toSessionResponse(v *production.SessionView) sessionResponse {
	return sessionResponse{
		ID:         v.ID.String(),
		Date:       v.Date,
		State:      v.State.String(),
		Items:      toLineItemResponses(v.Items),
		ReportText: v.ReportText,
	}
}

func toWorkerResponse(w domain.Worker) workerResponse {
	return workerResponse{ID: w.ID.String(), Name: w.Name}
}

func statusPtr(c attendance.Cell) *string {
	st, ok := c.Get()
	if !ok {
		return nil
	}
	s := st.String()
	return &s
}

func toMonthResponse(v *attendance.MonthView) monthResponse {
	days := make([]monthDayResponse, len(v.Matrix.Days))
	for i, d := range v.Matrix.Days {
		days[i] = monthDayResponse{Date: d, Header: v.Headers[i]}
	}

	rows := make([]monthRowResponse, len(v.Matrix.Workers))
	for i, w := range v.Matrix.Workers {
		cells := make([]*string, len(v.Matrix.Rows[i]))
		for j, c := range v.Matrix.Rows[i] {
			cells[j] = statusPtr(c)
		}
		s := v.Summaries[i]
		rows[i] = monthRowResponse{
			Worker: toWorkerResponse(w),
			Cells:  cells,
			Summary: summaryResponse{
				Present:    s.Present,
				HalfDay:    s.HalfDay,
				Absent:     s.Absent,
				DaysWorked: s.DaysWorked,
			},
		}
	}

	return monthResponse{
		Month:    v.Month,
		Title:    v.Title,
		Previous: v.Previous,
		Next:     v.Next,
		Days:     days,
		Rows:     rows,
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID.String(), Email: u.Email, Name: u.Name, Role: u.Role.String()}
}
