// Package export writes log collections as CSV or JSON files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/emiliopalmerini/worklog/internal/domain"
)

var (
	// ErrNoData is returned when there is nothing to export.
	ErrNoData = errors.New("no data to export")
	// ErrUnknownFormat is returned for formats other than csv and json.
	ErrUnknownFormat = errors.New("unsupported format")
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

const filePrefix = "ais_productivity_logs"

// Header is the CSV column order.
var Header = []string{
	"ID", "Date", "Employee Name", "Employee ID", "Department", "Task Category",
	"Task Description", "Task Status", "Hours", "Productivity Rating",
	"Blockers", "Tasks Carried Over",
}

// Record is the wire form of a ProductivityLog.
type Record struct {
	ID                 string  `json:"id"`
	Date               string  `json:"date"`
	EmployeeName       string  `json:"employeeName"`
	EmployeeID         string  `json:"employeeId"`
	Department         string  `json:"department"`
	TaskCategory       string  `json:"taskCategory"`
	TaskDescription    string  `json:"taskDescription"`
	TaskStatus         string  `json:"taskStatus"`
	Hours              float64 `json:"hours"`
	ProductivityRating int     `json:"productivityRating"`
	Blockers           string  `json:"blockers"`
	TasksCarriedOver   string  `json:"tasksCarriedOver,omitempty"`
}

func NewRecord(l domain.ProductivityLog) Record {
	return Record{
		ID:                 l.ID,
		Date:               l.DateKey(),
		EmployeeName:       l.EmployeeName,
		EmployeeID:         l.EmployeeID,
		Department:         string(l.Department),
		TaskCategory:       string(l.TaskCategory),
		TaskDescription:    l.TaskDescription,
		TaskStatus:         string(l.TaskStatus),
		Hours:              l.Hours,
		ProductivityRating: l.ProductivityRating,
		Blockers:           l.Blockers,
		TasksCarriedOver:   l.TasksCarriedOver,
	}
}

func Records(logs []domain.ProductivityLog) []Record {
	out := make([]Record, len(logs))
	for i, l := range logs {
		out[i] = NewRecord(l)
	}
	return out
}

func (r Record) row() []string {
	return []string{
		r.ID,
		r.Date,
		r.EmployeeName,
		r.EmployeeID,
		r.Department,
		r.TaskCategory,
		r.TaskDescription,
		r.TaskStatus,
		strconv.FormatFloat(r.Hours, 'f', -1, 64),
		strconv.Itoa(r.ProductivityRating),
		r.Blockers,
		r.TasksCarriedOver,
	}
}

// WriteCSV writes the header and one row per log. Fields holding commas,
// quotes or line breaks are quoted with inner quotes doubled.
func WriteCSV(w io.Writer, logs []domain.ProductivityLog) error {
	if len(logs) == 0 {
		return ErrNoData
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, l := range logs {
		if err := cw.Write(NewRecord(l).row()); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", l.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the logs as an indented JSON array.
func WriteJSON(w io.Writer, logs []domain.ProductivityLog) error {
	if len(logs) == 0 {
		return ErrNoData
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Records(logs)); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// Write dispatches on format ("csv" or "json").
func Write(w io.Writer, format string, logs []domain.ProductivityLog) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, logs)
	case FormatJSON:
		return WriteJSON(w, logs)
	default:
		return fmt.Errorf("%w: %s (use json or csv)", ErrUnknownFormat, format)
	}
}

// Filename returns the download name for an export taken on day.
func Filename(format string, day time.Time) string {
	return fmt.Sprintf("%s_%s.%s", filePrefix, day.Format(domain.DateLayout), format)
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	if format == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/json"
}
