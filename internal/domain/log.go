package domain

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the calendar-day format used on the wire and in storage.
const DateLayout = "2006-01-02"

// ProductivityLog is one task's worth of work on one day by one employee.
type ProductivityLog struct {
	ID                 string
	EmployeeName       string
	EmployeeID         string
	Department         Department
	Date               time.Time // UTC midnight
	TaskCategory       TaskCategory
	TaskDescription    string
	TaskStatus         TaskStatus
	Hours              float64
	ProductivityRating int // 1-5, 0 means unrated
	Blockers           string
	TasksCarriedOver   string
}

// DateKey returns the log's calendar day as YYYY-MM-DD.
func (l ProductivityLog) DateKey() string {
	return l.Date.Format(DateLayout)
}

func (l ProductivityLog) IsComplete() bool {
	return l.TaskStatus == StatusComplete
}

// DateOf truncates t to its calendar day at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// SortByDateDesc orders logs newest day first. Logs on the same day keep
// their relative order.
func SortByDateDesc(logs []ProductivityLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.After(logs[j].Date)
	})
}
