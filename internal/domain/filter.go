package domain

import (
	"fmt"
	"time"
)

// Filter narrows a log collection. Zero values mean "no constraint".
type Filter struct {
	DateStart    *time.Time
	DateEnd      *time.Time
	Department   string
	EmployeeName string
}

// ParseFilter builds a Filter from raw selector values. Empty strings are
// treated as absent.
func ParseFilter(start, end, department, employee string) (Filter, error) {
	f := Filter{Department: department, EmployeeName: employee}
	if start != "" {
		t, err := ParseDate(start)
		if err != nil {
			return Filter{}, fmt.Errorf("start: %w", err)
		}
		f.DateStart = &t
	}
	if end != "" {
		t, err := ParseDate(end)
		if err != nil {
			return Filter{}, fmt.Errorf("end: %w", err)
		}
		f.DateEnd = &t
	}
	return f, nil
}

func (f Filter) IsZero() bool {
	return f.DateStart == nil && f.DateEnd == nil && f.Department == "" && f.EmployeeName == ""
}

// Matches reports whether a log passes every set criterion. Dates compare
// by calendar day and the bounds are inclusive.
func (f Filter) Matches(l ProductivityLog) bool {
	day := DateOf(l.Date)
	if f.DateStart != nil && day.Before(DateOf(*f.DateStart)) {
		return false
	}
	if f.DateEnd != nil && day.After(DateOf(*f.DateEnd)) {
		return false
	}
	if f.Department != "" && string(l.Department) != f.Department {
		return false
	}
	if f.EmployeeName != "" && l.EmployeeName != f.EmployeeName {
		return false
	}
	return true
}

// Apply returns the matching logs in input order.
func (f Filter) Apply(logs []ProductivityLog) []ProductivityLog {
	out := make([]ProductivityLog, 0, len(logs))
	for _, l := range logs {
		if f.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}
