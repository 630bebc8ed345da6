package domain

import "sort"

// UniqueEmployees returns the distinct employee names, sorted.
func UniqueEmployees(logs []ProductivityLog) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, l := range logs {
		if _, ok := seen[l.EmployeeName]; ok {
			continue
		}
		seen[l.EmployeeName] = struct{}{}
		names = append(names, l.EmployeeName)
	}
	sort.Strings(names)
	return names
}

// UniqueValues feeds the filter selectors. Both lists are always taken
// from the full collection so any value stays selectable.
type UniqueValues struct {
	Employees   []string
	Departments []Department
}

func ExtractUniqueValues(all []ProductivityLog) UniqueValues {
	return UniqueValues{
		Employees:   UniqueEmployees(all),
		Departments: AllDepartments(),
	}
}
