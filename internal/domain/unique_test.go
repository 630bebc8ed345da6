package domain

import "testing"

func TestUniqueEmployees(t *testing.T) {
	logs := []ProductivityLog{
		newLog("zed", DeptIT, StatusComplete, 8, day(0)),
		newLog("amy", DeptIT, StatusComplete, 8, day(0)),
		newLog("zed", DeptHSE, StatusComplete, 8, day(-1)),
	}

	got := UniqueEmployees(logs)
	if len(got) != 2 || got[0] != "amy" || got[1] != "zed" {
		t.Errorf("expected [amy zed], got %v", got)
	}

	if empty := UniqueEmployees(nil); empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestExtractUniqueValues_ListsEveryDepartment(t *testing.T) {
	got := ExtractUniqueValues(nil)
	if len(got.Departments) != len(Departments()) {
		t.Fatalf("expected %d departments, got %d", len(Departments()), len(got.Departments))
	}
	for i := 1; i < len(got.Departments); i++ {
		if got.Departments[i] < got.Departments[i-1] {
			t.Errorf("departments not sorted at %d", i)
		}
	}
}

func TestParseDepartment(t *testing.T) {
	if _, err := ParseDepartment("Iso"); err != nil {
		t.Errorf("expected Iso to parse: %v", err)
	}
	if _, err := ParseDepartment("ISO"); err == nil {
		t.Error("expected case-sensitive mismatch to fail")
	}
	if _, err := ParseTaskStatus("In Progress"); err != nil {
		t.Errorf("expected In Progress to parse: %v", err)
	}
	if _, err := ParseTaskCategory("House Keeping"); err != nil {
		t.Errorf("expected House Keeping to parse: %v", err)
	}
}

func TestSortByDateDesc_StableWithinDay(t *testing.T) {
	a := newLog("a", DeptIT, StatusComplete, 1, day(0))
	b := newLog("b", DeptIT, StatusComplete, 1, day(-1))
	c := newLog("c", DeptIT, StatusComplete, 1, day(0))
	logs := []ProductivityLog{b, a, c}

	SortByDateDesc(logs)
	if logs[0].EmployeeName != "a" || logs[1].EmployeeName != "c" || logs[2].EmployeeName != "b" {
		t.Errorf("unexpected order: %s %s %s", logs[0].EmployeeName, logs[1].EmployeeName, logs[2].EmployeeName)
	}
}
