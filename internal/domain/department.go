package domain

import (
	"fmt"
	"sort"
)

type Department string

const (
	DeptDataManagement      Department = "Data Management"
	DeptAccountsFinance     Department = "Accounts/Finance"
	DeptAdminHR             Department = "Admin/HR"
	DeptIT                  Department = "IT"
	DeptHSE                 Department = "HSE"
	DeptProcurement         Department = "Procurement"
	DeptCoordination        Department = "Coordination"
	DeptMaintenance         Department = "Maintenance"
	DeptJanitorial          Department = "Janitorial"
	DeptInventory           Department = "Inventory"
	DeptCoringWellsite      Department = "Coring/Wellsite"
	DeptISO                 Department = "Iso"
	DeptEnvironmental       Department = "Environmental"
	DeptReception           Department = "Reception"
	DeptCTImagingGamma      Department = "CT/Imaging/Gamma"
	DeptRockshop            Department = "Rockshop"
	DeptPVTGC               Department = "PVT/GC"
	DeptScalRoutine         Department = "Scal/Routine"
	DeptBusinessDevelopment Department = "Business Development"
	DeptSecurity            Department = "Security"
)

// departments is the declaration order. Departmental performance ties
// fall back to this order.
var departments = []Department{
	DeptDataManagement,
	DeptAccountsFinance,
	DeptAdminHR,
	DeptIT,
	DeptHSE,
	DeptProcurement,
	DeptCoordination,
	DeptMaintenance,
	DeptJanitorial,
	DeptInventory,
	DeptCoringWellsite,
	DeptISO,
	DeptEnvironmental,
	DeptReception,
	DeptCTImagingGamma,
	DeptRockshop,
	DeptPVTGC,
	DeptScalRoutine,
	DeptBusinessDevelopment,
	DeptSecurity,
}

// Departments returns every department in declaration order.
func Departments() []Department {
	out := make([]Department, len(departments))
	copy(out, departments)
	return out
}

// AllDepartments returns every department sorted by display name, for
// populating filter selectors.
func AllDepartments() []Department {
	out := Departments()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (d Department) Valid() bool {
	for _, known := range departments {
		if d == known {
			return true
		}
	}
	return false
}

func (d Department) String() string {
	return string(d)
}

// ParseDepartment maps a display name to a Department.
func ParseDepartment(s string) (Department, error) {
	d := Department(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown department %q", s)
	}
	return d, nil
}
