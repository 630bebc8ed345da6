package domain

import "fmt"

type TaskCategory string

const (
	CategoryMaintenance    TaskCategory = "Maintenance"
	CategoryContractTender TaskCategory = "Contract/Tender"
	CategoryCoordination   TaskCategory = "Coordination"
	CategoryInventory      TaskCategory = "Inventory"
	CategoryTraining       TaskCategory = "Training"
	CategoryReporting      TaskCategory = "Reporting"
	CategoryIT             TaskCategory = "IT"
	CategoryAdmin          TaskCategory = "Admin"
	CategoryInvoice        TaskCategory = "Invoice"
	CategoryProcurement    TaskCategory = "Procurement"
	CategoryHouseKeeping   TaskCategory = "House Keeping"
)

var taskCategories = []TaskCategory{
	CategoryMaintenance,
	CategoryContractTender,
	CategoryCoordination,
	CategoryInventory,
	CategoryTraining,
	CategoryReporting,
	CategoryIT,
	CategoryAdmin,
	CategoryInvoice,
	CategoryProcurement,
	CategoryHouseKeeping,
}

// TaskCategories returns every task category in declaration order.
func TaskCategories() []TaskCategory {
	out := make([]TaskCategory, len(taskCategories))
	copy(out, taskCategories)
	return out
}

func (c TaskCategory) Valid() bool {
	for _, known := range taskCategories {
		if c == known {
			return true
		}
	}
	return false
}

func ParseTaskCategory(s string) (TaskCategory, error) {
	c := TaskCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown task category %q", s)
	}
	return c, nil
}

type TaskStatus string

const (
	StatusComplete   TaskStatus = "Complete"
	StatusInProgress TaskStatus = "In Progress"
	StatusIncomplete TaskStatus = "Incomplete"
)

var taskStatuses = []TaskStatus{StatusComplete, StatusInProgress, StatusIncomplete}

// TaskStatuses returns every status in distribution order.
func TaskStatuses() []TaskStatus {
	out := make([]TaskStatus, len(taskStatuses))
	copy(out, taskStatuses)
	return out
}

func (s TaskStatus) Valid() bool {
	for _, known := range taskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown task status %q", s)
	}
	return st, nil
}
