package productivity

import (
	"fmt"

	"github.com/emiliopalmerini/worklog/internal/domain"
)

// TaskRequest is the JSON form of one task item.
type TaskRequest struct {
	TaskDescription string `json:"taskDescription"`
	TaskCategory    string `json:"taskCategory"`
	TaskStatus      string `json:"taskStatus"`
}

// SubmissionRequest is the JSON body of a daily submission. Date is
// YYYY-MM-DD.
type SubmissionRequest struct {
	EmployeeName       string        `json:"employeeName"`
	EmployeeID         string        `json:"employeeId"`
	Department         string        `json:"department"`
	Date               string        `json:"date"`
	Hours              float64       `json:"hours"`
	ProductivityRating int           `json:"productivityRating"`
	Blockers           string        `json:"blockers"`
	TasksCarriedOver   string        `json:"tasksCarriedOver"`
	Tasks              []TaskRequest `json:"tasks"`
}

// ToSubmission converts the request. Only the date is checked here;
// field rules are applied by DailyLogSubmission.Validate.
func (r SubmissionRequest) ToSubmission() (domain.DailyLogSubmission, error) {
	sub := domain.DailyLogSubmission{
		EmployeeName:       r.EmployeeName,
		EmployeeID:         r.EmployeeID,
		Department:         domain.Department(r.Department),
		Hours:              r.Hours,
		ProductivityRating: r.ProductivityRating,
		Blockers:           r.Blockers,
		TasksCarriedOver:   r.TasksCarriedOver,
		Tasks:              make([]domain.TaskItem, len(r.Tasks)),
	}
	if r.Date != "" {
		d, err := domain.ParseDate(r.Date)
		if err != nil {
			return domain.DailyLogSubmission{}, fmt.Errorf("%w: %w", domain.ErrInvalidSubmission, err)
		}
		sub.Date = d
	}
	for i, t := range r.Tasks {
		sub.Tasks[i] = domain.TaskItem{
			TaskDescription: t.TaskDescription,
			TaskCategory:    domain.TaskCategory(t.TaskCategory),
			TaskStatus:      domain.TaskStatus(t.TaskStatus),
		}
	}
	return sub, nil
}
