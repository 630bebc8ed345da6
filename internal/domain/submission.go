package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// MaxTasksPerSubmission caps the task list of a daily submission.
const MaxTasksPerSubmission = 10

var ErrInvalidSubmission = errors.New("invalid submission")

// TaskItem is one entry of the multi-task daily form.
type TaskItem struct {
	TaskDescription string       `validate:"required"`
	TaskCategory    TaskCategory `validate:"task_category"`
	TaskStatus      TaskStatus   `validate:"task_status"`
}

// DailyLogSubmission bundles one employee's tasks for one day.
type DailyLogSubmission struct {
	EmployeeName       string     `validate:"required"`
	EmployeeID         string     `validate:"required"`
	Department         Department `validate:"department"`
	Date               time.Time
	Hours              float64 `validate:"gt=0"`
	ProductivityRating int     `validate:"min=1,max=5"`
	Blockers           string
	TasksCarriedOver   string
	Tasks              []TaskItem `validate:"min=1,max=10,dive"`
}

// Expand derives one ProductivityLog per task item. Hours are divided
// equally across tasks; an empty task list yields no logs.
func (s DailyLogSubmission) Expand(newID func() string) []ProductivityLog {
	if len(s.Tasks) == 0 {
		return nil
	}
	hoursPerTask := s.Hours / float64(len(s.Tasks))
	date := DateOf(s.Date)

	logs := make([]ProductivityLog, len(s.Tasks))
	for i, task := range s.Tasks {
		logs[i] = ProductivityLog{
			ID:                 newID(),
			EmployeeName:       s.EmployeeName,
			EmployeeID:         s.EmployeeID,
			Department:         s.Department,
			Date:               date,
			TaskCategory:       task.TaskCategory,
			TaskDescription:    task.TaskDescription,
			TaskStatus:         task.TaskStatus,
			Hours:              hoursPerTask,
			ProductivityRating: s.ProductivityRating,
			Blockers:           s.Blockers,
			TasksCarriedOver:   s.TasksCarriedOver,
		}
	}
	return logs
}

// ValidationError lists per-field problems found in a submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = e.Fields[k]
	}
	return fmt.Sprintf("%s: %s", ErrInvalidSubmission, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSubmission
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return Department(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("task_category", func(fl validator.FieldLevel) bool {
		return TaskCategory(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("task_status", func(fl validator.FieldLevel) bool {
		return TaskStatus(fl.Field().String()).Valid()
	})
	return v
}

// Validate applies the daily-form rules: employee name and id, positive
// hours, a 1-5 rating, a date and 1-10 described tasks.
func (s DailyLogSubmission) Validate() error {
	fields := make(map[string]string)

	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
		}
		for _, fe := range verrs {
			name := fieldName(fe)
			fields[name] = fieldMessage(name, fe)
		}
	}
	if s.Date.IsZero() {
		fields["date"] = "date is required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// fieldName turns "DailyLogSubmission.Tasks[0].TaskDescription" into
// "tasks[0].taskDescription".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s must contain at most %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "department", "task_category", "task_status":
		return fmt.Sprintf("%s has unknown value %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
