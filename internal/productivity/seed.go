package productivity

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/worklog/internal/domain"
)

const seedBlocker = "Minor network disruptions."

var seedNamespace = uuid.MustParse("6f1c1d64-1f4e-4c39-9a43-2f3a7e0c8b51")

type seedEntry struct {
	employee    employee
	category    domain.TaskCategory
	description string
	status      domain.TaskStatus
	hours       float64
	rating      int
	blockers    string
	daysAgo     int
}

type employee struct {
	name       string
	id         string
	department domain.Department
}

var (
	davidShadreck       = employee{"David Shadreck", "AIS/008", domain.DeptDataManagement}
	favourAchumba       = employee{"Favour Achumba", "AIS/004", domain.DeptAccountsFinance}
	samuelOnyeocha      = employee{"Samuel Onyeocha", "AIS/015", domain.DeptIT}
	ifeanyichukwuChibha = employee{"Ifeanyichukwu Chibha", "AIS/014", domain.DeptAdminHR}
	ezeConfidence       = employee{"Eze Confidence", "AIS/012", domain.DeptCoordination}
	reginaTempeDike     = employee{"Regina tempe dike", "AIS/011", domain.DeptJanitorial}
)

var employeePool = []employee{
	davidShadreck, favourAchumba, samuelOnyeocha, ifeanyichukwuChibha, ezeConfidence, reginaTempeDike,
}

var taskPool = []struct {
	category    domain.TaskCategory
	description string
}{
	{domain.CategoryContractTender, "Reviewed new tender documents."},
	{domain.CategoryInvoice, "Processed vendor invoices."},
	{domain.CategoryMaintenance, "Performed server maintenance."},
	{domain.CategoryReporting, "Generated weekly performance report."},
	{domain.CategoryCoordination, "Organized team sync meeting."},
	{domain.CategoryHouseKeeping, "Restocked office supplies."},
	{domain.CategoryIT, "Resolved IT support tickets."},
}

var seedEntries = []seedEntry{
	{davidShadreck, domain.CategoryContractTender, "Finalized submission of Ingentia Energies tender.", domain.StatusComplete, 8, 5, "", 6},
	{favourAchumba, domain.CategoryInvoice, "Worked on EIOSN invoices and submitted to payable.", domain.StatusComplete, 7.5, 4, "System slowness and network issue.", 5},
	{samuelOnyeocha, domain.CategoryMaintenance, "Worked on maintenance of our generator here", domain.StatusInProgress, 6, 3, "The plumber did not turn up.", 5},
	{ifeanyichukwuChibha, domain.CategoryReporting, "Documentation of reports as requested.", domain.StatusComplete, 8, 5, "", 4},
	{ezeConfidence, domain.CategoryCoordination, "Put Aluka through on how to write meeting rep", domain.StatusInProgress, 5, 4, "Only that the nylon on the doors are loose.", 4},
	{reginaTempeDike, domain.CategoryHouseKeeping, "Cleaning, mopping and sweeping.", domain.StatusComplete, 8, 5, "No issues", 3},
	{davidShadreck, domain.CategoryTraining, "Had training on invoicing.", domain.StatusInProgress, 4, 4, "", 3},
	{favourAchumba, domain.CategoryCoordination, "Taking records of inventory.", domain.StatusComplete, 7, 5, "No issues", 2},
	{samuelOnyeocha, domain.CategoryIT, "Troubleshoot network connectivity issues.", domain.StatusComplete, 8.5, 5, "", 2},
	{ezeConfidence, domain.CategoryAdmin, "Assisted HR in updating petty cash book.", domain.StatusComplete, 6, 4, "No power to on the computers.", 1},
	{ifeanyichukwuChibha, domain.CategoryMaintenance, "Supervised the cleaning done by the janitors.", domain.StatusComplete, 8.5, 5, "", 1},
	{davidShadreck, domain.CategoryReporting, "Compiled weekly data analysis report.", domain.StatusComplete, 7, 5, "", 0},
	{favourAchumba, domain.CategoryProcurement, "Sent email to Rohan on Interns update.", domain.StatusInProgress, 8, 4, "Disturbance from vendors that want to see Rohan", 0},
	{reginaTempeDike, domain.CategoryInventory, "Taking record of every item that has be moved from the store", domain.StatusInProgress, 7.5, 3, "No issues", 0},
}

// SeedLogs returns the demo collection dated relative to today. Ids are
// stable across calls so seed logs never duplicate on reload.
func SeedLogs(today time.Time) []domain.ProductivityLog {
	day := domain.DateOf(today)
	logs := make([]domain.ProductivityLog, len(seedEntries))
	for i, e := range seedEntries {
		logs[i] = domain.ProductivityLog{
			ID:                 SeedID(i),
			EmployeeName:       e.employee.name,
			EmployeeID:         e.employee.id,
			Department:         e.employee.department,
			Date:               day.AddDate(0, 0, -e.daysAgo),
			TaskCategory:       e.category,
			TaskDescription:    e.description,
			TaskStatus:         e.status,
			Hours:              e.hours,
			ProductivityRating: e.rating,
			Blockers:           e.blockers,
		}
	}
	return logs
}

// SeedID is the id of the i-th seed log.
func SeedID(i int) string {
	return uuid.NewSHA1(seedNamespace, []byte(fmt.Sprintf("seed-%d", i))).String()
}

// IsSeedID reports whether id belongs to the demo collection.
func IsSeedID(id string) bool {
	for i := range seedEntries {
		if SeedID(i) == id {
			return true
		}
	}
	return false
}

// Generator produces random logs from the demo employee and task pools.
type Generator struct {
	rng   *rand.Rand
	newID func() string
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, newID: uuid.NewString}
}

// Log returns one random log on date: 4-8 hours in half-hour steps, a 3-5
// rating and a 30% chance of a blocker.
func (g *Generator) Log(date time.Time) domain.ProductivityLog {
	emp := employeePool[g.rng.IntN(len(employeePool))]
	task := taskPool[g.rng.IntN(len(taskPool))]
	statuses := domain.TaskStatuses()

	var blockers string
	if g.rng.Float64() > 0.7 {
		blockers = seedBlocker
	}

	return domain.ProductivityLog{
		ID:                 g.newID(),
		EmployeeName:       emp.name,
		EmployeeID:         emp.id,
		Department:         emp.department,
		Date:               domain.DateOf(date),
		TaskCategory:       task.category,
		TaskDescription:    task.description,
		TaskStatus:         statuses[g.rng.IntN(len(statuses))],
		Hours:              4 + float64(g.rng.IntN(9))*0.5,
		ProductivityRating: 3 + g.rng.IntN(3),
		Blockers:           blockers,
	}
}

// Logs returns n random logs dated within the given number of days ending
// at today.
func (g *Generator) Logs(n, days int, today time.Time) []domain.ProductivityLog {
	if days < 1 {
		days = 1
	}
	end := domain.DateOf(today)
	logs := make([]domain.ProductivityLog, n)
	for i := range n {
		logs[i] = g.Log(end.AddDate(0, 0, -g.rng.IntN(days)))
	}
	return logs
}
