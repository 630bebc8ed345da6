package insight

import (
	"encoding/json"
	"fmt"

	"github.com/emiliopalmerini/worklog/internal/domain"
)

// MaxPromptLogs caps how many logs are embedded in a prompt.
const MaxPromptLogs = 50

const noBlockers = "None"

// PromptEntry is the reduced view of a log sent to the provider.
type PromptEntry struct {
	EmployeeName       string  `json:"employeeName"`
	Department         string  `json:"department"`
	TaskCategory       string  `json:"taskCategory"`
	TaskStatus         string  `json:"taskStatus"`
	Hours              float64 `json:"hours"`
	ProductivityRating int     `json:"productivityRating"`
	Blockers           string  `json:"blockers"`
}

// Entries reduces the first MaxPromptLogs logs, replacing empty blockers
// with "None".
func Entries(logs []domain.ProductivityLog) []PromptEntry {
	if len(logs) > MaxPromptLogs {
		logs = logs[:MaxPromptLogs]
	}
	out := make([]PromptEntry, len(logs))
	for i, l := range logs {
		blockers := l.Blockers
		if blockers == "" {
			blockers = noBlockers
		}
		out[i] = PromptEntry{
			EmployeeName:       l.EmployeeName,
			Department:         string(l.Department),
			TaskCategory:       string(l.TaskCategory),
			TaskStatus:         string(l.TaskStatus),
			Hours:              l.Hours,
			ProductivityRating: l.ProductivityRating,
			Blockers:           blockers,
		}
	}
	return out
}

const promptTemplate = `You are a senior business analyst and HR strategist reviewing weekly productivity logs for a corporate team.
Based on the following data, provide a concise summary in markdown format for leadership.

The summary must focus on business development and employee management insights. It should include:
1.  **Executive Summary:** A high-level overview of the team's weekly performance and its impact on business goals.
2.  **Performance Highlights & Areas for Improvement:** Identify top-performing employees or departments that are driving results. Also, pinpoint potential bottlenecks or areas where productivity is lagging.
3.  **Strategic Recommendations for Management:** Provide 2-3 clear, actionable recommendations. One should focus on process improvements for business development, and one should focus on employee management (e.g., training needs, recognition, workload balancing).

Maintain a strategic, data-driven tone. Do not exceed 200 words.

Data:
%s
`

// BuildPrompt renders the analyst prompt with the reduced logs as indented JSON.
func BuildPrompt(logs []domain.ProductivityLog) (string, error) {
	data, err := json.MarshalIndent(Entries(logs), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode prompt data: %w", err)
	}
	return fmt.Sprintf(promptTemplate, data), nil
}
