package meeting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/evida/coach-api/internal/domain"
)

// CoachingContext converts a raw meeting record into the structured
// coaching context embedded in the prompt. Plan domains are walked in
// sorted order so the result is stable for a given record.
func CoachingContext(record *domain.Meeting) domain.CoachingContext {
	ctx := domain.CoachingContext{
		Source:        "scribe_summary",
		CoachBrief:    []string{},
		Goals:         []domain.Goal{},
		Constraints:   []string{},
		Plan:          domain.ActionPlan{WeeklyActions: []domain.WeeklyAction{}},
		OpenQuestions: []string{},
	}
	if record == nil {
		return ctx
	}

	ctx.MeetingID = record.ID
	ctx.MeetingDate = record.CreatedAt

	if record.PatientDisplayName != "" {
		ctx.CoachBrief = append(ctx.CoachBrief,
			fmt.Sprintf("Imported coaching call for %s.", record.PatientDisplayName))
	}

	domains := make([]string, 0, len(record.Plan))
	for name := range record.Plan {
		domains = append(domains, name)
	}
	sort.Strings(domains)

	goalSeq := 0
	for _, name := range domains {
		entry := record.Plan[name]
		if baseline := strings.TrimSpace(entry.Baseline); baseline != "" {
			ctx.CoachBrief = append(ctx.CoachBrief,
				fmt.Sprintf("%s baseline: %s", name, baseline))
		}
		for _, target := range entry.SmartGoals {
			target = strings.TrimSpace(target)
			if target == "" {
				continue
			}
			goalSeq++
			ctx.Goals = append(ctx.Goals, domain.Goal{
				ID:       fmt.Sprintf("g%d", goalSeq),
				Domain:   name,
				Target:   target,
				Priority: "medium",
			})
			ctx.Plan.WeeklyActions = append(ctx.Plan.WeeklyActions, domain.WeeklyAction{
				ID:        fmt.Sprintf("a%d", goalSeq),
				Action:    target,
				Frequency: "weekly",
			})
		}
	}

	return ctx
}
