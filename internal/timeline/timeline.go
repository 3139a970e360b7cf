// Package timeline classifies issue milestones for the tracking view.
//
// Classification is a pure computation over the issue's current status and a
// fixed ordered milestone list, so it can run on every render without shared
// state.
package timeline

import "github.com/MetinovAdik/kopuro-frontend/internal/domain"

// Progress is the rendering state of a single milestone.
type Progress string

const (
	Completed Progress = "completed"
	Current   Progress = "current"
	Failed    Progress = "failed"
	Skipped   Progress = "skipped"
	Pending   Progress = "pending"
)

// Milestone is one step of the canonical happy-path progression.
type Milestone struct {
	Key   domain.IssueStatus
	Label string
}

// Milestones returns the canonical happy-path progression. Terminal failure
// states (analysis_failed, rejected, closed_unresolved) are not milestones;
// they are mapped onto this list by Classify.
func Milestones() []Milestone {
	return []Milestone{
		{Key: domain.StatusNew, Label: "Новая заявка"},
		{Key: domain.StatusPendingAnalysis, Label: "Анализ заявки"},
		{Key: domain.StatusAnalyzed, Label: "Проанализировано"},
		{Key: domain.StatusInProgress, Label: "В работе"},
		{Key: domain.StatusResolved, Label: "Решено"},
		{Key: domain.StatusPendingUserFeedback, Label: "Оценка решения"},
		{Key: domain.StatusClosed, Label: "Закрыто"},
	}
}

func indexOf(milestones []Milestone, key domain.IssueStatus) int {
	for i, m := range milestones {
		if m.Key == key {
			return i
		}
	}
	return -1
}

// reachedIndex maps the issue's current status onto the milestone list.
// Failure statuses map to the last milestone of positive progression; a
// status with no mapping yields -1, rendering every milestone as pending.
func reachedIndex(current domain.IssueStatus, milestones []Milestone) (idx int, failed bool) {
	switch current {
	case domain.StatusAnalysisFailed:
		return indexOf(milestones, domain.StatusAnalyzed), true
	case domain.StatusRejected:
		return indexOf(milestones, domain.StatusInProgress), false
	case domain.StatusClosedUnresolved:
		return indexOf(milestones, domain.StatusResolved), false
	default:
		return indexOf(milestones, current), false
	}
}

// Classify returns the rendering state of the milestone identified by target,
// given the issue's current status.
func Classify(current, target domain.IssueStatus, milestones []Milestone) Progress {
	targetIdx := indexOf(milestones, target)
	reachedIdx, failed := reachedIndex(current, milestones)

	switch {
	case targetIdx < reachedIdx:
		return Completed
	case targetIdx == reachedIdx && targetIdx >= 0:
		if failed && target == domain.StatusAnalyzed {
			return Failed
		}
		return Current
	}

	// target is past the reached index (or the status is unmapped, in which
	// case reachedIdx is -1 and everything below it is pending)
	if failed && targetIdx > indexOf(milestones, domain.StatusAnalyzed) {
		return Skipped
	}
	if current == domain.StatusRejected && targetIdx > indexOf(milestones, domain.StatusInProgress) {
		return Skipped
	}
	if current == domain.StatusClosedUnresolved && targetIdx > indexOf(milestones, domain.StatusResolved) {
		return Skipped
	}
	return Pending
}

// Step is a milestone paired with its classification, ready for rendering.
type Step struct {
	Key      domain.IssueStatus `json:"key"`
	Label    string             `json:"label"`
	Progress Progress           `json:"progress"`
}

// Plan classifies every milestone for the given status and drops the skipped
// ones from display. The final closed milestone is always kept so the
// timeline ends with a terminal marker even on failure paths.
func Plan(current domain.IssueStatus, milestones []Milestone) []Step {
	steps := make([]Step, 0, len(milestones))
	for _, m := range milestones {
		progress := Classify(current, m.Key, milestones)
		if progress == Skipped && m.Key != domain.StatusClosed {
			continue
		}
		steps = append(steps, Step{Key: m.Key, Label: m.Label, Progress: progress})
	}
	return steps
}
