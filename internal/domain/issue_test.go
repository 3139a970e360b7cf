package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssue_CanLeaveFeedback(t *testing.T) {
	tests := []struct {
		name     string
		status   IssueStatus
		feedback string
		want     bool
	}{
		{"resolved with no feedback", StatusResolved, "", true},
		{"pending feedback", StatusPendingUserFeedback, "", true},
		{"resolved with feedback already left", StatusResolved, "спасибо", false},
		{"pending feedback already left", StatusPendingUserFeedback, "спасибо", false},
		{"still in progress", StatusInProgress, "", false},
		{"rejected", StatusRejected, "", false},
		{"closed", StatusClosed, "", false},
		{"new", StatusNew, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := &Issue{Status: tt.status, UserFeedbackOnResolution: tt.feedback}
			assert.Equal(t, tt.want, issue.CanLeaveFeedback())
		})
	}
}

func TestIssueStatus_Label(t *testing.T) {
	assert.Equal(t, "Решено / Рассмотрено", StatusResolved.Label())
	assert.Equal(t, "Ожидает вашего отзыва", StatusPendingUserFeedback.Label())

	// unknown statuses render as-is
	assert.Equal(t, "escalated", IssueStatus("escalated").Label())
}
