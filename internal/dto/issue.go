package dto

import (
	"strings"
	"time"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
	"github.com/MetinovAdik/kopuro-frontend/internal/timeline"
)

// SubmitIssueRequest represents a citizen complaint submission
type SubmitIssueRequest struct {
	Text                 string `json:"text" binding:"required"`
	SubmissionTypeByUser string `json:"submission_type_by_user" binding:"required,oneof=жалоба просьба"`
	SourceUserID         string `json:"source_user_id"`
	SourceUsername       string `json:"source_username"`
	UserFirstName        string `json:"user_first_name"`
}

// Normalize trims free-text fields before validation or forwarding
func (r *SubmitIssueRequest) Normalize() {
	r.Text = strings.TrimSpace(r.Text)
	r.SourceUserID = strings.TrimSpace(r.SourceUserID)
	r.SourceUsername = strings.TrimSpace(r.SourceUsername)
	r.UserFirstName = strings.TrimSpace(r.UserFirstName)
}

// SubmitIssueResponse reports the accepted submission back to the citizen
type SubmitIssueResponse struct {
	ID            int64              `json:"id"`
	Status        domain.IssueStatus `json:"status"`
	StatusLabel   string             `json:"status_label"`
	Message       string             `json:"message"`
	AnalysisError string             `json:"analysis_error,omitempty"`
}

// TrackRequest identifies the contact whose issues to list
type TrackRequest struct {
	Contact string `form:"contact" binding:"required"`
	Limit   int    `form:"limit"`
}

// TimelineStep is one rendered milestone of an issue's progress
type TimelineStep struct {
	Key      domain.IssueStatus `json:"key"`
	Label    string             `json:"label"`
	Progress timeline.Progress  `json:"progress"`
}

// TrackedIssue is one issue prepared for the tracking view
type TrackedIssue struct {
	ID                int64              `json:"id"`
	Text              string             `json:"text"`
	Status            domain.IssueStatus `json:"status"`
	StatusLabel       string             `json:"status_label"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         *time.Time         `json:"updated_at,omitempty"`
	ResolutionDetails string             `json:"resolution_details,omitempty"`
	Timeline          []TimelineStep     `json:"timeline"`
	CanLeaveFeedback  bool               `json:"can_leave_feedback"`
}

// FeedbackRequest represents resolution feedback from the citizen
type FeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

// Normalize trims the feedback text
func (r *FeedbackRequest) Normalize() {
	r.Feedback = strings.TrimSpace(r.Feedback)
}
