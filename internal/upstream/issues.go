package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
)

// SubmissionItem is the payload for POST /api/submit-issue/.
type SubmissionItem struct {
	Text                 string `json:"text"`
	SubmissionTypeByUser string `json:"submission_type_by_user"`
	Source               string `json:"source"`
	SourceUserID         string `json:"source_user_id"`
	SourceUsername       string `json:"source_username,omitempty"`
	UserFirstName        string `json:"user_first_name,omitempty"`
}

// AnalysisResult is the automated analysis attached to a fresh submission.
type AnalysisResult struct {
	ResponsibleDepartment string   `json:"responsible_department,omitempty"`
	ComplaintType         string   `json:"complaint_type,omitempty"`
	ComplaintCategory     string   `json:"complaint_category,omitempty"`
	ComplaintSubcategory  string   `json:"complaint_subcategory,omitempty"`
	AddressText           string   `json:"address_text,omitempty"`
	Latitude              *float64 `json:"latitude,omitempty"`
	Longitude             *float64 `json:"longitude,omitempty"`
	District              string   `json:"district,omitempty"`
	SeverityLevel         string   `json:"severity_level,omitempty"`
	ApplicantData         string   `json:"applicant_data,omitempty"`
	OtherDetails          string   `json:"other_details,omitempty"`
}

// SubmissionResponse is the reply from POST /api/submit-issue/. The backend
// runs its analysis synchronously, so the reply may already carry an
// analysis result or a processing error.
type SubmissionResponse struct {
	SavedRecordID        int64              `json:"saved_record_id"`
	OriginalText         string             `json:"original_text"`
	SubmissionTypeByUser string             `json:"submission_type_by_user"`
	Source               string             `json:"source"`
	SourceUserID         string             `json:"source_user_id"`
	Status               domain.IssueStatus `json:"status"`
	Analysis             *AnalysisResult    `json:"analysis,omitempty"`
	LLMProcessingError   string             `json:"llm_processing_error,omitempty"`
	Message              string             `json:"message"`
}

// SubmitIssue submits a new citizen complaint.
func (c *Client) SubmitIssue(ctx context.Context, item *SubmissionItem) (*SubmissionResponse, error) {
	var out SubmissionResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/submit-issue/",
		body:   item,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// IssuesByContact lists the issues submitted under a contact identifier.
func (c *Client) IssuesByContact(ctx context.Context, sourceUserID string, limit int) ([]domain.Issue, error) {
	query := url.Values{}
	query.Set("source_user_id", sourceUserID)
	query.Set("limit", strconv.Itoa(limit))

	var out []domain.Issue
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/issues/",
		query:  query,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// feedbackRequest is the payload for POST /api/issue/{id}/feedback.
type feedbackRequest struct {
	UserFeedbackOnResolution string `json:"user_feedback_on_resolution"`
}

// SubmitFeedback records the citizen's feedback on an issue's resolution.
func (c *Client) SubmitFeedback(ctx context.Context, issueID int64, feedback string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   fmt.Sprintf("/api/issue/%d/feedback", issueID),
		body:   &feedbackRequest{UserFeedbackOnResolution: feedback},
	}, nil)
}
