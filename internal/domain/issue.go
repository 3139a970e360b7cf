package domain

import "time"

// IssueStatus is the lifecycle status of a citizen issue as reported by the
// upstream backend.
type IssueStatus string

const (
	StatusNew                 IssueStatus = "new"
	StatusPendingAnalysis     IssueStatus = "pending_analysis"
	StatusAnalyzed            IssueStatus = "analyzed"
	StatusAnalysisFailed      IssueStatus = "analysis_failed"
	StatusInProgress          IssueStatus = "in_progress"
	StatusResolved            IssueStatus = "resolved"
	StatusRejected            IssueStatus = "rejected"
	StatusClosedUnresolved    IssueStatus = "closed_unresolved"
	StatusPendingUserFeedback IssueStatus = "pending_user_feedback"
	StatusClosed              IssueStatus = "closed"
)

// statusLabels are the citizen-facing labels rendered by the portal.
var statusLabels = map[IssueStatus]string{
	StatusNew:                 "Новая заявка",
	StatusPendingAnalysis:     "Ожидает анализа",
	StatusAnalyzed:            "Проанализировано",
	StatusAnalysisFailed:      "Ошибка анализа",
	StatusInProgress:          "В работе / Отправлено в ответственный орган",
	StatusResolved:            "Решено / Рассмотрено",
	StatusRejected:            "Отклонено",
	StatusClosedUnresolved:    "Закрыто (не решено)",
	StatusPendingUserFeedback: "Ожидает вашего отзыва",
	StatusClosed:              "Закрыто",
}

// Label returns the display label for the status, falling back to the raw
// value for statuses the portal does not know about.
func (s IssueStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Issue is a citizen complaint/request record as served by the upstream
// backend. Field names follow the upstream JSON contract.
type Issue struct {
	ID                       int64       `json:"id"`
	OriginalComplaintText    string      `json:"original_complaint_text"`
	SubmissionTypeByUser     string      `json:"submission_type_by_user,omitempty"`
	Source                   string      `json:"source"`
	SourceUserID             string      `json:"source_user_id"`
	SourceUsername           string      `json:"source_username,omitempty"`
	UserFirstName            string      `json:"user_first_name,omitempty"`
	ResponsibleDepartment    string      `json:"responsible_department,omitempty"`
	ComplaintType            string      `json:"complaint_type,omitempty"`
	ComplaintCategory        string      `json:"complaint_category,omitempty"`
	ComplaintSubcategory     string      `json:"complaint_subcategory,omitempty"`
	AddressText              string      `json:"address_text,omitempty"`
	Latitude                 *float64    `json:"latitude,omitempty"`
	Longitude                *float64    `json:"longitude,omitempty"`
	District                 string      `json:"district,omitempty"`
	SeverityLevel            string      `json:"severity_level,omitempty"`
	ApplicantData            string      `json:"applicant_data,omitempty"`
	OtherDetails             string      `json:"other_details,omitempty"`
	Status                   IssueStatus `json:"status"`
	LLMProcessingError       string      `json:"llm_processing_error,omitempty"`
	CreatedAt                time.Time   `json:"created_at"`
	UpdatedAt                *time.Time  `json:"updated_at,omitempty"`
	ResolvedAt               *time.Time  `json:"resolved_at,omitempty"`
	ResolutionDetails        string      `json:"resolution_details,omitempty"`
	UserFeedbackOnResolution string      `json:"user_feedback_on_resolution,omitempty"`
}

// CanLeaveFeedback reports whether the citizen may submit feedback on the
// issue's resolution. Feedback is collected once, from the moment the issue
// is resolved until the citizen leaves it.
func (i *Issue) CanLeaveFeedback() bool {
	if i.UserFeedbackOnResolution != "" {
		return false
	}
	return i.Status == StatusResolved || i.Status == StatusPendingUserFeedback
}
