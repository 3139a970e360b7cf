package service

import (
	"context"
	"errors"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
	"github.com/MetinovAdik/kopuro-frontend/internal/dto"
	"github.com/MetinovAdik/kopuro-frontend/internal/timeline"
	"github.com/MetinovAdik/kopuro-frontend/internal/upstream"
	"github.com/MetinovAdik/kopuro-frontend/pkg/telemetry"
)

var (
	ErrTextRequired     = errors.New("complaint text is required")
	ErrContactRequired  = errors.New("contact identifier is required")
	ErrFeedbackRequired = errors.New("feedback must not be empty")
)

// submissionSource marks issues submitted through the web portal.
const submissionSource = "web_form"

// defaultTrackLimit caps how many issues one contact lookup returns.
const defaultTrackLimit = 100

// IssueBackend is the slice of the backend client used by IssueService.
type IssueBackend interface {
	SubmitIssue(ctx context.Context, item *upstream.SubmissionItem) (*upstream.SubmissionResponse, error)
	IssuesByContact(ctx context.Context, sourceUserID string, limit int) ([]domain.Issue, error)
	SubmitFeedback(ctx context.Context, issueID int64, feedback string) error
}

// IssueService handles citizen complaint submission and tracking.
type IssueService interface {
	// Submit forwards a complaint to the backend
	Submit(ctx context.Context, req *dto.SubmitIssueRequest) (*dto.SubmitIssueResponse, error)
	// Track lists a contact's issues, newest first, with rendered timelines
	Track(ctx context.Context, req *dto.TrackRequest) ([]dto.TrackedIssue, error)
	// LeaveFeedback records resolution feedback on one issue
	LeaveFeedback(ctx context.Context, issueID int64, req *dto.FeedbackRequest) error
}

type issueService struct {
	backend    IssueBackend
	milestones []timeline.Milestone
}

// NewIssueService creates a new IssueService
func NewIssueService(backend IssueBackend) IssueService {
	return &issueService{
		backend:    backend,
		milestones: timeline.Milestones(),
	}
}

func (s *issueService) Submit(ctx context.Context, req *dto.SubmitIssueRequest) (*dto.SubmitIssueResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.issue.submit")
	defer span.End()

	req.Normalize()
	// business-rule checks happen before any network call
	if req.Text == "" {
		span.SetStatus(codes.Error, "empty text")
		return nil, ErrTextRequired
	}
	if req.SourceUserID == "" {
		span.SetStatus(codes.Error, "empty contact")
		return nil, ErrContactRequired
	}

	result, err := s.backend.SubmitIssue(ctx, &upstream.SubmissionItem{
		Text:                 req.Text,
		SubmissionTypeByUser: req.SubmissionTypeByUser,
		Source:               submissionSource,
		SourceUserID:         req.SourceUserID,
		SourceUsername:       req.SourceUsername,
		UserFirstName:        req.UserFirstName,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("issue_id", result.SavedRecordID),
		attribute.String("status", string(result.Status)),
	)
	span.SetStatus(codes.Ok, "")

	return &dto.SubmitIssueResponse{
		ID:            result.SavedRecordID,
		Status:        result.Status,
		StatusLabel:   result.Status.Label(),
		Message:       result.Message,
		AnalysisError: result.LLMProcessingError,
	}, nil
}

func (s *issueService) Track(ctx context.Context, req *dto.TrackRequest) ([]dto.TrackedIssue, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.issue.track")
	defer span.End()

	contact := req.Contact
	if contact == "" {
		span.SetStatus(codes.Error, "empty contact")
		return nil, ErrContactRequired
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultTrackLimit
	}

	issues, err := s.backend.IssuesByContact(ctx, contact, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].CreatedAt.After(issues[j].CreatedAt)
	})

	tracked := make([]dto.TrackedIssue, 0, len(issues))
	for i := range issues {
		tracked = append(tracked, s.toTrackedIssue(&issues[i]))
	}

	span.SetAttributes(attribute.Int("count", len(tracked)))
	span.SetStatus(codes.Ok, "")
	return tracked, nil
}

func (s *issueService) toTrackedIssue(issue *domain.Issue) dto.TrackedIssue {
	plan := timeline.Plan(issue.Status, s.milestones)
	steps := make([]dto.TimelineStep, 0, len(plan))
	for _, step := range plan {
		steps = append(steps, dto.TimelineStep{
			Key:      step.Key,
			Label:    step.Label,
			Progress: step.Progress,
		})
	}

	return dto.TrackedIssue{
		ID:                issue.ID,
		Text:              issue.OriginalComplaintText,
		Status:            issue.Status,
		StatusLabel:       issue.Status.Label(),
		CreatedAt:         issue.CreatedAt,
		UpdatedAt:         issue.UpdatedAt,
		ResolutionDetails: issue.ResolutionDetails,
		Timeline:          steps,
		CanLeaveFeedback:  issue.CanLeaveFeedback(),
	}
}

func (s *issueService) LeaveFeedback(ctx context.Context, issueID int64, req *dto.FeedbackRequest) error {
	ctx, span := telemetry.StartSpan(ctx, "service.issue.leave_feedback")
	defer span.End()

	req.Normalize()
	if req.Feedback == "" {
		span.SetStatus(codes.Error, "empty feedback")
		return ErrFeedbackRequired
	}

	if err := s.backend.SubmitFeedback(ctx, issueID, req.Feedback); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int64("issue_id", issueID))
	span.SetStatus(codes.Ok, "")
	return nil
}
