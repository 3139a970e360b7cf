package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
	"github.com/MetinovAdik/kopuro-frontend/internal/dto"
	"github.com/MetinovAdik/kopuro-frontend/pkg/telemetry"
)

// defaultAdminListLimit caps admin list pages when the request omits one.
const defaultAdminListLimit = 100

// AdminBackend is the slice of the backend client used by AdminService.
type AdminBackend interface {
	Users(ctx context.Context, token string, skip, limit int) ([]domain.User, error)
	UnconfirmedWorkers(ctx context.Context, token string, skip, limit int) ([]domain.User, error)
	ConfirmWorker(ctx context.Context, token string, userID int64) (*domain.User, error)
}

// AdminService exposes user administration to the admin area.
type AdminService interface {
	// Overview fetches both user lists concurrently
	Overview(ctx context.Context, token string, req *dto.ListUsersRequest) (*dto.AdminOverview, error)
	// Users lists all accounts
	Users(ctx context.Context, token string, req *dto.ListUsersRequest) ([]dto.UserResponse, error)
	// UnconfirmedWorkers lists workers awaiting confirmation
	UnconfirmedWorkers(ctx context.Context, token string, req *dto.ListUsersRequest) ([]dto.UserResponse, error)
	// ConfirmWorker confirms one worker account
	ConfirmWorker(ctx context.Context, token string, userID int64) (*dto.UserResponse, error)
}

type adminService struct {
	backend AdminBackend
}

// NewAdminService creates a new AdminService
func NewAdminService(backend AdminBackend) AdminService {
	return &adminService{backend: backend}
}

func normalizeListRequest(req *dto.ListUsersRequest) (skip, limit int) {
	if req == nil {
		return 0, defaultAdminListLimit
	}
	skip = req.Skip
	limit = req.Limit
	if limit <= 0 {
		limit = defaultAdminListLimit
	}
	return skip, limit
}

func toUserResponses(users []domain.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *dto.NewUserResponse(&users[i]))
	}
	return out
}

func (s *adminService) Overview(ctx context.Context, token string, req *dto.ListUsersRequest) (*dto.AdminOverview, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.admin.overview")
	defer span.End()

	skip, limit := normalizeListRequest(req)
	overview := &dto.AdminOverview{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := s.backend.Users(gctx, token, skip, limit)
		if err != nil {
			return err
		}
		overview.Users = toUserResponses(users)
		return nil
	})
	g.Go(func() error {
		workers, err := s.backend.UnconfirmedWorkers(gctx, token, skip, limit)
		if err != nil {
			return err
		}
		overview.UnconfirmedWorkers = toUserResponses(workers)
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("users", len(overview.Users)),
		attribute.Int("unconfirmed_workers", len(overview.UnconfirmedWorkers)),
	)
	span.SetStatus(codes.Ok, "")
	return overview, nil
}

func (s *adminService) Users(ctx context.Context, token string, req *dto.ListUsersRequest) ([]dto.UserResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.admin.users")
	defer span.End()

	skip, limit := normalizeListRequest(req)
	users, err := s.backend.Users(ctx, token, skip, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return toUserResponses(users), nil
}

func (s *adminService) UnconfirmedWorkers(ctx context.Context, token string, req *dto.ListUsersRequest) ([]dto.UserResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.admin.unconfirmed_workers")
	defer span.End()

	skip, limit := normalizeListRequest(req)
	workers, err := s.backend.UnconfirmedWorkers(ctx, token, skip, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return toUserResponses(workers), nil
}

func (s *adminService) ConfirmWorker(ctx context.Context, token string, userID int64) (*dto.UserResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.admin.confirm_worker")
	defer span.End()

	span.SetAttributes(attribute.Int64("user_id", userID))

	user, err := s.backend.ConfirmWorker(ctx, token, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return dto.NewUserResponse(user), nil
}
