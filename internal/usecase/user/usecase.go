package user

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	domain "user-api/internal/domain/user"
	"user-api/pkg/logger"
)

const tracerName = "user-api/internal/usecase/user"

// Service implements Usecase without a backing store: nothing is persisted,
// lookups return the placeholder user and mutations are accepted and dropped.
type Service struct {
	log    *zap.Logger
	tracer trace.Tracer
}

// New creates a new Service. Spans go to the global tracer provider, which is
// a no-op unless telemetry was set up.
func New(log *zap.Logger) *Service {
	return &Service{log: log, tracer: otel.Tracer(tracerName)}
}

var _ Usecase = (*Service)(nil)

// CreateUser returns the submitted user unchanged.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CreateUser")
	defer span.End()

	logger.WithContext(ctx, s.log).Debug("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	u := domain.User{Name: in.Name, Email: in.Email}
	return &CreateUserResponse{Name: u.Name, Email: u.Email}, nil
}

// UpdateUser accepts the update without changing any state.
func (s *Service) UpdateUser(ctx context.Context, in UpdateUserRequest) error {
	ctx, span := s.tracer.Start(ctx, "UpdateUser", trace.WithAttributes(attribute.Int64("user.id", in.ID)))
	defer span.End()

	logger.WithContext(ctx, s.log).Debug("updating user", zap.Int64("id", in.ID))
	return nil
}

// DeleteUser accepts the deletion without changing any state.
func (s *Service) DeleteUser(ctx context.Context, in DeleteUserRequest) error {
	ctx, span := s.tracer.Start(ctx, "DeleteUser", trace.WithAttributes(attribute.Int64("user.id", in.ID)))
	defer span.End()

	logger.WithContext(ctx, s.log).Debug("deleting user", zap.Int64("id", in.ID))
	return nil
}

// GetUser returns the placeholder user for every id.
func (s *Service) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	ctx, span := s.tracer.Start(ctx, "GetUser", trace.WithAttributes(attribute.Int64("user.id", in.ID)))
	defer span.End()

	logger.WithContext(ctx, s.log).Debug("getting user", zap.Int64("id", in.ID))

	u := domain.Placeholder()
	return &GetUserResponse{Name: u.Name, Email: u.Email}, nil
}

// ListUsers always returns an empty, non-nil list.
func (s *Service) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ListUsers")
	defer span.End()

	logger.WithContext(ctx, s.log).Debug("listing users")
	return &ListUsersResponse{Users: []User{}}, nil
}
