package user

import (
	"context"
	"urlmonitor/internals/security"
	"urlmonitor/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Service struct {
	repo   *Repository
	tokens *security.TokenService
	logger *zerolog.Logger
}

func NewService(repo *Repository, tokens *security.TokenService, logger *zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

// EnsureDefaultAdmin creates the bootstrap superadmin when the users table
// is empty, so a fresh install is immediately usable.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	const op string = "service.user.ensure_default_admin"

	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return &apperror.Error{Kind: apperror.Internal, Op: op, Err: err, Message: "failed to hash password"}
	}

	_, err = s.repo.Create(ctx, CreateUserCmd{
		Username: username,
		Role:     RoleSuperadmin,
		IsActive: true,
	}, hash)
	if err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("default superadmin created")
	return nil
}

func (s *Service) LogIn(ctx context.Context, cmd LogInCmd) (LogInResult, error) {
	const op string = "service.user.log_in"

	invalidCreds := &apperror.Error{
		Kind:    apperror.Unauthorised,
		Op:      op,
		Message: "invalid username or password",
	}

	u, err := s.repo.GetByUsername(ctx, cmd.Username)
	if err != nil {
		if apperror.IsKind(err, apperror.NotFound) {
			return LogInResult{}, invalidCreds
		}
		return LogInResult{}, err
	}
	if !u.IsActive {
		return LogInResult{}, invalidCreds
	}

	ok, err := security.ComparePassword(cmd.Password, u.PasswordHash)
	if err != nil {
		return LogInResult{}, &apperror.Error{Kind: apperror.Internal, Op: op, Err: err, Message: "failed to verify password"}
	}
	if !ok {
		return LogInResult{}, invalidCreds
	}

	token, err := s.tokens.GenerateAccessToken(security.RequestClaims{
		UserID:   u.ID.String(),
		Username: u.Username,
		Role:     u.Role,
	})
	if err != nil {
		return LogInResult{}, &apperror.Error{Kind: apperror.Internal, Op: op, Err: err, Message: "failed to issue token"}
	}

	return LogInResult{User: u, AccessToken: token}, nil
}

func (s *Service) CreateUser(ctx context.Context, cmd CreateUserCmd) (User, error) {
	const op string = "service.user.create_user"

	if cmd.Role == "" {
		cmd.Role = RoleEditor
	}
	if cmd.Role != RoleSuperadmin && cmd.Role != RoleEditor {
		return User{}, &apperror.Error{Kind: apperror.InvalidInput, Op: op, Message: "unknown role"}
	}

	hash, err := security.HashPassword(cmd.Password)
	if err != nil {
		return User{}, &apperror.Error{Kind: apperror.Internal, Op: op, Err: err, Message: "failed to hash password"}
	}

	id, err := s.repo.Create(ctx, cmd, hash)
	if err != nil {
		return User{}, err
	}
	return s.repo.GetByID(ctx, id)
}

type UpdateUserCmd struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
	IsActive *bool
}

// UpdateUser applies a partial update. actorID guards against a superadmin
// demoting or deactivating their own account.
func (s *Service) UpdateUser(ctx context.Context, actorID, userID uuid.UUID, cmd UpdateUserCmd) (User, error) {
	const op string = "service.user.update_user"

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}

	if cmd.Username != nil {
		u.Username = *cmd.Username
	}
	if cmd.Email != nil {
		u.Email = *cmd.Email
	}
	if cmd.Role != nil {
		if *cmd.Role != RoleSuperadmin && *cmd.Role != RoleEditor {
			return User{}, &apperror.Error{Kind: apperror.InvalidInput, Op: op, Message: "unknown role"}
		}
		if actorID == userID && u.Role == RoleSuperadmin && *cmd.Role != RoleSuperadmin {
			return User{}, &apperror.Error{Kind: apperror.Forbidden, Op: op, Message: "cannot change your own role"}
		}
		u.Role = *cmd.Role
	}
	if cmd.IsActive != nil {
		if actorID == userID && !*cmd.IsActive {
			return User{}, &apperror.Error{Kind: apperror.Forbidden, Op: op, Message: "cannot deactivate your own account"}
		}
		u.IsActive = *cmd.IsActive
	}
	if cmd.Password != nil {
		hash, err := security.HashPassword(*cmd.Password)
		if err != nil {
			return User{}, &apperror.Error{Kind: apperror.Internal, Op: op, Err: err, Message: "failed to hash password"}
		}
		u.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	const op string = "service.user.delete_user"

	if actorID == userID {
		return &apperror.Error{Kind: apperror.Forbidden, Op: op, Message: "cannot delete your own account"}
	}
	return s.repo.Delete(ctx, userID)
}

func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.GetAll(ctx)
}
