package user

import (
	"context"
	"errors"
	"urlmonitor/pkg/apperror"
	"urlmonitor/pkg/db"
	"urlmonitor/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
)

type Repository struct {
	dbExecutor db.DBTX
	logger     *zerolog.Logger
}

func NewRepository(dbExecutor db.DBTX, logger *zerolog.Logger) *Repository {
	return &Repository{
		dbExecutor: dbExecutor,
		logger:     logger,
	}
}

const userColumns = `id, username, email, password_hash, role, is_active, created_at, created_by_id`

func scanUser(row pgx.Row) (User, error) {
	var u User
	var id, createdBy pgtype.UUID
	var email pgtype.Text
	err := row.Scan(&id, &u.Username, &email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &createdBy)
	if err != nil {
		return User{}, err
	}
	u.ID = utils.FromPgUUID(id)
	u.Email = utils.FromPgText(email)
	u.CreatedByID = utils.FromPgUUIDPtr(createdBy)
	return u, nil
}

func (r *Repository) Create(ctx context.Context, cmd CreateUserCmd, passwordHash string) (uuid.UUID, error) {
	const op string = "repo.user.create"

	row := r.dbExecutor.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role, is_active, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		cmd.Username, utils.ToPgText(cmd.Email), passwordHash, cmd.Role, cmd.IsActive, utils.ToPgUUIDPtr(cmd.CreatedByID),
	)

	var id pgtype.UUID
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uuid.UUID{}, &apperror.Error{
				Kind:    apperror.AlreadyExists,
				Op:      op,
				Message: "user with this username or email already exists",
			}
		}
		return uuid.UUID{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	return utils.FromPgUUID(id), nil
}

func (r *Repository) GetByID(ctx context.Context, userID uuid.UUID) (User, error) {
	const op string = "repo.user.get_by_id"

	row := r.dbExecutor.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, utils.ToPgUUID(userID))
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, userNotFound(op)
		}
		return User{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	return u, nil
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (User, error) {
	const op string = "repo.user.get_by_username"

	row := r.dbExecutor.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, userNotFound(op)
		}
		return User{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	return u, nil
}

func (r *Repository) GetAll(ctx context.Context) ([]User, error) {
	const op string = "repo.user.get_all"

	rows, err := r.dbExecutor.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	return users, nil
}

func (r *Repository) Update(ctx context.Context, u User) error {
	const op string = "repo.user.update"

	tag, err := r.dbExecutor.Exec(ctx, `
		UPDATE users
		SET username = $2, email = $3, password_hash = $4, role = $5, is_active = $6
		WHERE id = $1`,
		utils.ToPgUUID(u.ID), u.Username, utils.ToPgText(u.Email), u.PasswordHash, u.Role, u.IsActive,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return &apperror.Error{
				Kind:    apperror.AlreadyExists,
				Op:      op,
				Message: "user with this username or email already exists",
			}
		}
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	if tag.RowsAffected() == 0 {
		return userNotFound(op)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, userID uuid.UUID) error {
	const op string = "repo.user.delete"

	tag, err := r.dbExecutor.Exec(ctx, `DELETE FROM users WHERE id = $1`, utils.ToPgUUID(userID))
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	if tag.RowsAffected() == 0 {
		return userNotFound(op)
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	const op string = "repo.user.count"

	var n int
	if err := r.dbExecutor.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, utils.WrapRepoError(op, err, false, r.logger)
	}
	return n, nil
}

func userNotFound(op string) error {
	return &apperror.Error{
		Kind:    apperror.NotFound,
		Op:      op,
		Message: "user not found",
	}
}
