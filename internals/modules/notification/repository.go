package notification

import (
	"context"
	"errors"
	"urlmonitor/pkg/apperror"
	"urlmonitor/pkg/db"
	"urlmonitor/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type Repository struct {
	db     db.DBTX
	logger *zerolog.Logger
}

func NewRepository(dbExecutor db.DBTX, logger *zerolog.Logger) *Repository {
	return &Repository{
		db:     dbExecutor,
		logger: logger,
	}
}

const settingsColumns = `id,
	COALESCE(smtp_host, ''), smtp_port, COALESCE(smtp_username, ''),
	COALESCE(smtp_password, ''), COALESCE(smtp_from_email, ''), smtp_use_tls,
	COALESCE(telegram_bot_token, ''),
	notify_on_error, notify_on_recovery, notify_on_status_change, notify_on_every_check,
	updated_at`

func (r *Repository) scanSettings(row pgx.Row) (Settings, error) {
	var s Settings
	err := row.Scan(&s.ID,
		&s.SMTPHost, &s.SMTPPort, &s.SMTPUsername,
		&s.SMTPPassword, &s.SMTPFromEmail, &s.SMTPUseTLS,
		&s.TelegramBotToken,
		&s.NotifyOnError, &s.NotifyOnRecovery, &s.NotifyOnStatusChange, &s.NotifyOnEveryCheck,
		&s.UpdatedAt)
	return s, err
}

// GetOrCreateSettings reads the single settings row, inserting defaults the
// first time anything asks for it.
func (r *Repository) GetOrCreateSettings(ctx context.Context) (Settings, error) {
	const op string = "repo.notification.get_or_create_settings"

	s, err := r.scanSettings(r.db.QueryRow(ctx,
		`SELECT `+settingsColumns+` FROM notification_settings LIMIT 1`))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Settings{}, utils.WrapRepoError(op, err, false, r.logger)
	}

	s, err = r.scanSettings(r.db.QueryRow(ctx, `
		INSERT INTO notification_settings DEFAULT VALUES
		RETURNING `+settingsColumns))
	if err != nil {
		return Settings{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	return s, nil
}

func (r *Repository) UpdateSettings(ctx context.Context, s Settings) (Settings, error) {
	const op string = "repo.notification.update_settings"

	updated, err := r.scanSettings(r.db.QueryRow(ctx, `
		UPDATE notification_settings
		SET smtp_host = $2, smtp_port = $3, smtp_username = $4, smtp_password = $5,
		    smtp_from_email = $6, smtp_use_tls = $7, telegram_bot_token = $8,
		    notify_on_error = $9, notify_on_recovery = $10,
		    notify_on_status_change = $11, notify_on_every_check = $12,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+settingsColumns,
		s.ID,
		utils.ToPgText(s.SMTPHost), s.SMTPPort, utils.ToPgText(s.SMTPUsername),
		utils.ToPgText(s.SMTPPassword), utils.ToPgText(s.SMTPFromEmail), s.SMTPUseTLS,
		utils.ToPgText(s.TelegramBotToken),
		s.NotifyOnError, s.NotifyOnRecovery, s.NotifyOnStatusChange, s.NotifyOnEveryCheck,
	))
	if err != nil {
		return Settings{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return updated, nil
}

const recipientColumns = `id, channel, address, COALESCE(name, ''), is_active, created_at`

func (r *Repository) CreateRecipient(ctx context.Context, cmd CreateRecipientCmd) (uuid.UUID, error) {
	const op string = "repo.notification.create_recipient"

	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO notification_recipients (channel, address, name, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		cmd.Channel, cmd.Address, utils.ToPgText(cmd.Name), cmd.IsActive,
	).Scan(&id)
	if err != nil {
		return uuid.UUID{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	return id, nil
}

func (r *Repository) GetRecipient(ctx context.Context, recipientID uuid.UUID) (Recipient, error) {
	const op string = "repo.notification.get_recipient"

	var rec Recipient
	err := r.db.QueryRow(ctx,
		`SELECT `+recipientColumns+` FROM notification_recipients WHERE id = $1`, recipientID,
	).Scan(&rec.ID, &rec.Channel, &rec.Address, &rec.Name, &rec.IsActive, &rec.CreatedAt)
	if err != nil {
		return Recipient{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return rec, nil
}

func (r *Repository) GetAllRecipients(ctx context.Context) ([]Recipient, error) {
	const op string = "repo.notification.get_all_recipients"
	return r.queryRecipients(ctx, op,
		`SELECT `+recipientColumns+` FROM notification_recipients ORDER BY created_at DESC`)
}

// ListActiveRecipients filters by channel; the dispatcher fans out per
// channel.
func (r *Repository) ListActiveRecipients(ctx context.Context, channel string) ([]Recipient, error) {
	const op string = "repo.notification.list_active_recipients"
	return r.queryRecipients(ctx, op,
		`SELECT `+recipientColumns+` FROM notification_recipients WHERE is_active AND channel = $1`,
		channel)
}

func (r *Repository) queryRecipients(ctx context.Context, op, sql string, args ...any) ([]Recipient, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	recipients := make([]Recipient, 0)
	for rows.Next() {
		var rec Recipient
		if err := rows.Scan(&rec.ID, &rec.Channel, &rec.Address, &rec.Name, &rec.IsActive, &rec.CreatedAt); err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}
		recipients = append(recipients, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	return recipients, nil
}

func (r *Repository) UpdateRecipient(ctx context.Context, rec Recipient) error {
	const op string = "repo.notification.update_recipient"

	tag, err := r.db.Exec(ctx, `
		UPDATE notification_recipients
		SET channel = $2, address = $3, name = $4, is_active = $5
		WHERE id = $1`,
		rec.ID, rec.Channel, rec.Address, utils.ToPgText(rec.Name), rec.IsActive,
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	if tag.RowsAffected() == 0 {
		return recipientNotFound(op)
	}
	return nil
}

func (r *Repository) DeleteRecipient(ctx context.Context, recipientID uuid.UUID) error {
	const op string = "repo.notification.delete_recipient"

	tag, err := r.db.Exec(ctx, `DELETE FROM notification_recipients WHERE id = $1`, recipientID)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	if tag.RowsAffected() == 0 {
		return recipientNotFound(op)
	}
	return nil
}

func recipientNotFound(op string) error {
	return &apperror.Error{
		Kind:    apperror.NotFound,
		Op:      op,
		Message: "recipient not found",
	}
}
