package notification

import "time"

type UpdateSettingsRequest struct {
	SMTPHost             *string `json:"smtp_host" validate:"omitempty,max=255"`
	SMTPPort             *int    `json:"smtp_port" validate:"omitempty,gt=0,lte=65535"`
	SMTPUsername         *string `json:"smtp_username" validate:"omitempty,max=255"`
	SMTPPassword         *string `json:"smtp_password" validate:"omitempty,max=255"`
	SMTPFromEmail        *string `json:"smtp_from_email" validate:"omitempty,email"`
	SMTPUseTLS           *bool   `json:"smtp_use_tls"`
	TelegramBotToken     *string `json:"telegram_bot_token" validate:"omitempty,max=255"`
	NotifyOnError        *bool   `json:"notify_on_error"`
	NotifyOnRecovery     *bool   `json:"notify_on_recovery"`
	NotifyOnStatusChange *bool   `json:"notify_on_status_change"`
	NotifyOnEveryCheck   *bool   `json:"notify_on_every_check"`
}

type SettingsResponse struct {
	ID                   string    `json:"id"`
	SMTPHost             string    `json:"smtp_host,omitempty"`
	SMTPPort             int       `json:"smtp_port"`
	SMTPUsername         string    `json:"smtp_username,omitempty"`
	SMTPFromEmail        string    `json:"smtp_from_email,omitempty"`
	SMTPUseTLS           bool      `json:"smtp_use_tls"`
	TelegramBotToken     string    `json:"telegram_bot_token,omitempty"`
	NotifyOnError        bool      `json:"notify_on_error"`
	NotifyOnRecovery     bool      `json:"notify_on_recovery"`
	NotifyOnStatusChange bool      `json:"notify_on_status_change"`
	NotifyOnEveryCheck   bool      `json:"notify_on_every_check"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func toSettingsResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		ID:                   s.ID.String(),
		SMTPHost:             s.SMTPHost,
		SMTPPort:             s.SMTPPort,
		SMTPUsername:         s.SMTPUsername,
		SMTPFromEmail:        s.SMTPFromEmail,
		SMTPUseTLS:           s.SMTPUseTLS,
		TelegramBotToken:     s.TelegramBotToken,
		NotifyOnError:        s.NotifyOnError,
		NotifyOnRecovery:     s.NotifyOnRecovery,
		NotifyOnStatusChange: s.NotifyOnStatusChange,
		NotifyOnEveryCheck:   s.NotifyOnEveryCheck,
		UpdatedAt:            s.UpdatedAt,
	}
}

type CreateRecipientRequest struct {
	Channel  string `json:"channel" validate:"required,oneof=email telegram"`
	Address  string `json:"address" validate:"required,max=255"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	IsActive *bool  `json:"is_active"`
}

type UpdateRecipientRequest struct {
	Channel  *string `json:"channel" validate:"omitempty,oneof=email telegram"`
	Address  *string `json:"address" validate:"omitempty,max=255"`
	Name     *string `json:"name" validate:"omitempty,max=100"`
	IsActive *bool   `json:"is_active"`
}

type RecipientResponse struct {
	ID        string    `json:"id"`
	Channel   string    `json:"channel"`
	Address   string    `json:"address"`
	Name      string    `json:"name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toRecipientResponse(r Recipient) RecipientResponse {
	return RecipientResponse{
		ID:        r.ID.String(),
		Channel:   r.Channel,
		Address:   r.Address,
		Name:      r.Name,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
	}
}

type TestNotificationRequest struct {
	Channel string `json:"channel" validate:"required,oneof=email telegram"`
	Address string `json:"address" validate:"required,max=255"`
}
