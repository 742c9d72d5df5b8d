package notification

import (
	"context"
	"fmt"
	"sync"
	"urlmonitor/internals/modules/monitor"
	"urlmonitor/pkg/apperror"
	"urlmonitor/pkg/mailer"

	"github.com/rs/zerolog"
)

// EmailSender delivers one plain-text email.
type EmailSender interface {
	Send(ctx context.Context, cfg mailer.SMTPConfig, to, subject, body string) error
}

// TelegramSender delivers one HTML message to a chat.
type TelegramSender interface {
	Send(ctx context.Context, token, chatID, html string) error
}

// Dispatcher fans a notification out to every active recipient. Recipients
// are delivered independently: one failure never stops the others, and the
// caller only ever sees the per-recipient breakdown.
type Dispatcher struct {
	repo     *Repository
	email    EmailSender
	telegram TelegramSender
	logger   *zerolog.Logger
}

func NewDispatcher(repo *Repository, email EmailSender, telegram TelegramSender, logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		email:    email,
		telegram: telegram,
		logger:   logger,
	}
}

// Settings exposes the lazily-created global settings row.
func (d *Dispatcher) Settings(ctx context.Context) (Settings, error) {
	return d.repo.GetOrCreateSettings(ctx)
}

// Dispatch sends the event for the URL to all active recipients. The
// notify-on-error and notify-on-recovery toggles gate here: a status-change
// event counts as a non-recovery alert, an every-check event is forced.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event, m monitor.MonitoredURL) DispatchResult {
	settings, err := d.repo.GetOrCreateSettings(ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("failed to load notification settings")
		return DispatchResult{Skipped: true}
	}

	if ev != EventRegularCheck {
		if ev == EventRecovery && !settings.NotifyOnRecovery {
			return DispatchResult{Skipped: true}
		}
		if ev != EventRecovery && !settings.NotifyOnError {
			return DispatchResult{Skipped: true}
		}
	}

	subject, plain, html := Format(ev, m)
	return d.fanOut(ctx, settings, subject, plain, html)
}

func (d *Dispatcher) fanOut(ctx context.Context, settings Settings, subject, plain, html string) DispatchResult {
	var (
		res DispatchResult
		mu  sync.Mutex
		wg  sync.WaitGroup
	)

	smtpCfg := mailer.SMTPConfig{
		Host:      settings.SMTPHost,
		Port:      settings.SMTPPort,
		Username:  settings.SMTPUsername,
		Password:  settings.SMTPPassword,
		FromEmail: settings.SMTPFromEmail,
		UseTLS:    settings.SMTPUseTLS,
	}

	emailRecipients, err := d.repo.ListActiveRecipients(ctx, ChannelEmail)
	if err != nil {
		d.logger.Error().Err(err).Msg("failed to list email recipients")
	}
	for _, rec := range emailRecipients {
		wg.Add(1)
		go func(rec Recipient) {
			defer wg.Done()
			r := RecipientResult{Address: rec.Address, Success: true}
			if err := d.email.Send(ctx, smtpCfg, rec.Address, subject, plain); err != nil {
				d.logger.Warn().Err(err).Str("address", rec.Address).Msg("email delivery failed")
				r.Success = false
				r.Error = err.Error()
			}
			mu.Lock()
			res.Email = append(res.Email, r)
			mu.Unlock()
		}(rec)
	}

	telegramRecipients, err := d.repo.ListActiveRecipients(ctx, ChannelTelegram)
	if err != nil {
		d.logger.Error().Err(err).Msg("failed to list telegram recipients")
	}
	for _, rec := range telegramRecipients {
		wg.Add(1)
		go func(rec Recipient) {
			defer wg.Done()
			r := RecipientResult{Address: rec.Address, Success: true}
			if err := d.telegram.Send(ctx, settings.TelegramBotToken, rec.Address, html); err != nil {
				d.logger.Warn().Err(err).Str("chat_id", rec.Address).Msg("telegram delivery failed")
				r.Success = false
				r.Error = err.Error()
			}
			mu.Lock()
			res.Telegram = append(res.Telegram, r)
			mu.Unlock()
		}(rec)
	}

	wg.Wait()
	return res
}

// SendTest delivers the test message to one address on one channel.
func (d *Dispatcher) SendTest(ctx context.Context, channel, address string) error {
	const op string = "service.notification.send_test"

	settings, err := d.repo.GetOrCreateSettings(ctx)
	if err != nil {
		return err
	}

	subject, plain, html := TestMessage()

	switch channel {
	case ChannelEmail:
		err = d.email.Send(ctx, mailer.SMTPConfig{
			Host:      settings.SMTPHost,
			Port:      settings.SMTPPort,
			Username:  settings.SMTPUsername,
			Password:  settings.SMTPPassword,
			FromEmail: settings.SMTPFromEmail,
			UseTLS:    settings.SMTPUseTLS,
		}, address, subject, plain)
	case ChannelTelegram:
		err = d.telegram.Send(ctx, settings.TelegramBotToken, address, html)
	default:
		return &apperror.Error{
			Kind:    apperror.InvalidInput,
			Op:      op,
			Message: fmt.Sprintf("unknown channel: %s", channel),
		}
	}

	if err != nil {
		return &apperror.Error{
			Kind:    apperror.Dependency,
			Op:      op,
			Err:     err,
			Message: err.Error(),
		}
	}
	return nil
}
