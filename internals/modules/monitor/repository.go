package monitor

import (
	"context"
	"urlmonitor/pkg/apperror"
	"urlmonitor/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type Repository struct {
	pool   *pgxpool.Pool
	logger *zerolog.Logger
}

func NewRepository(pool *pgxpool.Pool, logger *zerolog.Logger) *Repository {
	return &Repository{
		pool:   pool,
		logger: logger,
	}
}

const urlColumns = `id, url, COALESCE(referral_url, ''), COALESCE(name, ''),
	proxy_id, check_interval, is_active, created_at,
	last_check, last_status_code, last_response_time, last_error,
	last_final_url, last_redirect_count, last_redirect_code`

func scanURL(row pgx.Row) (MonitoredURL, error) {
	var (
		m            MonitoredURL
		proxyID      pgtype.UUID
		lastCheck    pgtype.Timestamptz
		lastStatus   pgtype.Int4
		lastRespTime pgtype.Int4
		lastError    pgtype.Text
		lastFinalURL pgtype.Text
		lastRedirect pgtype.Int4
	)
	err := row.Scan(&m.ID, &m.URL, &m.ReferralURL, &m.Name,
		&proxyID, &m.CheckInterval, &m.IsActive, &m.CreatedAt,
		&lastCheck, &lastStatus, &lastRespTime, &lastError,
		&lastFinalURL, &m.LastRedirectCount, &lastRedirect)
	if err != nil {
		return MonitoredURL{}, err
	}

	m.ProxyID = utils.FromPgUUIDPtr(proxyID)
	m.LastCheck = utils.FromPgTimestamptzPtr(lastCheck)
	m.LastStatusCode = utils.FromPgInt4Ptr(lastStatus)
	m.LastResponseTime = utils.FromPgInt4Ptr(lastRespTime)
	if lastError.Valid {
		m.LastError = &lastError.String
	}
	if lastFinalURL.Valid {
		m.LastFinalURL = &lastFinalURL.String
	}
	m.LastRedirectCode = utils.FromPgInt4Ptr(lastRedirect)
	return m, nil
}

func (r *Repository) Create(ctx context.Context, cmd CreateURLCmd) (uuid.UUID, error) {
	const op string = "repo.monitor.create"

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO monitored_urls (url, referral_url, name, proxy_id, check_interval, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		cmd.URL, utils.ToPgText(cmd.ReferralURL), utils.ToPgText(cmd.Name),
		utils.ToPgUUIDPtr(cmd.ProxyID), cmd.CheckInterval, cmd.IsActive,
	).Scan(&id)
	if err != nil {
		return uuid.UUID{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	return id, nil
}

func (r *Repository) GetByID(ctx context.Context, urlID uuid.UUID) (MonitoredURL, error) {
	const op string = "repo.monitor.get_by_id"

	m, err := scanURL(r.pool.QueryRow(ctx,
		`SELECT `+urlColumns+` FROM monitored_urls WHERE id = $1`, urlID))
	if err != nil {
		return MonitoredURL{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return m, nil
}

func (r *Repository) GetAll(ctx context.Context) ([]MonitoredURL, error) {
	const op string = "repo.monitor.get_all"

	return r.queryURLs(ctx, op,
		`SELECT `+urlColumns+` FROM monitored_urls ORDER BY created_at DESC`)
}

// ListActive returns the URLs the scheduler walks each tick.
func (r *Repository) ListActive(ctx context.Context) ([]MonitoredURL, error) {
	const op string = "repo.monitor.list_active"

	return r.queryURLs(ctx, op,
		`SELECT `+urlColumns+` FROM monitored_urls WHERE is_active ORDER BY created_at`)
}

func (r *Repository) queryURLs(ctx context.Context, op, sql string, args ...any) ([]MonitoredURL, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	urls := make([]MonitoredURL, 0)
	for rows.Next() {
		m, err := scanURL(rows)
		if err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}
		urls = append(urls, m)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	return urls, nil
}

func (r *Repository) Update(ctx context.Context, m MonitoredURL) error {
	const op string = "repo.monitor.update"

	tag, err := r.pool.Exec(ctx, `
		UPDATE monitored_urls
		SET url = $2, referral_url = $3, name = $4, proxy_id = $5,
		    check_interval = $6, is_active = $7
		WHERE id = $1`,
		m.ID, m.URL, utils.ToPgText(m.ReferralURL), utils.ToPgText(m.Name),
		utils.ToPgUUIDPtr(m.ProxyID), m.CheckInterval, m.IsActive,
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	if tag.RowsAffected() == 0 {
		return urlNotFound(op)
	}
	return nil
}

// Delete removes the URL; its check history goes with it (FK cascade).
func (r *Repository) Delete(ctx context.Context, urlID uuid.UUID) error {
	const op string = "repo.monitor.delete"

	tag, err := r.pool.Exec(ctx, `DELETE FROM monitored_urls WHERE id = $1`, urlID)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	if tag.RowsAffected() == 0 {
		return urlNotFound(op)
	}
	return nil
}

func (r *Repository) ExistsByURL(ctx context.Context, target string) (bool, error) {
	const op string = "repo.monitor.exists_by_url"

	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM monitored_urls WHERE url = $1)`, target,
	).Scan(&exists)
	if err != nil {
		return false, utils.WrapRepoError(op, err, false, r.logger)
	}
	return exists, nil
}

// RecordCheck appends one URLCheck row and overwrites the parent's cached
// snapshot in a single transaction, so a check is either fully recorded or
// not at all. Returns the check with its generated identity.
func (r *Repository) RecordCheck(ctx context.Context, check URLCheck, snap Snapshot) (URLCheck, error) {
	const op string = "repo.monitor.record_check"

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return URLCheck{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO url_checks (monitored_url_id, status_code, response_time, error_message, checked_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		check.MonitoredURLID,
		utils.ToPgInt4Ptr(check.StatusCode), utils.ToPgInt4Ptr(check.ResponseTime),
		textPtr(check.ErrorMessage), check.CheckedAt,
	).Scan(&check.ID)
	if err != nil {
		return URLCheck{}, utils.WrapRepoError(op, err, false, r.logger)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE monitored_urls
		SET last_check = $2, last_status_code = $3, last_response_time = $4,
		    last_error = $5, last_final_url = $6, last_redirect_count = $7,
		    last_redirect_code = $8
		WHERE id = $1`,
		check.MonitoredURLID,
		utils.ToPgTimestamptzPtr(snap.LastCheck),
		utils.ToPgInt4Ptr(snap.LastStatusCode), utils.ToPgInt4Ptr(snap.LastResponseTime),
		textPtr(snap.LastError), textPtr(snap.LastFinalURL),
		snap.LastRedirectCount, utils.ToPgInt4Ptr(snap.LastRedirectCode),
	)
	if err != nil {
		return URLCheck{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	if tag.RowsAffected() == 0 {
		return URLCheck{}, urlNotFound(op)
	}

	if err := tx.Commit(ctx); err != nil {
		return URLCheck{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	return check, nil
}

// History lists check records newest first.
func (r *Repository) History(ctx context.Context, urlID uuid.UUID, limit int) ([]URLCheck, error) {
	const op string = "repo.monitor.history"

	rows, err := r.pool.Query(ctx, `
		SELECT id, monitored_url_id, status_code, response_time, error_message, checked_at
		FROM url_checks
		WHERE monitored_url_id = $1
		ORDER BY checked_at DESC
		LIMIT $2`, urlID, limit)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	checks := make([]URLCheck, 0)
	for rows.Next() {
		var (
			c        URLCheck
			status   pgtype.Int4
			respTime pgtype.Int4
			errMsg   pgtype.Text
		)
		if err := rows.Scan(&c.ID, &c.MonitoredURLID, &status, &respTime, &errMsg, &c.CheckedAt); err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}
		c.StatusCode = utils.FromPgInt4Ptr(status)
		c.ResponseTime = utils.FromPgInt4Ptr(respTime)
		if errMsg.Valid {
			c.ErrorMessage = &errMsg.String
		}
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	return checks, nil
}

func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	const op string = "repo.monitor.stats"

	var s Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM monitored_urls),
			(SELECT COUNT(*) FROM monitored_urls WHERE is_active),
			(SELECT COUNT(*) FROM monitored_urls WHERE last_status_code = 200),
			(SELECT COUNT(*) FROM monitored_urls WHERE last_status_code >= 400),
			(SELECT COUNT(*) FROM proxies)`,
	).Scan(&s.TotalURLs, &s.ActiveURLs, &s.URLs200, &s.URLsError, &s.TotalProxies)
	if err != nil {
		return Stats{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	return s, nil
}

func urlNotFound(op string) error {
	return &apperror.Error{
		Kind:    apperror.NotFound,
		Op:      op,
		Message: "URL not found",
	}
}

func textPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
