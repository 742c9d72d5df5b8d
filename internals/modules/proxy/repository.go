package proxy

import (
	"context"
	"urlmonitor/pkg/apperror"
	"urlmonitor/pkg/db"
	"urlmonitor/pkg/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func notFound(op string) error {
	return &apperror.Error{
		Kind:    apperror.NotFound,
		Op:      op,
		Message: "proxy not found",
	}
}

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

const proxyColumns = `id, name, host, port, protocol,
	COALESCE(username, ''), COALESCE(password, ''), COALESCE(geo, ''),
	is_active, created_at`

func (r *Repository) Create(ctx context.Context, cmd CreateProxyCmd) (uuid.UUID, error) {
	const op string = "repo.proxy.create"

	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO proxies (name, host, port, protocol, username, password, geo, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		cmd.Name, cmd.Host, cmd.Port, cmd.Protocol,
		utils.ToPgText(cmd.Username), utils.ToPgText(cmd.Password), utils.ToPgText(cmd.Geo),
		cmd.IsActive,
	).Scan(&id)
	if err != nil {
		return uuid.UUID{}, utils.WrapRepoError(op, err, false, r.logger)
	}
	return id, nil
}

func (r *Repository) GetByID(ctx context.Context, proxyID uuid.UUID) (Proxy, error) {
	const op string = "repo.proxy.get_by_id"

	var p Proxy
	err := r.db.QueryRow(ctx,
		`SELECT `+proxyColumns+` FROM proxies WHERE id = $1`, proxyID,
	).Scan(&p.ID, &p.Name, &p.Host, &p.Port, &p.Protocol,
		&p.Username, &p.Password, &p.Geo, &p.IsActive, &p.CreatedAt)
	if err != nil {
		return Proxy{}, utils.WrapRepoError(op, err, true, r.logger)
	}
	return p, nil
}

func (r *Repository) GetAll(ctx context.Context) ([]Proxy, error) {
	const op string = "repo.proxy.get_all"

	rows, err := r.db.Query(ctx,
		`SELECT `+proxyColumns+` FROM proxies ORDER BY created_at DESC`)
	if err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	defer rows.Close()

	proxies := make([]Proxy, 0)
	for rows.Next() {
		var p Proxy
		if err := rows.Scan(&p.ID, &p.Name, &p.Host, &p.Port, &p.Protocol,
			&p.Username, &p.Password, &p.Geo, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, utils.WrapRepoError(op, err, false, r.logger)
		}
		proxies = append(proxies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.WrapRepoError(op, err, false, r.logger)
	}
	return proxies, nil
}

func (r *Repository) Update(ctx context.Context, p Proxy) error {
	const op string = "repo.proxy.update"

	tag, err := r.db.Exec(ctx, `
		UPDATE proxies
		SET name = $2, host = $3, port = $4, protocol = $5,
		    username = $6, password = $7, geo = $8, is_active = $9
		WHERE id = $1`,
		p.ID, p.Name, p.Host, p.Port, p.Protocol,
		utils.ToPgText(p.Username), utils.ToPgText(p.Password), utils.ToPgText(p.Geo),
		p.IsActive,
	)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	if tag.RowsAffected() == 0 {
		return notFound(op)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, proxyID uuid.UUID) error {
	const op string = "repo.proxy.delete"

	tag, err := r.db.Exec(ctx, `DELETE FROM proxies WHERE id = $1`, proxyID)
	if err != nil {
		return utils.WrapRepoError(op, err, false, r.logger)
	}
	if tag.RowsAffected() == 0 {
		return notFound(op)
	}
	return nil
}

// GetGeo resolves only the geo tag, used when building manual check results.
func (r *Repository) GetGeo(ctx context.Context, proxyID uuid.UUID) (string, error) {
	const op string = "repo.proxy.get_geo"

	var geo string
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(geo, '') FROM proxies WHERE id = $1`, proxyID,
	).Scan(&geo)
	if err != nil {
		return "", utils.WrapRepoError(op, err, true, r.logger)
	}
	return geo, nil
}
