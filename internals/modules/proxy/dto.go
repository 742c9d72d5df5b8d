package proxy

import "time"

type CreateProxyRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Host     string `json:"host" validate:"required,max=255"`
	Port     int    `json:"port" validate:"required,gt=0,lte=65535"`
	Protocol string `json:"protocol" validate:"omitempty,oneof=http https socks5"`
	Username string `json:"username" validate:"omitempty,max=100"`
	Password string `json:"password" validate:"omitempty,max=100"`
	Geo      string `json:"geo" validate:"omitempty,max=50"`
	IsActive *bool  `json:"is_active"`
}

type UpdateProxyRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Host     *string `json:"host" validate:"omitempty,max=255"`
	Port     *int    `json:"port" validate:"omitempty,gt=0,lte=65535"`
	Protocol *string `json:"protocol" validate:"omitempty,oneof=http https socks5"`
	Username *string `json:"username" validate:"omitempty,max=100"`
	Password *string `json:"password" validate:"omitempty,max=100"`
	Geo      *string `json:"geo" validate:"omitempty,max=50"`
	IsActive *bool   `json:"is_active"`
}

type ProxyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Host      string    `json:"host"`
	Port      int       `json:"port"`
	Protocol  string    `json:"protocol"`
	Username  string    `json:"username,omitempty"`
	Geo       string    `json:"geo,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toProxyResponse(p Proxy) ProxyResponse {
	return ProxyResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Host:      p.Host,
		Port:      p.Port,
		Protocol:  p.Protocol,
		Username:  p.Username,
		Geo:       p.Geo,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}
