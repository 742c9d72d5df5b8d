package proxy

import (
	"fmt"
	neturl "net/url"
	"time"

	"github.com/google/uuid"
)

const (
	ProtocolHTTP   = "http"
	ProtocolHTTPS  = "https"
	ProtocolSOCKS5 = "socks5"
)

type Proxy struct {
	ID        uuid.UUID
	Name      string
	Host      string
	Port      int
	Protocol  string
	Username  string
	Password  string
	Geo       string
	IsActive  bool
	CreatedAt time.Time
}

type CreateProxyCmd struct {
	Name     string
	Host     string
	Port     int
	Protocol string
	Username string
	Password string
	Geo      string
	IsActive bool
}

// DialURL builds the proxy endpoint the HTTP transport dials. Credentials are
// percent-encoded independently. SOCKS5 proxies keep their scheme; http and
// https proxies both dial plain http because the proxy listener itself speaks
// HTTP even when tunneling TLS via CONNECT.
func (p Proxy) DialURL() string {
	scheme := ProtocolHTTP
	if p.Protocol == ProtocolSOCKS5 {
		scheme = ProtocolSOCKS5
	}

	u := neturl.URL{
		Scheme: scheme,
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
	}
	if p.Username != "" && p.Password != "" {
		u.User = neturl.UserPassword(p.Username, p.Password)
	}
	return u.String()
}
