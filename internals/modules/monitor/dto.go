package monitor

import "time"

type CreateURLRequest struct {
	URL           string  `json:"url" validate:"required,url,max=2048"`
	ReferralURL   string  `json:"referral_url" validate:"omitempty,url,max=2048"`
	Name          string  `json:"name" validate:"omitempty,max=200"`
	ProxyID       *string `json:"proxy_id" validate:"omitempty,uuid"`
	CheckInterval int     `json:"check_interval" validate:"omitempty,gte=10"`
	IsActive      *bool   `json:"is_active"`
}

type UpdateURLRequest struct {
	URL           *string `json:"url" validate:"omitempty,url,max=2048"`
	ReferralURL   *string `json:"referral_url" validate:"omitempty,max=2048"`
	Name          *string `json:"name" validate:"omitempty,max=200"`
	ProxyID       *string `json:"proxy_id" validate:"omitempty,uuid"`
	CheckInterval *int    `json:"check_interval" validate:"omitempty,gte=10"`
	IsActive      *bool   `json:"is_active"`
}

type URLResponse struct {
	ID                string     `json:"id"`
	URL               string     `json:"url"`
	ReferralURL       string     `json:"referral_url,omitempty"`
	Name              string     `json:"name,omitempty"`
	ProxyID           *string    `json:"proxy_id,omitempty"`
	CheckInterval     int        `json:"check_interval"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	LastCheck         *time.Time `json:"last_check,omitempty"`
	LastStatusCode    *int       `json:"last_status_code,omitempty"`
	LastResponseTime  *int       `json:"last_response_time,omitempty"`
	LastError         *string    `json:"last_error,omitempty"`
	LastFinalURL      *string    `json:"last_final_url,omitempty"`
	LastRedirectCount int        `json:"last_redirect_count"`
	LastRedirectCode  *int       `json:"last_redirect_code,omitempty"`
}

func toURLResponse(m MonitoredURL) URLResponse {
	resp := URLResponse{
		ID:                m.ID.String(),
		URL:               m.URL,
		ReferralURL:       m.ReferralURL,
		Name:              m.Name,
		CheckInterval:     m.CheckInterval,
		IsActive:          m.IsActive,
		CreatedAt:         m.CreatedAt,
		LastCheck:         m.LastCheck,
		LastStatusCode:    m.LastStatusCode,
		LastResponseTime:  m.LastResponseTime,
		LastError:         m.LastError,
		LastFinalURL:      m.LastFinalURL,
		LastRedirectCount: m.LastRedirectCount,
		LastRedirectCode:  m.LastRedirectCode,
	}
	if m.ProxyID != nil {
		id := m.ProxyID.String()
		resp.ProxyID = &id
	}
	return resp
}

type CheckResponse struct {
	ID           string    `json:"id"`
	URLID        string    `json:"monitored_url_id"`
	StatusCode   *int      `json:"status_code,omitempty"`
	ResponseTime *int      `json:"response_time,omitempty"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	CheckedAt    time.Time `json:"checked_at"`
}

func toCheckResponse(c URLCheck) CheckResponse {
	return CheckResponse{
		ID:           c.ID.String(),
		URLID:        c.MonitoredURLID.String(),
		StatusCode:   c.StatusCode,
		ResponseTime: c.ResponseTime,
		ErrorMessage: c.ErrorMessage,
		CheckedAt:    c.CheckedAt,
	}
}

// CheckResultResponse is the manual check-now payload.
type CheckResultResponse struct {
	URLID        string  `json:"url_id"`
	URL          string  `json:"url"`
	StatusCode   *int    `json:"status_code,omitempty"`
	ResponseTime *int    `json:"response_time,omitempty"`
	Error        *string `json:"error,omitempty"`
	ProxyGeo     string  `json:"proxy_geo,omitempty"`
}

type ImportResponse struct {
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

type StatsResponse struct {
	TotalURLs    int `json:"total_urls"`
	ActiveURLs   int `json:"active_urls"`
	URLs200      int `json:"urls_200"`
	URLsError    int `json:"urls_error"`
	TotalProxies int `json:"total_proxies"`
}

type CheckAllResponse struct {
	Message string `json:"message"`
	Checked int    `json:"checked"`
}
