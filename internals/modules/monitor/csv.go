package monitor

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
)

type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []string
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeCSV tries UTF-8 (with or without BOM) and falls back to Windows-1251,
// which is what spreadsheet exports in Cyrillic locales tend to produce.
func decodeCSV(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode csv: %w", err)
	}
	return string(decoded), nil
}

// ImportCSV loads monitored URLs from a CSV with a header row. Recognized
// columns: url (required), referral_url, name, proxy_id, check_interval.
// Duplicate and empty URLs are skipped; bad proxy ids are dropped; intervals
// are clamped to the minimum.
func (s *Service) ImportCSV(ctx context.Context, data []byte) (ImportResult, error) {
	var res ImportResult

	decoded, err := decodeCSV(data)
	if err != nil {
		return res, err
	}

	reader := csv.NewReader(strings.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return res, fmt.Errorf("read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["url"]; !ok {
		return res, fmt.Errorf("csv is missing the url column")
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	// header is row 1
	for rowNum := 2; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		target := field(row, "url")
		if target == "" {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: empty URL", rowNum))
			continue
		}

		exists, err := s.repo.ExistsByURL(ctx, target)
		if err != nil {
			return res, err
		}
		if exists {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: URL already exists", rowNum))
			continue
		}

		var proxyID *uuid.UUID
		if raw := field(row, "proxy_id"); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				// drop references to proxies that do not exist
				if _, err := s.proxies.GetGeo(ctx, id); err == nil {
					proxyID = &id
				}
			}
		}

		interval := DefaultCheckInterval
		if raw := field(row, "check_interval"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				interval = max(MinCheckInterval, n)
			}
		}

		_, err = s.repo.Create(ctx, CreateURLCmd{
			URL:           target,
			ReferralURL:   field(row, "referral_url"),
			Name:          field(row, "name"),
			ProxyID:       proxyID,
			CheckInterval: interval,
			IsActive:      true,
		})
		if err != nil {
			return res, err
		}
		res.Imported++
	}

	return res, nil
}
