package sheetsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"timeclock/contexts/workforce/attendance-service/domain/entities"
)

const sheetsBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// Log is the Google Sheets event log adapter. One spreadsheet tab is the
// whole store: Append adds a ten-column row, ListAll reads every data row.
// The sheet gives no ordering, uniqueness, or conditional-append guarantees;
// callers own sorting and accept the same-user double-submit race.
type Log struct {
	spreadsheetID string
	tabName       string
	timezone      *time.Location
	tokens        *tokenSource
	client        *http.Client
	logger        *slog.Logger
}

type Config struct {
	ServiceAccountEmail string
	PrivateKeyPEM       string
	SpreadsheetID       string
	TabName             string
	Timezone            *time.Location
	HTTPClient          *http.Client
	Logger              *slog.Logger
}

func NewLog(cfg Config) *Log {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	tabName := strings.TrimSpace(cfg.TabName)
	if tabName == "" {
		tabName = "Attendance"
	}
	timezone := cfg.Timezone
	if timezone == nil {
		timezone = time.UTC
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{
		spreadsheetID: cfg.SpreadsheetID,
		tabName:       tabName,
		timezone:      timezone,
		tokens:        newTokenSource(cfg.ServiceAccountEmail, cfg.PrivateKeyPEM, client),
		client:        client,
		logger:        logger,
	}
}

func (l *Log) Append(ctx context.Context, event entities.AttendanceEvent) error {
	token, err := l.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}

	appendRange := url.PathEscape(fmt.Sprintf("%s!A:J", l.tabName))
	endpoint := fmt.Sprintf(
		"%s/%s/values/%s:append?valueInputOption=USER_ENTERED",
		sheetsBaseURL, l.spreadsheetID, appendRange,
	)

	body, err := json.Marshal(map[string]any{
		"values": [][]any{l.rowFromEvent(event)},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("append attendance row: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sheets append returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

func (l *Log) ListAll(ctx context.Context) ([]entities.AttendanceEvent, error) {
	token, err := l.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	readRange := url.PathEscape(fmt.Sprintf("%s!A2:J", l.tabName))
	endpoint := fmt.Sprintf("%s/%s/values/%s", sheetsBaseURL, l.spreadsheetID, readRange)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list attendance rows: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Values [][]string `json:"values"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode sheets response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if payload.Error != nil && payload.Error.Message != "" {
			return nil, fmt.Errorf("sheets list returned %d: %s", resp.StatusCode, payload.Error.Message)
		}
		return nil, fmt.Errorf("sheets list returned %d", resp.StatusCode)
	}

	items := make([]entities.AttendanceEvent, 0, len(payload.Values))
	for _, row := range payload.Values {
		event, ok := l.eventFromRow(row)
		if !ok {
			continue
		}
		items = append(items, event)
	}
	return items, nil
}

// Row layout, columns A..J: UTC instant, localized date-time, email, name,
// role, event type, latitude, longitude, evidence ref, note.
func (l *Log) rowFromEvent(event entities.AttendanceEvent) []any {
	latitude := any("")
	if event.Latitude != nil {
		latitude = *event.Latitude
	}
	longitude := any("")
	if event.Longitude != nil {
		longitude = *event.Longitude
	}
	return []any{
		event.RecordedAt.UTC().Format(time.RFC3339),
		event.RecordedAt.In(l.timezone).Format("02/01/2006 15:04:05"),
		event.UserID,
		event.Name,
		event.Role,
		string(event.Type),
		latitude,
		longitude,
		event.EvidenceRef,
		event.Note,
	}
}

// eventFromRow tolerates hand-edited sheets: short rows are padded and rows
// missing an instant, email, or type are skipped.
func (l *Log) eventFromRow(row []string) (entities.AttendanceEvent, bool) {
	cell := func(index int) string {
		if index < len(row) {
			return strings.TrimSpace(row[index])
		}
		return ""
	}

	recordedAt, err := time.Parse(time.RFC3339, cell(0))
	if err != nil {
		return entities.AttendanceEvent{}, false
	}
	userID := entities.NormalizeUserID(cell(2))
	eventType := entities.EventType(cell(5))
	if userID == "" || !entities.IsSupportedEventType(eventType) {
		return entities.AttendanceEvent{}, false
	}

	return entities.AttendanceEvent{
		UserID:      userID,
		Name:        cell(3),
		Role:        cell(4),
		Type:        eventType,
		RecordedAt:  recordedAt.UTC(),
		Latitude:    parseCoordinate(cell(6)),
		Longitude:   parseCoordinate(cell(7)),
		EvidenceRef: cell(8),
		Note:        cell(9),
	}, true
}

func parseCoordinate(value string) *float64 {
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &parsed
}
