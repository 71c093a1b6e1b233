// Package attendance fetches the day's punch records from the attendance
// tracking API.
package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sadopc/punchwatch/internal/metrics"
)

const (
	punchStatusIn  = 0
	punchStatusOut = 1

	fetchTimeout = 15 * time.Second
)

// timeEntry is one raw punch as the API reports it. actualTimestamp is the
// corrected value and wins over timestamp when present.
type timeEntry struct {
	ActualTimestamp string `json:"actualTimestamp"`
	Timestamp       string `json:"timestamp"`
	PunchStatus     int    `json:"punchStatus"`
}

type dayRecord struct {
	AttendanceDate   string          `json:"attendanceDate"`
	TimeEntries      []timeEntry     `json:"timeEntries"`
	LeaveDayStatuses json.RawMessage `json:"leaveDayStatuses"`
	LeaveDetails     json.RawMessage `json:"leaveDetails"`
}

type attendanceResponse struct {
	Data []dayRecord `json:"data"`
}

// Client talks to the attendance API.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: fetchTimeout},
	}
}

// FetchToday retrieves the punch list for the most recent attendance day.
// The API returns one record per day; only the last record's entries are
// consumed. Entries with timestamps that fail to parse are dropped.
func (c *Client) FetchToday(ctx context.Context, token string) ([]metrics.Punch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch attendance: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch attendance: unexpected status %d", resp.StatusCode)
	}

	var parsed attendanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode attendance response: %w", err)
	}
	if len(parsed.Data) == 0 {
		return nil, nil
	}

	today := parsed.Data[len(parsed.Data)-1]
	punches := make([]metrics.Punch, 0, len(today.TimeEntries))
	for _, e := range today.TimeEntries {
		ts, ok := parseEntryTime(e)
		if !ok {
			continue
		}
		kind := metrics.ClockIn
		if e.PunchStatus == punchStatusOut {
			kind = metrics.ClockOut
		}
		punches = append(punches, metrics.Punch{Time: ts, Kind: kind})
	}
	return punches, nil
}

var entryTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseEntryTime(e timeEntry) (time.Time, bool) {
	raw := e.ActualTimestamp
	if raw == "" {
		raw = e.Timestamp
	}
	for _, layout := range entryTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
