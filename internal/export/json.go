package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/punchwatch/internal/store"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Days       []jsonDay `json:"days"`
}

type jsonDay struct {
	Date          string `json:"date"`
	WorkedMinutes int    `json:"worked_minutes"`
	Worked        string `json:"worked"`
	HalfDay       bool   `json:"half_day"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

func ToJSON(totals []store.DayTotal, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(totals),
	}

	for _, dt := range totals {
		updated := ""
		if !dt.UpdatedAt.IsZero() {
			updated = dt.UpdatedAt.Format(time.RFC3339)
		}
		out.Days = append(out.Days, jsonDay{
			Date:          dt.Date,
			WorkedMinutes: dt.WorkedMinutes,
			Worked:        formatMinutes(dt.WorkedMinutes),
			HalfDay:       dt.HalfDay,
			UpdatedAt:     updated,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
