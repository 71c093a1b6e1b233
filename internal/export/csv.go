package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/punchwatch/internal/store"
)

func ToCSV(totals []store.DayTotal, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Worked (min)", "Worked", "Half day", "Updated"}); err != nil {
		return err
	}

	for _, dt := range totals {
		updated := ""
		if !dt.UpdatedAt.IsZero() {
			updated = dt.UpdatedAt.Format(time.RFC3339)
		}
		row := []string{
			dt.Date,
			strconv.Itoa(dt.WorkedMinutes),
			formatMinutes(dt.WorkedMinutes),
			strconv.FormatBool(dt.HalfDay),
			updated,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
