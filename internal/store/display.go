package store

import (
	"log"
	"strconv"
	"time"

	"github.com/sadopc/punchwatch/internal/metrics"
)

// SaveDisplay persists the per-poll display bundle. Each value lives under
// its own state key so partial writes leave the rest readable; a failed
// write leaves that value stale but never aborts the poll.
func (s *Store) SaveDisplay(snap metrics.Snapshot, now time.Time) {
	if err := s.SetJSON(KeyCurrentMetrics, snap); err != nil {
		log.Printf("store: save metrics: %v", err)
	}
	if err := s.SetState(KeyCurrentTotalWorked, strconv.Itoa(snap.TotalWorkedMinutes)); err != nil {
		log.Printf("store: save total worked: %v", err)
	}
	if err := s.SetState(KeyCurrentClockedIn, strconv.FormatBool(snap.IsClockedIn)); err != nil {
		log.Printf("store: save clocked in: %v", err)
	}
	info := LeaveTimeInfo{
		NormalLeaveTime:     snap.NormalLeaveTime.Format12(),
		EarlyLeaveTime:      snap.EarlyLeaveTime.Format12(),
		EstimatedCompletion: snap.EstimatedCompletionTime.Format24(),
	}
	if err := s.SetJSON(KeyCurrentLeaveInfo, info); err != nil {
		log.Printf("store: save leave info: %v", err)
	}
	if err := s.SetState(KeyLastUpdated, now.Format(time.RFC3339)); err != nil {
		log.Printf("store: save last updated: %v", err)
	}
}

// LoadDisplay reads the bundle back for the UI. Missing pieces fall back to
// zero values; HasData reports whether any poll has ever written metrics.
func (s *Store) LoadDisplay() DisplayState {
	var ds DisplayState

	ok, err := s.GetJSON(KeyCurrentMetrics, &ds.Metrics)
	if err != nil {
		log.Printf("store: load metrics: %v", err)
	}
	ds.HasData = ok

	ds.TotalWorkedMinutes, _ = strconv.Atoi(s.GetStateDefault(KeyCurrentTotalWorked, "0"))
	ds.IsClockedIn = s.GetStateDefault(KeyCurrentClockedIn, "false") == "true"

	if _, err := s.GetJSON(KeyCurrentLeaveInfo, &ds.LeaveInfo); err != nil {
		log.Printf("store: load leave info: %v", err)
	}

	if raw := s.GetStateDefault(KeyLastUpdated, ""); raw != "" {
		ds.LastUpdated, _ = time.Parse(time.RFC3339, raw)
	}
	return ds
}
