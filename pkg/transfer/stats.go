package transfer

import "time"

// 📊 Stats accumulates over one run and is finalized only after every file
// has been attempted for every destination. Never mutated afterwards.
type Stats struct {
	TotalPhotos   int
	DateBreakdown map[string]int
	Duration      time.Duration
}

func newStats() *Stats {
	return &Stats{DateBreakdown: map[string]int{}}
}

// record counts one photo under its capture date. Called once per file,
// not per (file, destination) pair.
func (s *Stats) record(date string) {
	s.TotalPhotos++
	s.DateBreakdown[date]++
}

// 📅 DateFolders returns the number of distinct capture dates
func (s *Stats) DateFolders() int {
	return len(s.DateBreakdown)
}
