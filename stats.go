package media

import "fmt"

// Stats is a snapshot of cache activity since creation.
type Stats struct {
	Entries        int   // Entries currently cached
	Hits           int64 // Lookups answered from an existing entry
	Misses         int64 // Lookups that found no file on any search path
	Decodes        int64 // Files decoded into new entries
	DecodeFailures int64 // Files that failed to decode
	Evictions      int64 // Entries removed by Release or Clear
}

// HitRate returns hits as a fraction of all resolved lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses + s.Decodes
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// String returns a one-line summary suitable for logs.
func (s Stats) String() string {
	return fmt.Sprintf("entries=%d hits=%d misses=%d decodes=%d failures=%d evictions=%d hit_rate=%.2f",
		s.Entries, s.Hits, s.Misses, s.Decodes, s.DecodeFailures, s.Evictions, s.HitRate())
}
