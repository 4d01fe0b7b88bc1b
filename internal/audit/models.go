package audit

import (
	"time"

	"civiscope/internal/domain"
)

// Event is emitted for every completed resolution to capture what was
// asked and what was answered. Keep it transport-agnostic so stores and
// sinks can fan out.
type Event struct {
	Timestamp    time.Time      `json:"timestamp"`
	RequestID    string         `json:"request_id,omitempty"`
	ZipCode      string         `json:"zip_code"`
	Options      string         `json:"options"`
	Jurisdiction string         `json:"jurisdiction"`
	Coverage     string         `json:"coverage"`
	Total        int            `json:"total"`
	Partial      bool           `json:"partial"`
	FailedTiers  []domain.Level `json:"failed_tiers,omitempty"`
	CacheHit     bool           `json:"cache_hit"`
	Duration     time.Duration  `json:"duration"`
}
