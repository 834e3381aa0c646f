package journal

import (
	"time"

	"github.com/unowned-ai/solace/pkg/mood"
)

// Entry is one immutable journal record. Timestamp carries epoch milliseconds.
type Entry struct {
	ID        string    `json:"id" yaml:"id" toml:"id"`
	Date      string    `json:"date" yaml:"date" toml:"date"`
	Mood      mood.Mood `json:"mood" yaml:"mood" toml:"mood"`
	Note      string    `json:"note" yaml:"note" toml:"note"`
	Timestamp int64     `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
}

// CreatedAt converts Timestamp back to a time.Time.
func (e Entry) CreatedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}
