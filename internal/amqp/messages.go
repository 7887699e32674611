package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"billig/internal/core"
)

// SummaryMessage carries the totals of one report bucket. Amounts are in
// cents, categories are keyed by name and zero subtotals are omitted.
type SummaryMessage struct {
	ID         string           `json:"id"`
	Duration   string           `json:"duration"`
	Period     string           `json:"period"`
	From       string           `json:"from"`
	To         string           `json:"to"`
	Total      int64            `json:"total"`
	Categories map[string]int64 `json:"categories"`
	Timestamp  time.Time        `json:"timestamp"`
}

// NewSummaryMessage describes s, a bucket of a calendar spaced by d.
func NewSummaryMessage(d core.Duration, s core.Summary) *SummaryMessage {
	msg := &SummaryMessage{
		ID:         uuid.NewString(),
		Duration:   d.String(),
		Period:     core.FormatPeriod(s.Period),
		From:       s.Period.Lo.String(),
		To:         s.Period.Hi.String(),
		Total:      int64(s.Total),
		Categories: make(map[string]int64),
		Timestamp:  time.Now(),
	}
	for _, c := range core.Categories() {
		if v := s.Query(c); v != 0 {
			msg.Categories[c.String()] = int64(v)
		}
	}
	return msg
}

// ToJSON converts the message to JSON bytes
func (m *SummaryMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SummaryMessageFromJSON decodes a message published by PublishSummaries.
func SummaryMessageFromJSON(data []byte) (*SummaryMessage, error) {
	var msg SummaryMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
