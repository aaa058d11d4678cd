// Package summary defines the boundary to the hosted language-model service
// that writes narrative summaries of the aggregated statistics. The model
// call itself is an external collaborator; this package only shapes the data
// handed to it and names the port a client must implement.
package summary

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/statops/permitdesk/internal/analytics"
)

// Payload is the aggregation snapshot handed to the summarizer: plain data,
// no prompt text. The model-side prompt contract lives with the client.
type Payload struct {
	FiscalYear     int                         `json:"fiscalYear"`
	TypeCounts     []analytics.TypeCounts      `json:"typeCounts"`
	Channels       []analytics.ChannelShare    `json:"channels"`
	ProcessingTime []analytics.ProcessingTime  `json:"processingTime"`
	Applications   []analytics.DepartmentShare `json:"applications"`
	Revenue        []analytics.DepartmentShare `json:"revenue"`
}

// Encode renders the payload as JSON for the text-in/JSON-out service.
func (p *Payload) Encode() ([]byte, error) {
	return sonic.Marshal(p)
}

// Summarizer produces a narrative summary from an aggregation snapshot.
type Summarizer interface {
	Summarize(ctx context.Context, p *Payload) (string, error)
}

// Static is the fallback Summarizer used when no model service is
// configured; it reports the headline figures without narrative.
type Static struct{}

func (Static) Summarize(_ context.Context, p *Payload) (string, error) {
	total := 0
	for _, ch := range p.Channels {
		total += ch.Volume
	}
	return fmt.Sprintf("Fiscal year %d: %d departments reporting, %d applications.",
		p.FiscalYear, len(p.TypeCounts), total), nil
}
