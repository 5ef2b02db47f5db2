// Package source defines the connector boundary: anything that can turn a
// keyword+location query into raw candidate records.
package source

import (
	"context"

	"leadscout-engine/internal/domain"
)

type Query struct {
	Keyword    string
	Location   string
	MaxResults int
}

// Connector fetches raw candidates from one external directory. A failed
// fetch returns an error alongside zero records; the pipeline logs it and
// moves on — one dead source never sinks the run.
type Connector interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]domain.CandidateRecord, error)
}
