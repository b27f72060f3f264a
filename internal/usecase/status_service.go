package usecase

import (
	"context"
	"time"

	"github.com/courtsidelive/courtside/internal/platform/cache"
	"github.com/courtsidelive/courtside/internal/resolve"
)

// SnapshotStatus describes the published resolver generation.
type SnapshotStatus struct {
	Version int64     `json:"version"`
	Players int       `json:"players"`
	BuiltAt time.Time `json:"builtAt"`
}

// SystemStatus is the operator view of every source cache.
type SystemStatus struct {
	OK        bool                    `json:"ok"`
	Snapshot  SnapshotStatus          `json:"snapshot"`
	Sources   map[string]cache.Status `json:"sources"`
	Timestamp time.Time               `json:"timestamp"`
}

// statusReporter is the slice of a pipeline service the status view needs.
type statusReporter interface {
	Status() cache.Status
}

// StatusService aggregates per-source cache freshness without triggering
// any fetch.
type StatusService struct {
	holder    *resolve.Holder
	reporters []statusReporter
}

func NewStatusService(holder *resolve.Holder, reporters ...statusReporter) *StatusService {
	return &StatusService{holder: holder, reporters: reporters}
}

func (s *StatusService) Report(ctx context.Context) SystemStatus {
	_, span := startUsecaseSpan(ctx, "StatusService.Report")
	defer span.End()

	snap := s.holder.Load()
	out := SystemStatus{
		OK: true,
		Snapshot: SnapshotStatus{
			Version: snap.Version(),
			Players: snap.Size(),
			BuiltAt: snap.BuiltAt(),
		},
		Sources:   make(map[string]cache.Status, len(s.reporters)),
		Timestamp: time.Now().UTC(),
	}
	for _, r := range s.reporters {
		st := r.Status()
		out.Sources[st.Source] = st
	}
	return out
}
