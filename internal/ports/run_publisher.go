package ports

import "vrp-visualizer-service/internal/domain"

// Fan-out of completed runs to live subscribers. Publish must not block.
type RunPublisher interface {
	Publish(run domain.RunSummary)
}
