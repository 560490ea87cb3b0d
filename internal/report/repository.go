package report

import "context"

// ListOptions contains options for listing reports.
type ListOptions struct {
	Limit  int
	Cursor string
}

// ListResult contains the results of listing reports.
type ListResult struct {
	Items      []*Report
	NextCursor string
}

// Repository defines the interface for report persistence.
type Repository interface {
	// Get retrieves a report by ID.
	Get(ctx context.Context, id string) (*Report, error)

	// List retrieves reports, newest first, with pagination.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// Create stores a new report.
	Create(ctx context.Context, r *Report) error
}
