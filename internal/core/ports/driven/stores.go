package driven

import (
	"context"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
)

// CategoryStore persists the four name-keyed category registries.
// Categories are append-only from the migration's point of view.
type CategoryStore interface {
	// List returns all categories of a kind.
	List(ctx context.Context, kind domain.CategoryKind) ([]domain.Category, error)

	// Create inserts a category and returns the stored row with its id.
	Create(ctx context.Context, kind domain.CategoryKind, cat domain.Category) (*domain.Category, error)
}

// UserStore persists the email-keyed user registry.
type UserStore interface {
	// List returns all users.
	List(ctx context.Context) ([]domain.User, error)

	// Create inserts a user and returns the stored row with its id.
	// Returns domain.ErrMissingEmail when the user has no email.
	Create(ctx context.Context, user domain.User) (*domain.User, error)
}

// PipelineStore persists pipeline rows and their association rows.
// Association inserts are individual calls so the driver can tolerate
// per-association failures without rolling back the primary row.
type PipelineStore interface {
	// InsertPipeline stores the primary row and returns its generated id.
	InsertPipeline(ctx context.Context, entry *domain.PipelineEntry, createdBy string) (string, error)

	// LinkCategory associates a pipeline row with a category of a kind.
	LinkCategory(ctx context.Context, kind domain.CategoryKind, pipelineID, categoryID string) error

	// LinkAssignee associates a pipeline row with an assignee user.
	LinkAssignee(ctx context.Context, pipelineID, userID string) error

	// LinkPassCommunicator records the zero-or-one pass communicator.
	LinkPassCommunicator(ctx context.Context, pipelineID, userID string) error

	// InsertAttachment stores one file-metadata association.
	InsertAttachment(ctx context.Context, pipelineID string, att domain.Attachment) error
}

// ExportReader loads the full exported record set.
type ExportReader interface {
	// ReadAll returns every record in the export in file order.
	ReadAll(ctx context.Context) ([]domain.SourceRecord, error)
}

// ExportFetcher pulls records from the upstream API, following pagination
// until the cursor is exhausted.
type ExportFetcher interface {
	// FetchAll returns every record in the remote table.
	FetchAll(ctx context.Context) ([]domain.SourceRecord, error)
}
