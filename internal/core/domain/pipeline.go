package domain

// PipelineEntry is the normalised output of transforming one source
// record: the primary row values plus every association extracted from
// the record. The source record id is the stable natural key used for
// idempotent re-resolution in generated dumps.
type PipelineEntry struct {
	SourceRecordID string
	CompanyName    string
	CreatedTime    string

	// CreatedBy is the raw creator reference. The online driver resolves
	// it to a user id by email; the dump generator defers resolution to
	// apply-time via the source user id.
	CreatedBy *UserRef

	// Values maps target column name to transformed value. Mapped but
	// absent source fields are not present, which both emitters render
	// as NULL. Value types: string, int64 (minor units), float64, bool.
	Values map[string]any

	// Categories holds deduplicated category names per kind, first-seen
	// order.
	Categories map[CategoryKind][]string

	Assignees        []UserRef
	PassCommunicator *UserRef
	Attachments      []Attachment
}

// Attachment discriminator values, by source field of origin.
const (
	AttachmentDeck           = "deck"
	AttachmentReviewMaterial = "review_material"
)

// Attachment is a file-metadata association copied verbatim from the
// source record, tagged by the field it came from.
type Attachment struct {
	FileType     string
	FileName     string
	FileURL      string
	FileSize     *int64
	MimeType     string
	SourceFileID string
}

// ReferenceData is the deduplicated registry universe discovered by a full
// scan of the record set: category names per kind and users by email.
// Slices preserve first-seen order so dump output is reproducible.
type ReferenceData struct {
	Categories map[CategoryKind][]string
	Users      []UserRef
}
