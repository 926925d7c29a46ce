package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
	"github.com/nsventures/dealflow-cli/internal/core/ports/driven"
	"github.com/nsventures/dealflow-cli/internal/core/ports/driving"
	"github.com/nsventures/dealflow-cli/internal/logger"
)

// Ensure MigratorService implements the interface.
var _ driving.Migrator = (*MigratorService)(nil)

// MigratorService runs the online migration against a live store:
// load existing reference data, create whatever is missing, then insert
// every record sequentially. The primary-row insert is the per-record
// point of no return; association inserts after it are best-effort.
type MigratorService struct {
	categories driven.CategoryStore
	users      driven.UserStore
	pipelines  driven.PipelineStore
}

// NewMigratorService creates a new online migration driver.
func NewMigratorService(
	categories driven.CategoryStore,
	users driven.UserStore,
	pipelines driven.PipelineStore,
) *MigratorService {
	return &MigratorService{
		categories: categories,
		users:      users,
		pipelines:  pipelines,
	}
}

// lookups are the in-memory natural-key maps populated before record
// processing begins and read-only afterwards.
type lookups struct {
	categoryIDs map[domain.CategoryKind]map[string]string // name -> id
	userIDs     map[string]string                         // email -> id
}

// Migrate runs the full migration. A fatal error is returned only for
// failures before any record writes (the initial reference-data load);
// everything after that is reported through the summary.
func (m *MigratorService) Migrate(ctx context.Context, records []domain.SourceRecord) (*domain.Summary, error) {
	look, err := m.loadReferenceData(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading reference data: %w", err)
	}

	m.reconcileReferenceData(ctx, Collect(records), look)

	summary := &domain.Summary{}

	logger.Section("Migrating pipeline records")
	for _, rec := range records {
		summary.Processed++
		m.migrateRecord(ctx, rec, look, summary)
	}

	return summary, nil
}

// loadReferenceData populates the lookup maps from existing store rows.
// The five lists are independent reads, so they load concurrently; any
// failure is fatal before a single write happens.
func (m *MigratorService) loadReferenceData(ctx context.Context) (*lookups, error) {
	logger.Section("Loading existing categories and users")

	look := &lookups{
		categoryIDs: make(map[domain.CategoryKind]map[string]string, len(domain.CategoryKinds)),
		userIDs:     make(map[string]string),
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		loadErr error
	)

	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if loadErr == nil {
			loadErr = err
		}
	}

	for _, kind := range domain.CategoryKinds {
		wg.Add(1)
		go func(kind domain.CategoryKind) {
			defer wg.Done()
			cats, err := m.categories.List(ctx, kind)
			if err != nil {
				fail(fmt.Errorf("listing %s categories: %w", kind, err))
				return
			}
			byName := make(map[string]string, len(cats))
			for _, c := range cats {
				byName[c.Name] = c.ID
			}
			mu.Lock()
			look.categoryIDs[kind] = byName
			mu.Unlock()
			logger.Info("Loaded %d %s categories", len(cats), kind)
		}(kind)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		users, err := m.users.List(ctx)
		if err != nil {
			fail(fmt.Errorf("listing users: %w", err))
			return
		}
		mu.Lock()
		for _, u := range users {
			look.userIDs[u.Email] = u.ID
		}
		mu.Unlock()
		logger.Info("Loaded %d users", len(users))
	}()

	wg.Wait()
	if loadErr != nil {
		return nil, loadErr
	}
	return look, nil
}

// reconcileReferenceData creates every collected category name and user
// email not already present. A failed create is logged and leaves that
// name or email unresolved for later steps; it never aborts the run.
func (m *MigratorService) reconcileReferenceData(ctx context.Context, ref domain.ReferenceData, look *lookups) {
	logger.Section("Creating missing categories and users")

	for _, kind := range domain.CategoryKinds {
		for _, name := range ref.Categories[kind] {
			if _, ok := look.categoryIDs[kind][name]; ok {
				continue
			}
			created, err := m.categories.Create(ctx, kind, domain.Category{
				Name:  name,
				Color: domain.DefaultCategoryColor,
			})
			if err != nil {
				logger.Warn("creating %s category %q: %v", kind, name, err)
				continue
			}
			look.categoryIDs[kind][name] = created.ID
			logger.Info("Created %s category: %s", kind, name)
		}
	}

	for _, u := range ref.Users {
		if _, ok := look.userIDs[u.Email]; ok {
			continue
		}
		created, err := m.users.Create(ctx, domain.User{
			Email:        u.Email,
			Name:         u.Name,
			SourceUserID: u.ID,
		})
		if err != nil {
			logger.Warn("creating user %q: %v", u.Email, err)
			continue
		}
		look.userIDs[u.Email] = created.ID
		logger.Info("Created user: %s (%s)", u.Name, u.Email)
	}
}

// migrateRecord processes one record end to end, updating the summary.
// Skips and errors are recorded with full context; nothing propagates,
// including panics from structurally malformed records.
func (m *MigratorService) migrateRecord(ctx context.Context, rec domain.SourceRecord, look *lookups, summary *domain.Summary) {
	defer func() {
		if r := recover(); r != nil {
			summary.Errors++
			summary.ErrorRecords = append(summary.ErrorRecords, domain.RecordError{
				RecordID:    rec.ID,
				CompanyName: rec.Str(domain.CompanyNameField),
				Message:     fmt.Sprintf("panic: %v", r),
			})
			logger.Warn("record %s: %v", rec.ID, r)
		}
	}()

	entry, err := Transform(rec)
	if err != nil {
		if skip, ok := domain.IsSkip(err); ok {
			summary.Skipped++
			summary.SkippedRecords = append(summary.SkippedRecords, domain.SkippedRecord{
				RecordID:        skip.RecordID,
				CreatedTime:     rec.CreatedTime,
				Reason:          skip.Reason,
				AvailableFields: skip.AvailableFields,
			})
			logger.Info("Skipped record without company name: %s", rec.ID)
			return
		}
		summary.Errors++
		summary.ErrorRecords = append(summary.ErrorRecords, domain.RecordError{
			RecordID:    rec.ID,
			CompanyName: rec.Str(domain.CompanyNameField),
			Message:     err.Error(),
		})
		logger.Warn("transforming record %s: %v", rec.ID, err)
		return
	}

	createdBy := ""
	if entry.CreatedBy != nil && entry.CreatedBy.Email != "" {
		createdBy = look.userIDs[entry.CreatedBy.Email]
	}

	pipelineID, err := m.pipelines.InsertPipeline(ctx, entry, createdBy)
	if err != nil {
		summary.Errors++
		summary.ErrorRecords = append(summary.ErrorRecords, domain.RecordError{
			RecordID:    entry.SourceRecordID,
			CompanyName: entry.CompanyName,
			Message:     fmt.Sprintf("pipeline insert: %v", err),
		})
		logger.Warn("migrating %s (%s): %v", entry.CompanyName, entry.SourceRecordID, err)
		return
	}

	m.insertAssociations(ctx, entry, pipelineID, look, summary)

	summary.Successful++
	logger.Info("Migrated: %s (%s)", entry.CompanyName, entry.SourceRecordID)
}

// insertAssociations writes every junction row for an entry. Each insert
// fails independently: a missing category lookup or a failed link must not
// roll back the primary row. Drops are counted on the summary so partial
// records are visible.
func (m *MigratorService) insertAssociations(ctx context.Context, entry *domain.PipelineEntry, pipelineID string, look *lookups, summary *domain.Summary) {
	drop := func(what string, err error) {
		summary.AssociationFailures++
		logger.Warn("record %s: dropping %s: %v", entry.SourceRecordID, what, err)
	}

	for _, kind := range domain.CategoryKinds {
		for _, name := range entry.Categories[kind] {
			categoryID, ok := look.categoryIDs[kind][name]
			if !ok {
				drop(fmt.Sprintf("%s category %q", kind, name), domain.ErrNotFound)
				continue
			}
			if err := m.pipelines.LinkCategory(ctx, kind, pipelineID, categoryID); err != nil {
				drop(fmt.Sprintf("%s category %q", kind, name), err)
			}
		}
	}

	for _, assignee := range entry.Assignees {
		if assignee.Email == "" {
			// Email-less users were never registered; excluded by design.
			continue
		}
		userID, ok := look.userIDs[assignee.Email]
		if !ok {
			drop(fmt.Sprintf("assignee %q", assignee.Email), domain.ErrNotFound)
			continue
		}
		if err := m.pipelines.LinkAssignee(ctx, pipelineID, userID); err != nil {
			drop(fmt.Sprintf("assignee %q", assignee.Email), err)
		}
	}

	if pc := entry.PassCommunicator; pc != nil && pc.Email != "" {
		if userID, ok := look.userIDs[pc.Email]; ok {
			if err := m.pipelines.LinkPassCommunicator(ctx, pipelineID, userID); err != nil {
				drop(fmt.Sprintf("pass communicator %q", pc.Email), err)
			}
		} else {
			drop(fmt.Sprintf("pass communicator %q", pc.Email), domain.ErrNotFound)
		}
	}

	for _, att := range entry.Attachments {
		if err := m.pipelines.InsertAttachment(ctx, pipelineID, att); err != nil {
			drop(fmt.Sprintf("attachment %q", att.FileName), err)
		}
	}
}
