package services

import (
	"github.com/nsventures/dealflow-cli/internal/core/domain"
)

// Collect scans the full record set once and returns the deduplicated
// universe of category names per kind and of referenced users. It is a
// pure function of its input: no shared state, and two passes over the
// same records yield identical results. Slices preserve first-seen order
// so generated dumps are reproducible.
//
// Users are deduplicated by source user id first, because the same person
// may be serialised with differing name casing across fields, then any
// reference without an email is discarded: a user without an email cannot
// be created or linked.
func Collect(records []domain.SourceRecord) domain.ReferenceData {
	ref := domain.ReferenceData{
		Categories: make(map[domain.CategoryKind][]string, len(domain.CategoryKinds)),
	}

	seenCategories := make(map[domain.CategoryKind]map[string]struct{})
	for _, kind := range domain.CategoryKinds {
		seenCategories[kind] = make(map[string]struct{})
	}
	seenUsers := make(map[string]struct{})

	addUser := func(u *domain.UserRef) {
		if u == nil {
			return
		}
		key := u.ID
		if key == "" {
			key = u.Email
		}
		if key == "" {
			return
		}
		if _, dup := seenUsers[key]; dup {
			return
		}
		seenUsers[key] = struct{}{}
		if u.Email == "" {
			return
		}
		ref.Users = append(ref.Users, *u)
	}

	for _, rec := range records {
		for _, kind := range domain.CategoryKinds {
			for _, name := range rec.CategoryNames(kind) {
				if _, dup := seenCategories[kind][name]; dup {
					continue
				}
				seenCategories[kind][name] = struct{}{}
				ref.Categories[kind] = append(ref.Categories[kind], name)
			}
		}

		addUser(rec.User(domain.CreatedByField))
		for _, u := range rec.UserList(domain.AssigneeField) {
			u := u
			addUser(&u)
		}
		addUser(rec.User(domain.PassCommField))
	}

	return ref
}
