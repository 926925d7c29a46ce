// Package domain contains the core types for the pipeline migration:
// source records as exported from Airtable, the normalized pipeline
// row and its associations, the category and user registries, and the
// enum registry shared by the transformer and the pre-flight inspector.
//
// Domain types are plain Go with no external dependencies.
package domain
