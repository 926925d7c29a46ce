// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - CategoryStore, UserStore, PipelineStore: relational persistence
//     (SQLite adapter for live runs, memory adapter for tests)
//   - ExportReader: source of exported pipeline records (JSON dump file)
//   - ExportFetcher: the upstream Airtable-style API
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter package
package driven
