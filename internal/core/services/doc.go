// Package services implements the driving port interfaces: the reference
// data collector, the record transformer shared by both execution modes,
// the online migration driver, the offline SQL dump generator and the
// pre-flight inspector.
//
// Services contain the migration logic and orchestrate calls to driven
// ports (store adapters). Record processing is strictly sequential; only
// the initial reference-data load fans out.
package services
