// Package driving defines the interfaces through which the CLI drives the
// core: migration, dump generation and pre-flight inspection.
//
// Services implement these interfaces; the CLI adapter depends on them
// rather than on concrete service types.
package driving
