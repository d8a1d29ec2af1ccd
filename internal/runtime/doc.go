// Package runtime provides the execution context for gitdesk commands.
//
// It encapsulates shared dependencies needed by commands, such as the loaded
// configuration, the logger, the credential store and the session.
package runtime
