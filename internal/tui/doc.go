// Package tui is the interactive terminal interface. It renders the session
// snapshot as a header, a branch pane, a history pane and the output log,
// and dispatches key presses to session operations on background commands.
package tui
