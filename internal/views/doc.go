// Package views implements the screen state controllers behind the terminal UI.
//
// A controller owns the state of one screen while it is shown. It fetches what
// it needs from [services.Client], reads and writes the [session.Session], and
// publishes an [Update] whenever its state changes. Rendering lives in the ui
// package; controllers never import it.
//
// # Lifetime
//
// Activate binds the controller to a context that lives until Deactivate.
// In-flight requests and background tasks (the dashboard's days-left ticker)
// run under that context, and results that arrive after Deactivate are dropped.
// Deactivate waits for background tasks to exit, so no state changes once it
// returns.
//
// # Updates
//
// Updates are sent on a single-slot channel without blocking. A slow reader
// misses intermediate updates but can always read the latest state with State.
package views
