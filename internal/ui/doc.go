// Package ui implements the interactive sync flow using bubbletea's Elm
// architecture.
//
// The TUI walks one reconciliation run:
//  1. [PlanView] : Browse the planned actions
//  2. [ConfirmView] : Confirm before anything is applied
//  3. [SyncView] : Monitor real-time progress updates
//  4. [ResultView] : Display counts and recorded errors
//
// The [Model] implements bubbletea's standard Init/Update/View pattern.
// Progress updates flow through a channel from the SyncEngine, providing
// non-blocking status reporting during execution.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q).
package ui
