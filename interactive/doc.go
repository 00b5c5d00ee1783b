// Package interactive is the full-screen terminal UI of sbomdesk.
//
// The UI has three views:
//   - Scan: pick a directory and project name, trigger a scan, reopen recent projects
//   - Results: header of the latest record plus components, dependencies and an
//     expandable dependency tree
//   - Logs: lines the common logger produced while the UI was running
//
// Every network call runs as a bubbletea command with a context from
// operations.Generations; results from superseded requests are dropped.
//
// Launch with: sbomdesk ui
package interactive
