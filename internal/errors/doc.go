// Package errors defines the typed application errors shared by both stages.
//
// Two kinds drive control flow:
//
//   - MissingInput: a required upstream artifact is absent. Fatal; the message
//     names the expected producer step.
//   - DataQuality: an optional artifact is absent or malformed. Logged as a
//     warning and the dependent output is skipped.
//
// The remaining kinds (Parsing, Storage, Render, Config) classify I/O and
// rendering failures for logging.
package errors
