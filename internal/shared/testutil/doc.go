// Package testutil holds test helpers shared across packages: a capturing
// slog handler and input-table fixtures written to a temporary data
// directory.
package testutil
