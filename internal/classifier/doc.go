// Package classifier runs the merge stage: it loads the latest-year and
// stability tables, classifies every partner and writes the combined summary
// table (and optionally an Excel copy) to the data directory.
package classifier
