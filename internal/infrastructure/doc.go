// Package infrastructure provides the ambient runtime services shared by the
// commands: structured JSON logging with run trace IDs, and batch metrics
// flushed to a Prometheus textfile.
package infrastructure
