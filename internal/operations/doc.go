// Package operations runs the batch stages as an ordered set of steps.
//
// A Registry holds steps by ID and resolves their dependency order. The
// Manager executes them sequentially, tracking a StepState per step, and
// skips any step whose dependencies did not complete. NewPipeline wires the
// classifier and figures stages, with figures depending on the classifier.
package operations
