// Package parallel runs independent unwrap jobs on a fixed set of goroutines.
//
// Each worker owns a queue and steals from its siblings once the queue runs dry,
// so a batch of shapes of very different sizes still keeps every worker busy.
package parallel
