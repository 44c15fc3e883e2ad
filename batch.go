package unwrap

import (
	"context"

	"github.com/gogpu/unwrap/internal/parallel"
)

// Job is one shape of a batch unwrap.
type Job struct {
	Name    string
	Mesh    Mesh
	UV      UVLayers
	Seams   []int
	Options []Option
}

// JobResult is the outcome of one Job.
type JobResult struct {
	Name   string
	Result *Result
	Err    error
}

// UnwrapAll unwraps independent shapes on a pool of workers. If workers is 0 or
// negative, GOMAXPROCS is used.
//
// Results are returned in job order. Jobs that had not started when ctx was
// done report the context error; the first such error is also returned.
// A failing job does not stop the others.
func UnwrapAll(ctx context.Context, jobs []Job, workers int) ([]JobResult, error) {
	results := make([]JobResult, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}
	pool := parallel.New(min(workers, len(jobs)))
	defer pool.Close()

	ran := make([]bool, len(jobs))
	tasks := make([]func(), len(jobs))
	for i := range jobs {
		tasks[i] = func() {
			job := &jobs[i]
			res, err := Unwrap(job.Mesh, job.UV, job.Seams, job.Options...)
			results[i] = JobResult{Name: job.Name, Result: res, Err: err}
			ran[i] = true
		}
	}

	skipped, err := pool.Run(ctx, tasks)
	if skipped > 0 {
		Logger().Warn("unwrap: batch interrupted", "skipped", skipped, "jobs", len(jobs))
		for i := range results {
			if !ran[i] {
				results[i] = JobResult{Name: jobs[i].Name, Err: err}
			}
		}
		return results, err
	}
	return results, nil
}
