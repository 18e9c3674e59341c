// Package batch runs independent remote calls with bounded fan-out.
//
// ForEach is a best-effort executor, not a transaction: every item is attempted
// exactly once, a failing item does not stop its siblings, and the returned
// *Error lists every failure in the order it was observed. Callers that mutate
// remote state must assume that items other than the failed ones were applied.
package batch

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultConcurrency is the number of calls kept in flight when no limit is given.
const DefaultConcurrency = 3

// Failure records the error returned for one item.
type Failure struct {
	// Index is the position of the item in the input slice.
	Index int
	// Err is the error returned by the action.
	Err error
}

// Error aggregates the failures of a batch.
type Error struct {
	// Label names the batch in error messages (e.g. "delete line item").
	Label string
	// Failures is ordered by observation time; Failures[0] is the first error seen.
	Failures []Failure
}

func (e *Error) Error() string {
	first := e.Failures[0]
	msg := fmt.Sprintf("failed to %s %d: %v", e.label(), first.Index, first.Err)
	if n := len(e.Failures) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}

// Unwrap exposes every item error to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// First returns the first observed failure.
func (e *Error) First() Failure {
	return e.Failures[0]
}

// Indexes returns the failed item positions in ascending order.
func (e *Error) Indexes() []int {
	idx := make([]int, len(e.Failures))
	for i, f := range e.Failures {
		idx[i] = f.Index
	}
	sort.Ints(idx)
	return idx
}

func (e *Error) label() string {
	if strings.TrimSpace(e.Label) == "" {
		return "process item"
	}
	return e.Label
}

// ForEach runs action once for every item with at most limit invocations in
// flight. It waits for all invocations to return before reporting, and returns
// an *Error when at least one of them failed.
func ForEach[T any](ctx context.Context, label string, items []T, limit int, action func(ctx context.Context, index int, item T) error) error {
	if len(items) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	if limit > len(items) {
		limit = len(items)
	}

	type job struct {
		index int
		item  T
	}

	jobs := make(chan job, len(items))
	for i, item := range items {
		jobs <- job{index: i, item: item}
	}
	close(jobs)

	var (
		mu       sync.Mutex
		failures []Failure
		wg       sync.WaitGroup
	)

	wg.Add(limit)
	for w := 0; w < limit; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := action(ctx, j.index, j.item); err != nil {
					mu.Lock()
					failures = append(failures, Failure{Index: j.index, Err: err})
					mu.Unlock()
				}
			}
		}()
	}

	wg.Wait()

	if len(failures) > 0 {
		return &Error{Label: label, Failures: failures}
	}
	return nil
}
