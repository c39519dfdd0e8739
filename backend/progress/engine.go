// Package progress implements the course completion state machine:
// marking a step complete and recomputing course- and account-level
// aggregate percentages.
package progress

import (
	"errors"
	"math"

	"skillforge/backend/models"
	"skillforge/backend/storage"
)

var (
	// ErrRecordNotFound is storage.ErrProgressNotFound re-exported so
	// callers depend on one package for the engine's failure modes.
	ErrRecordNotFound = storage.ErrProgressNotFound
	ErrCourseNotFound = errors.New("course not found")
	ErrStepNotFound   = errors.New("step not found")
)

type Engine struct {
	store storage.ProgressStore
}

func NewEngine(store storage.ProgressStore) *Engine {
	return &Engine{store: store}
}

// CompleteStep marks the step complete and recomputes the aggregates.
// Completion is monotonic and the operation is idempotent: repeating it
// leaves the record unchanged. Any identifier mismatch returns one of the
// NotFound sentinels and leaves the record unmodified.
func (e *Engine) CompleteStep(userID uint, courseID string, stepID int) (*models.ProgressRecord, error) {
	return e.store.UpdateProgress(userID, func(record *models.ProgressRecord) error {
		course, ok := record.Courses[courseID]
		if !ok {
			return ErrCourseNotFound
		}
		step := course.Step(stepID)
		if step == nil {
			return ErrStepNotFound
		}

		step.Completed = true

		completed := 0
		for _, s := range course.Steps {
			if s.Completed {
				completed++
			}
		}
		course.Progress = percent(completed, len(course.Steps))

		if course.Progress == 100 {
			course.Completed = true
			if !record.HasCompletedModule(courseID) {
				record.CompletedModules = append(record.CompletedModules, courseID)
			}
		}

		record.TotalProgress = percent(len(record.CompletedModules), len(record.Courses))
		return nil
	})
}

// percent rounds half-up; a zero total is treated as 0% rather than
// faulting on a record with no courses.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
