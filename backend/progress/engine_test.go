package progress

import (
	"fmt"
	"sync"
	"testing"

	"skillforge/backend/models"
	"skillforge/backend/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// seedRecord creates a store holding one record for userID with the given
// course sizes, all steps incomplete.
func seedRecord(t *testing.T, userID uint, courseSteps map[string]int) (*storage.Memory, *Engine) {
	t.Helper()

	record := &models.ProgressRecord{
		CompletedModules: []string{},
		Courses:          make(map[string]*models.Course),
	}
	for courseID, n := range courseSteps {
		course := &models.Course{Title: courseID}
		for i := 1; i <= n; i++ {
			course.Steps = append(course.Steps, &models.Step{ID: i, Title: fmt.Sprintf("Step %d", i)})
		}
		record.Courses[courseID] = course
	}

	store := storage.NewMemory()
	require.NoError(t, store.CreateProgress(userID, record))
	return store, NewEngine(store)
}

func TestCompleteStepScenario(t *testing.T) {
	store, engine := seedRecord(t, 1, map[string]int{"welding-101": 4})

	record, err := store.Progress(1)
	require.NoError(t, err)
	assert.Equal(t, 0, record.TotalProgress)
	assert.Equal(t, 0, record.Courses["welding-101"].Progress)
	assert.Empty(t, record.CompletedModules)

	for _, stepID := range []int{1, 2, 3} {
		record, err = engine.CompleteStep(1, "welding-101", stepID)
		require.NoError(t, err)
	}
	course := record.Courses["welding-101"]
	assert.Equal(t, 75, course.Progress)
	assert.False(t, course.Completed)
	assert.Empty(t, record.CompletedModules)
	assert.Equal(t, 0, record.TotalProgress)

	record, err = engine.CompleteStep(1, "welding-101", 4)
	require.NoError(t, err)
	course = record.Courses["welding-101"]
	assert.Equal(t, 100, course.Progress)
	assert.True(t, course.Completed)
	assert.Equal(t, []string{"welding-101"}, record.CompletedModules)
	assert.Equal(t, 100, record.TotalProgress)
}

func TestCompleteStepIdempotent(t *testing.T) {
	_, engine := seedRecord(t, 1, map[string]int{"welding-101": 4})

	first, err := engine.CompleteStep(1, "welding-101", 2)
	require.NoError(t, err)

	second, err := engine.CompleteStep(1, "welding-101", 2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 25, second.Courses["welding-101"].Progress)
}

func TestCompleteStepCompletedModulesNoDuplicates(t *testing.T) {
	_, engine := seedRecord(t, 1, map[string]int{"welding-101": 1})

	record, err := engine.CompleteStep(1, "welding-101", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"welding-101"}, record.CompletedModules)

	record, err = engine.CompleteStep(1, "welding-101", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"welding-101"}, record.CompletedModules)
	assert.Equal(t, 100, record.TotalProgress)
}

func TestCompleteStepTotalProgressAcrossCourses(t *testing.T) {
	_, engine := seedRecord(t, 1, map[string]int{"welding-101": 2, "forging-201": 3})

	record, err := engine.CompleteStep(1, "welding-101", 1)
	require.NoError(t, err)
	record, err = engine.CompleteStep(1, "welding-101", 2)
	require.NoError(t, err)

	assert.True(t, record.Courses["welding-101"].Completed)
	assert.False(t, record.Courses["forging-201"].Completed)
	assert.Equal(t, 50, record.TotalProgress)
}

func TestCompleteStepNotFound(t *testing.T) {
	store, engine := seedRecord(t, 1, map[string]int{"welding-101": 4})

	before, err := store.Progress(1)
	require.NoError(t, err)

	_, err = engine.CompleteStep(1, "no-such-course", 1)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	_, err = engine.CompleteStep(1, "welding-101", 99)
	assert.ErrorIs(t, err, ErrStepNotFound)

	_, err = engine.CompleteStep(42, "welding-101", 1)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	// Failed transitions must not leak partial writes.
	after, err := store.Progress(1)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCompleteStepConcurrent(t *testing.T) {
	_, engine := seedRecord(t, 1, map[string]int{"welding-101": 4})

	var wg sync.WaitGroup
	for stepID := 1; stepID <= 4; stepID++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, err := engine.CompleteStep(1, "welding-101", id)
			assert.NoError(t, err)
		}(stepID)
	}
	wg.Wait()

	record, err := engine.CompleteStep(1, "welding-101", 1)
	require.NoError(t, err)
	assert.Equal(t, 100, record.Courses["welding-101"].Progress)
	assert.True(t, record.Courses["welding-101"].Completed)
	assert.Equal(t, []string{"welding-101"}, record.CompletedModules)
	assert.Equal(t, 100, record.TotalProgress)
}

func TestCourseProgressProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		numSteps := rapid.IntRange(1, 12).Draw(rt, "numSteps")
		numCompleted := rapid.IntRange(0, numSteps).Draw(rt, "numCompleted")
		order := rapid.Permutation(stepIDs(numSteps)).Draw(rt, "order")

		store := storage.NewMemory()
		course := &models.Course{Title: "Course"}
		for i := 1; i <= numSteps; i++ {
			course.Steps = append(course.Steps, &models.Step{ID: i})
		}
		record := &models.ProgressRecord{
			CompletedModules: []string{},
			Courses:          map[string]*models.Course{"course": course},
		}
		if err := store.CreateProgress(7, record); err != nil {
			rt.Fatal(err)
		}
		engine := NewEngine(store)

		var last *models.ProgressRecord
		for _, stepID := range order[:numCompleted] {
			updated, err := engine.CompleteStep(7, "course", stepID)
			if err != nil {
				rt.Fatal(err)
			}
			last = updated
		}
		if numCompleted == 0 {
			return
		}

		want := int(float64(numCompleted)/float64(numSteps)*100 + 0.5)
		got := last.Courses["course"]
		if got.Progress != want {
			rt.Fatalf("progress = %d, want %d (%d of %d steps)", got.Progress, want, numCompleted, numSteps)
		}
		if got.Completed != (numCompleted == numSteps) {
			rt.Fatalf("completed = %v with %d of %d steps", got.Completed, numCompleted, numSteps)
		}
		if got.Completed {
			if len(last.CompletedModules) != 1 || last.CompletedModules[0] != "course" {
				rt.Fatalf("completedModules = %v, want exactly one entry", last.CompletedModules)
			}
			if last.TotalProgress != 100 {
				rt.Fatalf("totalProgress = %d, want 100", last.TotalProgress)
			}
		} else if last.TotalProgress != 0 {
			rt.Fatalf("totalProgress = %d, want 0 while course incomplete", last.TotalProgress)
		}

		// Re-completing an already completed step changes nothing.
		repeat := order[rapid.IntRange(0, numCompleted-1).Draw(rt, "repeatIdx")]
		again, err := engine.CompleteStep(7, "course", repeat)
		if err != nil {
			rt.Fatal(err)
		}
		if again.Courses["course"].Progress != got.Progress {
			rt.Fatalf("idempotence violated: %d != %d", again.Courses["course"].Progress, got.Progress)
		}
	})
}

func TestPercentRounding(t *testing.T) {
	assert.Equal(t, 0, percent(0, 4))
	assert.Equal(t, 25, percent(1, 4))
	assert.Equal(t, 33, percent(1, 3))
	assert.Equal(t, 67, percent(2, 3))
	assert.Equal(t, 17, percent(1, 6)) // 16.67 rounds up
	assert.Equal(t, 50, percent(1, 2))
	assert.Equal(t, 100, percent(4, 4))
	// Zero courses is guarded as 0% rather than a division fault.
	assert.Equal(t, 0, percent(0, 0))
}

func stepIDs(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}
