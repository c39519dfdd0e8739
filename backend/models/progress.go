package models

// ProgressRecord is the per-user container of course completion state.
// CurrentModule is carried for the client but never written by the server.
type ProgressRecord struct {
	CompletedModules []string           `json:"completedModules"`
	CurrentModule    *string            `json:"currentModule"`
	TotalProgress    int                `json:"totalProgress"`
	Courses          map[string]*Course `json:"courses"`
}

type Course struct {
	Title     string  `json:"title"`
	Progress  int     `json:"progress"`
	Completed bool    `json:"completed"`
	Steps     []*Step `json:"steps"`
}

type Step struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Step returns the step with the given id, or nil.
func (c *Course) Step(id int) *Step {
	for _, s := range c.Steps {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// HasCompletedModule reports whether courseID is already recorded as completed.
func (p *ProgressRecord) HasCompletedModule(courseID string) bool {
	for _, id := range p.CompletedModules {
		if id == courseID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand out records without
// exposing the stored instance to mutation.
func (p *ProgressRecord) Clone() *ProgressRecord {
	out := &ProgressRecord{
		CompletedModules: append([]string(nil), p.CompletedModules...),
		TotalProgress:    p.TotalProgress,
		Courses:          make(map[string]*Course, len(p.Courses)),
	}
	if p.CurrentModule != nil {
		current := *p.CurrentModule
		out.CurrentModule = &current
	}
	for id, course := range p.Courses {
		copied := &Course{
			Title:     course.Title,
			Progress:  course.Progress,
			Completed: course.Completed,
			Steps:     make([]*Step, len(course.Steps)),
		}
		for i, step := range course.Steps {
			s := *step
			copied.Steps[i] = &s
		}
		out.Courses[id] = copied
	}
	return out
}
