package models

// TrainingModule is a static catalog entry. Content is read-only and
// shared between users; per-user completion lives in ProgressRecord.
type TrainingModule struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Duration    string       `json:"duration" yaml:"duration"`
	Difficulty  string       `json:"difficulty" yaml:"difficulty"`
	VideoURL    string       `json:"videoUrl" yaml:"videoUrl"`
	ARContent   ARContent    `json:"arContent" yaml:"arContent"`
	Steps       []ModuleStep `json:"steps" yaml:"steps"`
}

type ARContent struct {
	Model        string `json:"model" yaml:"model"`
	Instructions string `json:"instructions" yaml:"instructions"`
}

type ModuleStep struct {
	ID             int    `json:"id" yaml:"id"`
	Title          string `json:"title" yaml:"title"`
	Content        string `json:"content" yaml:"content"`
	VideoTimestamp string `json:"videoTimestamp" yaml:"videoTimestamp"`
	ARTrigger      string `json:"arTrigger" yaml:"arTrigger"`
}
