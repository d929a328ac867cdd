// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Outcome is the terminal state of one file's conversion attempt.
type Outcome string

const (
	OutcomeConverted    Outcome = "converted"
	OutcomeSkipped      Outcome = "skipped"
	OutcomeDecodeFailed Outcome = "decode_failed"
	OutcomeEncodeFailed Outcome = "encode_failed"
	OutcomeToolMissing  Outcome = "tool_missing"
	OutcomeError        Outcome = "error"
	OutcomeInterrupted  Outcome = "interrupted"
)

// Failed reports whether the outcome counts toward the failed tally.
func (o Outcome) Failed() bool {
	return o != OutcomeConverted && o != OutcomeSkipped
}

// Tally counts outcomes across a run.
type Tally struct {
	Converted int `json:"converted" yaml:"converted"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Add records one outcome.
func (t *Tally) Add(o Outcome) {
	switch {
	case o == OutcomeConverted:
		t.Converted++
	case o == OutcomeSkipped:
		t.Skipped++
	default:
		t.Failed++
	}
}

// Total returns the number of files processed.
func (t Tally) Total() int {
	return t.Converted + t.Skipped + t.Failed
}

// FileResult records what happened to a single input file.
type FileResult struct {
	Input    string        `json:"input" yaml:"input"`
	Output   string        `json:"output" yaml:"output"`
	Outcome  Outcome       `json:"outcome" yaml:"outcome"`
	Detail   string        `json:"detail,omitempty" yaml:"detail,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	// Root is the sound folder the run was started on.
	Root string `json:"root" yaml:"root"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	Tally `yaml:",inline"`

	// Interrupted is set when the run stopped early on a cancelled context.
	Interrupted bool `json:"interrupted" yaml:"interrupted"`

	Files []FileResult `json:"files" yaml:"files"`
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}
