// ABOUTME: Pipeline form validation and normalization
// ABOUTME: Bounds the stage list and enforces per-stage name and color rules
package validate

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Pipeline limits.
const (
	maxPipelineNameLen = 80
	maxStages          = 30
	maxStageNameLen    = 50
	maxStageColorLen   = 20
)

// StageDraft is one stage row from the pipeline form. Color is nil when
// the field never appeared in the form, and points to "" when the user
// cleared it.
type StageDraft struct {
	Name  string
	Color *string
}

type PipelineDraft struct {
	Name   string
	Stages []StageDraft
}

type PipelinePayload struct {
	Name   string         `json:"name"`
	Stages []StagePayload `json:"stages"`
}

// StagePayload preserves the color tri-state: an absent color is omitted
// from the JSON entirely, a cleared color serializes as explicit null.
type StagePayload struct {
	Name     string
	Color    *string
	HasColor bool
}

func (s StagePayload) MarshalJSON() ([]byte, error) {
	m := map[string]interface{}{"name": s.Name}
	if s.HasColor {
		m["color"] = s.Color
	}
	return json.Marshal(m)
}

// Pipeline validates and normalizes a pipeline draft. Stages are
// checked in array order with 1-based positions embedded in messages;
// name uniqueness is case-insensitive and compared incrementally
// against the names seen so far, so the first duplicate by position is
// the one reported.
func Pipeline(d PipelineDraft) (*PipelinePayload, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, errRequired("name", "Pipeline name is required.")
	}
	if len(name) > maxPipelineNameLen {
		return nil, errTooLong("name", fmt.Sprintf("Pipeline name must be %d characters or less.", maxPipelineNameLen))
	}

	if len(d.Stages) == 0 {
		return nil, errOutOfRange("stages", "At least one stage is required.")
	}
	if len(d.Stages) > maxStages {
		return nil, errOutOfRange("stages", fmt.Sprintf("A pipeline can have at most %d stages.", maxStages))
	}

	seen := make(map[string]struct{}, len(d.Stages))
	stages := make([]StagePayload, 0, len(d.Stages))
	for i, stage := range d.Stages {
		pos := i + 1

		stageName := strings.TrimSpace(stage.Name)
		if stageName == "" {
			return nil, errRequired("stages", fmt.Sprintf("Stage %d name is required.", pos))
		}
		if len(stageName) > maxStageNameLen {
			return nil, errTooLong("stages", fmt.Sprintf("Stage %d name must be %d characters or less.", pos, maxStageNameLen))
		}

		key := strings.ToLower(stageName)
		if _, dup := seen[key]; dup {
			return nil, errDuplicate("stages", fmt.Sprintf("Stage %d has a duplicate name.", pos))
		}
		seen[key] = struct{}{}

		out := StagePayload{Name: stageName}
		if stage.Color != nil {
			color := strings.TrimSpace(*stage.Color)
			if len(color) > maxStageColorLen {
				return nil, errTooLong("stages", fmt.Sprintf("Stage %d color must be %d characters or less.", pos, maxStageColorLen))
			}
			out.HasColor = true
			if color != "" {
				out.Color = &color
			}
		}

		stages = append(stages, out)
	}

	return &PipelinePayload{Name: name, Stages: stages}, nil
}
