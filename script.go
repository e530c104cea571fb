package touchpoint

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// ErrNoSteps is returned when a script has no steps.
var ErrNoSteps = errors.New("no steps")

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action  string  `json:"action" yaml:"action"`
	Pointer int     `json:"pointer,omitempty" yaml:"pointer,omitempty"`
	X       float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y       float64 `json:"y,omitempty" yaml:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty" yaml:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty" yaml:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty" yaml:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty" yaml:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty" yaml:"frames,omitempty"`
	Ease    string  `json:"ease,omitempty" yaml:"ease,omitempty"`
}

// script is the top-level structure for an input script.
type script struct {
	Steps []scriptStep `json:"steps" yaml:"steps"`
}

// ScriptRunner sequences injected pointer events across frames for automated
// interaction tests. Attach to an Input via SetScript; Input.Update advances
// it one frame at a time.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	return newScriptRunner(s)
}

// LoadScriptYAML parses a YAML input script.
func LoadScriptYAML(yamlData []byte) (*ScriptRunner, error) {
	var s script
	if err := yaml.Unmarshal(yamlData, &s); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	return newScriptRunner(s)
}

func newScriptRunner(s script) (*ScriptRunner, error) {
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: %w", ErrNoSteps)
	}
	for i, st := range s.Steps {
		if _, ok := easeByName(st.Ease); !ok {
			return nil, fmt.Errorf("parse input script: step %d: unknown ease %q", i, st.Ease)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScript attaches a runner. A nil runner detaches the current one.
func (in *Input) SetScript(runner *ScriptRunner) {
	in.script = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Input.Update.
func (r *ScriptRunner) step(in *Input) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(in.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		in.InjectPress(st.Pointer, st.X, st.Y)
	case "move":
		in.InjectMove(st.Pointer, st.X, st.Y)
	case "release":
		in.InjectRelease(st.Pointer, st.X, st.Y)
	case "tap", "click":
		in.InjectTap(st.Pointer, st.X, st.Y)
	case "drag":
		fn, _ := easeByName(st.Ease)
		in.InjectDrag(st.Pointer, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, fn)
	case "reset":
		in.InjectReset(st.Pointer)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		in.log.Warn("input script: unknown action", "action", st.Action, "step", r.cursor-1)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(in.injectQueue) == 0 {
		r.done = true
	}
}

var easeFuncs = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"outBounce":    ease.OutBounce,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
}

// easeByName resolves a script easing name. The empty name means linear.
func easeByName(name string) (ease.TweenFunc, bool) {
	if name == "" {
		return ease.Linear, true
	}
	fn, ok := easeFuncs[name]
	return fn, ok
}
