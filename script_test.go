package touchpoint

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "move", "x": 5, "y": 6},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "drag", "pointer": 2, "fromX": 1, "fromY": 2, "toX": 3, "toY": 4, "frames": 6, "ease": "outQuad"}
		]
	}`)

	runner, err := LoadScript(data)
	require.NoError(t, err)
	require.Len(t, runner.steps, 4)
	assert.Equal(t, scriptStep{Action: "move", X: 5, Y: 6}, runner.steps[0])
	assert.Equal(t, "click", runner.steps[1].Action)
	assert.Equal(t, 3, runner.steps[2].Frames)
	assert.Equal(t, 2, runner.steps[3].Pointer)
	assert.Equal(t, "outQuad", runner.steps[3].Ease)
	assert.False(t, runner.Done())
}

func TestLoadScriptYAML(t *testing.T) {
	data := []byte(`
steps:
  - action: press
    pointer: 1
    x: 10
    y: 20
  - action: release
    pointer: 1
    x: 10
    y: 20
`)
	runner, err := LoadScriptYAML(data)
	require.NoError(t, err)
	require.Len(t, runner.steps, 2)
	assert.Equal(t, scriptStep{Action: "press", Pointer: 1, X: 10, Y: 20}, runner.steps[0])
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		load    func([]byte) (*ScriptRunner, error)
		data    string
		noSteps bool
	}{
		{"invalid json", LoadScript, `not json`, false},
		{"empty json", LoadScript, `{"steps": []}`, true},
		{"unknown ease", LoadScript, `{"steps": [{"action": "drag", "ease": "wobble"}]}`, false},
		{"invalid yaml", LoadScriptYAML, "steps: [", false},
		{"empty yaml", LoadScriptYAML, "steps: []", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, err := tt.load([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, runner)
			if tt.noSteps {
				assert.ErrorIs(t, err, ErrNoSteps)
			}
		})
	}
}

func TestRunnerStep_Tap(t *testing.T) {
	in := NewInput(nil)
	h := NewHotspot("box", 0, 0, HitRect{Width: 200, Height: 200})
	in.AddCandidate(h)
	taps := 0
	in.OnTap(func(*Pointer, bool) { taps++ })

	runner, err := LoadScript([]byte(`{"steps": [{"action": "tap", "x": 50, "y": 50}]}`))
	require.NoError(t, err)
	in.SetScript(runner)

	// Frame 1 queues press+release and consumes the press.
	in.Update(at(0))
	assert.Equal(t, 1, in.Pending())
	assert.False(t, runner.Done(), "runner should not be done while injections are pending")

	// Frame 2 consumes the release.
	in.Update(at(16))
	assert.Equal(t, 1, taps)

	// Frame 3 finalizes.
	in.Update(at(32))
	assert.True(t, runner.Done())
}

func TestRunnerStep_Wait(t *testing.T) {
	in := NewInput(nil)

	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "press", "x": 1, "y": 1}
	]}`))
	require.NoError(t, err)

	// Frames 1-3: the wait step and its countdown.
	for i := 0; i < 3; i++ {
		runner.step(in)
		assert.False(t, runner.Done(), "frame %d", i+1)
		assert.Zero(t, in.Pending(), "frame %d", i+1)
	}

	// Frame 4: the press is queued.
	runner.step(in)
	assert.Equal(t, 1, in.Pending())
	assert.False(t, runner.Done())

	in.ProcessInjected(at(0))
	runner.step(in)
	assert.True(t, runner.Done())
	assert.True(t, in.Mouse().IsDown())
}

func TestRunnerStep_Drag(t *testing.T) {
	in := NewInput(nil)
	runner, err := LoadScript([]byte(`{"steps": [{"action": "drag", "pointer": 4, "fromX": 10, "fromY": 10, "toX": 200, "toY": 200, "frames": 4}]}`))
	require.NoError(t, err)

	runner.step(in)
	require.Equal(t, 4, in.Pending())
	for _, ev := range in.injectQueue {
		assert.Equal(t, 4, ev.pointer)
	}
}

func TestRunnerUnknownActionWarns(t *testing.T) {
	in := NewInput(nil)
	var buf bytes.Buffer
	in.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	runner, err := LoadScript([]byte(`{"steps": [{"action": "screenshot"}]}`))
	require.NoError(t, err)
	runner.step(in)

	assert.Contains(t, buf.String(), "unknown action")
	assert.True(t, runner.Done())
}

func TestRunnerDoneIsSticky(t *testing.T) {
	in := NewInput(nil)
	runner, err := LoadScript([]byte(`{"steps": [{"action": "reset"}]}`))
	require.NoError(t, err)
	in.SetScript(runner)

	for i := 0; i < 4; i++ {
		in.Update(at(i))
	}
	assert.True(t, runner.Done())
	assert.Zero(t, in.Pending())

	in.SetScript(nil)
	in.Update(at(10))
}

func TestEaseByName(t *testing.T) {
	for name := range easeFuncs {
		fn, ok := easeByName(name)
		assert.True(t, ok, name)
		assert.NotNil(t, fn, name)
	}
	_, ok := easeByName("")
	assert.True(t, ok)
	_, ok = easeByName("nope")
	assert.False(t, ok)
}
