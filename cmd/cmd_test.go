package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cottand/rebind/binderr"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boxFile = `
types:
  - name: Box
    modifiers: [public]
    variables:
      - symbol: T
    fields:
      - name: items
        modifiers: [private]
        type: "List<T>"
    methods:
      - name: get
        modifiers: [public]
        returns: T
        parameters:
          - type: int
            name: index
  - name: Point
    fields:
      - name: x
        type: double
`

func writeBoxFile(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "box.yaml")
	require.NoError(t, os.WriteFile(path, []byte(boxFile), 0o644))
	return path
}

// execute runs a fresh command, so no flag state is shared between tests
func execute(t *testing.T, args ...string) (string, error) {
	color.NoColor = true
	out := bytes.NewBuffer(nil)
	cmd := NewTransformCmd()
	if args[0] == "inject" {
		cmd = NewInjectCmd()
	}
	cmd.SetOut(out)
	cmd.SetArgs(args[1:])
	t.Cleanup(func() { binderr.SetDebugPrinting(false) })
	err := cmd.Execute()
	return out.String(), err
}

func TestTransformCommand(t *testing.T) {
	out, err := execute(t, "transform", writeBoxFile(t), "--field-modifiers", "final", "--method-modifiers", "synchronized")
	require.NoError(t, err)
	assert.Contains(t, out, "Box<T>\n")
	assert.Contains(t, out, "  private final List<T> items\n")
	assert.Contains(t, out, "  public synchronized T get(int index)\n")
	assert.Contains(t, out, "Point\n  final double x\n")
}

func TestTransformCommandIntoOtherType(t *testing.T) {
	out, err := execute(t, "transform", writeBoxFile(t), "--type", "Point")
	require.Error(t, err)
	assert.Contains(t, out, "(E001) type variable 'T' is not declared by any of [Point]")
	assert.Contains(t, out, "(E001) type variable 'T' is not declared by any of [Point.get, Point]")
	assert.Contains(t, out, "  double x\n")
	assert.NotContains(t, out, "List<T> items")
	assert.EqualError(t, err, "2 members could not be resolved")
}

func TestTransformCommandsDoNotShareFlags(t *testing.T) {
	out, err := execute(t, "transform", writeBoxFile(t), "--field-modifiers", "final", "--type", "Point")
	require.Error(t, err)
	assert.Contains(t, out, "  final double x\n")

	out, err = execute(t, "transform", writeBoxFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Point\n  double x\n")
	assert.Contains(t, out, "  private List<T> items\n")
}

func TestTransformCommandDebugErrors(t *testing.T) {
	out, err := execute(t, "transform", writeBoxFile(t), "--type", "Point", "--debug-errors", "--log-section", "transform")
	require.Error(t, err)
	assert.Contains(t, out, ":(E001) type variable 'T' is not declared by any of [Point]")
	assert.NotContains(t, out, "  (E001)")
}

func TestInjectCommand(t *testing.T) {
	out, err := execute(t, "inject", writeBoxFile(t), "--in-memory")
	require.NoError(t, err)
	assert.Contains(t, out, "Box struct {")
	assert.Contains(t, out, "Point struct {")
}
