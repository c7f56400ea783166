package revpath

import (
	"strings"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLocal(t *testing.T) {
	for _, toPin := range []struct {
		input string
		left  string
		right string
	}{
		{input: "rev:tgt", left: "rev", right: "tgt"},
		{input: "rev:", left: "rev", right: ""},
		{input: "tgt", left: "", right: "tgt"},
		{input: ":tgt", left: "", right: "tgt"},
		{input: "", left: "", right: ""},
		{input: ":", left: "", right: ""},
		{input: "a:b:c", left: "a", right: "b:c"},
		{input: "/data/set:jsonl", left: "/data/set", right: "jsonl"},
	} {
		testcase := toPin
		t.Run(testcase.input, func(t *testing.T) {
			left, right := SplitLocal(testcase.input)
			assert.Equal(t, testcase.left, left)
			assert.Equal(t, testcase.right, right)
		})
	}
}

func TestSplitLocalTotal(t *testing.T) {
	property := func(s string) bool {
		left, right := SplitLocal(s)
		if !strings.Contains(s, ":") {
			return left == "" && right == s
		}
		return left+":"+right == s && !strings.Contains(left, ":")
	}
	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 2000}))

	for _, s := range []string{"a:", ":a", "::", "x::y", "@:."} {
		assert.True(t, property(s), "property does not hold for %q", s)
	}
}

func TestParseForms(t *testing.T) {
	t.Run("workspace path", func(t *testing.T) {
		assert.Equal(t, workspacePathForm{path: "/ws"}, parseWorkspacePath("/ws"))
		assert.Equal(t, workspacePathForm{path: "/ws", rest: "rev:src", hasRest: true}, parseWorkspacePath("/ws@rev:src"))
		assert.Equal(t, workspacePathForm{path: "/my@ws", rest: "", hasRest: true}, parseWorkspacePath("/my@ws@"))
	})

	t.Run("revision", func(t *testing.T) {
		assert.Equal(t, revisionForm{target: "src"}, parseRevision("src"))
		assert.Equal(t, revisionForm{revision: "rev", target: "src.stage", hasSeparator: true}, parseRevision("rev:src.stage"))
		assert.Equal(t, revisionForm{revision: "rev", hasSeparator: true}, parseRevision("rev:"))
	})

	t.Run("target", func(t *testing.T) {
		source, stage := splitTarget("src.stage")
		assert.Equal(t, "src", source)
		assert.Equal(t, "stage", stage)
		source, stage = splitTarget("src")
		assert.Equal(t, "src", source)
		assert.Empty(t, stage)
	})

	t.Run("dataset", func(t *testing.T) {
		assert.Equal(t, datasetForm{path: "/data"}, parseDataset("/data"))
		assert.Equal(t, datasetForm{path: "/data", format: "csv"}, parseDataset("/data:csv"))
	})
}
