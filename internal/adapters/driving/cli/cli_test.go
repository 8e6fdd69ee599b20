package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

const testScreenplay = "## Scene 1\nJohn enters the room.\n\n## Scene 2\nMary leaves."

const testResponse = `Tightened the entrance.
<editing>
<previous_version>John enters the room.</previous_version>
<new_fragment>John bursts into the room.</new_fragment>
</editing>
Anything else?`

func resetFlags() {
	minSimilarity = domain.DefaultMinSimilarity
	verbose = false
	matchJSON = false
	parseJSON = false
	parseEditsOnly = false
	applyWrite = false
	applyPatch = false
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"match", "apply", "parse", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestVersionCmd(t *testing.T) {
	SetVersion("1.4.0")
	defer SetVersion("dev")

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "scenaria-relocate version 1.4.0\n", out)
}

func TestMatchCmd_Found(t *testing.T) {
	doc := writeFile(t, "scene.md", testScreenplay)

	out, _, err := execute(t, "John enters the room.", "match", doc, "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Method:     exact")
	assert.Contains(t, out, "John enters the room.")
}

func TestMatchCmd_JSON(t *testing.T) {
	doc := writeFile(t, "scene.md", testScreenplay)
	frag := writeFile(t, "frag.txt", "Mary leaves.")

	out, _, err := execute(t, "", "match", "--json", doc, frag)
	require.NoError(t, err)

	var res domain.MatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "Mary leaves.", testScreenplay[res.Start:res.End])
	assert.GreaterOrEqual(t, res.Confidence, 0.95)
}

func TestMatchCmd_NoMatch(t *testing.T) {
	doc := writeFile(t, "scene.md", testScreenplay)

	out, _, err := execute(t, "completely unrelated text not in document at all", "match", doc, "-")
	assert.ErrorIs(t, err, domain.ErrNoMatch)
	assert.Contains(t, out, "No confident match found.")
}

func TestMatchCmd_Errors(t *testing.T) {
	doc := writeFile(t, "scene.md", testScreenplay)

	_, _, err := execute(t, "", "match", doc)
	assert.ErrorContains(t, err, "accepts 2 arg(s)")

	_, _, err = execute(t, "", "match", filepath.Join(t.TempDir(), "missing.md"), "-")
	assert.ErrorContains(t, err, "failed to read")

	_, _, err = execute(t, "", "match", doc, "-")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = execute(t, "John", "match", "--min-similarity", "1.5", doc, "-")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseCmd(t *testing.T) {
	resp := writeFile(t, "response.txt", testResponse)

	out, _, err := execute(t, "", "parse", resp)
	require.NoError(t, err)
	assert.Contains(t, out, "[1] text")
	assert.Contains(t, out, "[2] edit")
	assert.Contains(t, out, "previous: John enters the room.")
	assert.Contains(t, out, "[3] text")
}

func TestParseCmd_EditsJSON(t *testing.T) {
	out, _, err := execute(t, testResponse, "parse", "--edits", "--json", "-")
	require.NoError(t, err)

	var segs []domain.ResponseSegment
	require.NoError(t, json.Unmarshal([]byte(out), &segs))
	require.Len(t, segs, 1)
	assert.Equal(t, domain.SegmentEditing, segs[0].Type)
	assert.Equal(t, "John bursts into the room.", segs[0].NewFragment)
}

func TestParseCmd_Empty(t *testing.T) {
	out, _, err := execute(t, "plain prose", "parse", "--edits", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "No segments found.")
}

func TestApplyCmd_Stdout(t *testing.T) {
	doc := writeFile(t, "scene.md", testScreenplay)

	out, errOut, err := execute(t, testResponse, "apply", doc, "-")
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(testScreenplay, "John enters the room.", "John bursts into the room.", 1), out)
	assert.Contains(t, errOut, "edit 1: applied")

	content, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, testScreenplay, string(content), "document must be untouched without --write")
}

func TestApplyCmd_Write(t *testing.T) {
	doc := writeFile(t, "scene.md", testScreenplay)

	out, _, err := execute(t, testResponse, "apply", "--write", doc, "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Applied 1 of 1 edits")

	content, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Contains(t, string(content), "John bursts into the room.")
	assert.NotContains(t, string(content), "John enters the room.")
}

func TestApplyCmd_Patch(t *testing.T) {
	doc := writeFile(t, "scene.md", testScreenplay)

	out, _, err := execute(t, testResponse, "apply", "--patch", doc, "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "@@ -"), "expected a patch, got %q", out)
	assert.Contains(t, out, "bursts")
}

func TestApplyCmd_SkipsMisses(t *testing.T) {
	doc := writeFile(t, "scene.md", testScreenplay)
	response := testResponse + `
<editing>
<previous_version>completely unrelated text not in document at all</previous_version>
<new_fragment>ignored</new_fragment>
</editing>`

	out, errOut, err := execute(t, response, "apply", doc, "-")
	require.NoError(t, err)
	assert.Contains(t, errOut, "edit 2: previous version not found, skipped")
	assert.NotContains(t, out, "ignored")
}

func TestApplyCmd_Errors(t *testing.T) {
	doc := writeFile(t, "scene.md", testScreenplay)

	_, _, err := execute(t, "no tags here", "apply", doc, "-")
	assert.ErrorContains(t, err, "response contains no edits")

	miss := `<editing><previous_version>completely unrelated text not in document at all</previous_version><new_fragment>x</new_fragment></editing>`
	_, _, err = execute(t, miss, "apply", doc, "-")
	assert.ErrorContains(t, err, "no edits could be applied")

	_, _, err = execute(t, "", "apply", "--write", "-", doc)
	assert.ErrorContains(t, err, "--write needs a document file")
}
