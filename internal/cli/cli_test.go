package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nnx1/internal/model"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeAnswers(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReadAnswerFile(t *testing.T) {
	f, err := ReadAnswerFile(strings.NewReader("tool: cash-flow\nname: Acme\nanswers: [Yes, no, Y, n]\n"))
	require.NoError(t, err)
	assert.Equal(t, "cash-flow", f.Tool)
	assert.Equal(t, "Acme", f.Name)

	answers, err := f.ModelAnswers()
	require.NoError(t, err)
	require.Len(t, answers, 4)
	assert.Equal(t, model.AnswerYes, answers[0].Answer)
	assert.Equal(t, model.AnswerNo, answers[1].Answer)
	assert.Equal(t, "cash-flow-1", answers[0].QuestionID)
	assert.NotEmpty(t, answers[0].QuestionText)

	f.Answers = []string{"Yes", "maybe"}
	_, err = f.ModelAnswers()
	assert.ErrorContains(t, err, "answer 2")
}

func TestModelAnswers_UnknownTool(t *testing.T) {
	f := &AnswerFile{Tool: "bookkeeping", Answers: []string{"Yes", "No"}}
	answers, err := f.ModelAnswers()
	require.NoError(t, err)
	assert.Equal(t, "q2", answers[1].QuestionID)
	assert.Empty(t, answers[1].QuestionText)
}

func TestToolsCommand(t *testing.T) {
	out, err := run(t, "tools")
	require.NoError(t, err)
	assert.Contains(t, out, "Diagnostic tools (3)")
	assert.Contains(t, out, "data-hygiene")
	assert.Contains(t, out, "Marketing Effectiveness Diagnostic")
}

func TestQuestionsCommand(t *testing.T) {
	out, err := run(t, "questions", "marketing")
	require.NoError(t, err)
	assert.Contains(t, out, "ME001")
	assert.Contains(t, out, "ME010")

	_, err = run(t, "questions", "astrology")
	assert.ErrorIs(t, err, model.ErrUnknownTool)
}

func TestEvaluateCommand(t *testing.T) {
	path := writeAnswers(t, "tool: marketing\nanswers: [Yes, Yes, Yes, Yes, Yes, Yes, Yes, Yes, No, No]\n")
	out, err := run(t, "evaluate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Marketing Effectiveness Diagnostic")
	assert.Contains(t, out, "Score: 80%")
	assert.Contains(t, out, "(8 yes / 2 no)")
	assert.Contains(t, out, "Level 3: Operator")
	assert.Contains(t, out, "Insights")

	_, err = run(t, "evaluate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestReportCommand(t *testing.T) {
	t.Setenv("NNX1_CONFIG", "")
	path := writeAnswers(t, "tool: cash-flow\nname: Acme Co\nanswers: [Yes, Yes, Yes, Yes, Yes, Yes, Yes, No, No, No]\n")
	out, err := run(t, "report", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "**NBLK BUSINESS DIAGNOSTIC REPORT**"))
	assert.Contains(t, out, "**Client:** Acme Co")
	assert.Contains(t, out, "**Score:** 70/100")

	short := writeAnswers(t, "tool: cash-flow\nanswers: [Yes]\n")
	_, err = run(t, "report", short)
	assert.Error(t, err)
}

func TestPhaseCommand(t *testing.T) {
	out, err := run(t, "phase", "y", "y", "y", "y", "n", "n", "n", "n", "n", "n")
	require.NoError(t, err)
	assert.Contains(t, out, "Stabilization (4/10)")

	_, err = run(t, "phase", "y", "n")
	assert.Error(t, err)

	_, err = run(t, "phase", "y", "y", "y", "y", "n", "n", "n", "n", "n", "perhaps")
	assert.ErrorContains(t, err, "answer 10")
}
