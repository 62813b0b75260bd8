// Package cli implements nnxctl, the offline companion to the diagnostic API.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nnx1/internal/catalog"
	"nnx1/internal/config"
	"nnx1/internal/diagnostic"
	"nnx1/internal/llm"
	"nnx1/internal/model"
	"nnx1/internal/service"
	"nnx1/pkg/logger"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	blue   = color.New(color.FgBlue).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// NewRootCommand builds the nnxctl command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "nnxctl",
		Short:         "Business diagnostic toolkit",
		Long:          "Score diagnostic answer sets, render reports and assess business phase from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "tools",
			Short: "List diagnostic tools",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listTools(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "questions [tool]",
			Short: "Print a tool's question bank",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return printQuestions(cmd.OutOrStdout(), args[0])
			},
		},
		&cobra.Command{
			Use:   "evaluate [answers.yaml]",
			Short: "Score an answer file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return evaluate(cmd.Context(), cmd.OutOrStdout(), args[0])
			},
		},
		&cobra.Command{
			Use:   "report [answers.yaml]",
			Short: "Render the Markdown report for an answer file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return renderReport(cmd.Context(), cmd.OutOrStdout(), args[0])
			},
		},
		&cobra.Command{
			Use:   "phase [y|n x10]",
			Short: "Assess business phase from ten yes/no answers",
			Args:  cobra.ExactArgs(diagnostic.PhaseQuestionCount),
			RunE: func(cmd *cobra.Command, args []string) error {
				return assessPhase(cmd.Context(), cmd.OutOrStdout(), args)
			},
		},
	)
	return root
}

func listTools(w io.Writer) error {
	var out strings.Builder
	out.WriteString(fmt.Sprintf("\n%s (%d):\n", bold("Diagnostic tools"), len(catalog.Tools())))
	for _, t := range catalog.Tools() {
		out.WriteString(fmt.Sprintf("  %s %-14s %s\n", blue("•"), t.ID, gray(t.Name)))
	}
	_, err := io.WriteString(w, out.String())
	return err
}

func printQuestions(w io.Writer, ref string) error {
	id, err := model.ParseTool(ref)
	if err != nil {
		return err
	}
	tool, err := catalog.Tool(id)
	if err != nil {
		return err
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("\n%s\n", bold(tool.Name)))
	for i, q := range tool.Questions {
		out.WriteString(fmt.Sprintf("  %2d. %s %s\n", i+1, gray(q.Code), q.Text))
	}
	_, err = io.WriteString(w, out.String())
	return err
}

func evaluate(ctx context.Context, w io.Writer, path string) error {
	f, err := LoadAnswerFile(path)
	if err != nil {
		return err
	}
	answers, err := f.ModelAnswers()
	if err != nil {
		return err
	}

	eval, err := service.NewInsightService(logger.NewNop()).Evaluate(ctx, &model.EvaluateRequest{Tool: f.Tool, Answers: answers})
	if err != nil {
		return err
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("\n%s\n", bold(eval.ToolName)))
	out.WriteString(fmt.Sprintf("  Score: %s  (%d yes / %d no)\n", scoreColor(eval.Tier.Color)(fmt.Sprintf("%d%%", eval.Score)), eval.YesCount, eval.NoCount))
	out.WriteString(fmt.Sprintf("  Tier:  %s\n", bold(eval.Tier.Label)))
	out.WriteString(fmt.Sprintf("  %s\n", gray(eval.ScoreMessage)))
	if eval.Tier.PointsToNext != nil && eval.Tier.NextLabel != nil {
		out.WriteString(fmt.Sprintf("  %d points to %s\n", *eval.Tier.PointsToNext, *eval.Tier.NextLabel))
	}

	out.WriteString(fmt.Sprintf("\n%s\n", bold("Insights")))
	for _, in := range eval.Insights {
		out.WriteString(fmt.Sprintf("  %s %s\n", yellow("•"), bold(in.Title)))
		out.WriteString(fmt.Sprintf("    %s\n", in.Description))
	}

	out.WriteString(fmt.Sprintf("\n%s\n", bold("Recommendations")))
	for _, r := range eval.Milestones.Recommendations {
		out.WriteString(fmt.Sprintf("  %s %s\n", green("→"), r))
	}
	_, err = io.WriteString(w, out.String())
	return err
}

func scoreColor(c model.ColorClass) func(a ...interface{}) string {
	switch c {
	case model.ColorGreen:
		return green
	case model.ColorBlue:
		return blue
	case model.ColorYellow:
		return yellow
	default:
		return red
	}
}

// renderReport uses the configured narrative provider when one is set up and
// the fallback insights otherwise.
func renderReport(ctx context.Context, w io.Writer, path string) error {
	f, err := LoadAnswerFile(path)
	if err != nil {
		return err
	}
	answers, err := f.ModelAnswers()
	if err != nil {
		return err
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	provider, err := llm.NewProvider(ctx, cfg.Narrative)
	if err != nil && !errors.Is(err, llm.ErrNotConfigured) {
		return err
	}
	narrative, err := service.NewNarrativeService(provider, cfg.Narrative, logger.NewNop())
	if err != nil {
		return err
	}

	resp, err := service.NewReportService(narrative, logger.NewNop()).Generate(ctx, &model.GenerateReportRequest{
		Tool:    f.Tool,
		Name:    f.Name,
		Answers: answers,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, resp.Content)
	return err
}

func assessPhase(ctx context.Context, w io.Writer, args []string) error {
	answers := make([]bool, len(args))
	for i, a := range args {
		v, err := model.ParseAnswerValue(a)
		if err != nil {
			return fmt.Errorf("answer %d: %w", i+1, err)
		}
		answers[i] = v == model.AnswerYes
	}

	result, err := service.NewInsightService(logger.NewNop()).AssessPhase(ctx, answers)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\n%s %s (%d/10)\n  %s\n  %s %s\n",
		bold("Phase:"), green(string(result.Phase)), result.YesCount,
		result.Description,
		blue("Next:"), result.NextStep)
	return err
}
