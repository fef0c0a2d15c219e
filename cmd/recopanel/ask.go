package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/recopanel/internal/domain/panel"
	"github.com/kailas-cloud/recopanel/internal/domain/recommendation"
	"github.com/kailas-cloud/recopanel/internal/usecase/recommend"
)

var (
	askHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	askCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	askScoreStyle  = askCellStyle.Foreground(lipgloss.Color("34")).Align(lipgloss.Right)
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ask <query...>",
		Short: "Run one query and print the recommendations",
		Long: `Run one query and print the recommendations.

Arguments are joined with spaces. A query that starts with "http" is sent
as a link to a job posting.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := opts.newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			svc := recommend.New(newCollaborator(cfg, logger), logger)
			st := svc.Submit(cmd.Context(), panel.New(), strings.Join(args, " "))

			return printState(cmd.OutOrStdout(), st, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the recommendations as JSON")
	return cmd
}

// printState renders a settled panel. A failure becomes the generic error;
// an idle panel (blank query) prints nothing.
func printState(w io.Writer, st panel.State, asJSON bool) error {
	switch st.Condition() {
	case panel.Failed:
		return errors.New(st.Error())
	case panel.Idle:
		return nil
	}

	items := st.Items()
	if asJSON {
		if items == nil {
			items = []recommendation.Item{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if !st.ShowResults() {
		return nil
	}
	_, err := fmt.Fprintf(w, "Recommended Assessments (%d results)\n%s\n", len(items), renderTable(items))
	return err
}

func renderTable(items []recommendation.Item) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{it.Name, it.ScoreLabel(), it.URL})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Assessment Name", "Match Score", "Link").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return askHeaderStyle
			case col == 1:
				return askScoreStyle
			default:
				return askCellStyle
			}
		}).
		String()
}
