package cli

import (
	"io"
	"strconv"

	"github.com/MakeNowJust/heredoc"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/lifecycle"
	"github.com/ariel-frischer/relnotes/internal/model"
	"github.com/ariel-frischer/relnotes/internal/releasenotes"
)

const closedLayout = "2006-01-02 15:04"

func newPullsCmd(env *environment, f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "pulls [owner/repo]",
		Short: "List the pull requests closed since the last release",
		Long: heredoc.Doc(`
			List the pull requests that would be considered for the next release.

			Runs the cutoff search and pull request scan without extracting notes,
			and prints a table of every pull request closed after the cutoff.
		`),
		Example: heredoc.Doc(`
			$ relnotes pulls firebase/firebase-admin-go
			$ relnotes pulls org/repo --since-pr 421 --branch '*'
		`),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, args, env, f)
			if err != nil {
				return err
			}
			return lifecycle.Run(commandLog{s.log}, "pulls", func() error {
				scan, err := releasenotes.New(s.source, s.options(cmd, f)).Scan(cmd.Context())
				if err != nil {
					return err
				}
				printPullsTable(cmd.OutOrStdout(), scan.Pulls, s.cfg.ReleaseLabel)
				return nil
			})
		},
	}
}

func printPullsTable(w io.Writer, pulls []*model.PullRequest, label string) {
	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Number", "Base", "Closed", "Release Note", "Title"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, pr := range pulls {
		note := ""
		if pr.HasLabel(label) {
			note = "yes"
		}
		table.Append([]string{
			strconv.Itoa(pr.Number),
			pr.BaseBranch,
			pr.ClosedAt.UTC().Format(closedLayout),
			note,
			pr.Title,
		})
	}
	table.Render()
}
