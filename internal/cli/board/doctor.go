package board

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/kanban/internal/cli"
	"github.com/thenoetrevino/kanban/internal/cli/styles"
	columnservice "github.com/thenoetrevino/kanban/internal/services/column"
)

// ErrBoardNotDense is returned by doctor when a column needs repair
var ErrBoardNotDense = columnservice.ErrColumnNotDense

// DoctorCmd returns the doctor command
func DoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that every column is ordered 0..n-1",
		Long: `Check that the positions in every column form the sequence 0..n-1.

Without --repair the command only reports and exits with status 4 when a
column is broken. With --repair broken columns are renumbered in place,
keeping their current order.`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}

	cmd.Flags().Bool("repair", false, "Renumber broken columns")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	repair, _ := cmd.Flags().GetBool("repair")

	cliInstance, release, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer release()

	columns := cliInstance.App.ColumnService
	var reports []columnservice.Report
	if repair {
		reports, err = columns.Repair(ctx)
	} else {
		reports, err = columns.Verify(ctx)
	}
	if err != nil {
		return formatter.Fail(err, "")
	}

	var broken []string
	for _, r := range reports {
		if !r.Healthy() && !repair {
			broken = append(broken, string(r.Status))
		}
	}

	if len(broken) > 0 {
		err := fmt.Errorf("%w: %s", ErrBoardNotDense, strings.Join(broken, ", "))
		if formatter.JSON {
			if fmtErr := formatter.ErrorWithData("NOT_DENSE", err.Error(), reports); fmtErr != nil {
				return cli.WithExitCode(cli.ExitFailure, fmtErr)
			}
			return cli.WithExitCode(cli.ExitDataErr, err)
		}
		if !formatter.Quiet {
			fmt.Fprintln(formatter.Out, renderReports(reports, false))
		}
		return formatter.Reject(cli.ExitDataErr, "NOT_DENSE", err, "Run 'kanban doctor --repair'")
	}

	if formatter.Quiet {
		return nil
	}
	return formatter.Success(reports, renderReports(reports, repair))
}

func renderReports(reports []columnservice.Report, repaired bool) string {
	var b strings.Builder
	for _, r := range reports {
		fmt.Fprintf(&b, "%s (%d tasks): ", styles.RenderStatus(r.Status), r.Count)
		switch {
		case r.Rewritten > 0:
			b.WriteString(styles.WarningStyle.Render(fmt.Sprintf("repaired, %d rewritten", r.Rewritten)))
		case r.Healthy():
			b.WriteString(styles.SuccessStyle.Render("ok"))
		default:
			b.WriteString(styles.ErrorStyle.Render(describe(r)))
		}
		b.WriteString("\n")
	}
	if repaired {
		b.WriteString(styles.SubtitleStyle.Render("repair complete"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func describe(r columnservice.Report) string {
	var parts []string
	if v := r.Violation.Missing; len(v) > 0 {
		parts = append(parts, fmt.Sprintf("missing %v", v))
	}
	if v := r.Violation.Duplicated; len(v) > 0 {
		parts = append(parts, fmt.Sprintf("duplicated %v", v))
	}
	if v := r.Violation.OutOfRange; len(v) > 0 {
		parts = append(parts, fmt.Sprintf("out of range %v", v))
	}
	return strings.Join(parts, ", ")
}
