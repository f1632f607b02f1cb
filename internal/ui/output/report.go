package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/ui/style"
)

// WriteSummary renders a build result for the terminal: scan problems and
// compiler diagnostics first, one summary line last.
func WriteSummary(w io.Writer, res *domain.BuildResult) {
	for _, sf := range res.ScanFailures {
		fmt.Fprintln(w, style.Warn.Render(fmt.Sprintf("%s scan failed for %s: %v", style.Dot, sf.Path, sf.Err)))
	}

	for _, f := range res.Failures {
		fmt.Fprintln(w, style.Failure.Render(fmt.Sprintf("%s %s", style.Cross, f.Unit)))
		if diag := strings.TrimSpace(f.Output); diag != "" {
			fmt.Fprintln(w, diag)
		}
	}

	if res.LinkErr != nil {
		fmt.Fprintln(w, style.Failure.Render(style.Cross+" link failed"))
		if diag := strings.TrimSpace(res.LinkOutput); diag != "" {
			fmt.Fprintln(w, diag)
		}
		return
	}

	switch {
	case res.Failed > 0:
		total := res.Failed + res.Compiled + res.Skipped
		fmt.Fprintln(w, style.Failure.Render(fmt.Sprintf("%s build failed: %d of %d units", style.Cross, res.Failed, total)))
	case res.Compiled == 0 && !res.Linked:
		fmt.Fprintln(w, style.Success.Render(style.Check+" up to date"))
	default:
		fmt.Fprintln(w, style.Success.Render(fmt.Sprintf(
			"%s build succeeded: %d compiled, %d up to date in %s",
			style.Check, res.Compiled, res.Skipped, res.Duration.Round(time.Millisecond),
		)))
	}
}
