// Package repl implements the daemon's interactive command loop: a line
// oriented prompt that drives build cycles against one long-lived session.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/ui/output"
	"go.trai.ch/forge/internal/ui/style"
	"golang.org/x/term"
)

const help = `commands:
  build   compile everything that changed and relink
  run     execute the binary from the last successful build
  help    show this help
  close   persist the cache and quit (alias: exit)`

// Builder is the slice of the application session the loop drives.
type Builder interface {
	Build(ctx context.Context) (*domain.BuildResult, error)
	RunBinary(ctx context.Context) error
}

// Loop reads commands from in and writes everything user-facing to out.
// The watcher is optional; when present, pending filesystem changes are
// surfaced as a hint above the prompt.
type Loop struct {
	builder Builder
	watcher ports.Watcher
	log     ports.Logger
	in      io.Reader
	out     io.Writer
	prompt  string
}

// New creates a command loop. The prompt is only styled when in is an
// actual terminal, so piped sessions stay machine-readable.
func New(builder Builder, watcher ports.Watcher, log ports.Logger, in io.Reader, out io.Writer) *Loop {
	prompt := "forge> "
	if isTerminal(in) {
		prompt = style.Prompt.Render("forge>") + " "
	}
	return &Loop{
		builder: builder,
		watcher: watcher,
		log:     log,
		in:      in,
		out:     out,
		prompt:  prompt,
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run executes the loop until a close command, end of input or context
// cancellation. End of input counts as a clean close so piped scripts
// do not need a trailing `close`.
func (l *Loop) Run(ctx context.Context) error {
	fmt.Fprintln(l.out, "forge daemon ready, type 'help' for commands")

	sc := bufio.NewScanner(l.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.hint()
		fmt.Fprint(l.out, l.prompt)

		if !sc.Scan() {
			fmt.Fprintln(l.out)
			return sc.Err()
		}
		if closed := l.dispatch(ctx, sc.Text()); closed {
			return nil
		}
	}
}

// hint surfaces files changed since the previous prompt. Advisory only:
// the next build re-derives staleness from fingerprints either way.
func (l *Loop) hint() {
	if l.watcher == nil {
		return
	}
	if changed := l.watcher.Drain(); len(changed) > 0 {
		fmt.Fprintln(l.out, style.Hint.Render(fmt.Sprintf("%s %d file(s) changed since last build", style.Dot, len(changed))))
	}
}

func (l *Loop) dispatch(ctx context.Context, line string) bool {
	cmd := domain.ParseCommand(line)
	switch cmd.Kind {
	case domain.CmdNone:
	case domain.CmdBuild:
		res, err := l.builder.Build(ctx)
		if err != nil {
			l.log.Error(err)
			fmt.Fprintln(l.out, style.Failure.Render(style.Cross+" "+err.Error()))
			break
		}
		output.WriteSummary(l.out, res)
	case domain.CmdRun:
		if err := l.builder.RunBinary(ctx); err != nil {
			if errors.Is(err, domain.ErrNoBinary) {
				fmt.Fprintln(l.out, style.Warn.Render(style.Dot+" "+domain.ErrNoBinary.Error()))
				break
			}
			fmt.Fprintln(l.out, style.Failure.Render(style.Cross+" "+err.Error()))
		}
	case domain.CmdClose:
		fmt.Fprintln(l.out, "bye")
		return true
	case domain.CmdHelp:
		fmt.Fprintln(l.out, help)
	case domain.CmdUsage:
		fmt.Fprintln(l.out, style.Warn.Render(fmt.Sprintf("%s commands take no arguments (got %q), type 'help'", style.Dot, cmd.Raw)))
	case domain.CmdUnknown:
		fmt.Fprintln(l.out, style.Warn.Render(fmt.Sprintf("%s %s: %q, type 'help'", style.Dot, domain.ErrUnknownCommand.Error(), cmd.Raw)))
	}
	return false
}
