package repl_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/logger"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/repl"
)

type fakeBuilder struct {
	builds int
	runs   int
	res    *domain.BuildResult
	runErr error
}

func (f *fakeBuilder) Build(context.Context) (*domain.BuildResult, error) {
	f.builds++
	return f.res, nil
}

func (f *fakeBuilder) RunBinary(context.Context) error {
	f.runs++
	return f.runErr
}

func runScript(t *testing.T, b *fakeBuilder, script string) string {
	t.Helper()
	var out bytes.Buffer
	loop := repl.New(b, nil, logger.NewWithWriter(io.Discard), strings.NewReader(script), &out)
	require.NoError(t, loop.Run(context.Background()))
	return out.String()
}

func TestLoop_BuildCommand(t *testing.T) {
	b := &fakeBuilder{res: &domain.BuildResult{Compiled: 2, Skipped: 1, Linked: true, Duration: time.Second}}

	out := runScript(t, b, "build\nclose\n")
	require.Equal(t, 1, b.builds)
	require.Contains(t, out, "build succeeded: 2 compiled, 1 up to date")
	require.Contains(t, out, "bye")
}

func TestLoop_KeywordsAreCaseInsensitive(t *testing.T) {
	b := &fakeBuilder{res: &domain.BuildResult{}}

	runScript(t, b, "BuIlD\nRUN\nExit\n")
	require.Equal(t, 1, b.builds)
	require.Equal(t, 1, b.runs)
}

func TestLoop_RunBeforeBuildReportsNoBinary(t *testing.T) {
	b := &fakeBuilder{runErr: domain.ErrNoBinary}

	out := runScript(t, b, "run\nclose\n")
	require.Equal(t, 1, b.runs)
	require.Contains(t, out, domain.ErrNoBinary.Error())
}

func TestLoop_UnknownCommand(t *testing.T) {
	out := runScript(t, &fakeBuilder{}, "frobnicate\nclose\n")
	require.Contains(t, out, "unknown command")
	require.Contains(t, out, `"frobnicate"`)
}

func TestLoop_ExtraArgumentsRejected(t *testing.T) {
	b := &fakeBuilder{}

	out := runScript(t, b, "build now please\nclose\n")
	require.Zero(t, b.builds)
	require.Contains(t, out, "no arguments")
}

func TestLoop_HelpListsCommands(t *testing.T) {
	out := runScript(t, &fakeBuilder{}, "help\nclose\n")
	for _, cmd := range []string{"build", "run", "close", "exit"} {
		require.Contains(t, out, cmd)
	}
}

func TestLoop_EmptyLinesAreIgnored(t *testing.T) {
	b := &fakeBuilder{}
	runScript(t, b, "\n   \nclose\n")
	require.Zero(t, b.builds)
}

func TestLoop_EOFClosesCleanly(t *testing.T) {
	b := &fakeBuilder{}
	runScript(t, b, "")
	require.Zero(t, b.builds)
}
