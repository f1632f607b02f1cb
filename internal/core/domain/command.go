package domain

import "strings"

// CommandKind enumerates the daemon command surface.
type CommandKind uint8

const (
	// CmdNone is an empty input line; the loop reads the next line.
	CmdNone CommandKind = iota
	// CmdBuild runs one reconcile + build cycle.
	CmdBuild
	// CmdRun executes the binary produced by the last successful build.
	CmdRun
	// CmdClose persists the cache and terminates the daemon.
	CmdClose
	// CmdHelp lists the available commands.
	CmdHelp
	// CmdUnknown is any unrecognized input.
	CmdUnknown
	// CmdUsage is a recognized keyword followed by extra arguments.
	CmdUsage
)

// Command is the parsed form of one daemon input line: a closed variant
// matched exhaustively by the dispatcher instead of string branching.
type Command struct {
	Kind CommandKind
	// Raw is the original input, kept for unknown-command reporting.
	Raw string
}

// ParseCommand parses one input line. Keywords are case-insensitive;
// `close` and `exit` are synonyms. A keyword followed by anything else
// yields CmdUsage, arbitrary text yields CmdUnknown.
func ParseCommand(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: CmdNone}
	}

	kind := CmdUnknown
	switch strings.ToLower(fields[0]) {
	case "build":
		kind = CmdBuild
	case "run":
		kind = CmdRun
	case "close", "exit":
		kind = CmdClose
	case "help":
		kind = CmdHelp
	}

	if kind != CmdUnknown && len(fields) > 1 {
		return Command{Kind: CmdUsage, Raw: line}
	}
	return Command{Kind: kind, Raw: strings.TrimSpace(line)}
}
