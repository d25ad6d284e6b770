// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dispatch maps one CLI command onto a catalog query, enriches the
// rows and writes the rendered result. A Dispatcher runs exactly one
// command per process:
//
//	Idle -> ParsingArguments -> {Help, TextSearch, ArticleSearch, Prevalence, RandomPick} -> Idle
//
// Handler failures, panics included, are logged and recovered at the
// Dispatch boundary.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/pdiddy/fc-archive/internal/archive"
	"github.com/pdiddy/fc-archive/pkg/types"
)

// State is the dispatcher's position in its command lifecycle.
type State int

const (
	Idle State = iota
	ParsingArguments
	Help
	TextSearch
	ArticleSearch
	Prevalence
	RandomPick
)

var stateNames = [...]string{
	Idle:             "idle",
	ParsingArguments: "parsing_arguments",
	Help:             "help",
	TextSearch:       "text_search",
	ArticleSearch:    "article_search",
	Prevalence:       "prevalence",
	RandomPick:       "random_pick",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// modes maps each query state to its catalog entry.
var modes = map[State]types.Mode{
	TextSearch:    types.ModeTextSearch,
	ArticleSearch: types.ModeArticleSearch,
	Prevalence:    types.ModePrevalence,
	RandomPick:    types.ModeRandomPick,
}

// ErrEmptyTerm is returned when a search command has no usable term.
var ErrEmptyTerm = errors.New("search term is empty")

// Executor runs one catalog query. *archive.Store satisfies it.
type Executor interface {
	Execute(ctx context.Context, mode types.Mode, term string) (types.ResultSet, error)
}

// Command is one parsed CLI invocation. Kind must be a terminal state.
type Command struct {
	Kind State
	Args []string
}

// Dispatcher runs commands against an Executor and writes results to Out.
type Dispatcher struct {
	exec   Executor
	out    io.Writer
	logger *slog.Logger
	format types.OutputFormat
	state  State
}

// New returns an idle Dispatcher. exec may be nil when only Help is run.
// An empty format selects table output.
func New(exec Executor, out io.Writer, logger *slog.Logger, format types.OutputFormat) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if format == "" {
		format = types.OutputTable
	}
	return &Dispatcher{exec: exec, out: out, logger: logger, format: format}
}

// State returns the current lifecycle state.
func (d *Dispatcher) State() State {
	return d.state
}

func (d *Dispatcher) transition(to State) {
	d.logger.Debug("dispatcher transition", "from", d.state, "to", to)
	d.state = to
}

// Dispatch runs cmd to completion and returns the dispatcher to Idle.
// A non-nil error means the handler failed; it has already been logged
// and callers use it only to choose an exit code.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (err error) {
	defer d.transition(Idle)
	d.transition(ParsingArguments)

	var term string
	if mode, ok := modes[cmd.Kind]; ok && mode.TakesTerm() {
		var extra []string
		term, extra = ParseTerm(cmd.Args)
		if len(extra) > 0 {
			d.logger.Warn("multi-word search terms are not supported, searching for the first word only",
				"term", term, "ignored", strings.Join(extra, " "))
		}
	}

	d.transition(cmd.Kind)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s handler panicked: %v", cmd.Kind, r)
			d.logger.Error("command failed", "command", cmd.Kind, "term", term, "error", err,
				"stack", string(debug.Stack()))
		}
	}()

	if err = d.handle(ctx, cmd.Kind, term); err != nil {
		attrs := []any{"command", cmd.Kind, "term", term, "error", err}
		var qe *archive.QueryExecutionError
		if errors.As(err, &qe) {
			attrs = append(attrs, "mode", qe.Mode, "cause", qe.Err)
		}
		d.logger.Error("command failed", attrs...)
	}
	return err
}

func (d *Dispatcher) handle(ctx context.Context, kind State, term string) error {
	if kind == Help {
		_, err := io.WriteString(d.out, Tutorial)
		return err
	}

	mode, ok := modes[kind]
	if !ok {
		return fmt.Errorf("no handler for %s", kind)
	}
	if mode.TakesTerm() && term == "" {
		return ErrEmptyTerm
	}
	if d.exec == nil {
		return fmt.Errorf("%s: no archive open", mode)
	}

	rs, err := d.exec.Execute(ctx, mode, term)
	if err != nil {
		return err
	}

	if rs.Len() == 0 {
		return d.writeNoResults(mode, term)
	}

	switch mode {
	case types.ModeTextSearch:
		return d.writePages(rs.Pages, term)
	case types.ModeArticleSearch:
		return d.writeArticles(rs.Articles, true)
	case types.ModePrevalence:
		return d.writeCounts(rs.Counts)
	default:
		return d.writeArticles(rs.Articles, false)
	}
}

func (d *Dispatcher) writeNoResults(mode types.Mode, term string) error {
	var msg string
	if mode.TakesTerm() {
		msg = fmt.Sprintf("search query %q returned no results\n", term)
	} else {
		msg = "the archive has no articles to pick from\n"
	}
	_, err := io.WriteString(d.out, msg)
	return err
}

// ParseTerm returns the first whitespace-delimited token of args and any
// further tokens, which callers report and ignore.
func ParseTerm(args []string) (term string, extra []string) {
	tokens := strings.Fields(strings.Join(args, " "))
	if len(tokens) == 0 {
		return "", nil
	}
	return tokens[0], tokens[1:]
}
