// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fc-archive/internal/archive"
	"github.com/pdiddy/fc-archive/pkg/types"
)

// --- test helpers ---

type call struct {
	mode types.Mode
	term string
}

// fakeExecutor records calls and returns canned results.
type fakeExecutor struct {
	results map[types.Mode]types.ResultSet
	err     error
	panic   any
	calls   []call

	// observe is called during Execute so tests can inspect dispatcher state.
	observe func()
}

func (f *fakeExecutor) Execute(_ context.Context, mode types.Mode, term string) (types.ResultSet, error) {
	f.calls = append(f.calls, call{mode, term})
	if f.observe != nil {
		f.observe()
	}
	if f.panic != nil {
		panic(f.panic)
	}
	if f.err != nil {
		return types.ResultSet{}, f.err
	}
	rs := f.results[mode]
	rs.Mode = mode
	return rs, nil
}

func sampleResults() map[types.Mode]types.ResultSet {
	return map[types.Mode]types.ResultSet{
		types.ModeTextSearch: {Pages: []types.PageRecord{
			{IssueID: 101, PageNumber: 4, Month: "March", Year: 2004, PDF: "FC101.pdf", Text: "A classic red pepper relish."},
			{IssueID: 103, PageNumber: 12, Month: "July", Year: 2004, PDF: "FC103.pdf", Text: "Roast the Red\nPepper until blistered."},
		}},
		types.ModeArticleSearch: {Articles: []types.ArticleRecord{
			{Headline: "Weeknight Pasta", PDF: "FC101.pdf", Pages: "8-9", Category: types.CategoryQuickDelicious},
			{Headline: "Pepper Steak", PDF: "FC102.pdf", Pages: "30-33", Category: types.CategoryRecipe},
		}},
		types.ModePrevalence: {Counts: []types.IssueCount{
			{IssueID: 101, PDF: "FC101.pdf", Month: "March", Year: 2004, Count: 3},
			{IssueID: 102, PDF: "FC102.pdf", Month: "May", Year: 2004, Count: 1},
		}},
		types.ModeRandomPick: {Articles: []types.ArticleRecord{
			{Headline: "Lemon Tart", PDF: "FC103.pdf", Pages: "40-41"},
		}},
	}
}

func newTestDispatcher(exec Executor, format types.OutputFormat) (*Dispatcher, *bytes.Buffer, *bytes.Buffer) {
	var out, logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(exec, &out, logger, format), &out, &logs
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// --- term parsing ---

func TestParseTerm(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantTerm  string
		wantExtra []string
	}{
		{"single token", []string{"saffron"}, "saffron", nil},
		{"two args", []string{"red", "pepper"}, "red", []string{"pepper"}},
		{"quoted phrase", []string{"red pepper"}, "red", []string{"pepper"}},
		{"surrounding space", []string{"  kale  "}, "kale", nil},
		{"empty", nil, "", nil},
		{"blank", []string{"   "}, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, extra := ParseTerm(tt.args)
			assert.Equal(t, tt.wantTerm, term)
			if tt.wantExtra == nil {
				assert.Empty(t, extra)
			} else {
				assert.Equal(t, tt.wantExtra, extra)
			}
		})
	}
}

// --- dispatch ---

func TestDispatchRoutesToMode(t *testing.T) {
	tests := []struct {
		kind     State
		args     []string
		wantMode types.Mode
		wantTerm string
	}{
		{TextSearch, []string{"pepper"}, types.ModeTextSearch, "pepper"},
		{ArticleSearch, []string{"pepper"}, types.ModeArticleSearch, "pepper"},
		{Prevalence, []string{"pepper"}, types.ModePrevalence, "pepper"},
		{RandomPick, nil, types.ModeRandomPick, ""},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			exec := &fakeExecutor{results: sampleResults()}
			d, _, _ := newTestDispatcher(exec, "")

			err := d.Dispatch(context.Background(), Command{Kind: tt.kind, Args: tt.args})
			require.NoError(t, err)

			require.Len(t, exec.calls, 1)
			assert.Equal(t, call{tt.wantMode, tt.wantTerm}, exec.calls[0])
		})
	}
}

func TestDispatchStateLifecycle(t *testing.T) {
	exec := &fakeExecutor{results: sampleResults()}
	d, _, _ := newTestDispatcher(exec, "")
	assert.Equal(t, Idle, d.State())

	var during State
	exec.observe = func() { during = d.State() }

	require.NoError(t, d.Dispatch(context.Background(), Command{Kind: Prevalence, Args: []string{"kale"}}))
	assert.Equal(t, Prevalence, during)
	assert.Equal(t, Idle, d.State())
}

func TestDispatchMultiTermWarns(t *testing.T) {
	exec := &fakeExecutor{results: sampleResults()}
	d, _, logs := newTestDispatcher(exec, "")

	err := d.Dispatch(context.Background(), Command{Kind: TextSearch, Args: []string{"red pepper"}})
	require.NoError(t, err)

	require.Len(t, exec.calls, 1)
	assert.Equal(t, "red", exec.calls[0].term)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "ignored=pepper")
}

func TestDispatchNoResults(t *testing.T) {
	exec := &fakeExecutor{results: map[types.Mode]types.ResultSet{}}
	d, out, _ := newTestDispatcher(exec, "")

	err := d.Dispatch(context.Background(), Command{Kind: TextSearch, Args: []string{"zzzznotpresent"}})
	require.NoError(t, err)
	assert.Equal(t, "search query \"zzzznotpresent\" returned no results\n", out.String())
}

func TestDispatchRandomPickEmptyArchive(t *testing.T) {
	exec := &fakeExecutor{results: map[types.Mode]types.ResultSet{}}
	d, out, _ := newTestDispatcher(exec, "")

	require.NoError(t, d.Dispatch(context.Background(), Command{Kind: RandomPick}))
	assert.Contains(t, out.String(), "no articles")
}

func TestDispatchRecoversQueryError(t *testing.T) {
	cause := errors.New("no such table: pages")
	exec := &fakeExecutor{err: &archive.QueryExecutionError{Mode: types.ModeTextSearch, Err: cause}}
	d, out, logs := newTestDispatcher(exec, "")

	err := d.Dispatch(context.Background(), Command{Kind: TextSearch, Args: []string{"pepper"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), "level=ERROR")
	assert.Contains(t, logs.String(), "mode=text_search")
	assert.Contains(t, logs.String(), "no such table")
	assert.Equal(t, Idle, d.State())
}

func TestDispatchRecoversPanic(t *testing.T) {
	exec := &fakeExecutor{panic: "boom"}
	d, _, logs := newTestDispatcher(exec, "")

	var err error
	assert.NotPanics(t, func() {
		err = d.Dispatch(context.Background(), Command{Kind: ArticleSearch, Args: []string{"pepper"}})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, logs.String(), "stack=")
	assert.Equal(t, Idle, d.State())
}

func TestDispatchEmptyTerm(t *testing.T) {
	exec := &fakeExecutor{results: sampleResults()}
	d, _, _ := newTestDispatcher(exec, "")

	err := d.Dispatch(context.Background(), Command{Kind: TextSearch, Args: []string{"  "}})
	assert.ErrorIs(t, err, ErrEmptyTerm)
	assert.Empty(t, exec.calls)
}

func TestDispatchHelp(t *testing.T) {
	d, out, _ := newTestDispatcher(nil, "")

	require.NoError(t, d.Dispatch(context.Background(), Command{Kind: Help}))
	assert.Equal(t, Tutorial, out.String())
}

func TestDispatchWithoutExecutor(t *testing.T) {
	d, _, _ := newTestDispatcher(nil, "")

	err := d.Dispatch(context.Background(), Command{Kind: RandomPick})
	assert.Error(t, err)
}

// --- rendering ---

func TestDispatchTextSearchTable(t *testing.T) {
	exec := &fakeExecutor{results: sampleResults()}
	d, out, _ := newTestDispatcher(exec, "")

	require.NoError(t, d.Dispatch(context.Background(), Command{Kind: TextSearch, Args: []string{"PEPPER"}}))

	got := lines(out.String())
	require.Len(t, got, 3)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(got[0]), "ISSUE"))
	assert.Contains(t, got[0], "CONTEXT")
	assert.Contains(t, got[1], "A classic red *pepper* relish.")
	// Line breaks inside the excerpt are flattened.
	assert.Contains(t, got[2], "Roast the Red *Pepper* until blistered.")

	// Rows keep datastore order.
	assert.Contains(t, got[1], "101")
	assert.Contains(t, got[2], "103")
}

func TestDispatchTextSearchMissingExcerpt(t *testing.T) {
	exec := &fakeExecutor{results: map[types.Mode]types.ResultSet{
		types.ModeTextSearch: {Pages: []types.PageRecord{{IssueID: 7, PageNumber: 1, Text: "nothing to see"}}},
	}}
	d, out, logs := newTestDispatcher(exec, "")

	require.NoError(t, d.Dispatch(context.Background(), Command{Kind: TextSearch, Args: []string{"pepper"}}))
	assert.Len(t, lines(out.String()), 2)
	assert.Contains(t, logs.String(), "match not visible")
}

func TestDispatchArticleTable(t *testing.T) {
	exec := &fakeExecutor{results: sampleResults()}
	d, out, _ := newTestDispatcher(exec, "")

	require.NoError(t, d.Dispatch(context.Background(), Command{Kind: ArticleSearch, Args: []string{"pepper"}}))

	got := lines(out.String())
	require.Len(t, got, 3)
	assert.True(t, strings.HasPrefix(got[0], "HEADLINE"))
	assert.True(t, strings.HasPrefix(got[1], "Weeknight Pasta"))
	assert.Contains(t, got[1], "Quick & Delicious")
	assert.True(t, strings.HasPrefix(got[2], "Pepper Steak"))
}

func TestDispatchPrevalenceTable(t *testing.T) {
	exec := &fakeExecutor{results: sampleResults()}
	d, out, _ := newTestDispatcher(exec, "")

	require.NoError(t, d.Dispatch(context.Background(), Command{Kind: Prevalence, Args: []string{"pepper"}}))

	got := lines(out.String())
	require.Len(t, got, 3)
	assert.Contains(t, got[0], "MATCHES")
	assert.True(t, strings.HasSuffix(got[1], " 3"))
	assert.True(t, strings.HasSuffix(got[2], " 1"))
}

func TestDispatchRandomTable(t *testing.T) {
	exec := &fakeExecutor{results: sampleResults()}
	d, out, _ := newTestDispatcher(exec, "")

	require.NoError(t, d.Dispatch(context.Background(), Command{Kind: RandomPick}))

	got := lines(out.String())
	require.Len(t, got, 2)
	assert.NotContains(t, got[0], "CATEGORY")
	assert.True(t, strings.HasPrefix(got[1], "Lemon Tart"))
}

func TestDispatchJSON(t *testing.T) {
	exec := &fakeExecutor{results: sampleResults()}
	d, out, _ := newTestDispatcher(exec, types.OutputJSON)

	require.NoError(t, d.Dispatch(context.Background(), Command{Kind: TextSearch, Args: []string{"pepper"}}))

	var hits []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &hits))
	require.Len(t, hits, 2)
	assert.Equal(t, float64(101), hits[0]["issue_id"])
	assert.Equal(t, "A classic red *pepper* relish.", hits[0]["context"])
	assert.NotContains(t, hits[0], "Text")
}

func TestDispatchYAML(t *testing.T) {
	exec := &fakeExecutor{results: sampleResults()}
	d, out, _ := newTestDispatcher(exec, types.OutputYAML)

	require.NoError(t, d.Dispatch(context.Background(), Command{Kind: Prevalence, Args: []string{"pepper"}}))

	var counts []types.IssueCount
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &counts))
	assert.Equal(t, sampleResults()[types.ModePrevalence].Counts, counts)
}

func TestDispatchUnsupportedFormat(t *testing.T) {
	exec := &fakeExecutor{results: sampleResults()}
	d, _, _ := newTestDispatcher(exec, types.OutputFormat("csv"))

	err := d.Dispatch(context.Background(), Command{Kind: Prevalence, Args: []string{"pepper"}})
	assert.Error(t, err)
}
