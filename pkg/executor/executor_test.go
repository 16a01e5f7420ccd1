package executor_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/caddan/ordna/pkg/domain"
	"github.com/caddan/ordna/pkg/executor"
	"github.com/caddan/ordna/pkg/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTools records dispatched calls and fails on demand.
type fakeTools struct {
	calls  []string
	failOn string // call signature that should fail
}

func (f *fakeTools) ListDirectory(ctx context.Context, path string) (string, error) {
	return "", nil
}

func (f *fakeTools) CreateDirectory(ctx context.Context, path string) error {
	return f.record("create " + path)
}

func (f *fakeTools) MoveEntry(ctx context.Context, source, destination string) error {
	return f.record(fmt.Sprintf("move %s %s", source, destination))
}

func (f *fakeTools) Close() error { return nil }

func (f *fakeTools) record(sig string) error {
	if sig == f.failOn {
		return errors.New("boom")
	}
	f.calls = append(f.calls, sig)
	return nil
}

func interleavedPlan() domain.Plan {
	return plan.Extract("PLAN:\n" +
		"call tool 'move_file' with args {'source':'a.jpg','destination':'Images/a.jpg'}\n" +
		"call tool 'create_directory' with args {'path':'Images'}\n" +
		"call tool 'move_file' with args {'source':'b.pdf','destination':'Docs/b.pdf'}\n" +
		"call tool 'create_directory' with args {'path':'Docs'}\n" +
		"notes: call tool 'unknown_tool' with args {'x':'y'}\n")
}

func TestExecute_CreatesBeforeMoves(t *testing.T) {
	tools := &fakeTools{}
	exec := executor.New("/tmp/work", tools)

	report := exec.Execute(context.Background(), interleavedPlan())

	require.True(t, report.Succeeded())
	assert.Equal(t, []string{
		"create Images",
		"create Docs",
		"move a.jpg Images/a.jpg",
		"move b.pdf Docs/b.pdf",
	}, tools.calls)
	assert.Len(t, report.Completed, 4)
}

func TestExecute_FailFastPrefix(t *testing.T) {
	tools := &fakeTools{failOn: "create Docs"}
	exec := executor.New("/tmp/work", tools)

	report := exec.Execute(context.Background(), interleavedPlan())

	require.NotNil(t, report.Failed)
	assert.Equal(t, "Docs", report.Failed.Action.Path)
	assert.Equal(t, "boom", report.Failed.Reason)

	// Completed is exactly the successful prefix; nothing after the failing
	// action was dispatched.
	require.Len(t, report.Completed, 1)
	assert.Equal(t, "Images", report.Completed[0].Path)
	assert.Len(t, report.Skipped, 2)
	assert.Equal(t, []string{"create Images"}, tools.calls)
}

func TestExecute_OthersNeverDispatched(t *testing.T) {
	tools := &fakeTools{}
	exec := executor.New("/tmp/work", tools)

	p := plan.Extract("PLAN:\ncall tool 'unknown_tool' with args {'x':'y'}\n")
	report := exec.Execute(context.Background(), p)

	assert.True(t, report.Succeeded())
	assert.Empty(t, tools.calls)
	assert.Len(t, report.Others, 1)
}

func TestExecute_BoundaryViolationAborts(t *testing.T) {
	tools := &fakeTools{}
	exec := executor.New("/tmp/work", tools)

	p := domain.Plan{Actions: []domain.Action{
		{Kind: domain.KindCreateDirectory, Path: "ok"},
		{Kind: domain.KindMoveEntry, Source: "../escape/secret", Destination: "here"},
		{Kind: domain.KindCreateDirectory, Path: "never"},
	}}

	report := exec.Execute(context.Background(), p)

	require.NotNil(t, report.Failed)
	assert.ErrorContains(t, errors.New(report.Failed.Reason), "boundary")
	// Creates run first, so both creates precede the offending move.
	assert.Equal(t, []string{"create ok", "create never"}, tools.calls)
	assert.Empty(t, report.Skipped)
}

func TestExecute_AbsolutePathRejected(t *testing.T) {
	tools := &fakeTools{}
	exec := executor.New("/tmp/work", tools)

	p := domain.Plan{Actions: []domain.Action{
		{Kind: domain.KindCreateDirectory, Path: "/etc/evil"},
	}}

	report := exec.Execute(context.Background(), p)

	require.NotNil(t, report.Failed)
	assert.Empty(t, tools.calls)
}
