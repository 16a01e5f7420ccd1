package ordna_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/caddan/ordna"
	"github.com/caddan/ordna/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopProposer struct{}

func (nopProposer) Propose(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

type nopTools struct{}

func (nopTools) ListDirectory(ctx context.Context, path string) (string, error) { return "", nil }
func (nopTools) CreateDirectory(ctx context.Context, path string) error         { return nil }
func (nopTools) MoveEntry(ctx context.Context, source, destination string) error {
	return nil
}
func (nopTools) Close() error { return nil }

type nopIO struct{}

func (nopIO) Output(content string) error               { return nil }
func (nopIO) Input(ctx context.Context) (string, error) { return "", nil }

var _ session.IOHandler = nopIO{}

func TestNew_ValidatesRoot(t *testing.T) {
	_, err := ordna.New(filepath.Join(t.TempDir(), "missing"),
		ordna.WithProposer(nopProposer{}),
		ordna.WithToolExecutor(nopTools{}),
	)
	assert.Error(t, err)

	_, err = ordna.New("",
		ordna.WithProposer(nopProposer{}),
		ordna.WithToolExecutor(nopTools{}),
	)
	assert.Error(t, err)
}

func TestNew_ResolvesBoundary(t *testing.T) {
	dir := t.TempDir()

	org, err := ordna.New(dir+"/sub/..",
		ordna.WithProposer(nopProposer{}),
		ordna.WithToolExecutor(nopTools{}),
		ordna.WithIOHandler(nopIO{}),
	)
	require.NoError(t, err)

	// The boundary is canonical: no dot segments survive.
	assert.NotContains(t, org.Root(), "..")
	assert.Equal(t, org.Root(), org.Session().Snapshot().Root)
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := ordna.New(t.TempDir())
	assert.Error(t, err)
}

func TestRun_EmptyDirectory(t *testing.T) {
	org, err := ordna.New(t.TempDir(),
		ordna.WithProposer(nopProposer{}),
		ordna.WithToolExecutor(nopTools{}),
		ordna.WithIOHandler(nopIO{}),
	)
	require.NoError(t, err)

	report, err := org.Run(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, report)
	assert.Equal(t, session.PhaseDone, org.Session().Phase())
}
