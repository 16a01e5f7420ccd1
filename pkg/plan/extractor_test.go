package plan_test

import (
	"testing"

	"github.com/caddan/ordna/pkg/domain"
	"github.com/caddan/ordna/pkg/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_ExampleProposal(t *testing.T) {
	text := "PLAN:\n" +
		"call tool 'create_directory' with args {'path':'Images'}\n" +
		"call tool 'move_file' with args {'source':'a.jpg','destination':'Images/a.jpg'}\n" +
		"notes: done"

	p := plan.Extract(text)

	require.Len(t, p.Actions, 2)
	assert.Equal(t, domain.Action{
		Kind: domain.KindCreateDirectory,
		Path: "Images",
		Raw:  "call tool 'create_directory' with args {'path':'Images'}",
	}, p.Actions[0])
	assert.Equal(t, domain.KindMoveEntry, p.Actions[1].Kind)
	assert.Equal(t, "a.jpg", p.Actions[1].Source)
	assert.Equal(t, "Images/a.jpg", p.Actions[1].Destination)
	assert.Empty(t, p.Others())
}

func TestExtract_MarkerCutsPreamble(t *testing.T) {
	text := "Here is my reasoning.\n" +
		"call tool 'create_directory' with args {'path':'Ignored'}\n" +
		"PLAN:\n" +
		"call tool 'create_directory' with args {'path':'Kept'}\n"

	p := plan.Extract(text)

	require.Len(t, p.Actions, 1)
	assert.Equal(t, "Kept", p.Actions[0].Path)
}

func TestExtract_MarkerlessScansWholeText(t *testing.T) {
	text := "I suggest the following:\n" +
		"Call Tool \"move_file\" with args { \"source\": \"x.txt\", \"destination\": \"Docs/x.txt\" }\n"

	p := plan.Extract(text)

	require.Len(t, p.Actions, 1)
	assert.Equal(t, domain.KindMoveEntry, p.Actions[0].Kind)
	assert.Equal(t, "x.txt", p.Actions[0].Source)
}

func TestExtract_ToleratesMalformedLines(t *testing.T) {
	text := "PLAN:\n" +
		"call tool 'create_directory' with args {'path':'Good'}\n" + // well-formed
		"call tool 'create_directory' with args path=Bad\n" + // unbracketed payload
		"call tool 'delete_file' with args {'path':'x'}\n" + // unrecognized tool
		"call tool 'move_file' with args {'source':'a'}\n" + // missing destination
		"call tool 'create_directory' with args {'path':'/etc/evil'}\n" + // absolute path
		"call tool 'create_directory' with args {'path':'~/evil'}\n" // home escape

	p := plan.Extract(text)

	require.Len(t, p.Actions, 6)
	assert.Len(t, p.Creates(), 1)
	assert.Len(t, p.Others(), 5)
	for _, o := range p.Others() {
		assert.NotEmpty(t, o.Raw)
	}
}

func TestExtract_EmptyOutcomes(t *testing.T) {
	assert.True(t, plan.Extract("").Empty())
	assert.True(t, plan.Extract("no plan here at all").Empty())
	assert.True(t, plan.Extract("PLAN:\nnothing actionable").Empty())
}

func TestExtract_Deterministic(t *testing.T) {
	text := "PLAN:\n" +
		"call tool 'create_directory' with args {'path':'A'}\n" +
		"call tool 'move_file' with args {'source':'f','destination':'A/f'}\n" +
		"call tool 'mystery' with args {'x':'y'}\n"

	first := plan.Extract(text)
	second := plan.Extract(text)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Summary(), second.Summary())
}

func TestSummary_GroupsByKind(t *testing.T) {
	p := plan.Extract("PLAN:\n" +
		"call tool 'move_file' with args {'source':'f','destination':'A/f'}\n" +
		"call tool 'create_directory' with args {'path':'A'}\n")

	s := p.Summary()
	assert.Contains(t, s, "Directories to create")
	assert.Contains(t, s, "Files and folders to move")
	assert.NotContains(t, s, "Other lines")

	assert.Contains(t, domain.Plan{}.Summary(), "No actionable plan steps")
}
