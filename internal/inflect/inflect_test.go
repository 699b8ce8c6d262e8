package inflect

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullCells() map[string]template.HTML {
	cells := make(map[string]template.HTML, len(Slots))
	for _, s := range Slots {
		cells[s.Var] = Ruby("w-"+s.ID, "pr-"+s.ID)
	}
	return cells
}

func TestSlots_Unique(t *testing.T) {
	ids := map[string]bool{}
	vars := map[string]bool{}
	for _, s := range Slots {
		assert.False(t, ids[s.ID], "duplicate id %s", s.ID)
		assert.False(t, vars[s.Var], "duplicate var %s", s.Var)
		ids[s.ID] = true
		vars[s.Var] = true
	}
	assert.Len(t, Slots, 28)
	assert.Equal(t, "inf", Slots[len(Slots)-1].Var)
	assert.Equal(t, Infinitive, Slots[len(Slots)-1].ID)
}

func TestTemplate_BindsEveryVariable(t *testing.T) {
	raw, err := templateFS.ReadFile("templates/" + templateName)
	require.NoError(t, err)
	for _, v := range Variables() {
		assert.Equal(t, 1, strings.Count(string(raw), "{{."+v+"}}"), "variable %s", v)
	}
}

func TestRender_AllFragments(t *testing.T) {
	out, err := Render(fullCells())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<table"))
	for _, s := range Slots {
		assert.Contains(t, out, "<ruby>w-"+s.ID+"<rt>pr-"+s.ID+"</rt></ruby>")
	}
}

func TestRender_MissingVariable(t *testing.T) {
	cells := fullCells()
	delete(cells, "f_3_p_f")
	_, err := Render(cells)
	require.Error(t, err)
}

func TestRuby(t *testing.T) {
	assert.Equal(t, template.HTML("<ruby>כָּתַב<rt>katav</rt></ruby>"), Ruby("כָּתַב", "katav"))
}

func TestDefault_ParsedOnce(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}
