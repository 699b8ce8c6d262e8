// Package inflect renders the verb conjugation grid shown on the back of a
// verb card.
package inflect

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/samber/lo"
)

//go:embed templates/verb_he_en.html
var templateFS embed.FS

const templateName = "verb_he_en.html"

// Slot ties a conjugation cell on the dictionary page to its template variable.
type Slot struct {
	// ID is the page element id of the cell, e.g. "PERF-3ms".
	ID string
	// Var is the template variable the rendered cell is bound to.
	Var string
}

// Infinitive is the slot whose word becomes the card's headword.
const Infinitive = "INF-L"

// Slots lists every cell of the grid in page order. The template must bind
// each Var exactly once.
var Slots = []Slot{
	{"AP-ms", "p_x_s_m"},
	{"AP-fs", "p_x_s_f"},
	{"AP-mp", "p_x_p_m"},
	{"AP-fp", "p_x_p_f"},
	{"PERF-1s", "pp_1_s_x"},
	{"PERF-1p", "pp_1_p_x"},
	{"PERF-2ms", "pp_2_s_m"},
	{"PERF-2fs", "pp_2_s_f"},
	{"PERF-2mp", "pp_2_p_m"},
	{"PERF-2fp", "pp_2_p_f"},
	{"PERF-3ms", "pp_3_s_m"},
	{"PERF-3fs", "pp_3_s_f"},
	{"PERF-3p", "pp_3_p_x"},
	{"IMPF-1s", "f_1_s_x"},
	{"IMPF-1p", "f_1_p_x"},
	{"IMPF-2ms", "f_2_s_m"},
	{"IMPF-2fs", "f_2_s_f"},
	{"IMPF-2mp", "f_2_p_m"},
	{"IMPF-2fp", "f_2_p_f"},
	{"IMPF-3ms", "f_3_s_m"},
	{"IMPF-3fs", "f_3_s_f"},
	{"IMPF-3mp", "f_3_p_m"},
	{"IMPF-3fp", "f_3_p_f"},
	{"IMP-2ms", "im_2_s_m"},
	{"IMP-2fs", "im_2_s_f"},
	{"IMP-2mp", "im_2_p_m"},
	{"IMP-2fp", "im_2_p_f"},
	{Infinitive, "inf"},
}

// Variables returns the template variable names in slot order.
func Variables() []string {
	return lo.Map(Slots, func(s Slot, _ int) string { return s.Var })
}

// Ruby builds the annotated cell for one conjugated form. Page text is
// inserted as is.
func Ruby(word, pronunciation string) template.HTML {
	return template.HTML("<ruby>" + word + "<rt>" + pronunciation + "</rt></ruby>")
}

// Renderer executes the conjugation template. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// New parses the packaged template.
func New() (*Renderer, error) {
	t, err := template.New(templateName).Option("missingkey=error").ParseFS(templateFS, "templates/"+templateName)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", templateName, err)
	}
	return &Renderer{tmpl: t}, nil
}

// Render fills the grid. Every variable in Slots must be present in cells.
func (r *Renderer) Render(cells map[string]template.HTML) (string, error) {
	var b strings.Builder
	if err := r.tmpl.Execute(&b, cells); err != nil {
		return "", fmt.Errorf("render %s: %w", templateName, err)
	}
	return b.String(), nil
}

// Default returns the process-wide renderer, parsing the template on first use.
var Default = sync.OnceValues(New)

// Render renders cells with the Default renderer.
func Render(cells map[string]template.HTML) (string, error) {
	r, err := Default()
	if err != nil {
		return "", err
	}
	return r.Render(cells)
}
