package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/hebcard/internal/inflect"
)

// cell renders one conjugation cell the way the dictionary site does.
func cell(id, word, pron string) string {
	return fmt.Sprintf(`<div id=%q><div class="menukad-wrap"><span class="menukad">%s</span></div><div class="transcription">%s</div></div>`, id, word, pron)
}

func page(subheader, body string) string {
	return `<!doctype html>
<html>
  <head><title>entry</title></head>
  <body>
    <div class="container">
      <h2 class="page-header">entry</h2>
      <p>` + subheader + `</p>
      ` + body + `
    </div>
  </body>
</html>`
}

// verbHTML builds a verb page with every slot except those in skip.
func verbHTML(subheader string, skip ...string) string {
	var b strings.Builder
	b.WriteString(`<p>Root: <span class="menukad">ק - ר - א</span></p>`)
	b.WriteString(`<div class="lead">to read; to call</div>`)
	b.WriteString(`<table class="conjugation-table"><tr><td>`)
	for _, s := range inflect.Slots {
		if contains(skip, s.ID) {
			continue
		}
		b.WriteString(cell(s.ID, "w"+s.ID, "t"+s.ID))
	}
	b.WriteString(`</td></tr></table>`)
	return page(subheader, b.String())
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type nounOpts struct {
	subheader  string
	paragraphs []string
	plural     bool
}

func nounHTML(o nounOpts) string {
	if o.subheader == "" {
		o.subheader = "Noun – katal pattern, masculine"
	}
	var b strings.Builder
	for _, p := range o.paragraphs {
		b.WriteString("<p>" + p + "</p>")
	}
	b.WriteString(`<div class="lead">book</div>`)
	b.WriteString(`<table class="conjugation-table"><tr><td>`)
	b.WriteString(cell("s", "סֵפֶר", "sefer"))
	b.WriteString(`</td><td>`)
	if o.plural {
		b.WriteString(cell("p", "סְפָרִים", "sfarim"))
	}
	b.WriteString(`</td></tr></table>`)
	return page(o.subheader, b.String())
}

func adjectiveHTML(skip ...string) string {
	var b strings.Builder
	b.WriteString(`<p>Root: <span class="menukad">ג-ד-ל</span></p>`)
	b.WriteString(`<div class="lead">big, large</div>`)
	b.WriteString(`<table class="conjugation-table"><tr>`)
	forms := []struct{ id, word, pron string }{
		{"ms-a", "גָּדוֹל", "gadol"},
		{"fs-a", "גְּדוֹלָה", "gdola"},
		{"mp-a", "גְּדוֹלִים", "gdolim"},
		{"fp-a", "גְּדוֹלוֹת", "gdolot"},
	}
	for _, f := range forms {
		if contains(skip, f.id) {
			continue
		}
		b.WriteString(fmt.Sprintf(`<td><div id=%q><div class="menukad-wrap"><span class="menukad">%s</span>*</div><div class="transcription">%s</div></div></td>`, f.id, f.word, f.pron))
	}
	b.WriteString(`</tr></table>`)
	return page("Adjective – katal pattern", b.String())
}

func mustParse(t *testing.T, s string) *Page {
	t.Helper()
	p, err := Parse([]byte(s))
	require.NoError(t, err)
	return p
}
