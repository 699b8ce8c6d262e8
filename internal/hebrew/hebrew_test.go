package hebrew

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hyperifyio/hebcard/internal/card"
)

func ptr(s string) *string { return &s }

func TestNormalizeRoot(t *testing.T) {
	cases := []struct {
		name  string
		in    *string
		want  string
		valid bool
	}{
		{"hyphenated", ptr("ק-ר-א"), "ק־ר־א", true},
		{"spaced", ptr(" ק - ר - א \n"), "ק־ר־א", true},
		{"four letters", ptr("ת - ר - ג - ם"), "ת־ר־ג־ם", true},
		{"already maqaf", ptr("ש־מ־ר"), "ש־מ־ר", true},
		{"whitespace only", ptr(" \t"), "", true},
		{"empty", ptr(""), "", false},
		{"nil", nil, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeRoot(tc.in)
			assert.Equal(t, tc.valid, got.Valid)
			assert.Equal(t, tc.want, got.Value)
		})
	}
}

func TestNormalizeRoot_AbsentIsNotEmpty(t *testing.T) {
	assert.NotEqual(t, NormalizeRoot(nil), NormalizeRoot(ptr(" ")))
	assert.Equal(t, card.NoRoot, NormalizeRoot(nil))
}

func TestExtractBinyan(t *testing.T) {
	cases := map[string]string{
		"Verb – PA'AL":                  card.PaalGlyph,
		"Pa'al Verbs":                   card.PaalGlyph,
		"verb – pi'el":                  card.PielGlyph,
		"Verb – HIF'IL":                 card.HifilGlyph,
		"Verb – hif'il":                 card.HifilGlyph,
		"Verb – Hitpa'el":               card.HitpaelGlyph,
		"Verb – NIF'AL":                 card.NifalGlyph,
		"Verb – PU'AL":                  PualGlyph,
		"Verb – huf'al":                 HufalGlyph,
		"Noun – masculine":              "",
		"":                              "",
		"Pi'el and Pa'al (both listed)": card.PaalGlyph,
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtractBinyan(in), in)
	}
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Adjective – katal pattern", "adjective"))
	assert.True(t, ContainsFold("NOUN", "noun"))
	assert.False(t, ContainsFold("Adverb", "noun"))
}
