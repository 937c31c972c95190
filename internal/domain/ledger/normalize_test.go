package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "ACME", "acme"},
		{"strips commas and periods", "Acme, Inc.", "acme"},
		{"drops inc suffix", "ACME INC", "acme"},
		{"drops trailing period variant", "acme inc.", "acme"},
		{"drops llc", "Widgets LLC", "widgets"},
		{"drops dotted llc", "Widgets L.L.C.", "widgets"},
		{"drops dotted pc", "Smith & Jones P.C.", "smith & jones"},
		{"drops leading the", "The Cole Group", "cole group"},
		{"drops co as whole token only", "Cole Co", "cole"},
		{"keeps co inside a word", "Colette Cooper", "colette cooper"},
		{"drops corporation", "Stark Corporation", "stark"},
		{"drops ltd and limited", "Wayne Ltd", "wayne"},
		{"collapses whitespace", "  Acme   Widgets  ", "acme widgets"},
		{"strips apostrophes and quotes", `O'Brien "OB" Supplies`, "obrien ob supplies"},
		{"empty input", "", ""},
		{"suffix-only input", "The Company Inc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeNameEquivalence(t *testing.T) {
	// Distinct renderings of the same party normalize identically.
	groups := [][]string{
		{"Acme, Inc.", "ACME INC", "acme inc.", "Acme"},
		{"Cole Co", "cole", "Cole, Co."},
		{"Widgets LLC", "The Widgets Company", "widgets ltd"},
	}

	for _, group := range groups {
		base := NormalizeName(group[0])
		for _, variant := range group[1:] {
			assert.Equal(t, base, NormalizeName(variant), "%q should normalize like %q", variant, group[0])
		}
	}
}
