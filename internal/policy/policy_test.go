package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresKeywords(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	_, err = New([]string{"", "   "})
	require.Error(t, err)
}

func TestIsValid(t *testing.T) {
	p, err := New([]string{"Ticket", "FACTURA", " boleta "})
	require.NoError(t, err)

	tests := []struct {
		name     string
		fileName string
		want     bool
	}{
		{"empty name", "", false},
		{"whitespace name", "   ", false},
		{"lowercase keyword", "ticket-enero.pdf", true},
		{"uppercase file name", "TICKET_02.PDF", true},
		{"keyword in the middle", "2024-factura-luz.pdf", true},
		{"trimmed keyword matches", "Boleta_03.pdf", true},
		{"no keyword", "resumen-mensual.pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.IsValid(tt.fileName))
		})
	}
}
