package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New(`F\d{3}-\d{8}`, `[`)
	require.Error(t, err)

	_, err = New(`(`, `B\d{3}-\d{8}`)
	require.Error(t, err)
}

func TestClassify_BlankText(t *testing.T) {
	c, err := New(`F\d{3}-\d{8}`, `B\d{3}-\d{8}`)
	require.NoError(t, err)

	for _, text := range []string{"", " ", "   ", "\n\t  \n"} {
		values := c.Classify(text)
		assert.Equal(t, "", values.Invoices)
		assert.Equal(t, "", values.Receipts)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		invoiceRegex string
		receiptRegex string
		text         string
		wantInvoices string
		wantReceipts string
	}{
		{
			name:         "single invoice match",
			invoiceRegex: `F\d{3}-\d{8}`,
			receiptRegex: `B\d{3}-\d{8}`,
			text:         "pago con factura F123-12345678 adjunta",
			wantInvoices: "F123-12345678",
			wantReceipts: "",
		},
		{
			name:         "duplicate matches collapse to one",
			invoiceRegex: `F\d{3}-\d{8}`,
			receiptRegex: `B\d{3}-\d{8}`,
			text:         "F123-12345678 y de nuevo F123-12345678",
			wantInvoices: "F123-12345678",
			wantReceipts: "",
		},
		{
			name:         "distinct matches keep first-seen order",
			invoiceRegex: `F\d{3}-\d{8}`,
			receiptRegex: `B\d{3}-\d{8}`,
			text:         "F111-11111111 F222-22222222 F111-11111111 F333-33333333",
			wantInvoices: "F111-11111111,F222-22222222,F333-33333333",
			wantReceipts: "",
		},
		{
			name:         "both families in one text",
			invoiceRegex: `F\d{3}-\d{8}`,
			receiptRegex: `B\d{3}-\d{8}`,
			text:         "factura F001-00000001 boleta B002-00000002",
			wantInvoices: "F001-00000001",
			wantReceipts: "B002-00000002",
		},
		{
			name:         "overlapping patterns match independently",
			invoiceRegex: `[A-Z]\d{2}`,
			receiptRegex: `B\d{2}`,
			text:         "codigo B12",
			wantInvoices: "B12",
			wantReceipts: "B12",
		},
		{
			name:         "no matches",
			invoiceRegex: `F\d{3}-\d{8}`,
			receiptRegex: `B\d{3}-\d{8}`,
			text:         "sin codigos aqui",
			wantInvoices: "",
			wantReceipts: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.invoiceRegex, tt.receiptRegex)
			require.NoError(t, err)

			values := c.Classify(tt.text)
			assert.Equal(t, tt.wantInvoices, values.Invoices)
			assert.Equal(t, tt.wantReceipts, values.Receipts)
		})
	}
}
