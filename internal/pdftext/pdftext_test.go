package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeStream(t *testing.T) {
	stream := []byte(`BT
/F1 12 Tf
1 0 0 1 50 700 Tm
(COBRANZA DE CONSUMOS) Tj
0 -14 Td
(4323UYU) Tj
T*
[(53482) (Green Park I) (D013)] TJ
(CLIENTE) '
ET`)

	got := decodeStream(stream)
	assert.Contains(t, got, "COBRANZA DE CONSUMOS\n")
	assert.Contains(t, got, "\n4323UYU\n")
	assert.Contains(t, got, "53482Green Park ID013")
	assert.Contains(t, got, "\nCLIENTE")
}

func TestDecodeString(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`with \(parens\)`, "with (parens)"},
		{`back\\slash`, `back\slash`},
		{`octal\040space`, "octal space"},
		{`short\12octal`, "short\noctal"},
		{`tab\there`, "tab\there"},
		{`trailing\`, "trailing\\"},
	} {
		assert.Equal(t, tc.want, decodeString([]byte(tc.in)), tc.in)
	}
}

func TestExtract_NotAPDF(t *testing.T) {
	_, err := Extract([]byte("just some text"))
	assert.Error(t, err)
}
