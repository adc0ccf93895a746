package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "0", FormatCurrency(0))
	assert.Equal(t, "500", FormatCurrency(500))
	assert.Equal(t, "20.000", FormatCurrency(20000))
	assert.Equal(t, "1.250.000", FormatCurrency(1250000))
	assert.Equal(t, "-20.000", FormatCurrency(-20000))
}
