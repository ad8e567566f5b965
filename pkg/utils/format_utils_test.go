package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0", FormatMoney(0))
	assert.Equal(t, "$5", FormatMoney(5))
	assert.Equal(t, "$12.5", FormatMoney(12.5))
	assert.Equal(t, "$108.75", FormatMoney(108.75))
}

func TestFormatPenalty(t *testing.T) {
	assert.Equal(t, "No Penalty", FormatPenalty(0))
	assert.Equal(t, "- $5", FormatPenalty(5))
	assert.Equal(t, "- $50", FormatPenalty(50))
}
