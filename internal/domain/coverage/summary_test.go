package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, "0", Percentage(0, 0).String())
	assert.Equal(t, "66.67", Percentage(2, 3).String())
	assert.Equal(t, "100", Percentage(4, 4).String())
	assert.Equal(t, "12.5", Percentage(1, 8).String())
}
