package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextQuality(t *testing.T) {
	assert.Equal(t, 0.0, textQuality(nil))
	assert.Equal(t, 1.0, textQuality([]string{"HDFC Bank Statement 15/03/2024 1,250.00"}))
	assert.Less(t, textQuality([]string{"\x01\x02\x03\x04\x05\x06\x07\x08"}), 0.5)
}

func TestIsReadableText(t *testing.T) {
	statement := []string{
		"HDFC Bank Credit Card Statement for March 2024\n" +
			"15/03/2024 AMAZON RETAIL 1,250.00 C\n" +
			"Total amount due 1,250.00",
	}
	assert.True(t, isReadableText(statement))

	// Too short.
	assert.False(t, isReadableText([]string{"bank"}))

	// Long and ASCII but with no statement vocabulary.
	assert.False(t, isReadableText([]string{
		"zzzz yyyy xxxx wwww vvvv uuuu tttt ssss rrrr qqqq pppp oooo nnnn",
	}))
}
