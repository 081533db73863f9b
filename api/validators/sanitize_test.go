package validators

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStringCutsOnRuneBoundary(t *testing.T) {
	tagline := strings.Repeat("शक्ति", 50)

	got := SanitizeString(tagline, 200)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 200, utf8.RuneCountInString(got))
	assert.True(t, strings.HasPrefix(tagline, got))
}

func TestSanitizeStringDropsInvalidBytes(t *testing.T) {
	got := SanitizeString("Havells\xff\xfe", 0)
	assert.Equal(t, "Havells", got)
}
