package coupon

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedSource string

func (f fixedSource) String(n int) string {
	return strings.Repeat(string(f), n)
}

func TestBuild(t *testing.T) {
	p := NewPolicy(fixedSource("a"))

	cases := []struct {
		reason    string
		total     float64
		discount  int
		codeStart string
	}{
		{"you are stupid", 500, 0, "NODEAL-0-"},
		{"it's my birthday", 500, 20, "BDAY-20-"},
		{"it's our anniversary", 200, 15, "BDAY-15-"},
		{"birthday gift", 20, 10, "BDAY-10-"},
		{"could you please help", 100, 7, "KIND-7-"},
		{"any deal?", 100, 5, "SAVE-5-"},
		{"please, you idiot", 900, 0, "NODEAL-0-"},
	}
	for _, c := range cases {
		got := p.Build(c.reason, c.total)
		assert.Equal(t, c.discount, got.DiscountAmount, c.reason)
		assert.True(t, strings.HasPrefix(got.Code, c.codeStart), "%s: %s", c.reason, got.Code)
		assert.Equal(t, c.codeStart+"AAAA", got.Code)
		assert.NotEmpty(t, got.Reason)
	}
}

func TestCeiling(t *testing.T) {
	assert.Equal(t, 20, Ceiling(300))
	assert.Equal(t, 15, Ceiling(299.99))
	assert.Equal(t, 15, Ceiling(150))
	assert.Equal(t, 10, Ceiling(0))
}

func TestDefaultSourceCodeShape(t *testing.T) {
	p := NewPolicy(nil)
	codeExp := regexp.MustCompile(`^SAVE-5-[A-Z0-9]{4}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, codeExp, p.Build("deal?", 10).Code)
	}
}
