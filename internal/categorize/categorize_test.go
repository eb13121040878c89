package categorize

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize_DefaultTable(t *testing.T) {
	c := Default()

	tests := []struct {
		desc string
		want string
	}{
		{"AMAZON RETAIL", "shopping"},
		{"SWIGGY BANGALORE", "food"},
		{"UBER TRIP 1234", "travel"},
		{"NETFLIX.COM", "entertainment"},
		{"APOLLO PHARMACY", "healthcare"},
		{"UNMATCHED MERCHANT XYZ", CatchAll},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Categorize(tt.desc), "description %q", tt.desc)
	}
}

func TestCategorize_CaseInsensitive(t *testing.T) {
	c := Default()

	assert.Equal(t, "shopping", c.Categorize("amazon retail"))
	assert.Equal(t, "shopping", c.Categorize("AmAzOn ReTaIl"))
}

// When two rules both match a description, the earlier-declared rule's label
// wins. This is the tie-break contract, not an implementation accident.
func TestCategorize_FirstRuleWins(t *testing.T) {
	c := New([]Rule{
		{Label: "first", Keywords: []string{"coffee"}},
		{Label: "second", Keywords: []string{"shop"}},
	})

	assert.Equal(t, "first", c.Categorize("COFFEE SHOP DOWNTOWN"))

	// Reversed declaration order flips the winner.
	flipped := New([]Rule{
		{Label: "second", Keywords: []string{"shop"}},
		{Label: "first", Keywords: []string{"coffee"}},
	})
	assert.Equal(t, "second", flipped.Categorize("COFFEE SHOP DOWNTOWN"))
}

func TestCategorize_Deterministic(t *testing.T) {
	c := Default()

	desc := "RELIANCE FRESH STORE 42"
	first := c.Categorize(desc)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, c.Categorize(desc))
	}
}

// One Categorizer is shared across parallel statement parses, so Categorize
// must be callable from many goroutines at once. Run with -race.
func TestCategorize_ConcurrentUse(t *testing.T) {
	c := Default()

	descs := []string{
		"AMAZON RETAIL",
		"SWIGGY BANGALORE",
		"UBER TRIP 1234",
		"NETFLIX.COM",
		"APOLLO PHARMACY",
		"UNMATCHED MERCHANT XYZ",
	}
	want := make([]string, len(descs))
	for i, d := range descs {
		want[i] = c.Categorize(d)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				d := descs[i%len(descs)]
				if got := c.Categorize(d); got != want[i%len(descs)] {
					t.Errorf("concurrent Categorize(%q) = %q, want %q", d, got, want[i%len(descs)])
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestCategorize_EmptyRuleTable(t *testing.T) {
	c := New(nil)
	assert.Equal(t, CatchAll, c.Categorize("ANYTHING"))
	assert.Equal(t, 0, c.RuleCount())
}

func TestCategorize_SubstringAnywhere(t *testing.T) {
	c := Default()

	// Keyword occurs mid-token, not word-aligned.
	assert.Equal(t, "food", c.Categorize("POS MCDONALDS K-102"))
}
