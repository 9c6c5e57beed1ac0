package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordClassifier(t *testing.T) {
	c := NewKeywordClassifier()

	t.Run("routes trade vocabulary", func(t *testing.T) {
		cases := []struct {
			description string
			category    string
		}{
			{"demo existing kitchen cabinets", "demolition"},
			{"excavate for new footings", "excavation"},
			{"pour 3000 psi concrete slab", "concrete"},
			{"frame walls with 2x6 studs", "framing"},
			{"install architectural shingle roof", "roofing"},
			{"wire new 200 amp panel", "electrical"},
			{"rough plumb master bath", "plumbing"},
			{"install hvac ductwork", "hvac"},
			{"blown insulation in attic", "insulation"},
			{"hang and tape sheetrock", "drywall"},
			{"install lvp floor in living room", "flooring"},
			{"prime and paint bedrooms", "painting"},
			{"install fiber cement siding", "exterior"},
			{"set base cabinets and countertop", "finish"},
			{"final clean and punch list", "cleanup"},
		}

		for _, tc := range cases {
			t.Run(tc.category, func(t *testing.T) {
				result := c.Classify(tc.description)
				assert.Equal(t, tc.category, result.Category, "description: %s", tc.description)
				assert.GreaterOrEqual(t, result.Confidence, 0.6)
			})
		}
	})

	t.Run("more hits mean more confidence", func(t *testing.T) {
		one := c.Classify("install outlet")
		three := c.Classify("install outlet, breaker and conduit")
		assert.Greater(t, three.Confidence, one.Confidence)
		assert.LessOrEqual(t, three.Confidence, 0.95)
	})

	t.Run("earlier categories win ties", func(t *testing.T) {
		// "excavate for footing" hits both excavation and concrete; the
		// table routes it to sitework.
		result := c.Classify("excavate for footing")
		assert.Equal(t, "excavation", result.Category)
	})

	t.Run("unknown work falls back to general", func(t *testing.T) {
		result := c.Classify("procure specialty aquarium glass")
		assert.Equal(t, DefaultCategory, result.Category)
		assert.InDelta(t, 0.3, result.Confidence, 1e-9)
	})

	t.Run("custom table respects order", func(t *testing.T) {
		custom := NewKeywordClassifierWithTable(map[string][]string{
			"alpha": {"widget"},
			"beta":  {"widget", "gadget"},
		}, []string{"beta", "alpha"})

		result := custom.Classify("install widget")
		assert.Equal(t, "beta", result.Category)
	})
}
