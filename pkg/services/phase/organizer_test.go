package phase

import (
	"testing"

	"github.com/leano777/bidflow/pkg/ids"
	"github.com/leano777/bidflow/pkg/models/domain"
	"github.com/leano777/bidflow/pkg/services/classify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClassifier struct {
	mock.Mock
}

func (m *mockClassifier) Classify(description string) classify.Result {
	args := m.Called(description)
	return args.Get(0).(classify.Result)
}

func item(desc string, labor, material float64, hours float64, conf float64) domain.EstimateLineItem {
	it := domain.EstimateLineItem{
		Description:     desc,
		Quantity:        1,
		Unit:            "ea",
		MaterialCost:    material,
		LaborCost:       labor,
		ConfidenceScore: conf,
		LaborHours:      hours,
	}
	it.Recalculate()
	return it
}

func newOrganizer() *Organizer {
	return NewOrganizer(classify.NewKeywordClassifier(), ids.NewSequenceProvider(), DefaultSettings())
}

func TestOrganize(t *testing.T) {
	t.Run("groups items into sequenced phases", func(t *testing.T) {
		items := []domain.EstimateLineItem{
			item("pour concrete foundation footings", 500, 300, 40, 0.9),
			item("frame interior walls with lumber studs", 800, 600, 80, 0.85),
			item("install electrical panel and wiring", 400, 200, 30, 0.8),
			item("paint interior walls", 200, 100, 16, 0.9),
		}

		phases := newOrganizer().Organize(items)
		require.Len(t, phases, 4)

		names := make([]string, 0, len(phases))
		for _, p := range phases {
			names = append(names, p.Name)
		}
		assert.Equal(t, []string{"Foundation", "Framing", "Systems", "Interior"}, names)

		for i := 1; i < len(phases); i++ {
			assert.Less(t, phases[i-1].SequenceOrder, phases[i].SequenceOrder)
		}
	})

	t.Run("phase totals equal the sum of their items", func(t *testing.T) {
		items := []domain.EstimateLineItem{
			item("hang and finish drywall", 700, 350, 56, 0.9),
			item("install hardwood flooring", 900, 1200, 64, 0.85),
		}

		phases := newOrganizer().Organize(items)
		require.Len(t, phases, 1)

		var sum float64
		for _, it := range phases[0].Items {
			sum += it.LineItemTotal
		}
		assert.InDelta(t, sum, phases[0].PhaseTotal, 1e-9)
	})

	t.Run("absent prerequisites are dropped", func(t *testing.T) {
		items := []domain.EstimateLineItem{
			item("paint bedroom walls", 300, 150, 24, 0.9),
		}

		phases := newOrganizer().Organize(items)
		require.Len(t, phases, 1)
		assert.Equal(t, "Interior", phases[0].Name)
		assert.Empty(t, phases[0].Prerequisites)
	})

	t.Run("duration floors at one day", func(t *testing.T) {
		items := []domain.EstimateLineItem{
			item("patch drywall", 50, 20, 1, 0.9),
		}
		phases := newOrganizer().Organize(items)
		require.Len(t, phases, 1)
		assert.InDelta(t, 1.0, phases[0].DurationDays, 1e-9)
	})

	t.Run("systems phases carry a duration buffer", func(t *testing.T) {
		// 64 hours at crew 4 x 8h/day = 2 days before the buffer.
		items := []domain.EstimateLineItem{
			item("rough-in plumbing supply lines", 800, 400, 64, 0.9),
		}
		phases := newOrganizer().Organize(items)
		require.Len(t, phases, 1)
		assert.Equal(t, "Systems", phases[0].Name)
		assert.InDelta(t, 2.0*1.15, phases[0].DurationDays, 1e-9)
	})

	t.Run("low confidence grades high risk", func(t *testing.T) {
		items := []domain.EstimateLineItem{
			item("misc demolition work", 400, 100, 32, 0.4),
		}
		phases := newOrganizer().Organize(items)
		require.Len(t, phases, 1)
		assert.Equal(t, domain.RiskHigh, phases[0].RiskLevel)
	})

	t.Run("unrecognized work lands in the fallback phase", func(t *testing.T) {
		classifier := &mockClassifier{}
		classifier.On("Classify", mock.Anything).Return(classify.Result{Category: "underwater welding", Confidence: 0.3})

		org := NewOrganizer(classifier, ids.NewSequenceProvider(), DefaultSettings())
		phases := org.Organize([]domain.EstimateLineItem{
			item("weld the thing", 100, 50, 8, 0.3),
		})

		require.Len(t, phases, 1)
		assert.Equal(t, "Interior", phases[0].Name)
		classifier.AssertExpectations(t)
	})

	t.Run("does not mutate input items", func(t *testing.T) {
		items := []domain.EstimateLineItem{
			item("pour concrete slab", 500, 300, 40, 0.9),
		}
		phases := newOrganizer().Organize(items)
		phases[0].Items[0].MaterialCost = 0
		assert.InDelta(t, 300.0, items[0].MaterialCost, 1e-9)
	})
}

func TestValidateSequencing(t *testing.T) {
	org := newOrganizer()

	t.Run("canonical output is sound", func(t *testing.T) {
		items := []domain.EstimateLineItem{
			item("excavate and grade site", 300, 100, 24, 0.9),
			item("pour concrete foundation", 500, 300, 40, 0.9),
			item("frame exterior walls", 800, 600, 80, 0.85),
		}
		phases := org.Organize(items)
		assert.Empty(t, org.ValidateSequencing(phases))
	})

	t.Run("flags missing and misordered prerequisites", func(t *testing.T) {
		phases := []domain.WorkPhase{
			{Name: "Framing", SequenceOrder: 3, Prerequisites: []string{"Foundation"}},
			{Name: "Roofing", SequenceOrder: 2, Prerequisites: []string{"Framing"}},
		}
		issues := org.ValidateSequencing(phases)
		require.Len(t, issues, 2)
		assert.Contains(t, issues[0], "Foundation")
		assert.Contains(t, issues[1], "not sequenced earlier")
	})
}
