package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leano777/bidflow/pkg/models/domain"
)

func TestScopeRepository(t *testing.T) {
	t.Run("base ids are unique", func(t *testing.T) {
		repo := NewScopeRepository()
		require.NoError(t, repo.CreateBase(domain.BaseScopeTree{ID: "base-1"}))
		err := repo.CreateBase(domain.BaseScopeTree{ID: "base-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("missing lookups report absence", func(t *testing.T) {
		repo := NewScopeRepository()
		_, ok := repo.Base("nope")
		assert.False(t, ok)
		_, ok = repo.Alternate("nope")
		assert.False(t, ok)
	})

	t.Run("alternates filter by base in id order", func(t *testing.T) {
		repo := NewScopeRepository()
		require.NoError(t, repo.CreateBase(domain.BaseScopeTree{ID: "base-1"}))
		require.NoError(t, repo.CreateAlternate(domain.AlternateScope{ID: "alt-2", BaseID: "base-1"}))
		require.NoError(t, repo.CreateAlternate(domain.AlternateScope{ID: "alt-1", BaseID: "base-1"}))
		require.NoError(t, repo.CreateAlternate(domain.AlternateScope{ID: "alt-3", BaseID: "base-other"}))

		alts := repo.AlternatesFor("base-1")
		require.Len(t, alts, 2)
		assert.Equal(t, "alt-1", alts[0].ID)
		assert.Equal(t, "alt-2", alts[1].ID)
	})

	t.Run("delete is idempotent about absence", func(t *testing.T) {
		repo := NewScopeRepository()
		require.NoError(t, repo.CreateAlternate(domain.AlternateScope{ID: "alt-1", BaseID: "base-1"}))
		assert.True(t, repo.DeleteAlternate("alt-1"))
		assert.False(t, repo.DeleteAlternate("alt-1"))
		assert.Empty(t, repo.AlternatesFor("base-1"))
	})
}

func TestCalendarRepository(t *testing.T) {
	t.Run("save overwrites in place", func(t *testing.T) {
		repo := NewCalendarRepository()
		repo.SaveCalendar(domain.PhasingCalendar{ID: "cal-1", Year: 2025})
		repo.SaveCalendar(domain.PhasingCalendar{ID: "cal-1", Year: 2026})

		cal, ok := repo.Calendar("cal-1")
		require.True(t, ok)
		assert.Equal(t, 2026, cal.Year)
		assert.Len(t, repo.Calendars(), 1)
	})

	t.Run("calendars list in id order", func(t *testing.T) {
		repo := NewCalendarRepository()
		repo.SaveCalendar(domain.PhasingCalendar{ID: "cal-b"})
		repo.SaveCalendar(domain.PhasingCalendar{ID: "cal-a"})

		cals := repo.Calendars()
		require.Len(t, cals, 2)
		assert.Equal(t, "cal-a", cals[0].ID)
		assert.Equal(t, "cal-b", cals[1].ID)
	})

	t.Run("plans round-trip and delete", func(t *testing.T) {
		repo := NewCalendarRepository()
		repo.SavePlan(domain.MultiPhaseExecutionPlan{ID: "plan-1", AlternateID: "alt-1"})

		plan, ok := repo.Plan("plan-1")
		require.True(t, ok)
		assert.Equal(t, "alt-1", plan.AlternateID)

		assert.True(t, repo.DeletePlan("plan-1"))
		_, ok = repo.Plan("plan-1")
		assert.False(t, ok)
		assert.False(t, repo.DeletePlan("plan-1"))
	})
}
