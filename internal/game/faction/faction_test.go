package faction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/faction"
)

func TestSet_JoinIsIdempotent(t *testing.T) {
	var s faction.Set
	require.NoError(t, s.Join("crown"))
	require.NoError(t, s.Join("crown"))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Has("crown"))
}

func TestSet_JoinEmptyID(t *testing.T) {
	var s faction.Set
	assert.Error(t, s.Join(""))
	assert.Equal(t, 0, s.Len())
}

func TestSet_LeaveNonMember(t *testing.T) {
	var s faction.Set
	s.Leave("nobody")
	require.NoError(t, s.Join("crown"))
	s.Leave("nobody")
	assert.Equal(t, []string{"crown"}, s.Members())
	s.Leave("crown")
	assert.Empty(t, s.Members())
}

func TestSet_Shares(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want bool
	}{
		{"both empty", nil, nil, false},
		{"left empty", nil, []string{"Test"}, false},
		{"right empty", []string{"Test"}, nil, false},
		{"disjoint", []string{"Test"}, []string{"Enemy"}, false},
		{"same single", []string{"Test"}, []string{"Test"}, true},
		{"multiple and single", []string{"Enemy", "Test"}, []string{"Enemy"}, true},
		{"single and multiple", []string{"Test"}, []string{"Enemy", "Test"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var a, b faction.Set
			for _, id := range tc.a {
				require.NoError(t, a.Join(id))
			}
			for _, id := range tc.b {
				require.NoError(t, b.Join(id))
			}
			assert.Equal(t, tc.want, a.Shares(&b))
			assert.Equal(t, tc.want, b.Shares(&a))
		})
	}
}

func TestSet_SharesNil(t *testing.T) {
	var s faction.Set
	require.NoError(t, s.Join("crown"))
	assert.False(t, s.Shares(nil))
}

func TestSet_MembersIsCopy(t *testing.T) {
	var s faction.Set
	require.NoError(t, s.Join("b"))
	require.NoError(t, s.Join("a"))
	got := s.Members()
	assert.Equal(t, []string{"a", "b"}, got)
	got[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, s.Members())
}

func TestSet_Property_SharesDoesNotMutate(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ids := rapid.SliceOf(rapid.StringMatching(`[a-e]`)).Draw(rt, "a")
		other := rapid.SliceOf(rapid.StringMatching(`[a-e]`)).Draw(rt, "b")
		var a, b faction.Set
		for _, id := range ids {
			require.NoError(rt, a.Join(id))
		}
		for _, id := range other {
			require.NoError(rt, b.Join(id))
		}
		beforeA, beforeB := a.Members(), b.Members()
		_ = a.Shares(&b)
		assert.Equal(rt, beforeA, a.Members())
		assert.Equal(rt, beforeB, b.Members())
	})
}

func TestSet_Property_SharesMatchesIntersection(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ids := rapid.SliceOf(rapid.StringMatching(`[a-e]`)).Draw(rt, "a")
		other := rapid.SliceOf(rapid.StringMatching(`[a-e]`)).Draw(rt, "b")
		var a, b faction.Set
		for _, id := range ids {
			require.NoError(rt, a.Join(id))
		}
		for _, id := range other {
			require.NoError(rt, b.Join(id))
		}
		want := false
		for _, id := range ids {
			if b.Has(id) {
				want = true
			}
		}
		assert.Equal(rt, want, a.Shares(&b))
	})
}
