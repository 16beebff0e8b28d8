package entity_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/entity"
)

func newProp(t testing.TB, health int) *entity.Prop {
	t.Helper()
	p, err := entity.NewProp(health, entity.Position{})
	require.NoError(t, err)
	return p
}

func TestNewProp(t *testing.T) {
	p, err := entity.NewProp(2000, entity.Position{X: 1.5, Y: -2})
	require.NoError(t, err)
	assert.Equal(t, 2000, p.Health())
	assert.Equal(t, 2000, p.MaxHealth())
	assert.True(t, p.Alive())
	assert.Equal(t, entity.Position{X: 1.5, Y: -2}, p.Position())
}

func TestNewProp_RejectsNonPositiveHealth(t *testing.T) {
	for _, h := range []int{0, -1, -1000} {
		_, err := entity.NewProp(h, entity.Position{})
		assert.Error(t, err, "health=%d", h)
	}
}

func TestProp_ApplyDamage_NonLethal(t *testing.T) {
	p := newProp(t, 2000)
	require.NoError(t, p.ApplyDamage(200))
	assert.Equal(t, 1800, p.Health())
	assert.True(t, p.Alive())
}

func TestProp_ApplyDamage_ExactlyToZero(t *testing.T) {
	p := newProp(t, 2000)
	require.NoError(t, p.ApplyDamage(2000))
	assert.Equal(t, 0, p.Health())
	assert.False(t, p.Alive())
}

func TestProp_ApplyDamage_Overkill(t *testing.T) {
	p := newProp(t, 2000)
	require.NoError(t, p.ApplyDamage(2200))
	assert.Equal(t, 0, p.Health())
	assert.False(t, p.Alive())
}

func TestProp_ApplyDamage_Negative(t *testing.T) {
	p := newProp(t, 100)
	err := p.ApplyDamage(-5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrNegativeAmount))
	assert.Equal(t, 100, p.Health())
}

func TestProp_Restore(t *testing.T) {
	p := newProp(t, 1000)
	require.NoError(t, p.ApplyDamage(700))

	n, err := p.Restore(100)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, 400, p.Health())

	n, err = p.Restore(5000)
	require.NoError(t, err)
	assert.Equal(t, 600, n)
	assert.Equal(t, 1000, p.Health())
}

func TestProp_Restore_DeadStaysDead(t *testing.T) {
	p := newProp(t, 50)
	require.NoError(t, p.ApplyDamage(50))
	n, err := p.Restore(10)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 0, p.Health())
	assert.False(t, p.Alive())
}

func TestProp_Restore_Negative(t *testing.T) {
	p := newProp(t, 50)
	_, err := p.Restore(-1)
	assert.ErrorIs(t, err, entity.ErrNegativeAmount)
}

func TestProp_SetPosition(t *testing.T) {
	p := newProp(t, 10)
	p.SetPosition(3, 4)
	assert.Equal(t, entity.Position{X: 3, Y: 4}, p.Position())
}

func TestPosition_DistanceTo(t *testing.T) {
	tests := []struct {
		a, b entity.Position
		want float64
	}{
		{entity.Position{}, entity.Position{X: 0, Y: 2}, 2},
		{entity.Position{}, entity.Position{X: 3, Y: 4}, 5},
		{entity.Position{X: 1, Y: 1}, entity.Position{X: 1, Y: 1}, 0},
		// Both axes are subtracted: (0,3) to (0,3) is zero, not 6.
		{entity.Position{X: 0, Y: 3}, entity.Position{X: 0, Y: 3}, 0},
		{entity.Position{X: -1, Y: -1}, entity.Position{X: 2, Y: 3}, 5},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, tc.a.DistanceTo(tc.b), 1e-9, "%v -> %v", tc.a, tc.b)
	}
}

func TestProp_DistanceTo(t *testing.T) {
	a := newProp(t, 10)
	b := newProp(t, 10)
	b.SetPosition(0.2, 0.5)
	assert.InDelta(t, 0.5385, a.DistanceTo(b), 1e-4)
}

func TestPosition_Property_DistanceSymmetricAndNonNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := entity.Position{
			X: rapid.Float64Range(-1000, 1000).Draw(rt, "ax"),
			Y: rapid.Float64Range(-1000, 1000).Draw(rt, "ay"),
		}
		b := entity.Position{
			X: rapid.Float64Range(-1000, 1000).Draw(rt, "bx"),
			Y: rapid.Float64Range(-1000, 1000).Draw(rt, "by"),
		}
		d := a.DistanceTo(b)
		assert.GreaterOrEqual(rt, d, 0.0)
		assert.Equal(rt, d, b.DistanceTo(a))
	})
}

func TestProp_Property_HealthNeverBelowZero(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 5000).Draw(rt, "max_hp")
		p, err := entity.NewProp(maxHP, entity.Position{})
		require.NoError(rt, err)
		hits := rapid.SliceOf(rapid.IntRange(0, 10000)).Draw(rt, "hits")
		for _, dmg := range hits {
			require.NoError(rt, p.ApplyDamage(dmg))
			assert.GreaterOrEqual(rt, p.Health(), 0)
			assert.Equal(rt, p.Health() > 0, p.Alive())
		}
	})
}

func TestProp_Property_DeathIsTerminal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 1000).Draw(rt, "max_hp")
		p, err := entity.NewProp(maxHP, entity.Position{})
		require.NoError(rt, err)
		require.NoError(rt, p.ApplyDamage(maxHP+rapid.IntRange(0, 100).Draw(rt, "extra")))
		heals := rapid.SliceOf(rapid.IntRange(0, 2000)).Draw(rt, "heals")
		for _, h := range heals {
			_, err := p.Restore(h)
			require.NoError(rt, err)
			assert.False(rt, p.Alive())
			assert.Equal(rt, 0, p.Health())
		}
	})
}

func TestProp_Property_RestoreNeverExceedsMax(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(2, 5000).Draw(rt, "max_hp")
		p, err := entity.NewProp(maxHP, entity.Position{})
		require.NoError(rt, err)
		require.NoError(rt, p.ApplyDamage(rapid.IntRange(0, maxHP-1).Draw(rt, "dmg")))
		_, err = p.Restore(rapid.IntRange(0, 100000).Draw(rt, "heal"))
		require.NoError(rt, err)
		assert.LessOrEqual(rt, p.Health(), p.MaxHealth())
	})
}
