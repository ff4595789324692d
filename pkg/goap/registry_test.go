package goap

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRun(t *testing.T) {
	group := uuid.New()
	built := 0
	var executed []string

	r := NewRegistry()
	r.Define(group, func() *Planner {
		built++
		p := NewPlanner()
		p.AddGoal(&fakeGoal{name: "G", target: boolTarget("Done")})
		p.AddAction(&fakeAction{name: "Finish", cost: 1, effect: setBool("Done"), executed: &executed})
		return p
	})
	require.True(t, r.Defined(group))

	t.Run("creates lazily and reuses", func(t *testing.T) {
		_, ok := r.Lookup(7, group)
		assert.False(t, ok)

		d, err := r.Run(7, group, newStubWorld(), NewBag())
		require.NoError(t, err)
		assert.Equal(t, "Finish", d.Action)

		first, ok := r.Lookup(7, group)
		require.True(t, ok)

		_, err = r.Run(7, group, newStubWorld(), NewBag())
		require.NoError(t, err)
		second, _ := r.Lookup(7, group)

		assert.Same(t, first, second)
		assert.Same(t, first.Scratch, second.Scratch)
		assert.Equal(t, 1, built)
		assert.Equal(t, []string{"Finish", "Finish"}, executed)
	})

	t.Run("separate entries per agent", func(t *testing.T) {
		_, err := r.Run(8, group, newStubWorld(), NewBag())
		require.NoError(t, err)

		a, _ := r.Lookup(7, group)
		b, _ := r.Lookup(8, group)
		assert.NotSame(t, a.Planner, b.Planner)
		assert.NotSame(t, a.Scratch, b.Scratch)
		assert.Equal(t, 2, built)
	})

	t.Run("unknown group", func(t *testing.T) {
		other := uuid.New()
		_, err := r.Run(7, other, newStubWorld(), NewBag())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownGroup))
		assert.Contains(t, err.Error(), other.String())
		_, ok := r.Lookup(7, other)
		assert.False(t, ok)
	})
}

func TestRegistryScratchPersistsAcrossPasses(t *testing.T) {
	group := uuid.New()
	r := NewRegistry()
	r.Define(group, func() *Planner {
		p := NewPlanner()
		p.AddSensor(&scratchCounter{})
		return p
	})

	for i := 0; i < 3; i++ {
		_, err := r.Run(1, group, newStubWorld(), NewBag())
		require.NoError(t, err)
	}

	e, ok := r.Lookup(1, group)
	require.True(t, ok)
	v, ok := Get[*counterState](e.Scratch)
	require.True(t, ok)
	assert.Equal(t, 3, v.n)
}

type counterState struct{ n int }

type scratchCounter struct{}

func (scratchCounter) Name() string { return "counter" }

func (scratchCounter) Sense(agent EntityID, world World, resources *Bag, scratch *Bag, facts *Facts) {
	c, ok := Get[*counterState](scratch)
	if !ok {
		c = &counterState{}
		Put(scratch, c)
	}
	c.n++
}

func TestRegistryGetOrCreateNilFactory(t *testing.T) {
	r := NewRegistry()
	e := r.GetOrCreate(3, uuid.New(), nil)
	require.NotNil(t, e.Planner)
	require.NotNil(t, e.Scratch)
	assert.Equal(t, DefaultMaxIterations, e.Planner.MaxIterations())

	e2 := r.GetOrCreate(4, uuid.New(), func() *Planner { return nil })
	require.NotNil(t, e2.Planner)
}

func TestRegistryEvict(t *testing.T) {
	g1, g2 := uuid.New(), uuid.New()
	r := NewRegistry()
	r.GetOrCreate(1, g1, nil)
	r.GetOrCreate(1, g2, nil)
	r.GetOrCreate(2, g1, nil)
	require.Equal(t, 3, r.Len())

	assert.Equal(t, 2, r.Evict(1))
	assert.Equal(t, 1, r.Len())
	_, ok := r.Lookup(1, g1)
	assert.False(t, ok)
	_, ok = r.Lookup(2, g1)
	assert.True(t, ok)

	assert.Equal(t, 0, r.Evict(99))
}

func TestRegistryKeysSorted(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	r := NewRegistry()
	r.GetOrCreate(5, b, nil)
	r.GetOrCreate(2, b, nil)
	r.GetOrCreate(5, a, nil)

	assert.Equal(t, []Key{
		{Agent: 2, Group: b},
		{Agent: 5, Group: a},
		{Agent: 5, Group: b},
	}, r.Keys())
}
