package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/timbr/internal/domain/entity"
)

func TestRecord_FirstSwipeWins(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	agent := e.signup(t, "agent@example.com", entity.RoleAgent)
	buyer := e.signup(t, "buyer@example.com", entity.RoleBuyer)
	h := e.listing(t, agent, "h", 1, 1)

	sw, err := e.swipes.Record(ctx, buyer.ID, RecordSwipeInput{HouseID: h.ID, Direction: entity.DirectionRight, DwellMs: ptr(1200)})
	require.NoError(t, err)
	assert.NotEmpty(t, sw.ID)

	_, err = e.swipes.Record(ctx, buyer.ID, RecordSwipeInput{HouseID: h.ID, Direction: entity.DirectionLeft, DwellMs: ptr(5)})
	assert.ErrorIs(t, err, ErrDuplicateSwipe)

	stored, ok := e.store.SwipeFor(buyer.ID, h.ID)
	require.True(t, ok)
	assert.Equal(t, entity.DirectionRight, stored.Direction)
	assert.Equal(t, 1200, *stored.DwellMs)
	assert.Equal(t, 1, e.store.SwipeCount())
}

func TestRecord_InvalidInputPersistsNothing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	agent := e.signup(t, "agent@example.com", entity.RoleAgent)
	buyer := e.signup(t, "buyer@example.com", entity.RoleBuyer)
	h := e.listing(t, agent, "h", 1, 1)

	cases := map[string]RecordSwipeInput{
		"direction UP":   {HouseID: h.ID, Direction: "UP"},
		"lowercase":      {HouseID: h.ID, Direction: "left"},
		"negative dwell": {HouseID: h.ID, Direction: entity.DirectionLeft, DwellMs: ptr(-1)},
		"no house":       {Direction: entity.DirectionLeft},
		"malformed id":   {HouseID: "abc", Direction: entity.DirectionLeft},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.swipes.Record(ctx, buyer.ID, in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, e.store.SwipeCount())
}

func TestRecord_UnknownHouse(t *testing.T) {
	e := newEnv(t)
	buyer := e.signup(t, "buyer@example.com", entity.RoleBuyer)
	_, err := e.swipes.Record(context.Background(), buyer.ID, RecordSwipeInput{
		HouseID: "8a0b3c55-2f1e-4e0a-9b39-3d0c2b1f0a11", Direction: entity.DirectionLeft,
	})
	assert.ErrorIs(t, err, ErrHouseNotFound)
}

func TestRecord_DwellOptionalAndAnyRole(t *testing.T) {
	e := newEnv(t)
	agent := e.signup(t, "agent@example.com", entity.RoleAgent)
	h := e.listing(t, agent, "h", 1, 1)

	sw, err := e.swipes.Record(context.Background(), agent.ID, RecordSwipeInput{HouseID: h.ID, Direction: entity.DirectionLeft})
	require.NoError(t, err)
	assert.Nil(t, sw.DwellMs)
}
