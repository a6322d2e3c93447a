package application

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/timbr/internal/domain/entity"
)

func TestPut_IsPartial(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	buyer := e.signup(t, "buyer@example.com", entity.RoleBuyer)

	_, err := e.prefs.Put(ctx, buyer.ID, entity.PreferencePatch{
		MinPrice:      ptr(100000),
		MaxPrice:      ptr(500000),
		PropertyTypes: &[]string{"HOUSE", "CONDO"},
	})
	require.NoError(t, err)

	got, err := e.prefs.Put(ctx, buyer.ID, entity.PreferencePatch{MinPrice: ptr(300000)})
	require.NoError(t, err)

	want := entity.PreferenceCriteria{
		MinPrice:      ptr(300000),
		MaxPrice:      ptr(500000),
		PropertyTypes: []string{"HOUSE", "CONDO"},
	}
	if diff := cmp.Diff(want, got.PreferenceCriteria); diff != "" {
		t.Errorf("criteria mismatch (-want +got):\n%s", diff)
	}
}

func TestPut_EmptySliceClears(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	buyer := e.signup(t, "buyer@example.com", entity.RoleBuyer)

	_, err := e.prefs.Put(ctx, buyer.ID, entity.PreferencePatch{Neighborhoods: &[]string{"Mueller"}})
	require.NoError(t, err)
	got, err := e.prefs.Put(ctx, buyer.ID, entity.PreferencePatch{Neighborhoods: &[]string{}})
	require.NoError(t, err)
	assert.Empty(t, got.Neighborhoods)
	assert.NotNil(t, got.Neighborhoods)
}

func TestPut_RejectsUnknownPropertyType(t *testing.T) {
	e := newEnv(t)
	buyer := e.signup(t, "buyer@example.com", entity.RoleBuyer)
	_, err := e.prefs.Put(context.Background(), buyer.ID, entity.PreferencePatch{PropertyTypes: &[]string{"CASTLE"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPut_NonBuyer(t *testing.T) {
	e := newEnv(t)
	seller := e.signup(t, "seller@example.com", entity.RoleSeller)
	_, err := e.prefs.Put(context.Background(), seller.ID, entity.PreferencePatch{MinBeds: ptr(2)})
	assert.ErrorIs(t, err, ErrBuyerProfileNotFound)
}

func TestPut_RecreatesMissingRow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	buyer := e.signup(t, "buyer@example.com", entity.RoleBuyer)
	buyerID, err := e.store.Preferences().BuyerIDForUser(ctx, buyer.ID)
	require.NoError(t, err)
	e.store.Preferences().DeletePreference(buyerID)

	got, err := e.prefs.Get(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	p, err := e.prefs.Put(ctx, buyer.ID, entity.PreferencePatch{HasPool: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, buyerID, p.BuyerID)
	assert.True(t, *p.HasPool)
}
