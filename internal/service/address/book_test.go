package address

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	addressrepo "storefront/internal/repository/address"
)

func newBook(t *testing.T) *Book {
	t.Helper()
	b := New(addressrepo.NewMemory(), nil)
	n := 0
	b.newID = func() string {
		n++
		return fmt.Sprintf("addr-%d", n)
	}
	return b
}

func validAddress() domain.Address {
	return domain.Address{Name: "Asha Rao", Phone: "9876543210", Pincode: "560001", City: "Bengaluru", State: "Karnataka", Line: "12 MG Road"}
}

func TestBook_AddAssignsIDAndDefaultLabel(t *testing.T) {
	ctx := context.Background()
	b := newBook(t)

	saved, err := b.Add(ctx, "u-1", validAddress())
	require.NoError(t, err)
	assert.Equal(t, "addr-1", saved.ID)
	assert.Equal(t, DefaultLabel, saved.Label)

	office := validAddress()
	office.Label = "  Office "
	office.ID = "client-chosen"
	saved, err = b.Add(ctx, "u-1", office)
	require.NoError(t, err)
	assert.Equal(t, "addr-2", saved.ID)
	assert.Equal(t, "Office", saved.Label)

	list, err := b.List(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Home", list[0].Label)
	assert.Equal(t, "Office", list[1].Label)
}

func TestBook_RejectsInvalidAddress(t *testing.T) {
	b := newBook(t)
	bad := validAddress()
	bad.Pincode = "5600"

	_, err := b.Add(context.Background(), "u-1", bad)
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)

	list, err := b.List(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBook_RequiresUser(t *testing.T) {
	b := newBook(t)
	_, err := b.Add(context.Background(), " ", validAddress())
	assert.ErrorIs(t, err, domain.ErrLoginRequired)
	_, err = b.List(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrLoginRequired)
}

func TestBook_UpdateAndDeleteAreScopedToOwner(t *testing.T) {
	ctx := context.Background()
	b := newBook(t)
	saved, err := b.Add(ctx, "u-1", validAddress())
	require.NoError(t, err)

	edit := validAddress()
	edit.Line = "48 Church Street"
	_, err = b.Update(ctx, "u-2", saved.ID, edit)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, b.Delete(ctx, "u-2", saved.ID), domain.ErrNotFound)

	updated, err := b.Update(ctx, "u-1", saved.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, DefaultLabel, updated.Label)

	got, err := b.Get(ctx, "u-1", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "48 Church Street", got.Line)

	require.NoError(t, b.Delete(ctx, "u-1", saved.ID))
	_, err = b.Get(ctx, "u-1", saved.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
