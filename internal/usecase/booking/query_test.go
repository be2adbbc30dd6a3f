package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func TestGetBooking_Visibility(t *testing.T) {
	repo := newMemRepo()
	b := repo.seed(domain.StatusPending)
	uc := NewGetBooking(repo)
	ctx := context.Background()

	for _, actor := range []auth.Actor{asCustomer, asBarber, asOwner, asAdmin} {
		got, err := uc.Execute(ctx, actor, b.ID)
		require.NoError(t, err, actor.Role)
		assert.Equal(t, b.ID, got.ID)
	}

	_, err := uc.Execute(ctx, asStranger, b.ID)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))

	otherBarber := auth.Actor{UserID: 77, Role: models.RoleBarber}
	_, err = uc.Execute(ctx, otherBarber, b.ID)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

func TestListBookings_Scopes(t *testing.T) {
	repo := newMemRepo()
	repo.seed(domain.StatusPending)
	uc := NewListBookings(repo)
	ctx := context.Background()

	mine, err := uc.Execute(ctx, ListBookingsInput{Actor: asCustomer, Scope: ScopeCustomer})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	none, err := uc.Execute(ctx, ListBookingsInput{Actor: asStranger, Scope: ScopeCustomer})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	barber, err := uc.Execute(ctx, ListBookingsInput{Actor: asBarber, Scope: ScopeBarber, Date: "2026-03-10"})
	require.NoError(t, err)
	assert.Len(t, barber, 1)

	shop, err := uc.Execute(ctx, ListBookingsInput{Actor: asOwner, Scope: ScopeShop, ShopID: shopID, Status: "pending"})
	require.NoError(t, err)
	assert.Len(t, shop, 1)

	_, err = uc.Execute(ctx, ListBookingsInput{Actor: auth.Actor{UserID: 99, Role: models.RoleShopOwner}, Scope: ScopeShop, ShopID: shopID})
	assert.True(t, httperr.IsBusiness(err, "forbidden"))
}

func TestListBookings_ValidatesFilters(t *testing.T) {
	uc := NewListBookings(newMemRepo())

	_, err := uc.Execute(context.Background(), ListBookingsInput{Actor: asCustomer, Date: "10/03/2026"})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = uc.Execute(context.Background(), ListBookingsInput{Actor: asCustomer, Status: "archived"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}
