package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var shopOwner = auth.Actor{UserID: 1, Role: models.RoleShopOwner}

func TestUploadImageWithoutStorage(t *testing.T) {
	h := &ShopHandler{}
	r := newRouter(shopOwner)
	r.POST("/shops/:id/image", h.UploadImage)

	w := doJSON(r, http.MethodPost, "/shops/1/image", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body httperr.HTTPError
	decode(t, w, &body)
	assert.Equal(t, "storage_disabled", body.Code)
}

func TestReplaceHoursRejectsInvalidWeek(t *testing.T) {
	day := func(wd int, open, close string) gin.H {
		return gin.H{"weekday": wd, "open_time": open, "close_time": close}
	}
	eight := make([]gin.H, 0, 8)
	for i := 0; i < 8; i++ {
		eight = append(eight, day(i%7, "09:00", "18:00"))
	}

	cases := []struct {
		name  string
		hours []gin.H
		code  string
	}{
		{"duplicate weekday", []gin.H{day(1, "09:00", "18:00"), day(1, "10:00", "19:00")}, "invalid_request"},
		{"close before open", []gin.H{day(2, "18:00", "09:00")}, "invalid_time_range"},
		{"missing open time", []gin.H{day(3, "", "18:00")}, "invalid_time"},
		{"bad clock", []gin.H{day(4, "9h", "18:00")}, "validation_error"},
		{"weekday out of range", []gin.H{day(7, "09:00", "18:00")}, "validation_error"},
		{"more than a week", eight, "validation_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &ShopHandler{}
			r := newRouter(shopOwner)
			r.PUT("/shops/:id/hours", h.ReplaceHours)

			w := doJSON(r, http.MethodPut, "/shops/1/hours", gin.H{"hours": tc.hours})
			require.Equal(t, http.StatusBadRequest, w.Code)

			var body httperr.HTTPError
			decode(t, w, &body)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestBuildShopHours(t *testing.T) {
	hours, err := buildShopHours([]ShopHoursDay{
		{Weekday: 1, OpenTime: "09:00", CloseTime: "18:00"},
		{Weekday: 0, Closed: true},
	})
	require.NoError(t, err)
	require.Len(t, hours, 2)
	assert.Equal(t, 1, hours[0].Weekday)
	assert.True(t, hours[1].Closed)
}

func TestCheckBarberCandidate(t *testing.T) {
	cases := []struct {
		name string
		user models.User
		code string
	}{
		{"customer", models.User{Role: models.RoleCustomer, Active: true}, "user_not_barber"},
		{"shop owner", models.User{Role: models.RoleShopOwner, Active: true}, "user_not_barber"},
		{"inactive barber", models.User{Role: models.RoleBarber}, "user_not_found"},
		{"barber", models.User{Role: models.RoleBarber, Active: true}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkBarberCandidate(&tc.user)
			if tc.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}
}
