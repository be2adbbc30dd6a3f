package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Start    string `validate:"hhmm"`
	Date     string `validate:"isodate"`
	Category string `validate:"service_category"`
	Weekday  int    `validate:"weekday"`
}

func TestRegisterOn(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	ok := sample{Start: "09:30", Date: "2026-05-01", Category: "beard", Weekday: 6}
	assert.NoError(t, v.Struct(ok))

	cases := map[string]sample{
		"hour":     {Start: "25:00"},
		"date":     {Date: "01/05/2026"},
		"category": {Category: "massage"},
		"weekday":  {Weekday: 7},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, v.Struct(s))
		})
	}
}

func TestIsEmailDomainValid_RejectsMalformed(t *testing.T) {
	assert.False(t, IsEmailDomainValid("sem-arroba"))
	assert.False(t, IsEmailDomainValid("fim@"))
}
