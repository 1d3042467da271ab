package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type signup struct {
	Email           string `json:"workEmail" validate:"required,email"`
	Slug            string `json:"companySlug" validate:"required,min=3,slug"`
	Password        string `json:"password" validate:"required,min=6,max=50,strong_password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func TestStruct_MapsJSONFieldNames(t *testing.T) {
	v := New()

	errs := v.Struct(signup{Email: "nope", Slug: "Bad_Slug", Password: "abc", ConfirmPassword: "abd"})
	require.Equal(t, "Please enter a valid email address.", errs["workEmail"])
	require.Contains(t, errs, "companySlug")
	require.Equal(t, "Must be at least 6 characters.", errs["password"])
	require.Equal(t, "Passwords do not match.", errs["confirmPassword"])

	errs = v.Struct(signup{Email: "a@b.io", Slug: "acme-co", Password: "Secr3t!", ConfirmPassword: "Secr3t!"})
	require.Nil(t, errs)
}

func TestStrongPassword(t *testing.T) {
	require.True(t, StrongPassword("Abcdef1!"))
	require.False(t, StrongPassword("abcdef1!"))
	require.False(t, StrongPassword("ABCDEF1!"))
	require.False(t, StrongPassword("Abcdefg!"))
	require.False(t, StrongPassword("Abcdefg1"))
}
