package esid_test

import (
	"testing"

	"github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/esflavor/pkg/esid"
)

func TestRule(t *testing.T) {
	t.Parallel()

	t.Run("valid values", func(t *testing.T) {
		assert.NoError(t, validation.Validate("28080", esid.PostalCodeRule))
		assert.NoError(t, validation.Validate("612345678", esid.PhoneNumberRule))
		assert.NoError(t, validation.Validate("12345678z", esid.IdentityCardRule))
		assert.NoError(t, validation.Validate("X1234567L", esid.NIFNIERule))
		assert.NoError(t, validation.Validate(validCCC, esid.BankAccountRule))
	})

	t.Run("empty and nil values are skipped", func(t *testing.T) {
		var missing *string
		assert.NoError(t, validation.Validate("", esid.PostalCodeRule))
		assert.NoError(t, validation.Validate(missing, esid.PhoneNumberRule))
		assert.Error(t, validation.Validate("", validation.Required, esid.PhoneNumberRule))
	})

	t.Run("error carries translation key as code", func(t *testing.T) {
		err := validation.Validate("12345678A", esid.IdentityCardRule)
		require.Error(t, err)

		var verr validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "validation.es.identity_card.invalid_nif", verr.Code())
		assert.Equal(t, "Invalid checksum for NIF.", verr.Message())
	})

	t.Run("restricted rule rejects company codes", func(t *testing.T) {
		err := validation.Validate("A58818501", esid.NIFNIERule)
		var verr validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "validation.es.identity_card.invalid_only_nif", verr.Code())
	})

	t.Run("custom message", func(t *testing.T) {
		err := validation.Validate("53000", esid.PostalCodeRule.Error("bad zip"))
		var verr validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "bad zip", verr.Message())
	})

	t.Run("non string values", func(t *testing.T) {
		assert.Error(t, validation.Validate(28080, esid.PostalCodeRule))
	})

	t.Run("struct validation", func(t *testing.T) {
		type form struct {
			NIF     string
			Account string
		}
		f := form{NIF: "12345678A", Account: "2100 0418 46 0200051332"}
		err := validation.ValidateStruct(&f,
			validation.Field(&f.NIF, validation.Required, esid.NewRule(esid.KindIdentityCard, esid.OnlyNIFNIE())),
			validation.Field(&f.Account, esid.BankAccountRule),
		)
		require.Error(t, err)

		errs, ok := err.(validation.Errors)
		require.True(t, ok)
		assert.Contains(t, errs, "NIF")
		assert.Contains(t, errs, "Account")
	})
}
