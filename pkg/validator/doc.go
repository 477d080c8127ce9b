// Package validator provides a small declarative rule engine for form input
// and the rules that bind Spanish identifiers to it.
//
// A Rule pairs a Check function with the ValidationError reported when the
// check fails. Apply evaluates any number of rules and aggregates failures in
// a ValidationErrors slice, which implements error:
//
//	err := validator.Apply(
//	    validator.Required("nif", form.NIF),
//	    validator.ValidSpanishIDCard("nif", form.NIF, true),
//	    validator.ValidSpanishCCC("account", form.Account),
//	    validator.ValidSpanishPostalCode("zip", form.Zip),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, field := range verrs.Fields() {
//	        // verrs.Codes(field), verrs.Get(field)
//	    }
//	}
//
// Identifier rules report the identifier error code (invalid, invalid_nif,
// checksum, ...) in ValidationError.Code and a translation key of the form
// validation.es.<kind>.<code>. Messages are not localized here.
//
// The package holds no global state and is safe for concurrent use.
package validator
