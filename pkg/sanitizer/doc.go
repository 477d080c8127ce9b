// Package sanitizer provides the small set of string transforms used to bring
// raw identifier input into canonical form before it is parsed.
//
// Transforms are plain func(string) string values so they can be chained with
// Apply or stored as a reusable pipeline with Compose:
//
//	normalize := sanitizer.Compose(
//	    sanitizer.Trim,
//	    sanitizer.ToUpper,
//	    sanitizer.StripSeparators,
//	)
//
//	normalize(" x-1234567 l ") // "X1234567L"
//
// The package is stateless and safe for concurrent use.
package sanitizer
