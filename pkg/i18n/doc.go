// Package i18n translates message keys using catalogs loaded from YAML and
// negotiates the request language from the Accept-Language header.
//
// Catalogs are nested YAML mappings rooted at a language code. Nested keys
// are joined with dots:
//
//	es:
//	  validation:
//	    greeting: "Hola"
//
// is looked up as T("es", "validation.greeting").
//
// Use Middleware to store the negotiated language in the request context and
// Locale to read it back.
package i18n
