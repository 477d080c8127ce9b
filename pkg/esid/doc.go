// Package esid validates Spanish national identifiers found in free-form text:
// postal codes, phone numbers, identity and fiscal numbers (NIF, NIE, CIF) and
// bank account codes (CCC).
//
// Every validator follows the same contract:
//
//	normalized, err := esid.ValidateIdentityCard(" x-1234567-l ")
//	// normalized == "X1234567L", err == nil
//
// On failure the returned error is an *Error whose Code tells the caller why
// the value was rejected. Codes are a closed set and can be compared with
// errors.Is against the package sentinels:
//
//	if errors.Is(err, esid.ErrInvalidNIF) {
//	    // well formed, wrong control letter
//	}
//
// # Identity numbers
//
// ValidateIdentityCard classifies its input by shape. The first matching rule
// wins:
//
//  1. NIF – digits followed by a control letter.
//  2. NIE – X or T, digits and a control letter.
//  3. CIF – an organisation letter followed by 7 or 8 characters whose last
//     one is the control character, as a digit or as a letter.
//
// The OnlyNIFNIE option rejects company codes.
//
// # Empty input
//
// ValidateIdentityCard and ValidateBankAccount accept the empty string and
// return it unchanged; "required" checks belong to the caller. The postal code
// and phone number validators have no such exemption.
//
// # Integration
//
// The Rule values (PostalCodeRule, IdentityCardRule, ...) implement the
// github.com/jellydator/validation Rule interface so identifiers can be checked
// inside validation.ValidateStruct alongside other field rules.
//
// All functions are pure and safe for concurrent use.
package esid
