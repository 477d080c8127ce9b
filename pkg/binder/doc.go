// Package binder decodes HTTP request bodies into request structs.
//
// JSON enforces an application/json content type, a body size limit and
// strict field matching, and wraps every failure in one of the package
// errors so handlers can map them to a 4xx response with errors.Is.
package binder
