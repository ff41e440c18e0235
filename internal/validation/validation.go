// Package validation turns request bodies into typed payloads and
// reports everything wrong with them at once.
//
// Decoding is done one field at a time so a mistyped field does not hide
// the others, then go-playground/validator checks the struct tags. The
// client gets a single 422 listing every violation.
package validation
