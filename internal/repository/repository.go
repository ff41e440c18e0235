// Package repository handles all interactions with the database.
//
// Each repository owns one MongoDB collection. Errors are wrapped with
// mongoerr.Wrap so callers can tell which collection failed and so
// mongo.ErrNoDocuments stays detectable with mongoerr.IsNotFound.
package repository
