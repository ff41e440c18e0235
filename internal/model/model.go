// Package model holds the documents stored in the users and tweets
// collections and the request payloads that create or change them.
package model
