// Package mongoerr specifically handles MongoDB driver errors.
//
// It classifies driver failures (no documents, duplicate keys, timeouts,
// network errors) and converts them into *errs.HTTPError values that are
// safe to send to clients.
package mongoerr

import (
	"context"
	stderrors "errors"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// Code is the category of a driver error.
type Code string

const (
	NotFound     Code = "not_found"
	DuplicateKey Code = "duplicate_key"
	Timeout      Code = "timeout"
	Network      Code = "network"
	Other        Code = "other"
)

// collectionPrefix marks the collection an error came from, see Wrap.
const collectionPrefix = "collection:"

// Wrap annotates err with the collection and operation that produced it.
// HandleError reads the collection back to name the missing entity.
//
//	Wrap(mongo.ErrNoDocuments, "tweets", "find by id")
//	  -> "collection:tweets: find by id: mongo: no documents in result"
func Wrap(err error, collection, op string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "%s%s: %s", collectionPrefix, collection, op)
}

// ErrCode reports the category of err.
func ErrCode(err error) Code {
	switch {
	case err == nil:
		return Other
	case stderrors.Is(err, mongo.ErrNoDocuments):
		return NotFound
	case mongo.IsDuplicateKeyError(err):
		return DuplicateKey
	case mongo.IsTimeout(err), stderrors.Is(err, context.DeadlineExceeded):
		return Timeout
	case mongo.IsNetworkError(err):
		return Network
	default:
		return Other
	}
}

// IsNotFound reports whether err means the document does not exist.
func IsNotFound(err error) bool {
	return ErrCode(err) == NotFound
}
