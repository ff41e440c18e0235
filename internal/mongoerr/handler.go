package mongoerr

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/deppfellow/tweteroo/internal/errs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// collectionOf extracts the name recorded by Wrap, "" if none.
func collectionOf(err error) string {
	msg := err.Error()
	idx := strings.Index(msg, collectionPrefix)
	if idx < 0 {
		return ""
	}
	rest := msg[idx+len(collectionPrefix):]
	return strings.SplitN(rest, ":", 2)[0]
}

// entityName turns a collection name into a singular entity name.
// "tweets" -> "tweet", "" -> "record".
func entityName(collection string) string {
	if collection == "" {
		return "record"
	}
	entity := strings.ToLower(collection)
	if strings.HasSuffix(entity, "s") && len(entity) > 1 {
		entity = entity[:len(entity)-1]
	}
	return entity
}

// generateErrorCode builds <ENTITY>_<ACTION>, e.g. TWEET_NOT_FOUND.
func generateErrorCode(collection string, code Code) string {
	action := "ERROR"
	switch code {
	case NotFound:
		action = "NOT_FOUND"
	case DuplicateKey:
		action = "ALREADY_EXISTS"
	}
	return fmt.Sprintf("%s_%s", errs.MakeUpperCaseWithUnderscores(entityName(collection)), action)
}

func humanizeText(text string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a storage error into an application-level error.
//
//   - *errs.HTTPError: returned unchanged
//   - no documents: 404, naming the entity when Wrap recorded a collection
//   - duplicate key: 409
//   - anything else (timeouts, network, server errors): generic 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if stderrors.As(err, &httpErr) {
		return err
	}

	code := ErrCode(err)
	collection := collectionOf(err)

	switch code {
	case NotFound:
		if collection == "" {
			return errs.NewNotFoundError("Resource not found", false, nil)
		}
		errorCode := generateErrorCode(collection, code)
		return errs.NewNotFoundError(
			fmt.Sprintf("%s not found", humanizeText(entityName(collection))), true, &errorCode)

	case DuplicateKey:
		errorCode := generateErrorCode(collection, code)
		return errs.NewConflictError(
			fmt.Sprintf("A %s with these values already exists", entityName(collection)), true, &errorCode)
	}

	return errs.NewInternalServerError()
}
