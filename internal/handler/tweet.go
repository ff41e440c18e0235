package handler

import (
	"errors"
	"net/http"

	"github.com/deppfellow/tweteroo/internal/errs"
	"github.com/deppfellow/tweteroo/internal/middleware"
	"github.com/deppfellow/tweteroo/internal/model"
	"github.com/deppfellow/tweteroo/internal/server"
	"github.com/deppfellow/tweteroo/internal/service"
	"github.com/deppfellow/tweteroo/internal/validation"
	"github.com/labstack/echo/v4"
)

type TweetHandler struct {
	Handler
	tweetService *service.TweetService
}

func NewTweetHandler(s *server.Server, tweetService *service.TweetService) *TweetHandler {
	return &TweetHandler{
		Handler:      NewHandler(s),
		tweetService: tweetService,
	}
}

// CreateTweet handles POST /tweets.
func (h *TweetHandler) CreateTweet(c echo.Context, req *model.TweetRequest) (*model.Tweet, error) {
	return h.tweetService.Create(c.Request().Context(), req)
}

// CheckAuthor is the precheck of POST /tweets: when the body is invalid
// but its username is not, an unknown username is reported instead of the
// validation failure. Lookup failures leave the validation error in place.
func (h *TweetHandler) CheckAuthor(c echo.Context, req *model.TweetRequest, validationErr error) error {
	var httpErr *errs.HTTPError
	if !errors.As(validationErr, &httpErr) || httpErr.Status != http.StatusUnprocessableEntity {
		return nil
	}
	for _, fieldErr := range httpErr.Errors {
		if fieldErr.Field == "username" {
			return nil
		}
	}

	err := h.tweetService.CheckUser(c.Request().Context(), req.Username)
	if err == nil {
		return nil
	}

	var rejection *errs.HTTPError
	if errors.As(err, &rejection) && rejection.HasCode(errs.CodeInvalidUser) {
		return rejection
	}

	// the lookup failed; the client still gets the validation error
	logger := middleware.GetLogger(c)
	logger.Error().Err(err).Str("username", req.Username).Msg("author lookup failed during validation")
	return nil
}

// ListTweets handles GET /tweets.
func (h *TweetHandler) ListTweets(c echo.Context, _ *EmptyRequest) ([]model.TweetView, error) {
	return h.tweetService.List(c.Request().Context())
}

// UpdateTweet handles PUT /tweets/:id. The body is validated before the id
// is parsed.
func (h *TweetHandler) UpdateTweet(c echo.Context, req *model.TweetRequest) error {
	id, err := validation.ObjectIDParam(c, "id", errs.CodeInvalidTweetID)
	if err != nil {
		return err
	}

	return h.tweetService.Update(c.Request().Context(), id, req)
}

// DeleteTweet handles DELETE /tweets/:id.
func (h *TweetHandler) DeleteTweet(c echo.Context, _ *EmptyRequest) error {
	id, err := validation.ObjectIDParam(c, "id", errs.CodeInvalidTweetID)
	if err != nil {
		return err
	}

	return h.tweetService.Delete(c.Request().Context(), id)
}
