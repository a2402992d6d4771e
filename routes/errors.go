package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/wkalt/tileland/area"
	"github.com/wkalt/tileland/merge"
	"github.com/wkalt/tileland/spiral"
	"github.com/wkalt/tileland/tokens"
	"github.com/wkalt/tileland/util/httputil"
)

// writeError maps core errors onto HTTP statuses.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, spiral.MalformedIDError{}),
		errors.Is(err, merge.ErrInvalidExtent),
		errors.Is(err, area.ErrOutOfBounds),
		errors.Is(err, tokens.ErrEmptyOwner):
		httputil.BadRequest(ctx, w, "%s", err)
	case errors.Is(err, tokens.TokenNotFoundError{}):
		httputil.NotFound(ctx, w, "%s", err)
	case errors.Is(err, merge.PermissionDeniedError{}),
		errors.Is(err, tokens.NotOwnerError{}):
		httputil.Forbidden(ctx, w, "%s", err)
	case errors.Is(err, tokens.TokenExistsError{}):
		httputil.Conflict(ctx, w, "%s", err)
	default:
		httputil.InternalServerError(ctx, w, "%s", err)
	}
}
