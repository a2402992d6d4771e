package routes

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/wkalt/tileland/landmgr"
	"github.com/wkalt/tileland/util/httputil"
	"github.com/wkalt/tileland/util/log"
	"github.com/wkalt/tileland/util/mw"
)

// MergeRequest merges the rectangle anchored at ID. Actor defaults to the
// requesting account.
type MergeRequest struct {
	ID     string `json:"id"`
	Width  uint8  `json:"width"`
	Height uint8  `json:"height"`
	Actor  string `json:"actor"`
}

func (req MergeRequest) validate() error {
	if req.ID == "" {
		return errors.New("missing id")
	}
	if req.Actor == "" {
		return errors.New("missing actor")
	}
	return nil
}

func newMergeHandler(lm *landmgr.LandManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		req := MergeRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(ctx, w, "failed to decode request: %s", err)
			return
		}
		if req.Actor == "" {
			req.Actor = mw.Account(ctx)
		}
		if err := req.validate(); err != nil {
			httputil.BadRequest(ctx, w, "invalid request: %s", err)
			return
		}
		log.Infow(ctx, "merge request",
			"id", req.ID,
			"width", req.Width,
			"height", req.Height,
			"actor", req.Actor,
		)
		if err := lm.Merge(ctx, req.ID, req.Width, req.Height, req.Actor); err != nil {
			writeError(ctx, w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
