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

// MintRequest mints the rectangle anchored at ID to Owner. Width and height
// default to 1; Owner defaults to the requesting account.
type MintRequest struct {
	ID     string `json:"id"`
	Width  *uint8 `json:"width,omitempty"`
	Height *uint8 `json:"height,omitempty"`
	Owner  string `json:"owner"`
}

func (req MintRequest) validate() error {
	if req.ID == "" {
		return errors.New("missing id")
	}
	if req.Owner == "" {
		return errors.New("missing owner")
	}
	return nil
}

// MintResponse lists the minted identifiers in area order.
type MintResponse struct {
	IDs []string `json:"ids"`
}

func newMintHandler(lm *landmgr.LandManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		req := MintRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(ctx, w, "failed to decode request: %s", err)
			return
		}
		if req.Owner == "" {
			req.Owner = mw.Account(ctx)
		}
		if err := req.validate(); err != nil {
			httputil.BadRequest(ctx, w, "invalid request: %s", err)
			return
		}
		width, height := extentOrDefault(req.Width), extentOrDefault(req.Height)
		log.Infow(ctx, "mint request",
			"id", req.ID,
			"width", width,
			"height", height,
			"owner", req.Owner,
		)
		ids, err := lm.MintArea(ctx, req.ID, width, height, req.Owner)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		httputil.WriteJSON(ctx, w, MintResponse{IDs: formatIDs(ids)})
	}
}
