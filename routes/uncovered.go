package routes

import (
	"net/http"

	"github.com/wkalt/tileland/coverage"
	"github.com/wkalt/tileland/landmgr"
	"github.com/wkalt/tileland/util/httputil"
)

// UncoveredResponse lists the uncovered tiles sorted by identifier.
type UncoveredResponse struct {
	Tiles []coverage.Tile `json:"tiles"`
}

func newUncoveredHandler(lm *landmgr.LandManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tiles, err := lm.Uncovered(ctx)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		if tiles == nil {
			tiles = []coverage.Tile{}
		}
		httputil.WriteJSON(ctx, w, UncoveredResponse{Tiles: tiles})
	}
}
