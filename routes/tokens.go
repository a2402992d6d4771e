package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/wkalt/tileland/landmgr"
	"github.com/wkalt/tileland/spiral"
	"github.com/wkalt/tileland/util/httputil"
	"github.com/wkalt/tileland/util/log"
)

// TokenIDResponse is the response to a coordinate lookup.
type TokenIDResponse struct {
	ID string `json:"id"`
}

// AreaResponse lists the identifiers of a rectangle in area order.
type AreaResponse struct {
	IDs []string `json:"ids"`
}

func formatIDs(ids []uint64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = spiral.FormatID(id)
	}
	return out
}

func newCoordinatesHandler(lm *landmgr.LandManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		coord, err := lm.Coordinates(mux.Vars(r)["id"])
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		httputil.WriteJSON(ctx, w, coord)
	}
}

func newTokenIDHandler(lm *landmgr.LandManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		x, err := coordParam(vars["x"])
		if err != nil {
			httputil.BadRequest(ctx, w, "%s", err)
			return
		}
		y, err := coordParam(vars["y"])
		if err != nil {
			httputil.BadRequest(ctx, w, "%s", err)
			return
		}
		httputil.WriteJSON(ctx, w, TokenIDResponse{ID: spiral.FormatID(lm.TokenID(x, y))})
	}
}

func newAreaHandler(lm *landmgr.LandManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		width, err := extentParam(r, "width")
		if err != nil {
			httputil.BadRequest(ctx, w, "%s", err)
			return
		}
		height, err := extentParam(r, "height")
		if err != nil {
			httputil.BadRequest(ctx, w, "%s", err)
			return
		}
		id := mux.Vars(r)["id"]
		log.Debugw(ctx, "area request", "id", id, "width", width, "height", height)
		ids, err := lm.Area(id, width, height)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		httputil.WriteJSON(ctx, w, AreaResponse{IDs: formatIDs(ids)})
	}
}

func newTokenHandler(lm *landmgr.LandManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		info, err := lm.TokenWithSize(ctx, mux.Vars(r)["id"])
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		httputil.WriteJSON(ctx, w, info)
	}
}
