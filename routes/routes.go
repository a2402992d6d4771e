package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/wkalt/tileland/landmgr"
	"github.com/wkalt/tileland/util/mw"
)

// MakeRoutes returns the HTTP routes of the tile service.
func MakeRoutes(lm *landmgr.LandManager, allowedOrigins []string, sharedKey string) *mux.Router {
	r := mux.NewRouter()
	r.Use(
		mw.WithRequestID,
		mw.WithCORSAllowedOrigins(allowedOrigins),
		mw.WithSharedKeyAuth(sharedKey),
		mw.WithAccount,
	)
	r.HandleFunc("/tokens/{id}/coordinates", newCoordinatesHandler(lm)).Methods(http.MethodGet)
	r.HandleFunc("/tokens/{id}/area", newAreaHandler(lm)).Methods(http.MethodGet)
	r.HandleFunc("/tokens/{id}", newTokenHandler(lm)).Methods(http.MethodGet)
	r.HandleFunc("/coordinates/{x}/{y}", newTokenIDHandler(lm)).Methods(http.MethodGet)
	r.HandleFunc("/uncovered", newUncoveredHandler(lm)).Methods(http.MethodGet)
	r.HandleFunc("/mint", newMintHandler(lm)).Methods(http.MethodPost)
	r.HandleFunc("/merge", newMergeHandler(lm)).Methods(http.MethodPost)
	r.HandleFunc("/transfer", newTransferHandler(lm)).Methods(http.MethodPost)
	return r
}
