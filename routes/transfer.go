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

// TransferRequest moves a tile between accounts. From defaults to the
// requesting account.
type TransferRequest struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

func (req TransferRequest) validate() error {
	if req.ID == "" {
		return errors.New("missing id")
	}
	if req.From == "" {
		return errors.New("missing sender")
	}
	if req.To == "" {
		return errors.New("missing receiver")
	}
	return nil
}

func newTransferHandler(lm *landmgr.LandManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		req := TransferRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(ctx, w, "failed to decode request: %s", err)
			return
		}
		if req.From == "" {
			req.From = mw.Account(ctx)
		}
		if err := req.validate(); err != nil {
			httputil.BadRequest(ctx, w, "invalid request: %s", err)
			return
		}
		log.Infow(ctx, "transfer request", "id", req.ID, "from", req.From, "to", req.To)
		if err := lm.Transfer(ctx, req.ID, req.From, req.To); err != nil {
			writeError(ctx, w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
