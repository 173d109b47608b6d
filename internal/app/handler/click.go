package handler

import (
	"net/http"

	"skinsbay/internal/app/logger"
	"skinsbay/internal/app/service/click"
)

// ClickHandler terminates the gateway webhooks. The gateway always expects
// HTTP 200 with the protocol error code in the body, so transport-level
// failures are the only thing reported via HTTP status.
type ClickHandler struct {
	svc *click.Service
}

func NewClickHandler(svc *click.Service) *ClickHandler {
	return &ClickHandler{svc: svc}
}

func (h *ClickHandler) Prepare(w http.ResponseWriter, r *http.Request) {
	p, ok := h.readPayload(w, r)
	if !ok {
		return
	}

	WriteResponse(w, h.svc.Prepare(r.Context(), p), http.StatusOK)
}

func (h *ClickHandler) Complete(w http.ResponseWriter, r *http.Request) {
	p, ok := h.readPayload(w, r)
	if !ok {
		return
	}

	WriteResponse(w, h.svc.Complete(r.Context(), p), http.StatusOK)
}

func (h *ClickHandler) readPayload(w http.ResponseWriter, r *http.Request) (click.Payload, bool) {
	log := logger.Get(r.Context(), "Handler.Click")

	if err := r.ParseForm(); err != nil {
		log.Debug().Err(err).Msg("Form parse failed")
		WriteError(w, err, http.StatusBadRequest)
		return click.Payload{}, false
	}

	p := click.Payload{
		ClickTransID:      r.PostFormValue("click_trans_id"),
		ServiceID:         r.PostFormValue("service_id"),
		MerchantTransID:   r.PostFormValue("merchant_trans_id"),
		MerchantPrepareID: r.PostFormValue("merchant_prepare_id"),
		Amount:            r.PostFormValue("amount"),
		Action:            r.PostFormValue("action"),
		Error:             r.PostFormValue("error"),
		ErrorNote:         r.PostFormValue("error_note"),
		SignTime:          r.PostFormValue("sign_time"),
		SignString:        r.PostFormValue("sign_string"),
	}

	// field-level problems surface as protocol error codes, not HTTP errors
	return p, true
}
