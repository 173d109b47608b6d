package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"skinsbay/internal/app/apperr"
	"skinsbay/internal/app/logger"
	"skinsbay/internal/app/service/market"
	"skinsbay/internal/app/storage"
)

type SkinHandler struct {
	skins  storage.SkinRepository
	market *market.Service
}

func NewSkinHandler(skins storage.SkinRepository, market *market.Service) *SkinHandler {
	return &SkinHandler{
		skins:  skins,
		market: market,
	}
}

func (h *SkinHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Skin.Create")

	u, err := ReadContextUser(ctx)
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	in := struct {
		MarketHashName   string `json:"market_hash_name" validate:"required,max=128"`
		AssetID          string `json:"asset_id" validate:"required,numeric"`
		IconURL          string `json:"icon_url" validate:"omitempty,url"`
		Description      string `json:"description" validate:"max=512"`
		Price            string `json:"price" validate:"required"`
		Advertising      bool   `json:"advertising"`
		AdvertisingHours int    `json:"advertising_hours" validate:"min=0,max=168"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	price, err := decimal.NewFromString(in.Price)
	if err != nil {
		WriteError(w, apperr.ErrInvalidInput, http.StatusBadRequest)
		return
	}

	m, err := h.market.CreateListing(ctx, u.ID, market.CreateListingInput{
		MarketHashName:   in.MarketHashName,
		AssetID:          in.AssetID,
		IconURL:          in.IconURL,
		Description:      in.Description,
		Price:            price,
		Advertising:      in.Advertising,
		AdvertisingHours: in.AdvertisingHours,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidInput) {
			WriteError(w, err, http.StatusBadRequest)
			return
		}
		if errors.Is(err, apperr.ErrInsufficientFunds) {
			WriteError(w, err, http.StatusPaymentRequired)
			return
		}
		l.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	WriteResponse(w, m, http.StatusCreated)
}

func (h *SkinHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Skin.List")

	u, err := ReadContextUser(ctx)
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	mm, err := h.skins.AllBySellerID(ctx, u.ID)
	if err != nil {
		l.Debug().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	if len(mm) == 0 {
		WriteResponse(w, struct{}{}, http.StatusNoContent)
		return
	}

	l.Debug().Msgf("response json: %s", jsonString(mm))

	WriteResponse(w, mm, http.StatusOK)
}

func (h *SkinHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, apperr.ErrInvalidInput, http.StatusBadRequest)
		return
	}

	m, err := h.skins.Read(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			WriteError(w, err, http.StatusNotFound)
			return
		}
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	WriteResponse(w, m, http.StatusOK)
}

// Buy runs the purchase settlement; protocol-level outcomes map onto HTTP
// statuses so the bot frontend can render them.
func (h *SkinHandler) Buy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Skin.Buy")

	u, err := ReadContextUser(ctx)
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, apperr.ErrInvalidInput, http.StatusBadRequest)
		return
	}

	tr, err := h.market.BuySkin(ctx, u.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			WriteError(w, err, http.StatusNotFound)
		case errors.Is(err, apperr.ErrItemGone):
			WriteError(w, err, http.StatusGone)
		case errors.Is(err, apperr.ErrItemUnavailable), errors.Is(err, apperr.ErrSelfPurchase), errors.Is(err, apperr.ErrConflict):
			WriteError(w, err, http.StatusConflict)
		case errors.Is(err, apperr.ErrInsufficientFunds):
			WriteError(w, err, http.StatusPaymentRequired)
		case errors.Is(err, apperr.ErrNotTradeReady):
			WriteError(w, err, http.StatusUnprocessableEntity)
		case errors.Is(err, apperr.ErrDispatchFailed):
			WriteError(w, err, http.StatusBadGateway)
		default:
			l.Error().Err(err).Send()
			WriteError(w, err, http.StatusInternalServerError)
		}
		return
	}

	WriteResponse(w, tr, http.StatusAccepted)
}

func (h *SkinHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Skin.Cancel")

	u, err := ReadContextUser(ctx)
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, apperr.ErrInvalidInput, http.StatusBadRequest)
		return
	}

	if err := h.market.CancelListing(ctx, u.ID, id); err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			WriteError(w, err, http.StatusNotFound)
		case errors.Is(err, apperr.ErrItemUnavailable), errors.Is(err, apperr.ErrConflict):
			WriteError(w, err, http.StatusConflict)
		default:
			l.Error().Err(err).Send()
			WriteError(w, err, http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
