package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"skinsbay/internal/app/apperr"
	"skinsbay/internal/app/logger"
	"skinsbay/internal/app/service/market"
	"skinsbay/internal/app/storage"
)

type TransactionHandler struct {
	transactions storage.TransactionRepository
	market       *market.Service
}

func NewTransactionHandler(transactions storage.TransactionRepository, market *market.Service) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		market:       market,
	}
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Transaction.List")

	u, err := ReadContextUser(ctx)
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	mm, err := h.transactions.AllByUserID(ctx, u.ID)
	if err != nil {
		l.Debug().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	if len(mm) == 0 {
		WriteResponse(w, struct{}{}, http.StatusNoContent)
		return
	}

	WriteResponse(w, mm, http.StatusOK)
}

// Withdraw debits the balance into a pending card payout.
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Transaction.Withdraw")

	u, err := ReadContextUser(ctx)
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	in := struct {
		CardNumber string `json:"card_number" validate:"required,numeric,min=12,max=19"`
		Amount     string `json:"amount" validate:"required"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		WriteError(w, apperr.ErrInvalidInput, http.StatusBadRequest)
		return
	}

	tr, err := h.market.InitiateWithdrawal(ctx, u.ID, in.CardNumber, amount)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidInput):
			WriteError(w, err, http.StatusUnprocessableEntity)
		case errors.Is(err, apperr.ErrInsufficientFunds):
			WriteError(w, err, http.StatusPaymentRequired)
		default:
			l.Error().Err(err).Send()
			WriteError(w, err, http.StatusInternalServerError)
		}
		return
	}

	WriteResponse(w, tr, http.StatusAccepted)
}

// GrantBonus is the operator endpoint behind the admin token middleware.
func (h *TransactionHandler) GrantBonus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logger.Get(ctx, "Handler.Transaction.GrantBonus")

	in := struct {
		UserID string `json:"user_id" validate:"required,uuid4"`
		Amount string `json:"amount" validate:"required"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	userID, err := uuid.Parse(in.UserID)
	if err != nil {
		WriteError(w, apperr.ErrInvalidInput, http.StatusBadRequest)
		return
	}

	amount, err := decimal.NewFromString(in.Amount)
	if err != nil {
		WriteError(w, apperr.ErrInvalidInput, http.StatusBadRequest)
		return
	}

	tr, err := h.market.GrantBonus(ctx, userID, amount)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			WriteError(w, err, http.StatusNotFound)
		case errors.Is(err, apperr.ErrInvalidInput):
			WriteError(w, err, http.StatusUnprocessableEntity)
		default:
			l.Error().Err(err).Send()
			WriteError(w, err, http.StatusInternalServerError)
		}
		return
	}

	WriteResponse(w, tr, http.StatusOK)
}
