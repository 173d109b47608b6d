package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"skinsbay/internal/app/apperr"
	"skinsbay/internal/app/logger"
	"skinsbay/internal/app/model"
	"skinsbay/internal/app/session"
	"skinsbay/internal/app/storage"
)

type UserHandler struct {
	session session.Creator
	users   storage.UserRepository
}

func NewUserHandler(users storage.UserRepository, sm session.Creator) *UserHandler {
	return &UserHandler{
		session: sm,
		users:   users,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.Get(r.Context(), "Handler.User.Register")

	in := struct {
		TelegramID  string `json:"telegram_id" validate:"required,numeric"`
		Personaname string `json:"personaname" validate:"max=64"`
		SteamID     string `json:"steam_id" validate:"omitempty,numeric"`
		TradeURL    string `json:"trade_url" validate:"omitempty,url"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	u := &model.User{
		TelegramID:  in.TelegramID,
		Personaname: in.Personaname,
		SteamID:     in.SteamID,
		TradeURL:    in.TradeURL,
	}

	u, err := h.users.Create(r.Context(), u)

	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			log.Debug().Err(err).Send()
			WriteError(w, err, http.StatusConflict)
			return
		}
		if errors.Is(err, apperr.ErrInvalidInput) {
			log.Debug().Err(err).Send()
			WriteError(w, err, http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	token, err := h.session.Create(r.Context(), u)
	if err != nil {
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	out := struct {
		Token string `json:"token"`
	}{token}

	w.Header().Add("Authorization", "Bearer "+token)

	WriteResponse(w, out, http.StatusOK)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	hlog.FromRequest(r).Debug().Msg("Handler.User.Login")

	in := struct {
		TelegramID string `json:"telegram_id" validate:"required,numeric"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	u, err := h.users.ReadByTelegramID(r.Context(), in.TelegramID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			WriteError(w, err, http.StatusUnauthorized)
			return
		}
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	token, err := h.session.Create(r.Context(), u)
	if err != nil {
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	out := struct {
		Token string `json:"token"`
	}{token}

	w.Header().Add("Authorization", "Bearer "+token)

	WriteResponse(w, out, http.StatusOK)
}

// Me returns the authenticated profile with current balance figures.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := ReadContextUser(r.Context())
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	out := struct {
		*model.User
		Balance  string `json:"balance"`
		Cashback string `json:"cashback"`
	}{
		User:     u,
		Balance:  u.Balance.String(),
		Cashback: u.Cashback.String(),
	}

	WriteResponse(w, out, http.StatusOK)
}

// UpdateTradeProfile links or updates the Steam identity required for
// trades.
func (h *UserHandler) UpdateTradeProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.Get(r.Context(), "Handler.User.UpdateTradeProfile")

	u, err := ReadContextUser(r.Context())
	if err != nil {
		WriteError(w, err, http.StatusUnauthorized)
		return
	}

	in := struct {
		SteamID     string `json:"steam_id" validate:"required,numeric"`
		TradeURL    string `json:"trade_url" validate:"required,url"`
		Personaname string `json:"personaname" validate:"max=64"`
	}{}

	if err := readBody(r, &in); err != nil {
		WriteError(w, err, http.StatusBadRequest)
		return
	}

	if !validateData(w, in) {
		return
	}

	u.SteamID = in.SteamID
	u.TradeURL = in.TradeURL
	if in.Personaname != "" {
		u.Personaname = in.Personaname
	}

	u, err = h.users.Update(r.Context(), u)
	if err != nil {
		log.Error().Err(err).Send()
		WriteError(w, err, http.StatusInternalServerError)
		return
	}

	WriteResponse(w, u, http.StatusOK)
}
