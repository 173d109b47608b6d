package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"skinsbay/internal/app/handler"
	mw "skinsbay/internal/app/middleware"
)

func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(mw.Log(a.logger))

	auth := mw.Auth(a.session)
	admin := mw.AdminToken(a.config.AdminToken)

	uh := handler.NewUserHandler(a.users, a.session)
	sh := handler.NewSkinHandler(a.skins, a.market)
	th := handler.NewTransactionHandler(a.transactions, a.market)
	ch := handler.NewClickHandler(a.click)

	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/login", uh.Login)
			r.Post("/register", uh.Register)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/me", uh.Me)
				r.Put("/trade-profile", uh.UpdateTradeProfile)
			})
		})

		r.Route("/skins", func(r chi.Router) {
			r.Get("/{id}", sh.Get)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/", sh.List)
				r.Post("/", sh.Create)
				r.Post("/{id}/buy", sh.Buy)
				r.Delete("/{id}", sh.Cancel)
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(auth)
				r.Get("/", th.List)
				r.Post("/withdraw", th.Withdraw)
			})

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Post("/bonus", th.GrantBonus)
			})
		})

		// gateway webhooks authenticate by signature, not session
		r.Route("/click", func(r chi.Router) {
			r.Post("/prepare", ch.Prepare)
			r.Post("/complete", ch.Complete)
		})
	})

	return r
}
