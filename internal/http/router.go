package http

import (
	"net/http"

	"pact/internal/activegroup"
	"pact/internal/auth"
	"pact/internal/config"
	"pact/internal/food"
	"pact/internal/group"
	"pact/internal/http/handler"
	mw "pact/internal/http/middleware"
	"pact/internal/journal"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT, active *activegroup.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{DB: db, JWT: jwtSvc}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	foodSvc := &food.Service{DB: db}
	journalSvc := &journal.Service{DB: db}
	groupSvc := &group.Service{DB: db}

	libH := &handler.LibraryHandler{Svc: foodSvc, DB: db}
	entryH := &handler.EntryHandler{Journal: journalSvc, Food: foodSvc, Groups: groupSvc, Active: active}
	todayH := &handler.TodayHandler{Journal: journalSvc, Groups: groupSvc, Active: active}
	commH := &handler.CommunityHandler{Journal: journalSvc, Groups: groupSvc, Active: active}
	groupH := &handler.GroupHandler{Groups: groupSvc, Active: active}
	profH := &handler.ProfileHandler{Groups: groupSvc, DB: db}

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Get("/me", profH.Me)
		r.Put("/profile", profH.Update)
		r.Post("/weights", profH.LogWeight)
		r.Get("/weights", profH.Weights)

		r.Route("/library", func(r chi.Router) {
			r.Get("/ingredients", libH.ListIngredients)
			r.Post("/ingredients", libH.CreateIngredient)
			r.Put("/ingredients/{id}", libH.UpdateIngredient)
			r.Delete("/ingredients/{id}", libH.DeleteIngredient)

			r.Get("/meals", libH.ListMeals)
			r.Post("/meals", libH.CreateMeal)
			r.Put("/meals/{id}", libH.UpdateMeal)
			r.Delete("/meals/{id}", libH.DeleteMeal)
		})

		r.Route("/entries", func(r chi.Router) {
			r.Post("/", entryH.Create)
			r.Get("/", entryH.List)
			r.Delete("/{id}", entryH.Delete)
		})

		r.Get("/today", todayH.Dashboard)
		r.Get("/week", todayH.Week)

		r.Route("/community", func(r chi.Router) {
			r.Get("/leaderboard", commH.Leaderboard)
			r.Get("/feed", commH.Feed)
			r.Post("/checkins", commH.CreateCheckin)
			r.Post("/activities", commH.UpsertActivity)
			r.Get("/week", commH.Week)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", groupH.Create)
			r.Get("/", groupH.List)
			r.Post("/join", groupH.Join)

			r.Get("/active", groupH.GetActive)
			r.Put("/active", groupH.SetActive)
			r.Delete("/active", groupH.ClearActive)
		})
	})

	return r
}
