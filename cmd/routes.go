package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.jwtMiddleware(next, role)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.requireRole(""))
	clientMiddleware := standardMiddleware.Append(app.requireRole("client"))
	cleanerMiddleware := standardMiddleware.Append(app.requireRole("cleaner"))
	adminMiddleware := standardMiddleware.Append(app.requireRole("admin"))

	mux := pat.New()

	// Auth
	mux.Post("/auth/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/auth/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))

	// Users
	mux.Get("/users/me", authMiddleware.ThenFunc(app.userHandler.Me))
	mux.Get("/users", adminMiddleware.ThenFunc(app.userHandler.ListUsers))
	mux.Get("/users/:id", authMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Put("/users/:id/name", authMiddleware.ThenFunc(app.userHandler.UpdateName))
	mux.Post("/users/device_tokens", authMiddleware.ThenFunc(app.userHandler.RegisterDeviceToken))

	// Cleaner profiles
	mux.Get("/cleaners/:user_id/profile", authMiddleware.ThenFunc(app.profileHandler.GetProfile))
	mux.Put("/cleaners/profile", cleanerMiddleware.ThenFunc(app.profileHandler.UpdateProfile))
	mux.Get("/users/:user_id/reviews", authMiddleware.ThenFunc(app.reviewHandler.ListByReviewee))
	mux.Get("/users/:user_id/rating", authMiddleware.ThenFunc(app.reviewHandler.GetUserRating))

	// Jobs
	mux.Post("/jobs", clientMiddleware.ThenFunc(app.jobHandler.CreateJob))
	mux.Get("/jobs/open", authMiddleware.ThenFunc(app.jobHandler.ListOpenJobs))
	mux.Get("/jobs/client/:client_id", authMiddleware.ThenFunc(app.jobHandler.ListJobsByClient))
	mux.Get("/jobs/cleaner/:cleaner_id", authMiddleware.ThenFunc(app.jobHandler.ListJobsByCleaner))
	mux.Get("/jobs/status/:status", adminMiddleware.ThenFunc(app.jobHandler.ListJobsByStatus))
	mux.Get("/jobs/counts", adminMiddleware.ThenFunc(app.jobHandler.CountJobsByStatus))
	mux.Get("/jobs/:id", authMiddleware.ThenFunc(app.jobHandler.GetJob))
	mux.Put("/jobs/:id/status", authMiddleware.ThenFunc(app.jobHandler.UpdateStatus))

	// Applications
	mux.Post("/jobs/:job_id/applications", cleanerMiddleware.ThenFunc(app.applicationHandler.Apply))
	mux.Get("/jobs/:job_id/applications", authMiddleware.ThenFunc(app.applicationHandler.ListByJob))
	mux.Post("/applications/:id/accept", clientMiddleware.ThenFunc(app.applicationHandler.Accept))
	mux.Del("/applications/:id", cleanerMiddleware.ThenFunc(app.applicationHandler.Withdraw))
	mux.Get("/applications/cleaner/:cleaner_id", authMiddleware.ThenFunc(app.applicationHandler.ListByCleaner))

	// Photos
	mux.Post("/photos/presign", authMiddleware.ThenFunc(app.photoHandler.Presign))
	mux.Post("/photos", authMiddleware.ThenFunc(app.photoHandler.SavePhoto))
	mux.Get("/jobs/:job_id/photos", authMiddleware.ThenFunc(app.photoHandler.ListByJob))

	// Reviews
	mux.Post("/reviews", authMiddleware.ThenFunc(app.reviewHandler.CreateReview))

	// Favorites
	mux.Post("/favorites/:cleaner_id", clientMiddleware.ThenFunc(app.favoriteHandler.AddFavorite))
	mux.Del("/favorites/:cleaner_id", clientMiddleware.ThenFunc(app.favoriteHandler.RemoveFavorite))
	mux.Get("/favorites/check/:cleaner_id", clientMiddleware.ThenFunc(app.favoriteHandler.IsFavorite))
	mux.Get("/favorites", clientMiddleware.ThenFunc(app.favoriteHandler.ListFavorites))

	// Disputes
	mux.Post("/jobs/:job_id/dispute", clientMiddleware.ThenFunc(app.disputeHandler.CreateDispute))
	mux.Post("/jobs/:job_id/dispute/resolve", adminMiddleware.ThenFunc(app.disputeHandler.ResolveDispute))

	// Payments
	mux.Post("/payments/connect", cleanerMiddleware.ThenFunc(app.stripeHandler.ConnectAccount))
	mux.Get("/payments/account_status", cleanerMiddleware.ThenFunc(app.stripeHandler.AccountStatus))
	mux.Post("/jobs/:job_id/checkout", clientMiddleware.ThenFunc(app.stripeHandler.CreateCheckout))
	mux.Post("/webhooks/stripe", alice.New(app.recoverPanic, app.logRequest).ThenFunc(app.stripeHandler.Webhook))

	// Live updates
	mux.Get("/ws", authMiddleware.ThenFunc(app.serveWS))

	return mux
}

func (app *application) serveWS(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("user_id").(int)
	if userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	app.hub.ServeWS(w, r, userID)
}
