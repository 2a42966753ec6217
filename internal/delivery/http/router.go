package http

import (
	"context"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"proeventos/internal/delivery/http/controllers"
	"proeventos/internal/delivery/http/middleware"
	"proeventos/internal/domain"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	db Pinger,
	verifier domain.TokenVerifier,
	accountController *controllers.AccountController,
	eventController *controllers.EventController,
	lotController *controllers.LotController,
	speakerController *controllers.SpeakerController,
	socialLinkController *controllers.SocialLinkController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Account
	mux.HandleFunc("POST /api/Account/Register", accountController.Register)
	mux.HandleFunc("POST /api/Account/Login", accountController.Login)
	mux.HandleFunc("GET /api/Account/GetUser", auth(accountController.GetUser))
	mux.HandleFunc("PUT /api/Account/UpdateUser", auth(accountController.UpdateUser))
	mux.HandleFunc("POST /api/Account/upload-image", auth(accountController.UploadProfileImage))

	// Eventos
	mux.HandleFunc("GET /api/Eventos", auth(eventController.List))
	mux.HandleFunc("POST /api/Eventos", auth(eventController.Create))
	mux.HandleFunc("GET /api/Eventos/{eventID}", auth(eventController.GetByID))
	mux.HandleFunc("PUT /api/Eventos/{eventID}", auth(eventController.Update))
	mux.HandleFunc("DELETE /api/Eventos/{eventID}", auth(eventController.Delete))
	mux.HandleFunc("POST /api/Eventos/upload-image/{eventID}", auth(eventController.UploadImage))

	// Lotes. The upstream API exposes these without authentication and
	// without ownership checks; clients depend on that shape.
	mux.HandleFunc("GET /api/Lotes/{eventID}", lotController.ListByEvent)
	mux.HandleFunc("PUT /api/Lotes/{eventID}", lotController.SaveBatch)
	mux.HandleFunc("DELETE /api/Lotes/{eventID}/{lotID}", lotController.Delete)

	// Palestrantes
	mux.HandleFunc("GET /api/Palestrantes/all", auth(speakerController.ListAll))
	mux.HandleFunc("GET /api/Palestrantes", auth(speakerController.GetMine))
	mux.HandleFunc("POST /api/Palestrantes", auth(speakerController.CreateMine))
	mux.HandleFunc("PUT /api/Palestrantes", auth(speakerController.UpdateMine))

	// RedesSociais
	mux.HandleFunc("GET /api/RedesSociais/evento/{eventID}", auth(socialLinkController.ListByEvent))
	mux.HandleFunc("PUT /api/RedesSociais/evento/{eventID}", auth(socialLinkController.SaveByEvent))
	mux.HandleFunc("DELETE /api/RedesSociais/evento/{eventID}/{linkID}", auth(socialLinkController.DeleteByEvent))
	mux.HandleFunc("GET /api/RedesSociais/palestrante", auth(socialLinkController.ListBySpeaker))
	mux.HandleFunc("PUT /api/RedesSociais/palestrante", auth(socialLinkController.SaveBySpeaker))
	mux.HandleFunc("DELETE /api/RedesSociais/palestrante/{linkID}", auth(socialLinkController.DeleteBySpeaker))

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
