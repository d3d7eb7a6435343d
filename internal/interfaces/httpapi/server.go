package httpapi

import (
	"net/http"

	"github.com/riskibarqy/futsal-ledger/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	verifier CapabilityVerifier,
	logger *logging.Logger,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPublicRoutes(mux, handler)
	registerAdminRoutes(mux, handler, verifier)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(mux))))
}

// recoverPanic logs through the request logger RequestLogging attached.
func recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logging.FromContext(ctx).ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/schedule", handler.ListSchedule)
	mux.HandleFunc("POST /v1/admin/session", handler.Login)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier CapabilityVerifier) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAdmin(verifier, h)
	}

	mux.Handle("DELETE /v1/admin/session", admin(handler.Logout))
	mux.Handle("POST /v1/admin/players", admin(handler.AddPlayer))
	mux.Handle("DELETE /v1/admin/players/{playerID}", admin(handler.DeletePlayer))
	mux.Handle("POST /v1/admin/players/{playerID}/payments", admin(handler.RecordPayment))
	mux.Handle("POST /v1/admin/players/{playerID}/debts", admin(handler.AddDebt))
	mux.Handle("GET /v1/admin/attendance", admin(handler.GetAttendance))
	mux.Handle("PUT /v1/admin/attendance/{date}", admin(handler.SetAttendance))
}
