package http

import (
	"net/http"

	"juntaai-backend/internal/security"

	"github.com/gorilla/mux"
)

// NewRouter wires every route. Storage routes stay outside the auth
// middleware: uploads carry their own signature and object reads are public
// by contract, resolvable by any client later.
func NewRouter(
	validator security.TokenValidator,
	groupHandler *GroupHandler,
	paymentHandler *PaymentHandler,
	expenseHandler *ExpenseHandler,
	profileHandler *ProfileHandler,
	streamHandler *StreamHandler,
	storageHandler *StorageHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(validator))

	api.HandleFunc("/groups", groupHandler.CreateGroup).Methods(http.MethodPost)
	api.HandleFunc("/groups", groupHandler.ListGroups).Methods(http.MethodGet)
	api.HandleFunc("/groups/mine", groupHandler.ListMyGroups).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id}", groupHandler.GetGroup).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id}/summary", groupHandler.GetSummary).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id}/join", groupHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id}/members/{userID}/goal", groupHandler.SetIndividualGoal).Methods(http.MethodPut)

	api.HandleFunc("/groups/{id}/payments", paymentHandler.Report).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id}/payments/{paymentID}/decision", paymentHandler.Decide).Methods(http.MethodPost)

	api.HandleFunc("/groups/{id}/expenses/presign", expenseHandler.PresignUpload).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id}/expenses", expenseHandler.Add).Methods(http.MethodPost)

	api.HandleFunc("/groups/{id}/stream", streamHandler.StreamGroup).Methods(http.MethodGet)

	api.HandleFunc("/profile", profileHandler.GetMe).Methods(http.MethodGet)
	api.HandleFunc("/profile", profileHandler.UpdateMe).Methods(http.MethodPut)

	r.HandleFunc("/storage/upload", storageHandler.HandleUpload).Methods(http.MethodPut)
	r.HandleFunc("/storage/object/{key:.+}", storageHandler.HandleDownload).Methods(http.MethodGet)

	return r
}
