package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alovak/cardvalidation/gateway/models"
	"github.com/go-chi/chi/v5"
)

// ValidatePath is the route of the card validation endpoint.
const ValidatePath = "/CardValidation/card/credit/validate"

// API is a HTTP API for the card validation service
type API struct {
	service *Service
}

func NewAPI(service *Service) *API {
	return &API{
		service: service,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/CardValidation", func(r chi.Router) {
		r.Post("/card/credit/validate", a.validateCard)
	})
}

func (a *API) validateCard(w http.ResponseWriter, r *http.Request) {
	details := models.CardDetails{}
	err := json.NewDecoder(r.Body).Decode(&details)
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			fe := &models.FieldErrors{}
			fe.Add(typeErr.Field, models.WrongMessage(typeErr.Field))
			writeJSON(w, http.StatusBadRequest, fe.Map())
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	network, err := a.service.Validate(r.Context(), details)
	if err != nil {
		if fe := models.AsFieldErrors(err); fe != nil {
			writeJSON(w, http.StatusBadRequest, fe.Map())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, network)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
