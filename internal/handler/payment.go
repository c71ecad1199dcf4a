package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"waterworks-backend/internal/billing"
	"waterworks-backend/internal/domain"
	"waterworks-backend/internal/server/authctx"
	"waterworks-backend/internal/service"
	"waterworks-backend/internal/tariff"
	"github.com/go-chi/chi/v5"
)

// PaymentHandler serves the interactive billing form: charge preview and
// final submission.
type PaymentHandler struct {
	Service service.PaymentService
}

func (h PaymentHandler) RegisterRoutes(r chi.Router) {
	r.Post("/payments/preview", h.preview)
	r.Post("/payments", h.submit)
}

type billingRequest struct {
	ConsumerType     string `json:"consumerType"`
	ConsumerID       int64  `json:"consumerId"`
	ConsumerName     string `json:"consumerName"`
	Location         string `json:"location"`
	WSIN             string `json:"wsin"`
	ServiceType      string `json:"serviceType"`
	FeeType          string `json:"feeType"`
	Month            string `json:"month"`
	Year             string `json:"year"`
	Status           string `json:"status"`
	PreviousReading  string `json:"previousReading"`
	PresentReading   string `json:"presentReading"`
	IncludeSurcharge bool   `json:"includeSurcharge"`
}

func (req billingRequest) toInput() service.SubmitInput {
	return service.SubmitInput{
		ConsumerType:     domain.ConsumerType(req.ConsumerType),
		ConsumerID:       req.ConsumerID,
		ConsumerName:     req.ConsumerName,
		Location:         req.Location,
		WSIN:             req.WSIN,
		ServiceType:      domain.ServiceType(req.ServiceType),
		FeeSchedule:      domain.FeeSchedule(req.FeeType),
		Month:            req.Month,
		Year:             req.Year,
		Status:           domain.ReadingStatus(req.Status),
		PreviousReading:  req.PreviousReading,
		PresentReading:   req.PresentReading,
		IncludeSurcharge: req.IncludeSurcharge,
	}
}

func (h PaymentHandler) preview(w http.ResponseWriter, r *http.Request) {
	var req billingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	p, err := h.Service.Preview(req.toInput())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"waterConsumption": p.WaterConsumption,
		"waterCharge":      p.WaterCharge,
		"surcharge":        p.Surcharge,
		"overallTotal":     p.OverallTotal,
	})
}

func (h PaymentHandler) submit(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req billingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	res, err := h.Service.Submit(r.Context(), req.toInput(), user.Actor())
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrIncompleteInput),
			errors.Is(err, tariff.ErrInvalidReading),
			errors.Is(err, service.ErrConsumerNotSelected):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	payload := recordPayload(res.Record)
	payload["consumer"] = consumerPayload(res.Consumer)
	writeJSON(w, http.StatusCreated, payload)
}
