package handler

import (
	"errors"
	"net/http"
	"strconv"

	"waterworks-backend/internal/domain"
	"waterworks-backend/internal/ports"
	"waterworks-backend/internal/repository"
	"waterworks-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type ConsumerHandler struct {
	Service service.ConsumerService
	Records ports.BillingRecordStore
}

func (h ConsumerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/consumers", h.list)
	r.Get("/consumers/next-wsin", h.nextWSIN)
	r.Get("/consumers/{id}", h.get)
	r.Get("/consumers/{id}/records", h.records)
}

// list supports optional name and location filters for the consumer search
// screen. Name matches as a case-insensitive substring, location exactly.
func (h ConsumerHandler) list(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	location := r.URL.Query().Get("location")

	items, err := h.Service.Find(r.Context(), name, location)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, c := range items {
		resp = append(resp, consumerPayload(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// nextWSIN computes the next sequential service number for a location.
func (h ConsumerHandler) nextWSIN(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"wsin": h.Service.NextWSIN(r.Context(), location, nil),
	})
}

func (h ConsumerHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	c, err := h.Service.Consumers.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "consumer not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, consumerPayload(*c))
}

func (h ConsumerHandler) records(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	items, err := h.Records.ListByConsumer(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, rec := range items {
		resp = append(resp, recordPayload(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

func consumerPayload(c domain.Consumer) map[string]any {
	return map[string]any{
		"id":            c.ID,
		"wsin":          c.WSIN,
		"consumerName":  c.ConsumerName,
		"location":      c.Location,
		"serviceType":   string(c.ServiceType),
		"consumerType":  string(c.ConsumerType),
		"createdAt":     c.CreatedAt,
		"createdByName": c.CreatedByName,
	}
}

func recordPayload(rec domain.BillingRecord) map[string]any {
	return map[string]any{
		"id":               rec.ID,
		"consumerId":       rec.ConsumerID,
		"year":             rec.Year,
		"month":            rec.Month,
		"billingPeriod":    rec.BillingPeriod,
		"status":           string(rec.Status),
		"previousReading":  rec.PreviousReading,
		"presentReading":   rec.PresentReading,
		"waterConsumption": rec.WaterConsumption,
		"waterCharge":      rec.WaterCharge,
		"surcharge":        rec.Surcharge,
		"overallTotal":     rec.OverallTotal,
		"includeSurcharge": rec.IncludeSurcharge,
		"feeType":          string(rec.CommercialFeeType),
		"paymentStatus":    string(rec.PaymentStatus),
		"isDefect":         rec.IsDefect,
		"processedBy":      rec.ProcessedBy,
		"createdAt":        rec.CreatedAt,
	}
}
