package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"waterworks-backend/internal/domain"
	"waterworks-backend/internal/ports"
	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
)

// RecordHandler serves cross-consumer billing record listings and exports.
type RecordHandler struct {
	Records ports.BillingRecordStore
}

func (h RecordHandler) RegisterRoutes(r chi.Router) {
	r.Get("/records", h.list)
	r.Get("/records/export", h.export)
}

func (h RecordHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 200
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 2000 {
			limit = n
		}
	}
	items, err := h.Records.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, cr := range items {
		payload := recordPayload(cr.Record)
		payload["consumer"] = consumerPayload(cr.Consumer)
		resp = append(resp, payload)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h RecordHandler) export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}

	items, err := h.Records.ListRecent(r.Context(), 2000)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filenameSuffix := time.Now().Format("20060102_150405")

	switch format {
	case "csv":
		data, err := exportRecordsCSV(items)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"billing_records_%s.csv\"", filenameSuffix))
		_, _ = w.Write(data)
	case "xlsx", "excel":
		data, err := exportRecordsXLSX(items)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"billing_records_%s.xlsx\"", filenameSuffix))
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

var exportHeader = []string{
	"WSIN", "Consumer Name", "Location", "Service Type",
	"Billing Period", "Status", "Previous Reading", "Present Reading",
	"Water Consumption", "Water Charge", "Surcharge", "Overall Total",
	"Payment Status", "Processed By", "Date",
}

func exportRow(cr domain.ConsumerRecord) []string {
	return []string{
		cr.Consumer.WSIN,
		cr.Consumer.ConsumerName,
		cr.Consumer.Location,
		string(cr.Consumer.ServiceType),
		cr.Record.BillingPeriod,
		string(cr.Record.Status),
		cr.Record.PreviousReading,
		cr.Record.PresentReading,
		cr.Record.WaterConsumption,
		cr.Record.WaterCharge,
		cr.Record.Surcharge,
		cr.Record.OverallTotal,
		string(cr.Record.PaymentStatus),
		cr.Record.ProcessedBy,
		cr.Record.CreatedAt.Format("2006-01-02"),
	}
}

func exportRecordsCSV(items []domain.ConsumerRecord) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write(exportHeader)
	for _, cr := range items {
		_ = w.Write(exportRow(cr))
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportRecordsXLSX(items []domain.ConsumerRecord) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Billing Records"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for c, v := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, cr := range items {
		row := r + 2
		for c, v := range exportRow(cr) {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 10)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "D", 16)
	_ = f.SetColWidth(sheet, "E", "E", 16)
	_ = f.SetColWidth(sheet, "F", "N", 14)
	_ = f.SetColWidth(sheet, "O", "O", 12)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "O1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
