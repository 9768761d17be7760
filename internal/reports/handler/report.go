package handler

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"srimurugan/internal/reports/service"
	httputil "srimurugan/pkg/http"
	"srimurugan/pkg/logger"
)

type ReportHandler struct {
	service service.ReportService
	log     *logger.Logger
}

func NewReportHandler(service service.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log,
	}
}

func (h *ReportHandler) BusReport(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	report, err := h.service.BusReport(r.Context(), ps.ByName("bus"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BusReport", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, report); err != nil {
		h.log.Error("failed to write success response", "handler", "BusReport", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReportHandler) BusReportPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	body, report, err := h.service.BusReportPDF(r.Context(), ps.ByName("bus"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BusReportPDF", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	filename := fmt.Sprintf("%s-report-%s.pdf", report.Bus.Name, report.GeneratedOn)
	if err := httputil.WriteFile(w, "application/pdf", filename, body); err != nil {
		h.log.Error("failed to write file response", "handler", "BusReportPDF", "operation", "WriteFile", "error", err)
	}
}

func (h *ReportHandler) FleetReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	report, err := h.service.FleetReport(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "FleetReport", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, report); err != nil {
		h.log.Error("failed to write success response", "handler", "FleetReport", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReportHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/buses/:bus/report", h.BusReport)
	router.GET("/api/v1/buses/:bus/report.pdf", h.BusReportPDF)
	router.GET("/api/v1/reports", h.FleetReport)
}
