package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"srimurugan/internal/calendar/service"
	httputil "srimurugan/pkg/http"
	"srimurugan/pkg/logger"
)

type CalendarHandler struct {
	service service.CalendarService
	log     *logger.Logger
}

func NewCalendarHandler(service service.CalendarService, log *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		service: service,
		log:     log,
	}
}

func (h *CalendarHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

// Month handles ?year=&month=, defaulting to the current month.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	today := h.service.Today()

	year, err := httputil.QueryInt(r, "year", today.Year)
	if err != nil {
		h.writeError(w, "Month", err)
		return
	}
	month, err := httputil.QueryInt(r, "month", int(today.Month))
	if err != nil {
		h.writeError(w, "Month", err)
		return
	}

	view, err := h.service.MonthView(r.Context(), ps.ByName("bus"), year, time.Month(month))
	if err != nil {
		h.writeError(w, "Month", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Month", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CalendarHandler) Day(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date, err := httputil.ParseDate("date", ps.ByName("date"))
	if err != nil {
		h.writeError(w, "Day", err)
		return
	}

	view, err := h.service.Day(r.Context(), ps.ByName("bus"), date)
	if err != nil {
		h.writeError(w, "Day", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Day", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CalendarHandler) Solar(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date, err := httputil.ParseDate("date", ps.ByName("date"))
	if err != nil {
		h.writeError(w, "Solar", err)
		return
	}

	if err := httputil.WriteSuccess(w, h.service.Solar(date)); err != nil {
		h.log.Error("failed to write success response", "handler", "Solar", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CalendarHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/buses/:bus/calendar", h.Month)
	router.GET("/api/v1/buses/:bus/days/:date", h.Day)
	router.GET("/api/v1/solar/:date", h.Solar)
}
