package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"srimurugan/pkg/calendar"
	"srimurugan/pkg/config"
	apperrors "srimurugan/pkg/errors"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	return config.NormalizePaginationLimit(limit), config.NormalizeOffset(offset), nil
}

// DecodeJSON decodes the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperrors.PayloadTooLarge()
		case errors.Is(err, io.EOF):
			return apperrors.InvalidInput("Request body is empty")
		case errors.Is(err, calendar.ErrInvalidDate):
			return apperrors.InvalidInput(err.Error())
		default:
			return apperrors.InvalidInput("Invalid JSON body: " + err.Error())
		}
	}
	return nil
}

// QueryInt reads an integer query parameter, returning fallback when absent.
func QueryInt(r *http.Request, name string, fallback int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.InvalidInput("invalid " + name + " parameter: " + s)
	}
	return v, nil
}

// ParseDate reads a YYYY-MM-DD value from a path or query parameter.
func ParseDate(name, value string) (calendar.Date, error) {
	d, err := calendar.Parse(value)
	if err != nil {
		return calendar.Date{}, apperrors.InvalidInput("invalid " + name + " parameter: " + value + " (expected YYYY-MM-DD)")
	}
	return d, nil
}
