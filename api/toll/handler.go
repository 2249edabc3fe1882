package toll

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kilianp07/tollfee/core/exemption"
	"github.com/kilianp07/tollfee/core/holiday"
	"github.com/kilianp07/tollfee/core/model"
	coretoll "github.com/kilianp07/tollfee/core/toll"
)

// Assessor computes daily fee assessments.
type Assessor interface {
	Assess(v model.Vehicle, passes []time.Time) (coretoll.Assessment, error)
}

// ExemptionChecker explains date and vehicle exemptions.
type ExemptionChecker interface {
	DateReason(ts time.Time) exemption.Reason
	IsTollFreeVehicle(v model.Vehicle) bool
}

// HolidayLister lists the holidays of a year.
type HolidayLister interface {
	Named(year int) []holiday.Holiday
	DaysBeforeHolidays(year int) []time.Time
}

type feeRequest struct {
	Vehicle model.Vehicle `json:"vehicle"`
	Passes  []string      `json:"passes"`
}

type windowResponse struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Passes int    `json:"passes"`
	Fee    int    `json:"fee"`
}

type feeResponse struct {
	ID        string           `json:"id,omitempty"`
	Vehicle   string           `json:"vehicle"`
	Date      string           `json:"date"`
	Total     int              `json:"total"`
	Uncapped  int              `json:"uncapped"`
	Capped    bool             `json:"capped"`
	Exemption string           `json:"exemption,omitempty"`
	Windows   []windowResponse `json:"windows"`
}

type exemptionResponse struct {
	Date     string `json:"date,omitempty"`
	Vehicle  string `json:"vehicle,omitempty"`
	TollFree bool   `json:"toll_free"`
	Reason   string `json:"reason,omitempty"`
}

type holidayEntry struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type holidaysResponse struct {
	Year       int            `json:"year"`
	Holidays   []holidayEntry `json:"holidays"`
	DaysBefore []string       `json:"days_before"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewFeeHandler returns an HTTP handler computing the daily fee via POST /api/toll/fee.
// Requests must include an Authorization header with "Bearer <token>" when token is non-empty.
func NewFeeHandler(calc Assessor, token string) http.Handler {
	return authorize(token, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req feeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if req.Vehicle == model.VehicleUnknown {
			writeError(w, http.StatusBadRequest, errors.New("vehicle is required"))
			return
		}
		passes := make([]time.Time, 0, len(req.Passes))
		for _, s := range req.Passes {
			ts, err := model.ParseTimestamp(s)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			passes = append(passes, ts)
		}
		a, err := calc.Assess(req.Vehicle, passes)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, toFeeResponse(a))
	}))
}

// NewExemptionHandler returns an HTTP handler reporting exemptions via
// GET /api/toll/exemption?date=YYYY-MM-DD or ?vehicle=name.
func NewExemptionHandler(policy ExemptionChecker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()
		switch {
		case q.Get("date") != "":
			d, err := model.ParseDate(q.Get("date"))
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			reason := policy.DateReason(d)
			writeJSON(w, http.StatusOK, exemptionResponse{
				Date:     d.Format(time.DateOnly),
				TollFree: reason != exemption.ReasonNone,
				Reason:   string(reason),
			})
		case q.Get("vehicle") != "":
			v, err := model.ParseVehicle(q.Get("vehicle"))
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			resp := exemptionResponse{Vehicle: v.String(), TollFree: policy.IsTollFreeVehicle(v)}
			if resp.TollFree {
				resp.Reason = string(exemption.ReasonVehicle)
			}
			writeJSON(w, http.StatusOK, resp)
		default:
			writeError(w, http.StatusBadRequest, errors.New("date or vehicle query parameter required"))
		}
	})
}

// NewHolidaysHandler returns an HTTP handler listing holidays via GET /api/toll/holidays?year=YYYY.
// The current year is used when year is omitted.
func NewHolidaysHandler(cal HolidayLister) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		year := time.Now().Year()
		if s := r.URL.Query().Get("year"); s != "" {
			y, err := strconv.Atoi(s)
			if err != nil || !holiday.ValidYear(y) {
				writeError(w, http.StatusBadRequest,
					fmt.Errorf("year must be between %d and %d", holiday.MinYear, holiday.MaxYear))
				return
			}
			year = y
		}
		resp := holidaysResponse{Year: year}
		for _, h := range cal.Named(year) {
			resp.Holidays = append(resp.Holidays, holidayEntry{Date: h.Date.Format(time.DateOnly), Name: h.Name})
		}
		for _, d := range cal.DaysBeforeHolidays(year) {
			resp.DaysBefore = append(resp.DaysBefore, d.Format(time.DateOnly))
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func toFeeResponse(a coretoll.Assessment) feeResponse {
	resp := feeResponse{
		ID:        a.ID,
		Vehicle:   a.Vehicle.String(),
		Date:      a.Date.Format(time.DateOnly),
		Total:     a.Total,
		Uncapped:  a.Uncapped,
		Capped:    a.Capped(),
		Exemption: string(a.Exemption),
		Windows:   make([]windowResponse, 0, len(a.Windows)),
	}
	for _, win := range a.Windows {
		resp.Windows = append(resp.Windows, windowResponse{
			Start:  win.Start.Format("15:04"),
			End:    win.End.Format("15:04"),
			Passes: len(win.Passes),
			Fee:    win.Fee,
		})
	}
	return resp
}

func statusFor(err error) int {
	if errors.Is(err, coretoll.ErrInvalidArgument) || errors.Is(err, model.ErrUnknownVehicle) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func authorize(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
