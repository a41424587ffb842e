package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"
	"github.com/Poscom2010/Fleetrack-sub000/internal/service"

	"github.com/gorilla/mux"
)

// FleetHandler exposes the fleet lifecycle facade as a JSON API for the
// web-facing layer. No auth or session concerns live here; the surrounding
// deployment terminates those before requests reach the engine.
type FleetHandler struct {
	fleet service.FleetService
}

func NewFleetHandler(fleet service.FleetService) *FleetHandler {
	return &FleetHandler{fleet: fleet}
}

func (h *FleetHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle domain.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&vehicle); err != nil {
		writeError(w, fmt.Errorf("malformed body: %w", domain.ErrInvalidInput))
		return
	}

	if err := h.fleet.AddVehicle(r.Context(), &vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *FleetHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicleId"]

	vehicle, err := h.fleet.GetVehicle(r.Context(), vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	companyID := mux.Vars(r)["companyId"]

	vehicles, err := h.fleet.ListVehicles(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *FleetHandler) UpdateMileage(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicleId"]

	var body struct {
		Mileage int64 `json:"mileage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, fmt.Errorf("malformed body: %w", domain.ErrInvalidInput))
		return
	}

	if err := h.fleet.UpdateMileage(r.Context(), vehicleID, body.Mileage); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *FleetHandler) GetServiceStatus(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicleId"]

	status, err := h.fleet.GetServiceStatus(r.Context(), vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *FleetHandler) CompleteService(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicleId"]

	var body struct {
		Mileage     int64              `json:"mileage"`
		ServiceType domain.ServiceType `json:"service_type"`
		CostCents   int64              `json:"cost_cents"`
		PerformedBy string             `json:"performed_by"`
		Date        string             `json:"date"`
		Notes       string             `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, fmt.Errorf("malformed body: %w", domain.ErrInvalidInput))
		return
	}

	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		writeError(w, fmt.Errorf("malformed date %q: %w", body.Date, domain.ErrInvalidInput))
		return
	}

	recordID, err := h.fleet.CompleteService(r.Context(), vehicleID, domain.ServiceDetails{
		Mileage:     body.Mileage,
		ServiceType: body.ServiceType,
		CostCents:   body.CostCents,
		PerformedBy: body.PerformedBy,
		Date:        date,
		Notes:       body.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"record_id": recordID})
}

func (h *FleetHandler) ServiceHistory(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicleId"]

	records, err := h.fleet.ServiceHistory(r.Context(), vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *FleetHandler) VehiclesDue(w http.ResponseWriter, r *http.Request) {
	companyID := mux.Vars(r)["companyId"]

	due, err := h.fleet.VehiclesDue(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, due)
}
