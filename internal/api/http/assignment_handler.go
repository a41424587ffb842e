package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Poscom2010/Fleetrack-sub000/internal/domain"
	"github.com/Poscom2010/Fleetrack-sub000/internal/service"

	"github.com/gorilla/mux"
)

// AssignmentHandler exposes the assignment coordinator's operations.
type AssignmentHandler struct {
	fleet service.FleetService
}

func NewAssignmentHandler(fleet service.FleetService) *AssignmentHandler {
	return &AssignmentHandler{fleet: fleet}
}

func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanyID  string `json:"company_id"`
		VehicleID  string `json:"vehicle_id"`
		DriverID   string `json:"driver_id"`
		AssignedBy string `json:"assigned_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, fmt.Errorf("malformed body: %w", domain.ErrInvalidInput))
		return
	}

	assignmentID, err := h.fleet.AssignVehicle(r.Context(), body.CompanyID, body.VehicleID, body.DriverID, body.AssignedBy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"assignment_id": assignmentID})
}

func (h *AssignmentHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	driverID := mux.Vars(r)["driverId"]

	if err := h.fleet.UnassignDriver(r.Context(), driverID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *AssignmentHandler) CurrentForDriver(w http.ResponseWriter, r *http.Request) {
	driverID := mux.Vars(r)["driverId"]

	assignment, err := h.fleet.CurrentAssignmentForDriver(r.Context(), driverID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) CurrentForVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["vehicleId"]

	assignment, err := h.fleet.CurrentAssignmentForVehicle(r.Context(), vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) History(w http.ResponseWriter, r *http.Request) {
	driverID := mux.Vars(r)["driverId"]

	assignments, err := h.fleet.AssignmentHistory(r.Context(), driverID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

func (h *AssignmentHandler) ActiveByCompany(w http.ResponseWriter, r *http.Request) {
	companyID := mux.Vars(r)["companyId"]

	assignments, err := h.fleet.ActiveAssignments(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

// RegisterRoutes wires the fleet API onto the router.
func RegisterRoutes(router *mux.Router, fleet service.FleetService) {
	fleetHandler := NewFleetHandler(fleet)
	assignmentHandler := NewAssignmentHandler(fleet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/vehicles", fleetHandler.AddVehicle).Methods("POST")
	api.HandleFunc("/vehicles/{vehicleId}", fleetHandler.GetVehicle).Methods("GET")
	api.HandleFunc("/vehicles/{vehicleId}/mileage", fleetHandler.UpdateMileage).Methods("PUT")
	api.HandleFunc("/vehicles/{vehicleId}/service-status", fleetHandler.GetServiceStatus).Methods("GET")
	api.HandleFunc("/vehicles/{vehicleId}/services", fleetHandler.CompleteService).Methods("POST")
	api.HandleFunc("/vehicles/{vehicleId}/services", fleetHandler.ServiceHistory).Methods("GET")
	api.HandleFunc("/vehicles/{vehicleId}/assignment", assignmentHandler.CurrentForVehicle).Methods("GET")

	api.HandleFunc("/companies/{companyId}/vehicles", fleetHandler.ListVehicles).Methods("GET")
	api.HandleFunc("/companies/{companyId}/vehicles-due", fleetHandler.VehiclesDue).Methods("GET")
	api.HandleFunc("/companies/{companyId}/assignments/active", assignmentHandler.ActiveByCompany).Methods("GET")

	api.HandleFunc("/assignments", assignmentHandler.Assign).Methods("POST")
	api.HandleFunc("/drivers/{driverId}/assignment", assignmentHandler.CurrentForDriver).Methods("GET")
	api.HandleFunc("/drivers/{driverId}/assignment", assignmentHandler.Unassign).Methods("DELETE")
	api.HandleFunc("/drivers/{driverId}/assignments", assignmentHandler.History).Methods("GET")
}
