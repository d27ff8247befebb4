package web

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/NickelKnock/Axial-Motor-Design-Calculator/internal/debug"
	"github.com/NickelKnock/Axial-Motor-Design-Calculator/internal/motor"
)

// DesignRequest is the JSON body of POST /evaluate. Optional parameters
// are pointers so an omitted field keeps its "not supplied" meaning
// (auto turns, heuristic poles, no limit check). It doubles as the
// GET /defaults payload for form prefill.
type DesignRequest struct {
	Coils         int     `json:"coils"`
	InputVoltage  float64 `json:"input_voltage"`
	InputIsDCBus  bool    `json:"input_is_dc_bus"`
	OuterRadiusM  float64 `json:"outer_radius_m"`
	DesiredTorque float64 `json:"desired_torque_nm"`
	DualPlate     bool    `json:"dual_plate"`

	MechanicalRPM    *float64 `json:"mechanical_rpm,omitempty"`
	ElectricalFreqHz *float64 `json:"electrical_frequency_hz,omitempty"`

	Turns *float64 `json:"turns,omitempty"`
	Poles *int     `json:"poles,omitempty"`

	FluxDensityAvgT *float64 `json:"flux_density_avg_t,omitempty"`
	WindingFactor   *float64 `json:"winding_factor,omitempty"`
	ModulationIndex *float64 `json:"modulation_index,omitempty"`

	PhaseCurrentLimitA *float64 `json:"phase_current_limit_a,omitempty"`
	DCCurrentLimitA    *float64 `json:"dc_current_limit_a,omitempty"`
	ESCFreqMaxHz       *float64 `json:"esc_freq_max_hz,omitempty"`
}

// ToInputs converts the request into engine inputs, filling the
// documented defaults for absent physics parameters.
func (r DesignRequest) ToInputs() motor.DesignInputs {
	in := motor.DefaultInputs()
	in.Coils = r.Coils
	in.InputVoltage = r.InputVoltage
	in.InputIsDCBus = r.InputIsDCBus
	in.OuterRadius = r.OuterRadiusM
	in.DesiredTorque = r.DesiredTorque
	in.DualPlate = r.DualPlate

	in.MechanicalRPM = r.MechanicalRPM
	in.ElectricalFreqHz = r.ElectricalFreqHz
	in.Turns = r.Turns
	in.Poles = r.Poles

	if r.FluxDensityAvgT != nil {
		in.FluxDensityAvg = *r.FluxDensityAvgT
	}
	if r.WindingFactor != nil {
		in.WindingFactor = *r.WindingFactor
	}
	if r.ModulationIndex != nil {
		in.ModulationIndex = *r.ModulationIndex
	}

	in.PhaseCurrentLimit = r.PhaseCurrentLimitA
	in.DCCurrentLimit = r.DCCurrentLimitA
	in.ESCFreqMax = r.ESCFreqMaxHz
	return in
}

// EvaluateResponse is the JSON body returned by POST /evaluate. Order
// carries the display order of the Results keys so the page renders the
// mapping deterministically.
type EvaluateResponse struct {
	EvaluationID string            `json:"evaluation_id"`
	Results      map[string]string `json:"results"`
	Order        []string          `json:"order"`
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	Broadcaster *StatusBroadcaster
	Defaults    DesignRequest
	staticFS    fs.FS
}

// NewHandlers creates handlers with the given dependencies.
func NewHandlers(broadcaster *StatusBroadcaster, defaults DesignRequest, staticFS fs.FS) *Handlers {
	return &Handlers{
		Broadcaster: broadcaster,
		Defaults:    defaults,
		staticFS:    staticFS,
	}
}

// HandleDefaults returns the form default values (from the loaded
// design preset) as JSON.
func (h *Handlers) HandleDefaults(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Defaults)
}

// ServeIndex serves the main HTML page (root path only).
func (h *Handlers) ServeIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.staticFS, "index.html")
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// HandleEvaluate handles POST /evaluate: one design point in, the full
// report mapping out. Construction failures (bad topology, missing
// speed) come back as 422 so the form can show them; the engine never
// fails after construction, so a 200 always carries a complete report.
func (h *Handlers) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req DesignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	eng, err := motor.New(req.ToInputs())
	if err != nil {
		h.Broadcaster.Broadcast("error", "Rejected design: "+err.Error())
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	id := uuid.NewString()
	debug.Evaluation(id, eng.Coils(), req.DesiredTorque)
	resp := EvaluateResponse{
		EvaluationID: id,
		Results:      eng.Report(),
		Order:        motor.ReportOrder(),
	}

	h.Broadcaster.BroadcastEvaluation(id,
		fmt.Sprintf("%d coils, %d poles, %.1f N-m at %.0f RPM, %s A required",
			eng.Coils(), eng.Poles(), req.DesiredTorque, eng.MechanicalRPM(),
			resp.Results["Required Current (A)"]))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleStatusStream handles GET /status/stream for SSE.
func (h *Handlers) HandleStatusStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // nginx

	ch, unsub := h.Broadcaster.Subscribe()
	defer unsub()

	// Send initial comment to establish connection
	w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	// Heartbeat while idle
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			w.Write([]byte("data: " + msg + "\n\n"))
			flusher.Flush()

		case <-ticker.C:
			w.Write([]byte(": heartbeat\n\n"))
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
