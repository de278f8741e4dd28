package web

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/velotools/gearrange-cli/internal/apperr"
	"github.com/velotools/gearrange-cli/internal/drivetrain"
	"github.com/velotools/gearrange-cli/internal/export"
	"github.com/velotools/gearrange-cli/internal/preconfig"
	"github.com/velotools/gearrange-cli/internal/ui"
)

// formValues keeps the last submitted form input so a failed submission
// re-renders with the user's values instead of wiping them.
type formValues struct {
	Name      string
	Chainring string
	Preset    string
	Cassette  string
	Wheel     string
	Offset    string
	Cadence   string
}

func defaultFormValues() formValues {
	return formValues{
		Chainring: "40",
		Preset:    preconfig.Custom,
		Cassette:  joinCogs(preconfig.DefaultCustom()),
		Wheel:     "700",
		Offset:    fmt.Sprintf("%g", drivetrain.DefaultTyreOffset),
		Cadence:   "85,95",
	}
}

type configView struct {
	Name    string
	Meta    string
	PlotSVG template.HTML
}

type indexData struct {
	Error   string
	Presets []string
	Form    formValues
	Configs []configView
	HasData bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, http.StatusOK, defaultFormValues(), "")
}

func (s *Server) renderIndex(w http.ResponseWriter, status int, form formValues, errMsg string) {
	data := indexData{
		Error:   errMsg,
		Presets: preconfig.Names(),
		Form:    form,
		HasData: s.registry.Len() > 0,
	}
	for _, e := range s.registry.List() {
		d := e.Drivetrain
		data.Configs = append(data.Configs, configView{
			Name: e.Name,
			Meta: fmt.Sprintf("chainring [%s] · cassette [%s] · wheel %.0f mm effective · cadence %.0f‒%.0f rpm",
				d.Chainring().String(), d.Cassette().String(),
				d.Wheel().DiameterMM(), e.Cadence.Lower(), e.Cadence.Upper()),
			PlotSVG: RenderSVGPlot(e.Speed()),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.Execute(w, data); err != nil {
		s.log.Logf("", "render index: %v", err)
	}
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderIndex(w, http.StatusBadRequest, defaultFormValues(), "invalid form submission")
		return
	}

	form := formValues{
		Name:      strings.TrimSpace(r.PostFormValue("name")),
		Chainring: r.PostFormValue("chainring"),
		Preset:    r.PostFormValue("preset"),
		Cassette:  r.PostFormValue("cassette"),
		Wheel:     r.PostFormValue("wheel"),
		Offset:    r.PostFormValue("tyre_offset"),
		Cadence:   r.PostFormValue("cadence"),
	}

	if err := s.addFromForm(form); err != nil {
		status := http.StatusInternalServerError
		if apperr.IsInvalidInput(err) {
			status = http.StatusBadRequest
		}
		s.renderIndex(w, status, form, err.Error())
		return
	}

	s.log.Logf(form.Name, "configuration added via web form")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) addFromForm(form formValues) error {
	if form.Name == "" {
		return apperr.Invalid("configuration name must not be empty")
	}

	chainring, err := ui.ParseCogs(form.Chainring)
	if err != nil {
		return err
	}

	cassette, ok := preconfig.Lookup(form.Preset)
	if !ok {
		if cassette, err = ui.ParseCogs(form.Cassette); err != nil {
			return err
		}
	}

	wheel, err := ui.ParseMillimeters(form.Wheel)
	if err != nil {
		return err
	}
	offset, err := ui.ParseMillimeters(form.Offset)
	if err != nil {
		return err
	}
	rpm, err := ui.ParseCadence(form.Cadence)
	if err != nil {
		return err
	}

	d, err := drivetrain.FromNumbers(chainring, cassette, wheel, offset)
	if err != nil {
		return err
	}
	cadence, err := drivetrain.NewCadence(rpm...)
	if err != nil {
		return err
	}

	_, err = s.registry.Add(form.Name, d, cadence)
	return err
}

func (s *Server) handleRemoveForm(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if s.registry.Remove(name) {
		s.log.Logf(name, "configuration removed via web form")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="gear_range.csv"`)
	if err := export.WriteCSV(w, s.registry.Tables()); err != nil {
		s.log.Logf("", "csv download: %v", err)
	}
}

// configPayload is the JSON shape for creating a configuration.
type configPayload struct {
	Name            string   `json:"name"`
	Chainring       []int    `json:"chainring"`
	Cassette        []int    `json:"cassette"`
	WheelDiameterMM float64  `json:"wheel_diameter_mm"`
	TyreOffsetMM    *float64 `json:"tyre_offset_mm,omitempty"`
	CadenceRPM      []int    `json:"cadence_rpm"`
}

// configSummary is the JSON shape returned for a stored configuration.
type configSummary struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Chainring       []int   `json:"chainring"`
	Cassette        []int   `json:"cassette"`
	WheelDiameterMM float64 `json:"wheel_diameter_mm"`
	TyreOffsetMM    float64 `json:"tyre_offset_mm"`
	CadenceRPM      []int   `json:"cadence_rpm"`
}

type bandJSON struct {
	Band     drivetrain.BandLabel `json:"band"`
	RPM      float64              `json:"rpm"`
	SpeedKMH float64              `json:"speed_kmh"`
}

type speedRowJSON struct {
	ChainCog    int        `json:"chain_cog"`
	CassetteCog int        `json:"cassette_cog"`
	Ratio       float64    `json:"ratio"`
	UnfoldingM  float64    `json:"unfolding_m"`
	Bands       []bandJSON `json:"bands"`
}

type speedTableJSON struct {
	Configuration  string         `json:"configuration"`
	TyreDiameterMM float64        `json:"tyre_diameter_mm"`
	Rows           []speedRowJSON `json:"rows"`
}

func (s *Server) handleListJSON(w http.ResponseWriter, r *http.Request) {
	entries := s.registry.List()
	out := make([]configSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, summarize(e.ID, e.Name, e.Drivetrain, e.Cadence))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddJSON(w http.ResponseWriter, r *http.Request) {
	var payload configPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}

	offset := drivetrain.DefaultTyreOffset
	if payload.TyreOffsetMM != nil {
		offset = *payload.TyreOffsetMM
	}

	d, err := drivetrain.FromNumbers(payload.Chainring, payload.Cassette, payload.WheelDiameterMM, offset)
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	cadence, err := drivetrain.NewCadence(payload.CadenceRPM...)
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}

	entry, err := s.registry.Add(strings.TrimSpace(payload.Name), d, cadence)
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}

	s.log.Logf(entry.Name, "configuration added via API")
	writeJSON(w, http.StatusCreated, summarize(entry.ID, entry.Name, entry.Drivetrain, entry.Cadence))
}

func (s *Server) handleRemoveJSON(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !s.registry.Remove(name) {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("no configuration named %q", name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSpeedJSON(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	entry, ok := s.registry.Get(name)
	if !ok {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("no configuration named %q", name))
		return
	}

	rows := entry.Speed()
	table := speedTableJSON{
		Configuration: entry.Name,
		Rows:          make([]speedRowJSON, 0, len(rows)),
	}
	for _, row := range rows {
		table.TyreDiameterMM = row.TyreDiameterMM
		bands := make([]bandJSON, 0, len(row.Bands))
		for _, b := range row.Bands {
			bands = append(bands, bandJSON{Band: b.Label, RPM: b.RPM, SpeedKMH: b.SpeedKMH})
		}
		table.Rows = append(table.Rows, speedRowJSON{
			ChainCog:    row.ChainCog,
			CassetteCog: row.CassetteCog,
			Ratio:       row.Ratio,
			UnfoldingM:  row.UnfoldingM,
			Bands:       bands,
		})
	}
	writeJSON(w, http.StatusOK, table)
}

func summarize(id, name string, d *drivetrain.Drivetrain, cadence drivetrain.Cadence) configSummary {
	rpm := []int{int(cadence.Lower())}
	if cadence.IsRange() {
		rpm = append(rpm, int(cadence.Upper()))
	}
	return configSummary{
		ID:              id,
		Name:            name,
		Chainring:       d.Chainring().Cogs(),
		Cassette:        d.Cassette().Cogs(),
		WheelDiameterMM: d.Wheel().NominalMM(),
		TyreOffsetMM:    d.Wheel().TyreOffsetMM(),
		CadenceRPM:      rpm,
	}
}

func statusFor(err error) int {
	if apperr.IsInvalidInput(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func joinCogs(cogs []int) string {
	parts := make([]string, len(cogs))
	for i, c := range cogs {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return strings.Join(parts, ",")
}
