package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/velotools/gearrange-cli/internal/apperr"
	"github.com/velotools/gearrange-cli/internal/drivetrain"
	"github.com/velotools/gearrange-cli/internal/preconfig"
)

// FormDefaults pre-fills the drivetrain configuration form.
type FormDefaults struct {
	Name            string
	Chainring       []int
	WheelDiameterMM float64
	TyreOffsetMM    float64
	CadenceLower    int
	CadenceUpper    int
}

// FormResult carries the values collected by the form, already parsed.
type FormResult struct {
	Name            string
	Chainring       []int
	Cassette        []int
	WheelDiameterMM float64
	TyreOffsetMM    float64
	CadenceLower    int
	CadenceUpper    int
}

// Drivetrain builds the typed parts from the collected values.
func (r FormResult) Drivetrain() (*drivetrain.Drivetrain, drivetrain.Cadence, error) {
	d, err := drivetrain.FromNumbers(r.Chainring, r.Cassette, r.WheelDiameterMM, r.TyreOffsetMM)
	if err != nil {
		return nil, drivetrain.Cadence{}, err
	}
	cadence, err := drivetrain.NewCadence(r.CadenceLower, r.CadenceUpper)
	if err != nil {
		return nil, drivetrain.Cadence{}, err
	}
	return d, cadence, nil
}

// RunDrivetrainForm collects one drivetrain configuration interactively.
// Aborting the form returns apperr.ErrCancelled.
func RunDrivetrainForm(defaults FormDefaults) (FormResult, error) {
	// Storage for form values; huh writes through these pointers.
	name := defaults.Name
	chainring := joinInts(defaults.Chainring)
	preset := preconfig.Custom
	customCassette := joinInts(preconfig.DefaultCustom())
	wheel := formatMM(defaults.WheelDiameterMM)
	offset := formatMM(defaults.TyreOffsetMM)
	cadence := fmt.Sprintf("%d,%d", defaults.CadenceLower, defaults.CadenceUpper)

	presetOptions := make([]huh.Option[string], 0, len(preconfig.Names()))
	for _, n := range preconfig.Names() {
		presetOptions = append(presetOptions, huh.NewOption(n, n))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Configure your Drivetrain").
				Description("Cog lists are comma-separated tooth counts.\nPick a preconfigured cassette or choose CUSTOM and enter your own."),
			huh.NewInput().
				Title("Configuration Name").
				CharLimit(100).
				Value(&name).
				Validate(validateNonEmpty("configuration name")),
			huh.NewInput().
				Title("Chainring Cogs").
				Placeholder("40").
				Value(&chainring).
				Validate(validateCogs),
			huh.NewSelect[string]().
				Title("Cassette").
				Options(presetOptions...).
				Value(&preset),
			huh.NewInput().
				Title("Custom Cassette Cogs (used when Cassette is CUSTOM)").
				Value(&customCassette).
				Validate(validateCogs),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Rim Diameter [mm]").
				Value(&wheel).
				Validate(validateMillimeters("rim diameter")),
			huh.NewInput().
				Title("Tyre Offset [mm]").
				Description("The tyre makes the actual diameter of the wheel bigger. We need to account for that.").
				Value(&offset).
				Validate(validateMillimeters("tyre offset")),
			huh.NewInput().
				Title("Cadence Range [rpm]").
				Placeholder("85,95").
				Value(&cadence).
				Validate(validateCadenceRange),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return FormResult{}, apperr.ErrCancelled
		}
		return FormResult{}, err
	}

	chainringCogs, err := ParseCogs(chainring)
	if err != nil {
		return FormResult{}, err
	}

	cassetteCogs, ok := preconfig.Lookup(preset)
	if !ok {
		if cassetteCogs, err = ParseCogs(customCassette); err != nil {
			return FormResult{}, err
		}
	}

	wheelMM, err := ParseMillimeters(wheel)
	if err != nil {
		return FormResult{}, err
	}
	offsetMM, err := ParseMillimeters(offset)
	if err != nil {
		return FormResult{}, err
	}

	rpm, err := ParseCadence(cadence)
	if err != nil {
		return FormResult{}, err
	}
	lower := rpm[0]
	upper := rpm[0]
	if len(rpm) == 2 {
		upper = rpm[1]
	}
	if lower > upper {
		lower, upper = upper, lower
	}

	return FormResult{
		Name:            strings.TrimSpace(name),
		Chainring:       chainringCogs,
		Cassette:        cassetteCogs,
		WheelDiameterMM: wheelMM,
		TyreOffsetMM:    offsetMM,
		CadenceLower:    lower,
		CadenceUpper:    upper,
	}, nil
}

func validateNonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
		return nil
	}
}

func validateCogs(s string) error {
	cogs, err := ParseCogs(s)
	if err != nil {
		return err
	}
	for _, c := range cogs {
		if c <= 0 {
			return fmt.Errorf("tooth counts must be positive, got %d", c)
		}
	}
	return nil
}

func validateMillimeters(field string) func(string) error {
	return func(s string) error {
		v, err := ParseMillimeters(s)
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("%s must not be negative", field)
		}
		return nil
	}
}

func validateCadenceRange(s string) error {
	rpm, err := ParseCadence(s)
	if err != nil {
		return err
	}
	for _, r := range rpm {
		if r <= 0 {
			return fmt.Errorf("cadence must be positive, got %d", r)
		}
	}
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
