package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/NickelKnock/Axial-Motor-Design-Calculator/internal/config"
	"github.com/NickelKnock/Axial-Motor-Design-Calculator/internal/debug"
	"github.com/NickelKnock/Axial-Motor-Design-Calculator/internal/motor"
	"github.com/NickelKnock/Axial-Motor-Design-Calculator/internal/web"
)

func main() {
	// .env before flags: env vars act as fallbacks for unset flags.
	_ = godotenv.Load()

	webPort := &webPortFlag{}
	flag.Var(webPort, "web", "start web server on port; -web= for the config default, -web 8980 for a custom port")
	cfgPath := flag.String("config", "", "path to design file (default configs/default.yaml, or AXIALMOTOR_CONFIG)")
	coils := flag.Int("coils", 0, "override coil count")
	voltage := flag.Float64("voltage", 0, "override input voltage (V)")
	torque := flag.Float64("torque", 0, "override desired torque (N-m)")
	rpm := flag.Float64("rpm", 0, "override mechanical speed (RPM)")
	freq := flag.Float64("freq", 0, "override electrical frequency (Hz); ignored when -rpm is set")
	outerRadius := flag.Float64("outer-radius", 0, "override outer radius (m)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	path := *cfgPath
	if path == "" {
		path = os.Getenv("AXIALMOTOR_CONFIG")
	}
	if path == "" {
		path = filepath.Join("configs", "default.yaml")
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	ov := overrides{
		Coils:       *coils,
		Voltage:     *voltage,
		Torque:      *torque,
		RPM:         *rpm,
		Freq:        *freq,
		OuterRadius: *outerRadius,
	}
	if err := validateOverrides(ov); err != nil {
		log.Fatalf("invalid CLI override: %v", err)
	}
	applyOverrides(cfg, ov)

	debug.Init(cfg.Runtime.DebugLevel)
	debug.Section("Initialization")
	debug.Value("Config path", path)
	debug.Value("Debug level", cfg.Runtime.DebugLevel)

	if port := resolvePort(webPort, cfg); port > 0 {
		addr := fmt.Sprintf(":%d", port)
		broadcaster := web.NewStatusBroadcaster()
		debug.SetOutput(io.MultiWriter(os.Stdout, web.BroadcastWriter(broadcaster)))

		srv := web.NewServer(addr, broadcaster, defaultsFromConfig(cfg))
		if err := srv.Run(ctx); err != nil {
			log.Fatalf("web server: %v", err)
		}
		return
	}

	if err := evaluateOnce(cfg); err != nil {
		log.Fatalf("evaluate design failed: %v", err)
	}
}

// evaluateOnce builds the engine from the loaded design and prints the
// full report to stdout in display order.
func evaluateOnce(cfg *config.Config) error {
	in := cfg.ToInputs()

	debug.Step(1, "Constructing design engine")
	eng, err := motor.New(in)
	if err != nil {
		return err
	}
	debug.Topology(eng.Coils(), eng.Poles(), eng.Magnets())
	debug.Value("Electrical frequency (Hz)", eng.ElectricalFreqHz())
	debug.Value("Mechanical speed (RPM)", eng.MechanicalRPM())
	debug.Derivation("rotor area", eng.RotorArea(), "m^2")
	debug.Derivation("flux per pole", eng.FluxPerPole(), "Wb")
	debug.Derivation("turns per phase", eng.Turns(), "")
	debug.Derivation("torque constant", eng.TorqueConstant(), "N-m/A")

	debug.Step(2, "Assembling report")
	rep := eng.Report()

	debug.Summary("Design Report")
	width := 0
	for _, key := range motor.ReportOrder() {
		if len(key) > width {
			width = len(key)
		}
	}
	for _, key := range motor.ReportOrder() {
		fmt.Printf("%-*s  %s\n", width, key, rep[key])
		if isVerdictKey(key) {
			debug.Check(key, rep[key])
		}
	}

	fmt.Printf("\n≈ %s mechanical at %s RPM\n",
		humanize.SIWithDigits(eng.MechanicalPower(), 1, "W"),
		humanize.Commaf(eng.MechanicalRPM()))
	return nil
}

func isVerdictKey(key string) bool {
	switch key {
	case "V-limit Pass", "I-limit Pass", "ESC f_e Pass", "DC-limit Pass":
		return true
	}
	return false
}

// overrides holds design parameters that can override the config file.
// Zero means "use the config value".
type overrides struct {
	Coils       int
	Voltage     float64
	Torque      float64
	RPM         float64
	Freq        float64
	OuterRadius float64
}

// validateOverrides checks that non-zero CLI overrides are sane numbers.
// Zero values are ignored (they mean "use config default").
func validateOverrides(o overrides) error {
	if o.Coils < 0 {
		return fmt.Errorf("coils must be positive, got %d", o.Coils)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"voltage", o.Voltage},
		{"torque", o.Torque},
		{"rpm", o.RPM},
		{"freq", o.Freq},
		{"outer-radius", o.OuterRadius},
	} {
		if f.value == 0 {
			continue
		}
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be a finite number, got %g", f.name, f.value)
		}
		if f.value < 0 && f.name != "torque" {
			return fmt.Errorf("%s must be positive, got %g", f.name, f.value)
		}
	}
	return nil
}

// applyOverrides mutates cfg with overrides. Only non-zero values are applied.
func applyOverrides(cfg *config.Config, o overrides) {
	if o.Coils > 0 {
		cfg.Design.Coils = o.Coils
	}
	if o.Voltage != 0 {
		cfg.Design.InputVoltage = o.Voltage
	}
	if o.Torque != 0 {
		cfg.Design.DesiredTorque = o.Torque
	}
	if o.RPM != 0 {
		v := o.RPM
		cfg.Design.MechanicalRPM = &v
		cfg.Design.ElectricalFreqHz = nil
	} else if o.Freq != 0 {
		v := o.Freq
		cfg.Design.ElectricalFreqHz = &v
		cfg.Design.MechanicalRPM = nil
	}
	if o.OuterRadius != 0 {
		cfg.Design.OuterRadiusM = o.OuterRadius
	}
}

// resolvePort picks the web port: 0 when web mode is off, the config
// default when -web= was given bare, else the flag value.
func resolvePort(f *webPortFlag, cfg *config.Config) int {
	if !f.set {
		if p := os.Getenv("AXIALMOTOR_PORT"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 && v <= 65535 {
				return v
			}
		}
		return 0
	}
	if f.val == 0 {
		return cfg.Runtime.ListenPort
	}
	return f.val
}

// defaultsFromConfig converts the loaded preset into the form prefill
// the web page fetches.
func defaultsFromConfig(cfg *config.Config) web.DesignRequest {
	d := cfg.Design
	return web.DesignRequest{
		Coils:         d.Coils,
		InputVoltage:  d.InputVoltage,
		InputIsDCBus:  d.InputIsDCBus,
		OuterRadiusM:  d.OuterRadiusM,
		DesiredTorque: d.DesiredTorque,
		DualPlate:     d.DualPlate,

		MechanicalRPM:    d.MechanicalRPM,
		ElectricalFreqHz: d.ElectricalFreqHz,
		Turns:            d.Turns,
		Poles:            d.Poles,

		FluxDensityAvgT: d.FluxDensityAvgT,
		WindingFactor:   d.WindingFactor,
		ModulationIndex: d.ModulationIndex,

		PhaseCurrentLimitA: d.PhaseCurrentLimitA,
		DCCurrentLimitA:    d.DCCurrentLimitA,
		ESCFreqMaxHz:       d.ESCFreqMaxHz,
	}
}

// webPortFlag implements flag.Value for -web: unset = disabled, -web= →
// config default, -web 8980 → 8980.
type webPortFlag struct {
	val int
	set bool
}

func (w *webPortFlag) String() string {
	if w.val == 0 {
		return "0"
	}
	return strconv.Itoa(w.val)
}

func (w *webPortFlag) Set(s string) error {
	w.set = true
	if s == "" {
		w.val = 0 // resolved to the config default
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v <= 0 || v > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", v)
	}
	w.val = v
	return nil
}
