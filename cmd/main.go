package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"motorbench/pkg/analysis"
	"motorbench/pkg/config"
	"motorbench/pkg/export"
	"motorbench/pkg/motor"
	"motorbench/pkg/params"
	"motorbench/pkg/plotting"
	"motorbench/pkg/util"
	"motorbench/pkg/winding"
	"motorbench/server"
)

func main() {
	var (
		outPath      = flag.String("out", "", "write {params, results} JSON to this path")
		csvPath      = flag.String("csv", "", "write the result grid as CSV to this path")
		plotPath     = flag.String("plot", "", "write the efficiency map image to this path")
		points       = flag.Int("points", 0, "grid points per axis (0 = settings value)")
		serial       = flag.Bool("serial", false, "disable the parallel row-block solver")
		serve        = flag.Bool("serve", false, "run the websocket analysis service instead of a one-shot run")
		settingsPath = flag.String("settings", "", "settings.toml path (default ./settings.toml)")
		debug        = flag.Bool("debug", false, "enable debug logging")
		estimate     = flag.Bool("estimate", false, "estimate a winding for the preset instead of analyzing")
		refProfile   = flag.String("ref", "medium", "reference winding profile for -estimate")
		density      = flag.Float64("density", 8.0, "current density budget for -estimate (A/mm^2)")
	)
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatalf("loading settings: %v", err)
	}

	if *serve {
		if err := server.New(cfg).Serve(); err != nil {
			log.Fatalf("server: %v", err)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <preset.json>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	fmt.Printf("\n[1] Reading preset file: %s\n", flag.Arg(0))
	p, err := params.Load(flag.Arg(0))
	if err != nil {
		log.Fatalf("loading preset: %v", err)
	}

	m, err := motor.New(p)
	if err != nil {
		log.Fatalf("building motor model: %v", err)
	}

	if *estimate {
		runEstimate(p, *refProfile, *density)
		return
	}

	gridPoints := cfg.Analysis.GridPoints
	if *points > 0 {
		gridPoints = *points
	}
	current, shaftRPM := analysis.OperatingGrid(m, gridPoints, cfg.Analysis.RPMSafetyMargin)
	settings := analysis.Settings{
		MaxIterations: cfg.Analysis.MaxIterations,
		Relaxation:    cfg.Analysis.RelaxationFactor,
		Threshold:     cfg.Analysis.ConvergenceThreshold,
	}

	fmt.Printf("\n[2] Analyzing %dx%d operating grid (current 0.1-%.1f A, speed up to %.0f RPM)\n",
		gridPoints, gridPoints, p.PeakCurrent, m.TheoreticalMaxRPM()*cfg.Analysis.RPMSafetyMargin)

	start := time.Now()
	var res *analysis.Result
	if *serial {
		res, err = analysis.NewThermal(m, settings).Run(current, shaftRPM)
	} else {
		res, err = analysis.RunParallel(p, current, shaftRPM, settings, 0)
	}
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}
	fmt.Printf("Solved in %s, hottest cell %s\n",
		time.Since(start), util.FormatTemperature(res.MotorTemp.Max()))

	fmt.Println("\n[3] Summary")
	printSummary(analysis.Summarize(res, p.BusVoltage, p.ContinuousCurrent))

	if *outPath != "" {
		if err := export.SaveJSON(*outPath, p, res); err != nil {
			log.Fatalf("export: %v", err)
		}
		fmt.Printf("\nSaved results to %s\n", *outPath)
	}
	if *csvPath != "" {
		if err := export.SaveCSV(*csvPath, res); err != nil {
			log.Fatalf("export: %v", err)
		}
		fmt.Printf("Saved CSV to %s\n", *csvPath)
	}
	if *plotPath != "" {
		if err := plotting.SaveEfficiencyMap(*plotPath, res, p.BusVoltage, cfg.Plot.Width, cfg.Plot.Height); err != nil {
			log.Fatalf("plot: %v", err)
		}
		fmt.Printf("Saved efficiency map to %s\n", *plotPath)
	}
}

func printPoint(label string, pt *analysis.Point) {
	if pt == nil {
		fmt.Printf("%-18s no feasible operating point\n", label)
		return
	}
	fmt.Printf("%-18s %s  at %s / %s / %s, %s\n",
		label,
		util.FormatPercent(pt.Efficiency),
		util.FormatRPM(pt.RPM),
		util.FormatValueFactor(pt.Current, "A"),
		util.FormatValueFactor(pt.Torque, "Nm"),
		util.FormatValueFactor(pt.Power, "W"))
}

func printSummary(s *analysis.Summary) {
	fmt.Println("================")
	printPoint("Peak efficiency:", s.PeakEfficiency)
	printPoint("Max power:", s.MaxPower)
	printPoint("Max torque:", s.MaxTorque)
	printPoint("Rated point:", s.Rated)
	if s.MaxRPM != nil && s.MaxCurrent != nil {
		fmt.Printf("%-18s %s / %s\n", "Envelope:",
			util.FormatRPM(*s.MaxRPM), util.FormatValueFactor(*s.MaxCurrent, "A"))
	}
	fmt.Printf("%-18s %d\n", "Feasible points:", s.FeasibleCount)
}

func runEstimate(p params.Parameters, refName string, density float64) {
	ref, ok := winding.Profiles[refName]
	if !ok {
		log.Fatalf("unknown reference profile %q", refName)
	}
	target := winding.Profile{Kv: p.Kv, PeakCurrent: p.PeakCurrent}

	est, err := winding.EstimateWinding(target, ref, density)
	if err != nil {
		log.Fatalf("winding estimate: %v", err)
	}

	fmt.Printf("\n[2] Winding estimate (reference %q, %s)\n", refName, ref.Description)
	fmt.Println("================")
	fmt.Printf("Wire diameter:    %.3f mm\n", est.DiameterMM)
	fmt.Printf("Conductor length: %s\n", util.FormatValueFactor(est.Length, "m"))
	fmt.Printf("Resistance:       %s\n", util.FormatValueFactor(est.Resistance, "Ohm"))
	fmt.Printf("Inductance:       %s\n", util.FormatValueFactor(est.Inductance*1e-3, "H"))
}
