package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/supplysim/supplysim/sim"
)

var (
	// CLI flags mirroring SimulationConfig
	configPath string // optional YAML scenario config; flags below override nothing when set
	logLevel   string // log verbosity level

	periods            int
	seed               int64
	demandDistribution string
	demandMean         float64
	demandStd          float64
	oemLeadTime        int
	tier1LeadTime      int
	oemInitInventory   float64
	tier1InitInventory float64
	demandWindow       int
	safetyStockPeriods float64
	otifTargetPeriods  float64

	// forecast-sharing flags
	scenario          string
	forecastHorizon   int
	forecastFrequency int
	accuracyModel     string
	forecastErrorStd  float64
	tier1Weight       float64
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "supplysim",
	Short: "Discrete-time simulator for a three-echelon automotive supply chain",
}

// buildConfig assembles a SimulationConfig from the YAML file when given,
// otherwise from CLI flags.
func buildConfig(withForecast bool) *sim.SimulationConfig {
	if configPath != "" {
		cfg, err := sim.LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("Could not load scenario config: %v", err)
		}
		return cfg
	}

	cfg := &sim.SimulationConfig{
		Periods:               periods,
		Seed:                  seed,
		DemandDistribution:    demandDistribution,
		DemandMean:            demandMean,
		DemandStd:             demandStd,
		OEMLeadTime:           oemLeadTime,
		Tier1LeadTime:         tier1LeadTime,
		OEMInitialInventory:   oemInitInventory,
		Tier1InitialInventory: tier1InitInventory,
		DemandWindow:          demandWindow,
		SafetyStockPeriods:    safetyStockPeriods,
		OTIFTargetPeriods:     otifTargetPeriods,
	}
	if withForecast {
		cfg.ForecastSharing = &sim.ForecastSharingConfig{
			Horizon:         forecastHorizon,
			UpdateFrequency: forecastFrequency,
			AccuracyModel:   accuracyModel,
			ErrorStd:        forecastErrorStd,
			Tier1Weight:     tier1Weight,
		}
	}
	return cfg
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runCmd executes a single scenario using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one scenario and print its results",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		var (
			results *sim.Results
			err     error
		)
		switch scenario {
		case sim.ScenarioBaseline:
			cfg := buildConfig(false)
			logrus.Infof("Starting %s run: periods=%d seed=%d", scenario, cfg.Periods, cfg.Seed)
			results, err = sim.RunBaseline(cfg)
		case sim.ScenarioForecastSharing:
			cfg := buildConfig(true)
			logrus.Infof("Starting %s run: periods=%d seed=%d", scenario, cfg.Periods, cfg.Seed)
			results, err = sim.RunForecastSharing(cfg)
		default:
			logrus.Fatalf("Unknown scenario %q; valid scenarios: [%s, %s]",
				scenario, sim.ScenarioBaseline, sim.ScenarioForecastSharing)
		}
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		results.Print()
		logrus.Info("Simulation complete.")
	},
}

// compareCmd runs baseline and forecast-sharing under matched demand seeding
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run baseline and forecast-sharing side by side on one demand path",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg := buildConfig(true)
		logrus.Infof("Comparing scenarios: periods=%d seed=%d weight=%.2f",
			cfg.Periods, cfg.Seed, tier1Weight)

		comparison, err := sim.CompareScenarios(cfg)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		comparison.Baseline.Print()
		comparison.ForecastSharing.Print()
		logrus.Info("Comparison complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addChainFlags registers the flags shared by run and compare.
func addChainFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configPath, "config", "", "YAML scenario config file (overrides all other flags)")
	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	cmd.Flags().IntVar(&periods, "periods", 120, "Number of periods to simulate")
	cmd.Flags().Int64Var(&seed, "seed", 7, "Master seed for demand and forecast streams")
	cmd.Flags().StringVar(&demandDistribution, "demand-distribution", sim.DemandGaussian, "Customer demand distribution (gaussian, poisson)")
	cmd.Flags().Float64Var(&demandMean, "demand-mean", 100, "Expected customer demand per period")
	cmd.Flags().Float64Var(&demandStd, "demand-std", 15, "Customer demand std dev (gaussian only)")
	cmd.Flags().IntVar(&oemLeadTime, "oem-lead-time", 2, "Tier-1 to OEM transit lead time (periods)")
	cmd.Flags().IntVar(&tier1LeadTime, "tier1-lead-time", 3, "Source to Tier-1 transit lead time (periods)")
	cmd.Flags().Float64Var(&oemInitInventory, "oem-initial-inventory", 500, "OEM starting on-hand inventory")
	cmd.Flags().Float64Var(&tier1InitInventory, "tier1-initial-inventory", 500, "Tier-1 starting on-hand inventory")
	cmd.Flags().IntVar(&demandWindow, "demand-window", 1, "Moving-average window for local demand estimation")
	cmd.Flags().Float64Var(&safetyStockPeriods, "safety-stock-periods", 1, "Safety stock coverage added to the order-up-to target (periods)")
	cmd.Flags().Float64Var(&otifTargetPeriods, "otif-target", 4, "Lead-time threshold for on-time-in-full (periods)")

	cmd.Flags().IntVar(&forecastHorizon, "forecast-horizon", 7, "Periods ahead each shared forecast covers")
	cmd.Flags().IntVar(&forecastFrequency, "forecast-frequency", 2, "Periods between forecast refreshes")
	cmd.Flags().StringVar(&accuracyModel, "accuracy-model", sim.AccuracyNoise, "Forecast accuracy model (perfect, noise)")
	cmd.Flags().Float64Var(&forecastErrorStd, "forecast-error-std", 8.0, "Forecast error std dev (noise model)")
	cmd.Flags().Float64Var(&tier1Weight, "tier1-weight", 0.4, "Weight Tier-1 places on the shared forecast [0,1]")
}

// init sets up CLI flags and subcommands
func init() {
	addChainFlags(runCmd)
	runCmd.Flags().StringVar(&scenario, "scenario", sim.ScenarioBaseline, "Scenario to run (baseline, forecast-sharing)")
	addChainFlags(compareCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}
