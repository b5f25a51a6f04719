package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/san-kum/crashsim/internal/client"
	"github.com/san-kum/crashsim/internal/config"
	"github.com/san-kum/crashsim/internal/export"
	"github.com/san-kum/crashsim/internal/server"
	"github.com/san-kum/crashsim/internal/sim"
	"github.com/san-kum/crashsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	mass1       float64
	velocity1   float64
	mass2       float64
	velocity2   float64
	restitution float64
	preset      string
	configFile  string
	serverURL   string
	frameRate   int
	port        string
	outputFile  string
	asJSON      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crashsim",
		Short: "1D collision simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view with the standard scenario
			return viz.Run(config.DefaultConfig(), sim.Local())
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the collision with live visualization",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")
	liveCmd.Flags().StringVar(&serverURL, "server", "", "resolve collisions against a crashsim API instead of in-process")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "resolve a collision and print the results",
		RunE:  runCollision,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&serverURL, "server", "", "resolve collisions against a crashsim API instead of in-process")
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the result as JSON to a file")
	runCmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON instead of a table")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		RunE:  listPresets,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "start the collision API server",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&port, "port", "", "listen port (overrides APP_PORT)")

	rootCmd.AddCommand(liveCmd, runCmd, presetsCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mass1, "m1", config.DefaultMass, "mass of particle 1 (kg)")
	cmd.Flags().Float64Var(&velocity1, "v1", config.DefaultVelocity1, "velocity of particle 1 (m/s)")
	cmd.Flags().Float64Var(&mass2, "m2", config.DefaultMass, "mass of particle 2 (kg)")
	cmd.Flags().Float64Var(&velocity2, "v2", config.DefaultVelocity2, "velocity of particle 2 (m/s)")
	cmd.Flags().Float64VarP(&restitution, "restitution", "e", config.DefaultRestitution, "coefficient of restitution [0,1]")
	cmd.Flags().StringVar(&preset, "preset", "", "use a preset scenario")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
}

// buildConfig assembles the scenario: defaults, then config file, then
// preset, then explicitly set flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Particle1.Mass = p.Particle1.Mass
		cfg.Particle1.Velocity = p.Particle1.Velocity
		cfg.Particle2.Mass = p.Particle2.Mass
		cfg.Particle2.Velocity = p.Particle2.Velocity
		cfg.Restitution = p.Restitution
	}

	if cmd.Flags().Changed("m1") {
		cfg.Particle1.Mass = mass1
	}
	if cmd.Flags().Changed("v1") {
		cfg.Particle1.Velocity = velocity1
	}
	if cmd.Flags().Changed("m2") {
		cfg.Particle2.Mass = mass2
	}
	if cmd.Flags().Changed("v2") {
		cfg.Particle2.Velocity = velocity2
	}
	if cmd.Flags().Changed("restitution") {
		cfg.Restitution = restitution
	}
	if cmd.Flags().Changed("fps") {
		cfg.FrameRate = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolver() sim.Resolver {
	if serverURL != "" {
		return client.New(serverURL)
	}
	return sim.Local()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(cfg, resolver())
}

func runCollision(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	res, err := resolver().Resolve(context.Background(),
		cfg.Particle1.Mass, cfg.Particle1.Velocity,
		cfg.Particle2.Mass, cfg.Particle2.Velocity,
		cfg.Restitution,
	)
	if err != nil {
		return err
	}

	scenario := export.Scenario{
		Mass1:       cfg.Particle1.Mass,
		Velocity1:   cfg.Particle1.Velocity,
		Mass2:       cfg.Particle2.Mass,
		Velocity2:   cfg.Particle2.Velocity,
		Restitution: cfg.Restitution,
	}
	if outputFile != "" {
		if err := export.WriteJSON(outputFile, scenario, res); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if asJSON {
		return export.WriteJSONTo(os.Stdout, scenario, res)
	}

	fmt.Printf("collision: m1=%.2fkg v1=%.2fm/s  m2=%.2fkg v2=%.2fm/s  e=%.2f\n\n",
		cfg.Particle1.Mass, cfg.Particle1.Velocity,
		cfg.Particle2.Mass, cfg.Particle2.Velocity,
		cfg.Restitution)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tVELOCITY\tMOMENTUM\tKINETIC E")
	fmt.Fprintf(w, "p1 before\t%.4f\t%.4f\t%.4f\n", res.Particle1Before.Velocity, res.Particle1Before.Momentum, res.Particle1Before.KineticEnergy)
	fmt.Fprintf(w, "p1 after\t%.4f\t%.4f\t%.4f\n", res.Particle1After.Velocity, res.Particle1After.Momentum, res.Particle1After.KineticEnergy)
	fmt.Fprintf(w, "p2 before\t%.4f\t%.4f\t%.4f\n", res.Particle2Before.Velocity, res.Particle2Before.Momentum, res.Particle2Before.KineticEnergy)
	fmt.Fprintf(w, "p2 after\t%.4f\t%.4f\t%.4f\n", res.Particle2After.Velocity, res.Particle2After.Momentum, res.Particle2After.KineticEnergy)
	fmt.Fprintf(w, "total before\t\t%.4f\t%.4f\n", res.TotalMomentumBefore, res.TotalKineticEnergyBefore)
	fmt.Fprintf(w, "total after\t\t%.4f\t%.4f\n", res.TotalMomentumAfter, res.TotalKineticEnergyAfter)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nmomentum drift: %.2e\n", res.TotalMomentumAfter-res.TotalMomentumBefore)
	fmt.Printf("kinetic energy change: %.4f\n", res.KineticEnergyChange)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tM1\tV1\tM2\tV2\tE\tDESCRIPTION")
	for _, p := range config.Presets {
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.2f\t%s\n",
			p.ID,
			p.Particle1.Mass, p.Particle1.Velocity,
			p.Particle2.Mass, p.Particle2.Velocity,
			p.Restitution, p.Description)
	}
	return w.Flush()
}

func serve(cmd *cobra.Command, args []string) error {
	cfg := config.LoadServer()
	if port != "" {
		cfg.Port = port
	}

	router := server.NewRouter(cfg)

	log.Printf("Starting crashsim API on port %s", cfg.Port)
	return router.Run(":" + cfg.Port)
}
