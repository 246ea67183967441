package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	control "github.com/milosgajdos/go-control"
	"github.com/milosgajdos/go-control/bicycle"
	"github.com/milosgajdos/go-control/rlocus"
	"github.com/milosgajdos/go-control/sim"
	"github.com/milosgajdos/go-control/tf"
)

var (
	configFile  string
	rollGain    float64
	headingGain float64
	duration    float64
	samples     int
	plotFile    string
	gainFrom    float64
	gainTo      float64
	gainSteps   int
	loopName    string
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	stableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	rhpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func main() {
	root := &cobra.Command{
		Use:   "bikectl",
		Short: "Bicycle steering control design toolbox",
		Long: `bikectl derives the linearized dynamics of a bicycle and walks
through a cascaded two loop steering design: an inner roll loop and an
outer heading loop. It reports poles and zeros, sweeps root loci and
simulates step responses, including the countersteering transient.`,
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "YAML file with physical parameters")
	root.PersistentFlags().Float64Var(&rollGain, "roll-gain", bicycle.DefaultRollGain, "inner roll loop gain")
	root.PersistentFlags().Float64Var(&headingGain, "heading-gain", bicycle.DefaultHeadingGain, "outer heading loop gain")

	polesCmd := &cobra.Command{
		Use:   "poles",
		Short: "Report poles and zeros of the plant and both closed loops",
		RunE:  runPoles,
	}

	rlocusCmd := &cobra.Command{
		Use:   "rlocus",
		Short: "Sweep the root locus of the roll or heading loop",
		RunE:  runRlocus,
	}
	rlocusCmd.Flags().StringVar(&loopName, "loop", "roll", "loop to sweep: roll or heading")
	rlocusCmd.Flags().Float64Var(&gainFrom, "from", 0, "first gain of the sweep")
	rlocusCmd.Flags().Float64Var(&gainTo, "to", -5, "last gain of the sweep")
	rlocusCmd.Flags().IntVar(&gainSteps, "steps", 200, "number of gain samples")
	rlocusCmd.Flags().StringVarP(&plotFile, "plot", "o", "", "write locus plot to PNG file")

	stepCmd := &cobra.Command{
		Use:   "step",
		Short: "Simulate the closed loop heading step response",
		RunE:  runStep,
	}
	stepCmd.Flags().Float64Var(&duration, "duration", 10, "simulation length in seconds")
	stepCmd.Flags().IntVar(&samples, "samples", 500, "number of time samples")
	stepCmd.Flags().StringVarP(&plotFile, "plot", "o", "", "write response plot to PNG file")

	counterCmd := &cobra.Command{
		Use:   "countersteer",
		Short: "Walk through the full dual loop design",
		RunE:  runCountersteer,
	}
	counterCmd.Flags().Float64Var(&duration, "duration", 10, "simulation length in seconds")
	counterCmd.Flags().IntVar(&samples, "samples", 500, "number of time samples")

	root.AddCommand(polesCmd, rlocusCmd, stepCmd, counterCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadParams() (bicycle.Params, error) {
	if configFile == "" {
		return bicycle.DefaultParams(), nil
	}
	return bicycle.LoadParams(configFile)
}

func printSystem(name string, sys control.System) error {
	fmt.Println(titleStyle.Render(name))

	poles, err := sys.Poles()
	if err != nil {
		return err
	}
	for _, p := range poles {
		label := stableStyle.Render("stable")
		if real(p) > 0 {
			label = rhpStyle.Render("UNSTABLE")
		}
		fmt.Printf("  pole %8.4f %+8.4fi  %s\n", real(p), imag(p), label)
	}

	zeros, err := sys.Zeros()
	if err != nil {
		return err
	}
	for _, z := range zeros {
		label := ""
		if real(z) > 0 {
			label = rhpStyle.Render("non-minimum phase")
		}
		fmt.Printf("  zero %8.4f %+8.4fi  %s\n", real(z), imag(z), label)
	}
	fmt.Println()

	return nil
}

func runPoles(cmd *cobra.Command, args []string) error {
	p, err := loadParams()
	if err != nil {
		return err
	}

	plant, err := p.RollPlant()
	if err != nil {
		return err
	}
	if err := printSystem("steer -> roll plant "+plant.String(), plant); err != nil {
		return err
	}

	inner, err := p.InnerLoop(rollGain)
	if err != nil {
		return err
	}
	if err := printSystem(fmt.Sprintf("closed roll loop (gain %g)", rollGain), inner); err != nil {
		return err
	}

	heading, err := p.HeadingPlant(rollGain)
	if err != nil {
		return err
	}
	if err := printSystem("roll reference -> heading plant", heading); err != nil {
		return err
	}

	outer, err := p.OuterLoop(rollGain, headingGain)
	if err != nil {
		return err
	}
	return printSystem(fmt.Sprintf("closed heading loop (gain %g)", headingGain), outer)
}

func runRlocus(cmd *cobra.Command, args []string) error {
	p, err := loadParams()
	if err != nil {
		return err
	}

	var loop *tf.TF
	switch loopName {
	case "roll":
		loop, err = p.RollPlant()
	case "heading":
		loop, err = p.HeadingPlant(rollGain)
	default:
		return fmt.Errorf("unknown loop %q: want roll or heading", loopName)
	}
	if err != nil {
		return err
	}

	loc, err := rlocus.Sweep(loop, rlocus.Gains(gainFrom, gainTo, gainSteps))
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s loop root locus, gain %g -> %g", loopName, gainFrom, gainTo)))
	for b := 0; b < loc.Branches(); b++ {
		first, last := loc.Roots[0][b], loc.Roots[len(loc.Roots)-1][b]
		fmt.Printf("  branch %d: %8.4f %+8.4fi  ->  %8.4f %+8.4fi\n",
			b, real(first), imag(first), real(last), imag(last))
	}

	if plotFile != "" {
		plt, err := rlocus.NewLocusPlot(loc, loopName+" loop root locus")
		if err != nil {
			return err
		}
		if err := plt.Save(6*vg.Inch, 6*vg.Inch, plotFile); err != nil {
			return err
		}
		fmt.Println("locus plot written to", plotFile)
	}

	return nil
}

func runStep(cmd *cobra.Command, args []string) error {
	p, err := loadParams()
	if err != nil {
		return err
	}

	outer, err := p.OuterLoop(rollGain, headingGain)
	if err != nil {
		return err
	}

	r, err := sim.Step(outer, sim.Grid(duration, samples+1))
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("heading step response"))
	fmt.Println(asciigraph.Plot(r.Output, asciigraph.Height(15), asciigraph.Width(72)))

	if plotFile != "" {
		plt, err := sim.NewResponsePlot(r, "heading step response")
		if err != nil {
			return err
		}
		if err := plt.Save(8*vg.Inch, 5*vg.Inch, plotFile); err != nil {
			return err
		}
		fmt.Println("response plot written to", plotFile)
	}

	return nil
}

func runCountersteer(cmd *cobra.Command, args []string) error {
	p, err := loadParams()
	if err != nil {
		return err
	}

	if err := runPoles(cmd, args); err != nil {
		return err
	}

	outer, err := p.OuterLoop(rollGain, headingGain)
	if err != nil {
		return err
	}

	grid := sim.Grid(duration, samples+1)
	r, err := sim.Step(outer, grid)
	if err != nil {
		return err
	}

	min, minT := 0.0, 0.0
	for i := range r.Output {
		if r.Output[i] < min {
			min, minT = r.Output[i], grid[i]
		}
	}

	fmt.Println(titleStyle.Render("countersteering transient"))
	fmt.Println(asciigraph.Plot(r.Output, asciigraph.Height(15), asciigraph.Width(72)))
	if min < 0 {
		fmt.Printf("\nthe heading first swings to %.3f at t=%.2fs before turning the commanded way:\n", min, minT)
		fmt.Println("to turn right, a bicycle must first steer left")
	}

	return nil
}
