package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/tollfee/app"
	"github.com/kilianp07/tollfee/core/model"
	"github.com/kilianp07/tollfee/infra/logger"
)

var (
	feeVehicle   string
	feeBreakdown bool
)

var feeCmd = &cobra.Command{
	Use:   "fee [flags] TIMESTAMP...",
	Short: "Compute the daily fee for the passes of one vehicle",
	Example: `  tollfee fee --vehicle car 2025-03-07T06:15 2025-03-07T06:30 2025-03-07T07:14
  tollfee fee -v car --breakdown "2025-03-07 08:00" "2025-03-07 15:30"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFee,
}

func init() {
	feeCmd.Flags().StringVarP(&feeVehicle, "vehicle", "v", "car", "vehicle category")
	feeCmd.Flags().BoolVar(&feeBreakdown, "breakdown", false, "print the charge windows")
	rootCmd.AddCommand(feeCmd)
}

func runFee(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	v, err := model.ParseVehicle(feeVehicle)
	if err != nil {
		return err
	}
	passes := make([]time.Time, 0, len(args))
	for _, a := range args {
		ts, err := model.ParseTimestamp(a)
		if err != nil {
			return err
		}
		passes = append(passes, ts)
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}
	calc, _, _, err := app.NewCalculator(cfg, logger.New("fee-command"))
	if err != nil {
		return err
	}
	a, err := calc.Assess(v, passes)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if feeBreakdown {
		if a.Exemption != "" {
			fmt.Fprintf(out, "exempt: %s\n", a.Exemption)
		}
		for _, w := range a.Windows {
			fmt.Fprintf(out, "%s-%s  passes=%d  fee=%d\n",
				w.Start.Format("15:04"), w.End.Format("15:04"), len(w.Passes), w.Fee)
		}
		if a.Capped() {
			fmt.Fprintf(out, "capped from %d to %d\n", a.Uncapped, a.Total)
		}
	}
	fmt.Fprintln(out, a.Total)
	return nil
}
