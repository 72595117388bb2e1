package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ephtools/polaron/phbands"
	"github.com/ephtools/polaron/varpeq"
)

func newBqnuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bqnu FILE",
		Short: "Plot the phonon coefficients on top of a phonon dispersion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd); err != nil {
				return err
			}
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			phbandsPath, _ := cmd.Flags().GetString("phbands")
			spin, _ := cmd.Flags().GetInt("spin")
			scale, _ := cmd.Flags().GetFloat64("scale")
			savefig, _ := cmd.Flags().GetString("savefig")

			f, err := varpeq.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			p := f.Polaron(spin)
			if p == nil {
				return fmt.Errorf("spin %d out of range, file has %d", spin, f.NumSpins())
			}

			qpath, err := phbands.OpenNC(phbandsPath)
			if err != nil {
				return err
			}
			log.Debug("phonon path loaded",
				zap.String("path", phbandsPath), zap.Int("qpoints", qpath.NumQpoints()))

			fig, err := varpeq.PlotBqnuWithPhbands(p, qpath, nil, varpeq.BqnuPlotOptions{Scale: scale})
			if err != nil {
				return err
			}
			if err := varpeq.SaveFig(fig, savefig); err != nil {
				return err
			}
			log.Info("figure written", zap.String("path", savefig))

			return nil
		},
	}

	cmd.Flags().String("phbands", "", "netCDF file with the q-path phonon dispersion")
	cmd.Flags().Int("spin", 0, "spin channel")
	cmd.Flags().Float64("scale", 0, "marker size per unit weight, 0 for the default")
	cmd.Flags().String("savefig", "bqnu.png", "output PNG path")
	cobra.CheckErr(cmd.MarkFlagRequired("phbands"))

	return cmd
}
