package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ephtools/polaron/ebands"
	"github.com/ephtools/polaron/varpeq"
)

func newAnkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ank FILE",
		Short: "Plot the electron coefficients on top of a band structure",
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

			ebandsPath, _ := cmd.Flags().GetString("ebands")
			edosPath, _ := cmd.Flags().GetString("edos")
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

			kpath, err := ebands.OpenNC(ebandsPath)
			if err != nil {
				return err
			}
			log.Debug("band path loaded",
				zap.String("path", ebandsPath), zap.Int("kpoints", kpath.NumKpoints()))

			opts := varpeq.AnkPlotOptions{Scale: scale}
			if edosPath != "" {
				dosBands, err := ebands.OpenNC(edosPath)
				if err != nil {
					return err
				}
				opts.DosBands = dosBands
			}

			fig, err := varpeq.PlotAnkWithEbands(p, kpath, opts)
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

	cmd.Flags().String("ebands", "", "netCDF file with the k-path band structure")
	cmd.Flags().String("edos", "", "netCDF file with mesh-sampled bands for the DOS panel")
	cmd.Flags().Int("spin", 0, "spin channel")
	cmd.Flags().Float64("scale", 0, "marker size per unit weight, 0 for the default")
	cmd.Flags().String("savefig", "ank.png", "output PNG path")
	cobra.CheckErr(cmd.MarkFlagRequired("ebands"))

	return cmd
}
