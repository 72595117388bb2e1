package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ephtools/polaron/varpeq"
)

func newConvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conv FILE...",
		Short: "Extrapolate energies over files with increasing k-meshes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd); err != nil {
				return err
			}
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			spin, _ := cmd.Flags().GetInt("spin")
			csvPath, _ := cmd.Flags().GetString("csv")
			savefig, _ := cmd.Flags().GetString("savefig")

			robot, err := varpeq.OpenFiles(args...)
			if err != nil {
				return err
			}
			defer robot.Close()

			robot.WriteString(os.Stdout)
			table, err := robot.MakovPayneTable(spin)
			if err != nil {
				return err
			}
			fmt.Print(table.String())

			if csvPath != "" {
				out, err := os.Create(csvPath)
				if err != nil {
					return err
				}
				if err := table.WriteCSV(out); err != nil {
					out.Close()

					return err
				}
				if err := out.Close(); err != nil {
					return err
				}
				log.Info("table written", zap.String("path", csvPath))
			}

			if savefig == "" {
				return nil
			}
			fig, err := robot.PlotKConv(varpeq.KConvPlotOptions{Spin: spin})
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

	cmd.Flags().Int("spin", 0, "spin channel")
	cmd.Flags().String("csv", "", "write the extrapolation table to this CSV path")
	cmd.Flags().String("savefig", "", "write the convergence plot to this PNG path")

	return cmd
}
