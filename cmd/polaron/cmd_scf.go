package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ephtools/polaron/varpeq"
)

func newScfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scf FILE",
		Short: "Print the optimization cycle table, optionally plot it",
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

			spin, _ := cmd.Flags().GetInt("spin")
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
			cycle, err := p.ScfCycle()
			if err != nil {
				return err
			}
			fmt.Println(p.Title(true))
			fmt.Print(cycle.Table())

			if savefig == "" {
				return nil
			}
			fig, err := varpeq.PlotScfCycle(f, varpeq.ScfPlotOptions{})
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
	cmd.Flags().String("savefig", "", "write the convergence plot to this PNG path")

	return cmd
}
