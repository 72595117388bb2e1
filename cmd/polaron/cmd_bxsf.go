package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ephtools/polaron/varpeq"
)

func newBxsfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bxsf FILE",
		Short: "Export a coefficient density as an XCrySDen band grid",
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

			what, _ := cmd.Flags().GetString("what")
			output, _ := cmd.Flags().GetString("output")
			spin, _ := cmd.Flags().GetInt("spin")

			f, err := varpeq.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			p := f.Polaron(spin)
			if p == nil {
				return fmt.Errorf("spin %d out of range, file has %d", spin, f.NumSpins())
			}

			out, err := os.Create(output)
			if err != nil {
				return err
			}

			switch what {
			case "a2":
				err = p.WriteA2BXSF(out)
			case "b2":
				err = p.WriteB2BXSF(out)
			default:
				err = fmt.Errorf("unknown density %q, want a2 or b2", what)
			}
			if err != nil {
				out.Close()

				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			log.Info("band grid written", zap.String("path", output), zap.String("what", what))

			return nil
		},
	}

	cmd.Flags().String("what", "a2", "density to export: a2 or b2")
	cmd.Flags().StringP("output", "o", "polaron.bxsf", "output BXSF path")
	cmd.Flags().Int("spin", 0, "spin channel")

	return cmd
}
