package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ephtools/polaron/varpeq"
)

func newNbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nb FILE...",
		Short: "Write a companion analysis notebook",
		Long: `nb writes a Jupyter notebook that reopens the given files with the
original analysis toolkit. One file yields a single-file notebook; several
files yield a comparison notebook.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd); err != nil {
				return err
			}
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			output, _ := cmd.Flags().GetString("output")
			out, err := os.Create(output)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				f, err := varpeq.Open(args[0])
				if err != nil {
					out.Close()

					return err
				}
				err = f.WriteNotebook(out)
				f.Close()
				if err != nil {
					out.Close()

					return err
				}
			} else {
				robot, err := varpeq.OpenFiles(args...)
				if err != nil {
					out.Close()

					return err
				}
				err = robot.WriteNotebook(out)
				robot.Close()
				if err != nil {
					out.Close()

					return err
				}
			}

			if err := out.Close(); err != nil {
				return err
			}
			log.Info("notebook written", zap.String("path", output), zap.Int("files", len(args)))

			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "polaron.ipynb", "output notebook path")

	return cmd
}
