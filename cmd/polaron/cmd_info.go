package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ephtools/polaron/varpeq"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE...",
		Short: "Print the summary report of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd); err != nil {
				return err
			}
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			for _, path := range args {
				f, err := varpeq.Open(path)
				if err != nil {
					return err
				}
				log.Debug("file opened", zap.String("path", path), zap.Int("spins", f.NumSpins()))
				f.WriteString(os.Stdout)
				if err := f.Close(); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
