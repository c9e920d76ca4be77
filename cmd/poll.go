package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newPollCmd(v *viper.Viper, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Receive updates by long polling",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), v, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Logger.Sync() }()
			return a.Poll(cmd.Context())
		},
	}
	cmd.Flags().Int("poll-timeout", 60, "long polling timeout in seconds")
	_ = v.BindPFlag("telegram.poll_timeout", cmd.Flags().Lookup("poll-timeout"))
	return cmd
}
