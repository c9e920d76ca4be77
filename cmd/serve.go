package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd(v *viper.Viper, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Receive updates through a webhook HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), v, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Logger.Sync() }()
			return a.Serve(cmd.Context())
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("webhook-url", "", "public URL registered with setWebhook")
	_ = v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("telegram.webhook_url", cmd.Flags().Lookup("webhook-url"))
	return cmd
}
