package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/server"
	"github.com/spf13/cobra"

	"github.com/confio/tbounty/internal/content"
	tbtypes "github.com/confio/tbounty/types"
)

const (
	flagContentNode = "content-node"
	flagOutput      = "output"
)

func contentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "content",
		Short:                      "Content service subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	cmd.AddCommand(
		contentServeCmd(),
		contentPutCmd(),
		contentGetCmd(),
	)
	return cmd
}

func contentServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the content service standalone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			serverCtx := server.GetServerContextFromCmd(cmd)
			home := client.GetClientContextFromCmd(cmd).HomeDir
			cfg := content.ConfigFromAppOptions(home, serverCtx.Viper)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return content.Serve(ctx, cfg, newLogger(cmd.ErrOrStderr()))
		},
	}
	content.AddFlags(cmd.Flags())
	return cmd
}

func contentPutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put [file]",
		Short: "Upload a document and print its content hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			h, err := newResolver(cmd).Upload(cmd.Context(), data)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), h.String())
			return err
		},
	}
	addContentNodeFlag(cmd)
	return cmd
}

func contentGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [hash]",
		Short: "Download a document and verify it against its content hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := tbtypes.ParseContentHash(args[0])
			if err != nil {
				return err
			}
			data, err := newResolver(cmd).Fetch(cmd.Context(), h)
			if err != nil {
				return err
			}
			if out, _ := cmd.Flags().GetString(flagOutput); out != "" {
				return os.WriteFile(out, data, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	addContentNodeFlag(cmd)
	cmd.Flags().StringP(flagOutput, "o", "", "Write the document to this file instead of stdout")
	return cmd
}

func addContentNodeFlag(cmd *cobra.Command) {
	cmd.Flags().String(flagContentNode, "http://"+content.DefaultListenAddress, "Base URL of the content service")
}

func newResolver(cmd *cobra.Command) *content.Resolver {
	baseURL, _ := cmd.Flags().GetString(flagContentNode)
	return content.NewResolver(baseURL, &http.Client{Timeout: 30 * time.Second})
}
