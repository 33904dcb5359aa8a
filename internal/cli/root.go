// Package cli implements the datasync command line interface.
package cli

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/shreyansh0727/datasync/internal/config"
	"github.com/shreyansh0727/datasync/internal/ui"
	"github.com/shreyansh0727/datasync/internal/version"
)

var (
	flagServer    string
	flagName      string
	flagOutput    string
	flagChunkSize int
)

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:     "datasync",
	Short:   "Share chat and files with everyone in a room",
	Long:    `DataSync relays chat messages and files between everyone connected to the same room id. Nothing is stored server-side: a file is chunked by the sender, fanned out to the room, and reassembled by each receiver.`,
	Version: version.Version,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		os.Exit(0)
	}()

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(config.Options{
		Server:    flagServer,
		Name:      flagName,
		OutputDir: flagOutput,
		ChunkSize: flagChunkSize,
	})
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "Relay server URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVarP(&flagName, "name", "n", "", "Sender name shown to other room members")
}
