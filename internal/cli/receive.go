package cli

import (
	"github.com/spf13/cobra"

	"github.com/shreyansh0727/datasync/internal/client"
	"github.com/shreyansh0727/datasync/internal/ui"
)

var flagCount int

var receiveCmd = &cobra.Command{
	Use:     "receive <room>",
	Aliases: []string{"r", "recv"},
	Short:   "Receive files from a room without chatting",
	Long: `Connect to a room and save every file sent to it, without printing
chat traffic. With --count the command exits once that many files have
arrived; otherwise it runs until interrupted.

Examples:
  datasync receive ABCD12 --output ./incoming
  datasync receive ABCD12 --count 1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return receiveFiles(args[0])
	},
}

func receiveFiles(roomID string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	stopSpinner := ui.RunConnectionSpinner("Connecting to " + cfg.ServerURL + "...")
	conn, err := client.Dial(cfg.RoomURL(roomID))
	stopSpinner()
	if err != nil {
		return err
	}
	defer conn.Close()

	ui.PrintSuccessf("%s waiting for files in room %s", ui.IconReceive, roomID)

	session := newRoomSession(conn, cfg, false, flagCount)
	session.run()

	if flagCount > 0 && session.received < flagCount {
		ui.PrintWarning("connection closed before all files arrived")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(receiveCmd)

	receiveCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Directory for received files")
	receiveCmd.Flags().IntVar(&flagCount, "count", 0, "Exit after receiving this many files")
}
