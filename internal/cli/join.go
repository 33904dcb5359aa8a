package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shreyansh0727/datasync/internal/client"
	"github.com/shreyansh0727/datasync/internal/ui"
)

var joinCmd = &cobra.Command{
	Use:     "join <room>",
	Aliases: []string{"j"},
	Short:   "Join a room for chat and incoming files",
	Long: `Join a room and stay connected: chat lines you type are broadcast to
the other members, their messages are printed, and any file sent to the
room is reassembled and saved locally.

Examples:
  datasync join ABCD12
  datasync join ABCD12 --name alice --output ~/Downloads`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return joinRoom(args[0])
	},
}

func joinRoom(roomID string) error {
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

	ui.PrintSuccessf("joined room %s as %s (Ctrl+D to leave)", roomID, cfg.Name)

	session := newRoomSession(conn, cfg, true, 0)
	done := make(chan struct{})
	go func() {
		session.run()
		close(done)
	}()

	// Stdin lines become chat frames until EOF closes the connection.
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			if err := conn.SendChat(cfg.Name, text); err != nil {
				return
			}
		}
		conn.Close()
	}()

	<-done
	ui.PrintInfo("disconnected")
	return nil
}

func init() {
	rootCmd.AddCommand(joinCmd)

	joinCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Directory for received files")
}
