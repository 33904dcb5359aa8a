package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shreyansh0727/datasync/internal/client"
	"github.com/shreyansh0727/datasync/internal/files"
	"github.com/shreyansh0727/datasync/internal/transfer"
	"github.com/shreyansh0727/datasync/internal/ui"
)

var sendCmd = &cobra.Command{
	Use:     "send <room> <files...>",
	Aliases: []string{"s"},
	Short:   "Send files to everyone in a room",
	Long: `Send one or more files to every member of a room. Files are split
into chunks, relayed through the server without being stored, and
reassembled by each receiver.

Examples:
  datasync send ABCD12 report.pdf photo.jpg
  datasync send ABCD12 --server wss://sync.example.com big.iso`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendFiles(args[0], args[1:])
	},
}

func sendFiles(roomID string, filePaths []string) error {
	if flagChunkSize < 0 {
		return transfer.NewError("send", transfer.ErrInvalidChunkSize)
	}

	stopSpinner := ui.RunSpinner("Validating files...")
	fileInfos, err := files.ValidateFiles(filePaths)
	stopSpinner()
	if err != nil {
		return err
	}

	displayFileTable(fileInfos)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println()
	stopSpinner = ui.RunConnectionSpinner("Connecting to " + cfg.ServerURL + "...")
	conn, err := client.Dial(cfg.RoomURL(roomID))
	stopSpinner()
	if err != nil {
		return err
	}
	defer conn.Close()

	names := make([]string, len(fileInfos))
	sizes := make([]int64, len(fileInfos))
	for i, f := range fileInfos {
		names[i] = f.Name
		sizes[i] = f.Size
	}

	fmt.Printf("\n%s Transferring files...\n\n", ui.IconSend)

	tracker := transfer.NewProgressTracker(names, sizes)
	tracker.Start()

	progressDone := make(chan struct{})
	go transfer.RunProgressLoop(progressDone, len(fileInfos), tracker.View)

	sender := transfer.NewFileSender(conn, cfg.Name, cfg.ChunkSize)
	for i, info := range fileInfos {
		index := i
		_, err := sender.SendFile(info.Path, func(sent int64) {
			tracker.Update(index, sent)
		})
		if err != nil {
			tracker.Error(index, err.Error())
			close(progressDone)
			fmt.Println()
			return err
		}
		tracker.Complete(index)
	}

	close(progressDone)
	fmt.Println()

	transfer.RenderSummary(len(fileInfos), tracker.TotalSize(), tracker.Duration())
	return nil
}

func displayFileTable(fileInfos []files.FileInfo) {
	items := make([]ui.FileTableItem, len(fileInfos))
	for i, f := range fileInfos {
		items[i] = ui.FileTableItem{Index: i + 1, Name: f.Name, Size: f.Size, Type: f.Type}
	}
	fmt.Println()
	ui.RenderFileTable(items)
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().IntVarP(&flagChunkSize, "chunk-size", "c", 0, "Chunk size in bytes (default 262144)")
}
