package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"blob-manager/feature/blob"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// blobCmd groups the blob commands
var blobCmd = &cobra.Command{
	Use:   "blob",
	Short: "Manage blobs inside a container",
}

var blobUploadCmd = &cobra.Command{
	Use:   "upload <container> <name> [file]",
	Short: "Upload a file, stdin or --text as a blob",
	Long:  `Uploads the given file, or standard input when the file is "-" or omitted. With --text the flag value is uploaded as UTF-8 text instead.`,
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		noOverwrite, _ := cmd.Flags().GetBool("no-overwrite")
		opt := blob.WithOverwrite(!noOverwrite)

		svc, logg, err := newService(cmd.Context())
		if err != nil {
			return err
		}

		var b *blob.Blob
		if cmd.Flags().Changed("text") {
			text, _ := cmd.Flags().GetString("text")
			b, err = svc.UploadText(cmd.Context(), args[0], args[1], text, opt)
		} else {
			var data []byte
			data, err = readInput(cmd, args[2:])
			if err != nil {
				return err
			}
			b, err = svc.UploadBlob(cmd.Context(), args[0], args[1], data, opt)
		}
		if err != nil {
			return fmt.Errorf("failed to upload blob: %w", err)
		}

		logg.Info("Blob uploaded", zap.String("container", b.Container), zap.String("blob", b.Name))
		return nil
	},
}

var blobDownloadCmd = &cobra.Command{
	Use:   "download <container> <name>",
	Short: "Download a blob to stdout or --output",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService(cmd.Context())
		if err != nil {
			return err
		}

		data, err := svc.DownloadBlob(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to download blob: %w", err)
		}

		if output, _ := cmd.Flags().GetString("output"); output != "" {
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			return nil
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var blobCatCmd = &cobra.Command{
	Use:   "cat <container> <name>",
	Short: "Print a blob decoded as text",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		encoding, _ := cmd.Flags().GetString("encoding")

		svc, _, err := newService(cmd.Context())
		if err != nil {
			return err
		}

		text, err := svc.GetBlobAsText(cmd.Context(), args[0], args[1], encoding)
		if err != nil {
			return fmt.Errorf("failed to read blob: %w", err)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), text)
		return err
	},
}

var blobExistsCmd = &cobra.Command{
	Use:   "exists <container> <name>",
	Short: "Print whether a blob exists",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService(cmd.Context())
		if err != nil {
			return err
		}

		exists, err := svc.BlobExists(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to check blob: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(exists))
		return nil
	},
}

var blobDeleteCmd = &cobra.Command{
	Use:   "delete <container> <name>",
	Short: "Delete a blob",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newService(cmd.Context())
		if err != nil {
			return err
		}

		if err := svc.DeleteBlob(cmd.Context(), args[0], args[1]); err != nil {
			return fmt.Errorf("failed to delete blob: %w", err)
		}
		logg.Info("Blob deleted", zap.String("container", args[0]), zap.String("blob", args[1]))
		return nil
	},
}

var blobListCmd = &cobra.Command{
	Use:   "list <container>",
	Short: "List blob names, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService(cmd.Context())
		if err != nil {
			return err
		}

		names, err := svc.ListBlobs(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list blobs: %w", err)
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var blobStatCmd = &cobra.Command{
	Use:   "stat <container> <name>",
	Short: "Print blob properties as JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService(cmd.Context())
		if err != nil {
			return err
		}

		info, err := svc.BlobProperties(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to stat blob: %w", err)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	},
}

// readInput reads the named file, or the command's stdin for "-" or no file.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return data, nil
}

func init() {
	blobUploadCmd.Flags().String("text", "", "Upload this text instead of a file")
	blobUploadCmd.Flags().Bool("no-overwrite", false, "Fail if the blob already exists")
	blobDownloadCmd.Flags().StringP("output", "o", "", "Write content to this file")
	blobCatCmd.Flags().StringP("encoding", "e", "utf-8", "Character encoding of the blob")

	blobCmd.AddCommand(blobUploadCmd, blobDownloadCmd, blobCatCmd, blobExistsCmd,
		blobDeleteCmd, blobListCmd, blobStatCmd)
	RootCmd.AddCommand(blobCmd)
}
