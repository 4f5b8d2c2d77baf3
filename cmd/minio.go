package cmd

import (
	"errors"
	"fmt"

	"streammusic/storage"

	"github.com/spf13/cobra"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Manage stored audio files",
}

var mediaSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Upload local audio files missing from the MinIO bucket",
	Example: `  # push everything under UPLOAD_DIR to MINIO_BUCKET
  streammusic media sync`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.MinioEnabled() {
			return errors.New("MINIO_ENDPOINT is not set")
		}
		local, err := storage.NewLocal(cfg.UploadDir)
		if err != nil {
			return err
		}
		mirror, err := storage.NewMirror(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		res, err := mirror.Sync(cmd.Context(), local)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d, unchanged %d, failed %d\n", res.Uploaded, res.Skipped, res.Failed)
		if res.Failed > 0 {
			return fmt.Errorf("%d files failed to sync", res.Failed)
		}
		return nil
	},
}

func init() {
	mediaCmd.AddCommand(mediaSyncCmd)
	rootCmd.AddCommand(mediaCmd)
}
