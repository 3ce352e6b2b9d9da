// Package main writes the static wedding.ics calendar file at build time and
// optionally publishes it to the photo bucket.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/uyenbatu/wedding-backend/config"
	"github.com/uyenbatu/wedding-backend/internal/calendar"
	"github.com/uyenbatu/wedding-backend/internal/logging"
	"github.com/uyenbatu/wedding-backend/pkg/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:          "wedding-ics",
		Short:        "Write the static wedding.ics calendar file",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("output", "", "Output path (default ICS_OUTPUT_PATH or public/wedding.ics)")
	cmd.Flags().String("event", "", "Event config file (default EVENT_CONFIG_PATH or the embedded event)")
	cmd.Flags().String("uid-domain", "", "Domain used in the calendar UID (default ICS_UID_DOMAIN)")
	cmd.Flags().Bool("upload", false, "Also upload the file to the photo bucket")
	cmd.Flags().String("key", "", "Object key for --upload (default the output file name)")

	for _, name := range []string{"output", "event", "uid-domain", "upload", "key"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			panic(err)
		}
	}
	return cmd
}

func run(ctx context.Context, v *viper.Viper, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if eventPath := v.GetString("event"); eventPath != "" {
		event, emailCopy, err := config.LoadEvent(eventPath)
		if err != nil {
			return err
		}
		cfg.Event, cfg.Copy = event, emailCopy
	}

	output := cfg.Calendar.OutputPath
	if o := v.GetString("output"); o != "" {
		output = o
	}
	uidDomain := cfg.Calendar.UIDDomain
	if d := v.GetString("uid-domain"); d != "" {
		uidDomain = d
	}

	if _, err := calendar.NewBuilder(cfg.Event, uidDomain).WriteStatic(output); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", output)

	if !v.GetBool("upload") {
		return nil
	}
	key := v.GetString("key")
	if key == "" {
		key = filepath.Base(output)
	}
	url, err := upload(ctx, cfg, output, key)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Uploaded %s\n", url)
	return nil
}

func upload(ctx context.Context, cfg *config.Config, file, key string) (string, error) {
	if err := cfg.AWS.Validate(); err != nil {
		return "", err
	}
	logger, err := logging.NewLogger(cfg.Server.LogLevel)
	if err != nil {
		return "", err
	}
	defer logger.Sync()

	s3Client, err := storage.NewS3(ctx, storage.S3Config{
		Region:          cfg.AWS.Region,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.Endpoint,
		Bucket:          cfg.AWS.PhotoBucket,
	}, logger)
	if err != nil {
		return "", err
	}

	f, err := os.Open(file)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	url, err := s3Client.Upload(ctx, key, calendar.ContentType, f)
	if err != nil {
		return "", err
	}
	logger.Info("calendar published", zap.String("bucket", s3Client.Bucket()), zap.String("key", key))
	return url, nil
}
