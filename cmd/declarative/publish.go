package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/declarative/pkg/snapshot"
)

const publishTimeout = 30 * time.Second

func publishCmd(flags *globalFlags) *cobra.Command {
	var (
		name string
		sets []string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Render the dashboard and upload it to S3",
		Long: `Render the dashboard with the given signals and upload the HTML to
the bucket configured under "snapshot" in declarative.json.

Credentials come from the default AWS chain: environment variables,
shared config and credentials files (AWS_PROFILE), then instance roles.

Examples:
  declarative publish --name signed-out
  declarative publish --name admin --set loggedIn=true --set admin=true`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := cfg.ValidateSnapshot(); err != nil {
				return err
			}

			page, err := renderDemo(cfg, sets)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), publishTimeout)
			defer cancel()

			client, err := snapshot.NewS3Client(ctx, cfg.Snapshot)
			if err != nil {
				return err
			}
			pub := snapshot.New(client, cfg.Snapshot.Bucket, cfg.Snapshot.Prefix,
				snapshot.WithLogger(logger),
				snapshot.WithTracerName(cfg.Tracing.TracerName),
			)
			key, err := pub.Publish(ctx, name, page.HTML)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Published s3://%s/%s (branch %s)", cfg.Snapshot.Bucket, key, page.Selected)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "snapshot", "Snapshot name")
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "Signal assignment name=true|false|toggle (repeatable)")

	return cmd
}

func snapshotsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshots",
		Short: "List published snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := cfg.ValidateSnapshot(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), publishTimeout)
			defer cancel()

			client, err := snapshot.NewS3Client(ctx, cfg.Snapshot)
			if err != nil {
				return err
			}
			pub := snapshot.New(client, cfg.Snapshot.Bucket, cfg.Snapshot.Prefix,
				snapshot.WithLogger(logger),
				snapshot.WithTracerName(cfg.Tracing.TracerName),
			)
			list, err := pub.List(ctx)
			if err != nil {
				return err
			}
			for _, s := range list {
				info(cmd.OutOrStdout(), "%-32s %8d  %s", s.Name, s.Size, s.LastModified.Format(time.RFC3339))
			}
			return nil
		},
	}
}
