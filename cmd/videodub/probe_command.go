package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"videodub/internal/captions"
	"videodub/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <video>",
		Short: "Inspect a media file's container and streams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderProbe(result))
			return nil
		},
	}
}

func renderProbe(result ffprobe.Result) string {
	rows := make([][]string, 0, len(result.Streams))
	for _, stream := range result.Streams {
		rows = append(rows, []string{
			strconv.Itoa(stream.Index),
			stream.CodecType,
			stream.CodecName,
			streamDetail(stream),
			streamDuration(stream),
		})
	}
	out := renderTable([]string{"#", "Type", "Codec", "Detail", "Duration"}, rows, 1)

	duration := result.ContainerDurationSeconds()
	if duration == 0 {
		duration = result.StreamDurationSeconds()
	}
	out += fmt.Sprintf("\nFormat:   %s\n", result.Format.FormatName)
	out += fmt.Sprintf("Duration: %s\n", captions.FormatTimestamp(duration))
	out += fmt.Sprintf("Size:     %s", humanSize(result.SizeBytes()))
	return out
}

func streamDetail(stream ffprobe.Stream) string {
	switch stream.CodecType {
	case "video":
		if stream.Width > 0 && stream.Height > 0 {
			return fmt.Sprintf("%dx%d", stream.Width, stream.Height)
		}
	case "audio":
		if stream.SampleRate != "" {
			return fmt.Sprintf("%s Hz, %d ch", stream.SampleRate, stream.Channels)
		}
	}
	return ""
}

func streamDuration(stream ffprobe.Stream) string {
	if stream.Duration == "" {
		return ""
	}
	seconds, err := strconv.ParseFloat(stream.Duration, 64)
	if err != nil {
		return stream.Duration
	}
	return captions.FormatTimestamp(seconds)
}

func humanSize(bytes int64) string {
	const (
		kib = int64(1) << 10
		mib = int64(1) << 20
		gib = int64(1) << 30
	)
	switch {
	case bytes >= gib:
		return fmt.Sprintf("%.2f GiB", float64(bytes)/float64(gib))
	case bytes >= mib:
		return fmt.Sprintf("%.1f MiB", float64(bytes)/float64(mib))
	case bytes >= kib:
		return fmt.Sprintf("%.1f KiB", float64(bytes)/float64(kib))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
