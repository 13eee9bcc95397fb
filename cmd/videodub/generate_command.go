package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"videodub/internal/extract"
	"videodub/internal/logging"
	"videodub/internal/modelselect"
	"videodub/internal/pipeline"
	"videodub/internal/services/opusmt"
	"videodub/internal/services/whisper"
	"videodub/internal/translate"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var srcLang string
	var tgtLang string
	var useEnglishIntermediate bool
	var modelFlag string
	var deviceFlag string

	cmd := &cobra.Command{
		Use:   "generate <video>",
		Short: "Transcribe and translate a video into an SRT subtitle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			src := firstNonEmpty(srcLang, cfg.Languages.DefaultSource)
			tgt := firstNonEmpty(tgtLang, cfg.Languages.DefaultTarget)

			model := firstNonEmpty(modelFlag, cfg.Transcription.Model)
			device := firstNonEmpty(deviceFlag, cfg.Transcription.Device)
			if model == "" || device == "" {
				resources := modelselect.DetectResources(cmd.Context())
				autoModel, autoDevice := modelselect.Choose(resources)
				if model == "" {
					model = autoModel
				}
				if device == "" {
					device = autoDevice
				}
			}
			logger.Info("transcription model selected",
				logging.String("model", model),
				logging.String("device", device),
			)

			extractor := extract.NewExtractor(cfg.Paths.ScratchDir, cfg.FFmpegBinary(), logger)
			extractor.WithAudioFormat(cfg.Audio.SampleRate, cfg.Audio.Channels)

			recognizer := whisper.NewService(whisper.Config{
				Command: cfg.Transcription.Command,
				Model:   model,
				Device:  device,
			})
			chain := translate.NewChain(opusmt.New(cfg.Translation.Command).Loader(), logger)

			intermediate := cfg.Translation.UseEnglishIntermediate
			if cmd.Flags().Changed("use-en-as-intermediate") {
				intermediate = useEnglishIntermediate
			}

			runner := pipeline.NewRunner(pipeline.Options{
				Extractor:     extractor,
				Transcriber:   recognizer,
				Translator:    chain,
				ModelClass:    model,
				FFprobeBinary: cfg.FFprobeBinary(),
				ConsoleOut:    cmd.ErrOrStderr(),
				Logger:        logger,
			})

			output, err := runner.Generate(cmd.Context(), pipeline.Request{
				VideoPath:              args[0],
				SourceLang:             src,
				TargetLang:             tgt,
				UseEnglishIntermediate: intermediate,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Subtitles written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&srcLang, "src-lang", "", "Spoken language of the video (defaults to languages.default_source)")
	cmd.Flags().StringVar(&tgtLang, "tgt-lang", "", "Subtitle language to produce (defaults to languages.default_target)")
	cmd.Flags().BoolVar(&useEnglishIntermediate, "use-en-as-intermediate", false, "Route translation through English when no direct model pair exists")
	cmd.Flags().StringVar(&modelFlag, "model", "", "Whisper model class (defaults to host-based selection)")
	cmd.Flags().StringVar(&deviceFlag, "device", "", "Compute device, cpu or cuda (defaults to host-based selection)")

	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
