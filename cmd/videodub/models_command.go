package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"videodub/internal/estimate"
	"videodub/internal/modelselect"
)

func newModelsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List Whisper model classes and the recommendation for this host",
		RunE: func(cmd *cobra.Command, args []string) error {
			factors := estimate.ModelFactors()
			rows := make([][]string, 0, len(factors))
			for _, model := range modelselect.ModelClasses() {
				factor, ok := factors[model]
				if !ok {
					continue
				}
				rows = append(rows, []string{model, fmt.Sprintf("%.1fx realtime", factor)})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Model", "Transcription cost"}, rows, 2))

			resources := modelselect.DetectResources(cmd.Context())
			model, device := modelselect.Choose(resources)
			fmt.Fprintf(out, "\nRecommended for this host: %s on %s\n", model, device)
			return nil
		},
	}
}
