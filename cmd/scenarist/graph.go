package main

import (
	"fmt"

	"github.com/aretw0/scenarist/internal/presentation/graph"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var graphCmd = &cobra.Command{
	Use:   "graph [file]",
	Short: "Export the step flow of a scenario as a Mermaid diagram",
	Long: `Reads a scenario export ({"steps": [...]}) from the file or stdin and outputs
a Mermaid diagram (graph TD) of the transitions between its steps.
The data of each step may be a JSON object or a string holding one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		steps, err := parseScenarioSteps(text)
		if err != nil {
			return err
		}
		current, _ := cmd.Flags().GetInt("current")
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(steps, &graph.Overlay{Current: current}))
		return nil
	},
}

func parseScenarioSteps(text string) ([]domain.Step, error) {
	if !gjson.Valid(text) {
		return nil, errMalformed
	}
	doc := gjson.Parse(text)
	list := doc.Get("steps")
	if doc.IsArray() {
		list = doc
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: expected a steps array", domain.ErrUnexpectedResponse)
	}

	var steps []domain.Step
	list.ForEach(func(_, s gjson.Result) bool {
		data := s.Get("data")
		raw := data.Raw
		if data.Type == gjson.String {
			raw = data.String()
		}
		active := s.Get("is_active")
		steps = append(steps, domain.Step{
			ID:       s.Get("id").String(),
			Name:     s.Get("name").String(),
			StepType: domain.StepType(s.Get("step_type").String()),
			Order:    int(s.Get("order").Int()),
			Data:     raw,
			IsActive: !active.Exists() || active.Bool(),
		})
		return true
	})
	return steps, nil
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Int("current", 0, "Order of the step to highlight")
}
