package main

import (
	"fmt"

	"github.com/aretw0/scenarist"
	"github.com/aretw0/scenarist/internal/presentation/tui"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the step types and their starter data",
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := scenarist.New(authoringOptions(cfg, nil, nil, nil)...)
		if err != nil {
			return err
		}
		md, err := tui.TemplatesMarkdown(auth.Templates())
		if err != nil {
			return err
		}
		return render(cmd, md)
	},
}

var templateCmd = &cobra.Command{
	Use:   "template <step-type>",
	Short: "Print the starter data of one step type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stepType, err := domain.ParseStepType(args[0])
		if err != nil {
			return err
		}
		auth, err := scenarist.New(authoringOptions(cfg, nil, nil, nil)...)
		if err != nil {
			return err
		}
		tmpl, ok := auth.Template(stepType)
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnknownStepType, args[0])
		}

		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			doc, err := tmpl.Document()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return nil
		}
		md, err := tui.TemplateMarkdown(tmpl)
		if err != nil {
			return err
		}
		return render(cmd, md)
	},
}

func render(cmd *cobra.Command, md string) error {
	out, err := tui.NewRenderer()(md)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(templateCmd)
	templateCmd.Flags().Bool("raw", false, "Print only the JSON document")
}
