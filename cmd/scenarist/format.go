package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/scenarist"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/jsonfield"
	"github.com/aretw0/scenarist/pkg/notify"
	"github.com/spf13/cobra"
)

var errMalformed = errors.New("data is not valid JSON")

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Pretty-print step data with 2-space indentation",
	Long:  `Reads step data from the file or stdin and prints it formatted. Key order is preserved.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		auth, err := scenarist.New(authoringOptions(cfg, nil, nil, nil)...)
		if err != nil {
			return err
		}

		out, err := auth.Format(text)
		if err != nil {
			notify.NewTerminal(cmd.ErrOrStderr()).Show(jsonfield.MsgParseFailed+err.Error(), domain.SeverityError)
			return errMalformed
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Report whether step data is empty, valid or malformed JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		v := jsonfield.Validate(text)
		fmt.Fprintln(cmd.OutOrStdout(), v)
		if v == jsonfield.Malformed {
			return errMalformed
		}
		return nil
	},
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return jsonfield.Sanitize(string(data))
}

func init() {
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(validateCmd)
}
