package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyenvanduocit/tradutor/pkg/prompt"
	"github.com/nguyenvanduocit/tradutor/pkg/session"
	"github.com/nguyenvanduocit/tradutor/pkg/translator"
)

var Translate = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate text once and print the provider's markdown",
	Long: `Translate builds the same prompt as the page and prints the answer.
Without an argument the text is read from stdin.`,
	Example: `tradutor translate --to pt "Hello world"
tradutor translate --mode term run
echo "Hola" | tradutor translate --mode teach --from es --to en`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranslate,
}

func init() {
	Translate.Flags().String("mode", string(prompt.ModeGeneral), "general, term or teach")
	Translate.Flags().String("from", string(session.English), "source language: en, pt or es")
	Translate.Flags().String("to", string(session.Portuguese), "target language: en, pt or es")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	mode := prompt.Mode(mustString(cmd, "mode"))
	if !mode.Valid() {
		return fmt.Errorf("unknown mode %q", mode)
	}

	source, err := session.ParseLanguage(mustString(cmd, "from"))
	if err != nil {
		return err
	}
	target, err := session.ParseLanguage(mustString(cmd, "to"))
	if err != nil {
		return err
	}

	text, err := readText(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if text == "" {
		return errors.New("please enter text to translate")
	}

	factory, err := translator.NewFactory(cfg.Translator)
	if err != nil {
		return err
	}

	t, err := factory(cfg.APIKey)
	if err != nil {
		if errors.Is(err, translator.ErrMissingCredential) {
			return fmt.Errorf("please set your %s API key", translator.DisplayName(cfg.Translator.Provider))
		}
		return err
	}

	out, err := t.Translate(cmd.Context(), prompt.Build(mode, string(source), string(target), text))
	if err != nil {
		return describe(err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func readText(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func describe(err error) error {
	var te *translator.Error
	if errors.As(err, &te) && te.Kind == translator.KindProvider {
		return fmt.Errorf("%s API error: %s", translator.DisplayName(te.Provider), te.Message)
	}
	if errors.Is(err, context.Canceled) {
		return errors.New("translation cancelled")
	}
	return fmt.Errorf("translation error: %w", err)
}

func mustString(cmd *cobra.Command, name string) string {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(err)
	}
	return s
}
