package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWordsCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Dictionary commands",
	}

	cmd.AddCommand(newWordsLoadCmd(cfg))
	cmd.AddCommand(newWordsCheckCmd(cfg))

	return cmd
}

func newWordsLoadCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Import a word list into dictionary storage",
		Long: `Import a word list into dictionary storage, replacing what is there.
With redis storage the words are then available to every later command
without --dictionary.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			local := *cfg
			local.Dictionary = ""
			app, err := newApp(cmd, &local)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			words, err := app.DictionaryService.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := newOutput(cmd, cfg)
			if out.JSON() {
				out.Print(map[string]any{"storage": cfg.Storage, "words": len(words)})
				return nil
			}
			out.PrintMessage(fmt.Sprintf("Imported %d words into %s storage", len(words), cfg.Storage))
			return nil
		},
	}
}

func newWordsCheckCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check <word>...",
		Short: "Check words against the dictionary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			results := make(map[string]bool, len(args))
			out := newOutput(cmd, cfg)
			for _, word := range args {
				valid, err := app.DictionaryService.WordIsValid(cmd.Context(), word)
				if err != nil {
					return err
				}
				results[word] = valid
				if !out.JSON() {
					verdict := "not a word"
					if valid {
						verdict = "valid"
					}
					out.PrintMessage(fmt.Sprintf("%s: %s", word, verdict))
				}
			}

			if out.JSON() {
				out.Print(results)
			}
			return nil
		},
	}
}
