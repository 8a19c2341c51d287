package commands

import (
	"fmt"
	"os"
	"path"

	"git.home.luguber.info/inful/wikicheck/internal/config"
	"git.home.luguber.info/inful/wikicheck/internal/wikifs"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	Kind string `arg:"" optional:"" default:"articles" help:"What to list (articles, translations, or news)" enum:"articles,translations,news"`
}

// Run executes the list command.
func (l *ListCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if root.Root != "" {
		cfg.Root = root.Root
	}

	tree, err := wikifs.NewTree(cfg.Root)
	if err != nil {
		return err
	}

	switch l.Kind {
	case "translations":
		for _, p := range tree.Translations() {
			name := wikifs.LanguageName(path.Base(p))
			fmt.Fprintf(os.Stdout, "%s\t%s\n", p, name)
		}
	case "news":
		for _, p := range tree.NewsPosts() {
			fmt.Fprintln(os.Stdout, p)
		}
	default:
		for _, p := range tree.Articles() {
			fmt.Fprintln(os.Stdout, p)
		}
	}
	return nil
}
