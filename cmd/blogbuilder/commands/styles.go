package commands

import (
	"fmt"

	"git.home.luguber.info/inful/blogbuilder/internal/highlight"
)

// StylesCmd implements the 'styles' command.
type StylesCmd struct{}

func (s *StylesCmd) Run(g *Global) error {
	for _, name := range highlight.StyleNames() {
		if _, err := fmt.Fprintln(g.Stdout, name); err != nil {
			return err
		}
	}
	return nil
}
