package commands

import (
	"fmt"

	"github.com/admin-esegames/esegames-site/internal/config"
	"github.com/admin-esegames/esegames-site/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	out := g.out()
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "initialization failed").
			WithContext("path", root.Config).
			Build()
	}
	_, _ = fmt.Fprintf(out, "Set %s and %s (or %s) before running a build\n",
		config.EnvSpaceID, config.EnvAccessToken, config.EnvDeliveryToken)
	return nil
}
