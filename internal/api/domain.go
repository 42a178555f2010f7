package api

import (
	"github.com/JaimeStill/promptiverse/internal/prompts"
	"github.com/JaimeStill/promptiverse/internal/styles"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Styles  styles.System
	Prompts prompts.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	stylesSystem := styles.New(
		styles.NewRepository(runtime.Database.Connection()),
		runtime.Schemas,
		runtime.Logger,
		runtime.Pagination.Styles,
	)

	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination.Prompts,
	)

	return &Domain{
		Styles:  stylesSystem,
		Prompts: promptsSystem,
	}
}
