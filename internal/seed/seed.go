// Package seed loads the curated style templates into the style catalog.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/promptiverse/internal/styles"
)

const maxWorkers = 4

//go:embed styles.yaml
var catalog []byte

// Template is one curated style profile as written in styles.yaml.
type Template struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Tags        []string       `yaml:"tags"`
	Style       map[string]any `yaml:"style"`
	Intent      map[string]any `yaml:"intent"`
	Negative    map[string]any `yaml:"negative"`
}

// Summary reports the outcome of a seeding run.
type Summary struct {
	Seeded  int `json:"seeded"`
	Skipped int `json:"skipped"`
}

// Templates decodes the embedded curated catalog.
func Templates() ([]Template, error) {
	var doc struct {
		Templates []Template `yaml:"templates"`
	}
	if err := yaml.Unmarshal(catalog, &doc); err != nil {
		return nil, fmt.Errorf("decode style templates: %w", err)
	}
	return doc.Templates, nil
}

// Command converts the template into a create command flagged as a template.
func (t Template) Command() (styles.CreateCommand, error) {
	style, err := marshal(t.Style)
	if err != nil {
		return styles.CreateCommand{}, fmt.Errorf("%s: style: %w", t.ID, err)
	}
	intent, err := marshal(t.Intent)
	if err != nil {
		return styles.CreateCommand{}, fmt.Errorf("%s: intent: %w", t.ID, err)
	}
	negative, err := marshal(t.Negative)
	if err != nil {
		return styles.CreateCommand{}, fmt.Errorf("%s: negative: %w", t.ID, err)
	}

	id := t.ID
	return styles.CreateCommand{
		ID:          &id,
		Name:        t.Name,
		Description: t.Description,
		Tags:        t.Tags,
		Style:       style,
		Intent:      intent,
		Negative:    negative,
		IsTemplate:  true,
	}, nil
}

// Run creates every curated template that is not already present.
// Templates found by id are skipped, so repeated runs are harmless.
func Run(ctx context.Context, sys styles.System, logger *slog.Logger) (Summary, error) {
	logger = logger.With("system", "seed")

	templates, err := Templates()
	if err != nil {
		return Summary{}, err
	}

	var seeded, skipped atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(len(templates), maxWorkers))

	for _, t := range templates {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			_, err := sys.Find(gctx, t.ID)
			switch {
			case err == nil:
				skipped.Add(1)
				logger.Debug("template present", "id", t.ID)
				return nil
			case !errors.Is(err, styles.ErrNotFound):
				return fmt.Errorf("find %s: %w", t.ID, err)
			}

			cmd, err := t.Command()
			if err != nil {
				return err
			}

			if _, err := sys.Create(gctx, cmd); err != nil {
				if errors.Is(err, styles.ErrDuplicate) {
					skipped.Add(1)
					return nil
				}
				return fmt.Errorf("create %s: %w", t.ID, err)
			}

			seeded.Add(1)
			return nil
		})
	}

	err = g.Wait()
	summary := Summary{Seeded: int(seeded.Load()), Skipped: int(skipped.Load())}
	if err != nil {
		return summary, fmt.Errorf("seed style templates: %w", err)
	}

	logger.Info("style templates seeded", "seeded", summary.Seeded, "skipped", summary.Skipped)
	return summary, nil
}

func marshal(v map[string]any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
