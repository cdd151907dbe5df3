// Package publisher uploads form schemas kept as JSON files.
//
// A schema file replaces the whole step sequence of one page. The steps are
// replayed through a [builder.Builder] so the file goes through the same
// editing operations and structural validation as an interactive edit.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/MKhiriev/go-site-forms/internal/adapter"
	"github.com/MKhiriev/go-site-forms/internal/builder"
	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/models"
)

var ErrNoPageKey = errors.New("schema has no page key")

// Schema is the content of a schema file.
type Schema struct {
	PageKey string            `json:"pageKey"`
	Steps   []models.FormStep `json:"steps"`
}

// ReadSchema decodes a schema file. pageKey, when set, overrides the key
// written in the file.
func ReadSchema(r io.Reader, pageKey string) (Schema, error) {
	var s Schema
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Schema{}, fmt.Errorf("error decoding schema: %w", err)
	}

	if pageKey = strings.TrimSpace(pageKey); pageKey != "" {
		s.PageKey = pageKey
	}
	if s.PageKey == "" {
		return Schema{}, ErrNoPageKey
	}
	return s, nil
}

type Publisher struct {
	api    adapter.ServerAdapter
	ids    builder.IDGenerator
	logger *logger.Logger
}

func New(api adapter.ServerAdapter, ids builder.IDGenerator, log *logger.Logger) *Publisher {
	return &Publisher{api: api, ids: ids, logger: log}
}

// Login signs the admin in. The adapter keeps the token for later calls.
func (p *Publisher) Login(ctx context.Context, login, password string) error {
	if err := p.api.Login(ctx, models.Admin{Login: login, Password: password}); err != nil {
		return fmt.Errorf("admin login: %w", err)
	}
	return nil
}

// List returns the stored forms ordered by page key.
func (p *Publisher) List(ctx context.Context) ([]models.Form, error) {
	forms, err := p.api.ListForms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}

	slices.SortFunc(forms, func(a, b models.Form) int { return strings.Compare(a.PageKey, b.PageKey) })
	return forms, nil
}

// Check replays s into a builder without saving it.
func (p *Publisher) Check(ctx context.Context, s Schema) error {
	ids := &fileIDs{fallback: p.ids}
	b := builder.New(s.PageKey, ids, nil)
	if err := replay(b, ids, s); err != nil {
		return err
	}
	return b.Validate(ctx)
}

// Publish replaces the steps stored for s.PageKey and returns the new
// version. A page without a form gets its first version.
func (p *Publisher) Publish(ctx context.Context, s Schema) (int64, error) {
	ids := &fileIDs{fallback: p.ids}
	b, err := p.open(ctx, s.PageKey, ids)
	if err != nil {
		return 0, err
	}

	for _, step := range b.Steps() {
		if err = b.DeleteStep(step.ID); err != nil {
			return 0, err
		}
	}

	if err = replay(b, ids, s); err != nil {
		return 0, err
	}

	if err = b.Save(ctx); err != nil {
		return 0, err
	}

	p.logger.Info().
		Str("page_key", s.PageKey).
		Int64("version", b.Version()).
		Int("steps", len(s.Steps)).
		Msg("form schema published")
	return b.Version(), nil
}

func (p *Publisher) open(ctx context.Context, pageKey string, ids builder.IDGenerator) (*builder.Builder, error) {
	form, err := p.api.GetForm(ctx, pageKey)
	if errors.Is(err, adapter.ErrNotFound) {
		p.logger.Debug().Str("page_key", pageKey).Msg("no stored form, starting a new one")
		return builder.New(pageKey, ids, p.api), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load form %q: %w", pageKey, err)
	}

	return builder.FromForm(form, ids, p.api), nil
}

// replay appends the steps of s to b. Ids written in the file are kept so
// that answers stored under them stay attached to the same questions.
func replay(b *builder.Builder, ids *fileIDs, s Schema) error {
	for _, step := range s.Steps {
		ids.next = step.ID
		stepID := b.AddStep()

		err := b.UpdateStep(stepID, builder.StepPatch{Title: &step.Title, TitleHy: &step.TitleHy})
		if err != nil {
			return err
		}

		for _, field := range step.Fields {
			ids.next = field.ID
			if err = addField(b, stepID, field); err != nil {
				return fmt.Errorf("step %q: %w", step.Title, err)
			}
		}
	}
	return nil
}

func addField(b *builder.Builder, stepID string, field models.FormField) error {
	fieldID, err := b.AddField(stepID)
	if err != nil {
		return err
	}

	err = b.UpdateField(stepID, fieldID, builder.FieldPatch{
		Type:          &field.Type,
		Label:         &field.Label,
		LabelHy:       &field.LabelHy,
		Placeholder:   &field.Placeholder,
		PlaceholderHy: &field.PlaceholderHy,
		Required:      &field.Required,
		MinDate:       &field.MinDate,
		MaxDate:       &field.MaxDate,
	})
	if err != nil {
		return fmt.Errorf("field %q: %w", field.Label, err)
	}

	if field.Type != models.FieldSelect {
		return nil
	}

	for i, option := range field.Options {
		if err = b.UpdateOption(stepID, fieldID, i, option, locale.English); err != nil {
			return err
		}
	}
	for i, option := range field.OptionsHy {
		if err = b.UpdateOption(stepID, fieldID, i, option, locale.Armenian); err != nil {
			return err
		}
	}
	return nil
}

// fileIDs hands out the id set in next once, then falls back to generated
// ids for steps and fields written without one.
type fileIDs struct {
	next     string
	fallback builder.IDGenerator
}

func (g *fileIDs) Generate() string {
	if id := g.next; id != "" {
		g.next = ""
		return id
	}
	return g.fallback.Generate()
}
