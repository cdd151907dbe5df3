package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/content"
	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/store"
	"github.com/MKhiriev/go-site-forms/models"
)

type contentService struct {
	contentRepository store.ContentRepository
	classifier        content.Classifier

	logger *logger.Logger
}

// NewContentService returns a ContentService treating the configured shared
// keys (or [content.DefaultSharedKeys]) as locale independent.
func NewContentService(contentRepository store.ContentRepository, cfg config.Content, logger *logger.Logger) ContentService {
	return &contentService{
		contentRepository: contentRepository,
		classifier:        content.NewClassifier(cfg.SharedKeys...),
		logger:            logger,
	}
}

// GetContent returns the document of l. A page not yet translated falls back
// to the default locale.
func (c *contentService) GetContent(ctx context.Context, pageKey string, l locale.Locale) (models.PageContent, error) {
	if !ValidPageKey(pageKey) {
		return models.PageContent{}, ErrInvalidPageKey
	}
	if !locale.IsSupported(l.String()) {
		return models.PageContent{}, ErrInvalidLocale
	}

	doc, err := c.contentRepository.GetContent(ctx, pageKey, l.String())
	if errors.Is(err, store.ErrContentNotFound) && l != locale.Default {
		doc, err = c.contentRepository.GetContent(ctx, pageKey, locale.Default.String())
	}
	if err != nil {
		return models.PageContent{}, fmt.Errorf("error getting content: %w", err)
	}

	return doc, nil
}

func (c *contentService) GetFields(ctx context.Context, pageKey string, l locale.Locale) ([]content.EditableField, error) {
	doc, err := c.GetContent(ctx, pageKey, l)
	if err != nil {
		return nil, err
	}

	root, err := c.classifier.Parse(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}

	return content.Flatten(root), nil
}

// SaveContent stores data for l and merges it into the other locale: shared
// values follow data, translated text of the other locale is kept.
func (c *contentService) SaveContent(ctx context.Context, pageKey string, l locale.Locale, data json.RawMessage) (models.PageContent, error) {
	if !ValidPageKey(pageKey) {
		return models.PageContent{}, ErrInvalidPageKey
	}
	if !locale.IsSupported(l.String()) {
		return models.PageContent{}, ErrInvalidLocale
	}

	root, err := c.classifier.Parse(data)
	if err != nil {
		return models.PageContent{}, fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}

	return c.save(ctx, pageKey, l, func(map[string]models.PageContent) (*content.Node, error) {
		return root, nil
	})
}

// UpdateField replaces one text value of the document of l. The document is
// read under the same lock the result is written with.
func (c *contentService) UpdateField(ctx context.Context, pageKey string, l locale.Locale, update models.ContentFieldUpdate) (models.PageContent, error) {
	if !ValidPageKey(pageKey) {
		return models.PageContent{}, ErrInvalidPageKey
	}
	if !locale.IsSupported(l.String()) {
		return models.PageContent{}, ErrInvalidLocale
	}

	return c.save(ctx, pageKey, l, func(docs map[string]models.PageContent) (*content.Node, error) {
		doc, ok := docs[l.String()]
		if !ok {
			return nil, store.ErrContentNotFound
		}

		root, err := c.classifier.Parse(doc.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
		}
		if err = content.SetText(root, update.Path, update.Value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
		}
		return root, nil
	})
}

// save stores the tree built by edit as the document of l and merges it into
// the other locale: shared values follow the edit, translated text of the
// other locale is kept.
func (c *contentService) save(ctx context.Context, pageKey string, l locale.Locale, edit func(docs map[string]models.PageContent) (*content.Node, error)) (models.PageContent, error) {
	log := logger.FromContext(ctx).WithPage(pageKey)
	other := otherLocale(l)

	var saved models.PageContent
	err := c.contentRepository.UpdateContent(ctx, pageKey, func(docs map[string]models.PageContent) ([]models.PageContent, error) {
		root, err := edit(docs)
		if err != nil {
			return nil, err
		}

		var counterpart *content.Node
		if stored, ok := docs[other.String()]; ok {
			if counterpart, err = c.classifier.Parse(stored.Data); err != nil {
				log.Warn().Err(err).Str("locale", other.String()).Msg("stored content is unreadable, rebuilding it")
				counterpart = nil
			}
		}

		edited, err := json.Marshal(root)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
		}
		merged, err := json.Marshal(content.Merge(root, counterpart))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
		}

		saved = models.PageContent{PageKey: pageKey, Locale: l.String(), Data: edited}
		return []models.PageContent{
			saved,
			{PageKey: pageKey, Locale: other.String(), Data: merged},
		}, nil
	})
	if err != nil {
		return models.PageContent{}, fmt.Errorf("error saving content: %w", err)
	}

	log.Info().Str("locale", l.String()).Msg("content saved")
	return saved, nil
}

func otherLocale(l locale.Locale) locale.Locale {
	if l.IsSecondary() {
		return locale.English
	}
	return locale.Armenian
}
