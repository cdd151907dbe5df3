package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/identity"
	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/utils"
	"github.com/MKhiriev/go-site-forms/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client  *utils.HTTPClient
	baseURL string

	mu      sync.RWMutex
	token   string
	session string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
// adapterCfg.HTTPAddress may be a full URL or a bare "host:port".
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(adapterCfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	return &httpServerAdapter{client: client, baseURL: baseURL, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) SetSession(value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = strings.TrimSpace(value)
}

// Login posts the credentials to POST /api/admin/login and keeps the bearer
// token from the Authorization response header.
func (h *httpServerAdapter) Login(ctx context.Context, admin models.Admin) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(admin).
		Post("/api/admin/login")
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return nil
}

func (h *httpServerAdapter) GetForm(ctx context.Context, pageKey string) (models.Form, error) {
	var response models.FormResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("pageKey", pageKey).
		SetResult(&response).
		Get("/forms/{pageKey}")
	if err != nil {
		return models.Form{}, fmt.Errorf("get form request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Form{}, err
	}

	return response.Form, nil
}

func (h *httpServerAdapter) ListForms(ctx context.Context) ([]models.Form, error) {
	var response models.FormsResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&response).
		Get("/forms")
	if err != nil {
		return nil, fmt.Errorf("list forms request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return response.Forms, nil
}

func (h *httpServerAdapter) SaveForm(ctx context.Context, pageKey string, request models.SaveFormRequest) (int64, error) {
	var response models.SaveFormResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("pageKey", pageKey).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&response).
		Put("/forms/{pageKey}")
	if err != nil {
		return 0, fmt.Errorf("save form request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return response.Version, nil
}

func (h *httpServerAdapter) Submit(ctx context.Context, pageKey string, data models.SubmissionData) error {
	req := h.client.R().
		SetContext(ctx).
		SetPathParam("pageKey", pageKey).
		SetHeader("Content-Type", "application/json").
		SetBody(models.SubmitRequest{Data: data})

	h.mu.RLock()
	if h.session != "" {
		req.SetCookie(&http.Cookie{Name: identity.SessionCookieName, Value: h.session})
	}
	h.mu.RUnlock()

	resp, err := req.Post("/forms/{pageKey}/submit")
	if err != nil {
		return fmt.Errorf("submit request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) GetContent(ctx context.Context, pageKey string, l locale.Locale) (models.PageContent, error) {
	var content models.PageContent

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("pageKey", pageKey).
		SetQueryParam("locale", l.String()).
		SetResult(&content).
		Get("/content/{pageKey}")
	if err != nil {
		return models.PageContent{}, fmt.Errorf("get content request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PageContent{}, err
	}

	return content, nil
}

func (h *httpServerAdapter) SignInURL(pageKey string, l locale.Locale) string {
	q := url.Values{}
	q.Set("locale", l.String())
	q.Set("pageKey", pageKey)
	return h.baseURL + "/auth/google?" + q.Encode()
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
