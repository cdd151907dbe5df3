package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-site-forms/internal/content"
	"github.com/MKhiriev/go-site-forms/internal/locale"
	"github.com/MKhiriev/go-site-forms/internal/service"
	"github.com/MKhiriev/go-site-forms/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetContent_LocaleSources(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		acceptLanguage string
		want           locale.Locale
	}{
		{name: "query parameter", target: "/content/home?locale=hy", want: locale.Armenian},
		{name: "accept-language", target: "/content/home", acceptLanguage: "hy-AM,hy;q=0.9", want: locale.Armenian},
		{name: "query wins", target: "/content/home?locale=en", acceptLanguage: "hy", want: locale.English},
		{name: "default", target: "/content/home", want: locale.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			m.content.EXPECT().GetContent(gomock.Any(), "home", tt.want).Return(models.PageContent{
				PageKey: "home",
				Locale:  tt.want.String(),
				Data:    json.RawMessage(`{"title":"<b>x</b>"}`),
			}, nil)

			req := newRequest(t, http.MethodGet, tt.target, nil)
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			rr := serve(h, req)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), `"data":{"title":"<b>x</b>"}`)
		})
	}
}

func TestGetContentFields(t *testing.T) {
	h, m := newTestHandler(t)
	m.content.EXPECT().GetFields(gomock.Any(), "home", locale.Armenian).Return([]content.EditableField{
		{Path: "/title", Kind: "text", Value: "Բարև"},
	}, nil)

	rr := serve(h, newRequest(t, http.MethodGet, "/content/home/fields?locale=hy", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"pageKey":"home","locale":"hy","fields":[
		{"path":"/title","kind":"text","value":"Բարև","shared":false}
	]}`, rr.Body.String())
}

func TestSaveContent(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAdmin()
	m.content.EXPECT().
		SaveContent(gomock.Any(), "home", locale.Armenian, json.RawMessage(`{"title":"Բարև"}`)).
		Return(models.PageContent{PageKey: "home", Locale: "hy", Data: json.RawMessage(`{"title":"Բարև"}`)}, nil)

	rr := serve(h, newAdminRequest(t, http.MethodPut, "/content/home/hy", `{"data":{"title":"Բարև"}}`))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "hy", decodeResponse[models.PageContent](t, rr).Locale)
}

func TestSaveContent_UnsupportedLocale(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAdmin()
	m.content.EXPECT().SaveContent(gomock.Any(), "home", locale.Locale("fr"), gomock.Any()).
		Return(models.PageContent{}, service.ErrInvalidLocale)

	rr := serve(h, newAdminRequest(t, http.MethodPut, "/content/home/fr", `{"data":{}}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateContentField(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAdmin()
	m.content.EXPECT().
		UpdateField(gomock.Any(), "home", locale.English, models.ContentFieldUpdate{Path: "/hero/title", Value: "Hi"}).
		Return(models.PageContent{PageKey: "home", Locale: "en"}, nil)

	rr := serve(h, newAdminRequest(t, http.MethodPatch, "/content/home/en", `{"path":"/hero/title","value":"Hi"}`))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUpdateContentField_SharedValue(t *testing.T) {
	h, m := newTestHandler(t)
	m.expectAdmin()
	m.content.EXPECT().UpdateField(gomock.Any(), "home", locale.English, gomock.Any()).
		Return(models.PageContent{}, fmt.Errorf("%w: %w", service.ErrInvalidContent, content.ErrNotText))

	rr := serve(h, newAdminRequest(t, http.MethodPatch, "/content/home/en", `{"path":"/hero/src","value":"x"}`))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeResponse[models.ErrorResponse](t, rr).Error, content.ErrNotText.Error())
}

func TestGetContent_WrongMethod(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := serve(h, newRequest(t, http.MethodGet, "/content/home/hy", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "PUT, PATCH", rr.Header().Get("Allow"))
}
