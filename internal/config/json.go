package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON config files.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey   string   `json:"token_sign_key"`
		TokenIssuer    string   `json:"token_issuer"`
		TokenDuration  Duration `json:"token_duration"`
		SessionSignKey string   `json:"session_sign_key"`
		Version        string   `json:"version"`
		DefaultLocale  string   `json:"default_locale"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			UploadDir string `json:"upload_dir"`
		} `json:"files,omitempty"`

		Drafts struct {
			DSN string `json:"dsn"`
		} `json:"drafts,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		PublicURL      string   `json:"public_url"`
	} `json:"server,omitempty"`

	OAuth struct {
		ClientID     string `json:"google_client_id"`
		ClientSecret string `json:"google_client_secret"`
		RedirectURL  string `json:"redirect_url"`
		AuthURL      string `json:"auth_url"`
		TokenURL     string `json:"token_url"`
		UserInfoURL  string `json:"user_info_url"`
	} `json:"oauth,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Content struct {
		SharedKeys []string `json:"shared_keys"`
	} `json:"content,omitempty"`

	Wizard struct {
		PageKey       string `json:"page_key"`
		RequireSignIn bool   `json:"require_sign_in"`
	} `json:"wizard,omitempty"`

	Admin struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	} `json:"admin,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:   jsonCfg.App.TokenSignKey,
			TokenIssuer:    jsonCfg.App.TokenIssuer,
			TokenDuration:  time.Duration(jsonCfg.App.TokenDuration),
			SessionSignKey: jsonCfg.App.SessionSignKey,
			Version:        jsonCfg.App.Version,
			DefaultLocale:  jsonCfg.App.DefaultLocale,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				UploadDir: jsonCfg.Storage.Files.UploadDir,
			},
			Drafts: Drafts{
				DSN: jsonCfg.Storage.Drafts.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			PublicURL:      jsonCfg.Server.PublicURL,
		},
		OAuth: OAuth{
			ClientID:     jsonCfg.OAuth.ClientID,
			ClientSecret: jsonCfg.OAuth.ClientSecret,
			RedirectURL:  jsonCfg.OAuth.RedirectURL,
			AuthURL:      jsonCfg.OAuth.AuthURL,
			TokenURL:     jsonCfg.OAuth.TokenURL,
			UserInfoURL:  jsonCfg.OAuth.UserInfoURL,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Content: Content{
			SharedKeys: jsonCfg.Content.SharedKeys,
		},
		Wizard: Wizard{
			PageKey:       jsonCfg.Wizard.PageKey,
			RequireSignIn: jsonCfg.Wizard.RequireSignIn,
		},
		Admin: Admin{
			Login:    jsonCfg.Admin.Login,
			Password: jsonCfg.Admin.Password,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
