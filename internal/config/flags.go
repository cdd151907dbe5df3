package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress is the -a flag value.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-public-url externally visible site URL
//	-d database DSN
//	-u upload directory
//	-drafts client draft database file
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-session-sign-key visitor session signing key
//	-locale default locale ("en" or "hy")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-google-client-id Google OAuth client id
//	-google-client-secret Google OAuth client secret
//	-api client API address
//	-shared-keys comma separated locale-shared content keys
//	-page page key the client wizard opens
//	-sign-in require Google sign-in before the client wizard
//	-admin-login admin login of the schema publishing tool
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var publicURL string
	var databaseDSN string
	var uploadDir string
	var draftsDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var sessionSignKey string
	var defaultLocale string
	var requestTimeout time.Duration
	var clientID string
	var clientSecret string
	var apiAddress string
	var sharedKeys string
	var pageKey string
	var requireSignIn bool
	var adminLogin string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&publicURL, "public-url", "", "Public site URL")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&uploadDir, "u", "", "Upload directory")
	flag.StringVar(&draftsDSN, "drafts", "", "Client drafts database file")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.StringVar(&sessionSignKey, "session-sign-key", "", "Visitor session signing key")
	flag.StringVar(&defaultLocale, "locale", "", "Default locale (en, hy)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&clientID, "google-client-id", "", "Google OAuth client id")
	flag.StringVar(&clientSecret, "google-client-secret", "", "Google OAuth client secret")
	flag.StringVar(&apiAddress, "api", "", "API address used by the client")
	flag.StringVar(&sharedKeys, "shared-keys", "", "Comma separated locale-shared content keys")
	flag.StringVar(&pageKey, "page", "", "Page key of the client wizard")
	flag.BoolVar(&requireSignIn, "sign-in", false, "Require Google sign-in before the client wizard")
	flag.StringVar(&adminLogin, "admin-login", "", "Admin login of the schema publishing tool")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:   tokenSignKey,
			TokenIssuer:    tokenIssuer,
			TokenDuration:  tokenDuration,
			SessionSignKey: sessionSignKey,
			DefaultLocale:  defaultLocale,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Files: Files{
				UploadDir: uploadDir,
			},
			Drafts: Drafts{
				DSN: draftsDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			PublicURL:      publicURL,
		},
		OAuth: OAuth{
			ClientID:     clientID,
			ClientSecret: clientSecret,
		},
		Adapter: Adapter{
			HTTPAddress:    apiAddress,
			RequestTimeout: requestTimeout,
		},
		Content: Content{
			SharedKeys: splitList(sharedKeys),
		},
		Wizard: Wizard{
			PageKey:       pageKey,
			RequireSignIn: requireSignIn,
		},
		Admin: Admin{
			Login: adminLogin,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns the address as host:port, bracketing IPv6 hosts. An unset
// address is the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set implements flag.Value. The host must be an IP address, "localhost" or
// empty (all interfaces), and the port must fit in 1..65535.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("need address in a form `host:port`: %w", err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("invalid port %q", rawPort)
	}
	if port < 1 || port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	if host != "localhost" && host != "" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
