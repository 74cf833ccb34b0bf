// Package tx implements the translation-service client (C15): init,
// configure, and pull against a Transifex-like HTTP service. Grounded on the
// pack's resty usage pattern, with no teacher precedent (lazydocker has no
// translation service); API-key fallback to the TX_API_KEY environment
// variable follows the same env-fallback convention used by internal/pr for
// GitHub tokens.
package tx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"github.com/jesseduffield/yaml"
	"github.com/sirupsen/logrus"

	moberrors "github.com/ModOrganizer2/mob/internal/errors"
)

// Client talks to the translation service.
type Client struct {
	HTTP       *resty.Client
	APIKey     string
	BaseURL    string
	Log        *logrus.Entry
	MinPercent int
	Force      bool
}

// Resource describes one `.tx/config` stanza.
type Resource struct {
	Slug       string `yaml:"slug"`
	SourceFile string `yaml:"source_file"`
	SourceLang string `yaml:"source_lang"`
	Type       string `yaml:"type"`
}

type txConfig struct {
	Main struct {
		Host string `yaml:"host"`
	} `yaml:"main"`
	Resources map[string]Resource `yaml:"resources"`
}

func resolveAPIKey(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv("TX_API_KEY")
}

func NewClient(apiKey, baseURL string, log *logrus.Entry) *Client {
	return &Client{
		HTTP:    resty.New().SetBaseURL(baseURL).SetAuthToken(resolveAPIKey(apiKey)),
		APIKey:  resolveAPIKey(apiKey),
		BaseURL: baseURL,
		Log:     log,
	}
}

func configPath(root string) string {
	return filepath.Join(root, ".tx", "config")
}

// Init creates the `.tx/config` control file idempotently.
func (c *Client) Init(root string) error {
	path := configPath(root)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return moberrors.IO("failed to create .tx directory", err)
	}
	cfg := txConfig{Resources: map[string]Resource{}}
	cfg.Main.Host = c.BaseURL
	return writeConfig(path, cfg)
}

// Configure appends or updates a per-resource stanza.
func (c *Client) Configure(root string, resource Resource) error {
	path := configPath(root)
	cfg, err := readConfig(path)
	if err != nil {
		return err
	}
	if cfg.Resources == nil {
		cfg.Resources = map[string]Resource{}
	}
	cfg.Resources[resource.Slug] = resource
	return writeConfig(path, cfg)
}

// Pull downloads translations for resource whose completion is at least
// MinPercent, skipping a resource whose destination file already exists
// unless Force is set. No revision comparison is made.
func (c *Client) Pull(root, slug, lang, destFile string) error {
	progress, err := c.resourcePercent(slug, lang)
	if err != nil {
		return err
	}
	if progress < c.MinPercent {
		c.Log.Infof("tx: skipping %s/%s, %d%% < minimum %d%%", slug, lang, progress, c.MinPercent)
		return nil
	}
	if !c.Force {
		if _, statErr := os.Stat(destFile); statErr == nil {
			c.Log.Debugf("tx: %s already present, skipping (use force to refresh)", destFile)
			return nil
		}
	}

	resp, err := c.HTTP.R().
		SetPathParams(map[string]string{"slug": slug, "lang": lang}).
		SetOutput(destFile).
		Get("/api/2/project/resource/{slug}/translation/{lang}/")
	if err != nil {
		return moberrors.Network("translation pull failed", err)
	}
	if resp.IsError() {
		return moberrors.Network(fmt.Sprintf("translation pull returned status %d", resp.StatusCode()), nil)
	}
	return nil
}

func (c *Client) resourcePercent(slug, lang string) (int, error) {
	type statsResponse struct {
		Completed string `json:"completed"`
	}
	var stats statsResponse
	resp, err := c.HTTP.R().
		SetPathParams(map[string]string{"slug": slug, "lang": lang}).
		SetResult(&stats).
		Get("/api/2/project/resource/{slug}/stats/{lang}/")
	if err != nil {
		return 0, moberrors.Network("failed to fetch translation stats", err)
	}
	if resp.IsError() {
		return 0, moberrors.Network(fmt.Sprintf("stats request returned status %d", resp.StatusCode()), nil)
	}
	percent := 0
	fmt.Sscanf(stats.Completed, "%d%%", &percent)
	return percent, nil
}

func readConfig(path string) (txConfig, error) {
	var cfg txConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return txConfig{Resources: map[string]Resource{}}, nil
		}
		return cfg, moberrors.IO("failed to read .tx/config", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, moberrors.Config("failed to parse .tx/config", err)
	}
	return cfg, nil
}

func writeConfig(path string, cfg txConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return moberrors.Config("failed to serialize .tx/config", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return moberrors.IO("failed to write .tx/config", err)
	}
	return nil
}
