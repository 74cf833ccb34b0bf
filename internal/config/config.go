// Package config implements the layered configuration tree (C11): defaults,
// auto-discovered config file, `--ini` files (later overrides earlier),
// `--set KEY=VALUE` overrides, and CLI-flag-derived overrides, merged with
// imdario/mergo's WithOverride. Grounded on the teacher's pkg/config
// app_config.go (XDG config-dir discovery, jesseduffield/yaml load), its
// single-struct-plus-defaults shape generalized to this domain's sections.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/OpenPeeDeeP/xdg"
	"github.com/imdario/mergo"
	yaml "github.com/jesseduffield/yaml"
)

// GlobalConfig holds cross-cutting options.
type GlobalConfig struct {
	Dry               bool `yaml:"dry,omitempty"`
	Redownload        bool `yaml:"redownload,omitempty"`
	Reextract         bool `yaml:"reextract,omitempty"`
	Reconfigure       bool `yaml:"reconfigure,omitempty"`
	Rebuild           bool `yaml:"rebuild,omitempty"`
	IgnoreUncommitted bool `yaml:"ignore_uncommitted,omitempty"`
}

// PathsConfig holds filesystem paths the pipeline depends on.
type PathsConfig struct {
	Prefix      string `yaml:"prefix,omitempty"`
	QtInstall   string `yaml:"qt_install,omitempty"`
	Vcpkg       string `yaml:"vcpkg,omitempty"`
	InstallLibs string `yaml:"install_libs,omitempty"`
	OutputDir   string `yaml:"output_dir,omitempty"`
}

// TaskConfig holds the default task-enable/disable gate.
type TaskConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
}

// ToolsConfig holds explicit executable overrides per tool.
type ToolsConfig struct {
	Cmake    string `yaml:"cmake,omitempty"`
	Msbuild  string `yaml:"msbuild,omitempty"`
	Git      string `yaml:"git,omitempty"`
	SevenZip string `yaml:"sevenzip,omitempty"`
	Lrelease string `yaml:"lrelease,omitempty"`
	Iscc     string `yaml:"iscc,omitempty"`
}

// CmakeConfig holds default cmake invocation parameters.
type CmakeConfig struct {
	Generator    string `yaml:"generator,omitempty"`
	Architecture string `yaml:"architecture,omitempty"`
}

// TxConfig holds the translation-service client's settings.
type TxConfig struct {
	APIKey     string `yaml:"api_key,omitempty"`
	BaseURL    string `yaml:"base_url,omitempty"`
	MinPercent int    `yaml:"min_percent,omitempty"`
}

// GithubConfig holds the GitHub PR client's target repository.
type GithubConfig struct {
	Owner string `yaml:"owner,omitempty"`
	Repo  string `yaml:"repo,omitempty"`
	Token string `yaml:"token,omitempty"`
}

// Tree is the full config tree (§3's "Config tree (new, C11)").
type Tree struct {
	Global  GlobalConfig        `yaml:"global,omitempty"`
	Paths   PathsConfig         `yaml:"paths,omitempty"`
	Task    TaskConfig          `yaml:"task,omitempty"`
	Tools   ToolsConfig         `yaml:"tools,omitempty"`
	Cmake   CmakeConfig         `yaml:"cmake,omitempty"`
	Tx      TxConfig            `yaml:"tx,omitempty"`
	Github  GithubConfig        `yaml:"github,omitempty"`
	Aliases map[string][]string `yaml:"aliases,omitempty"`

	// Tasks holds per-task override sections (`tasks.<name>`), intentionally
	// loose: unknown fields are accepted rather than rejected, per
	// SPEC_FULL.md §9's preserved Open Question decision.
	Tasks map[string]map[string]any `yaml:"tasks,omitempty"`
}

func Default() Tree {
	return Tree{
		Task: TaskConfig{Enabled: true},
	}
}

func projectName() string { return "mob" }

// ConfigDir resolves the XDG config directory for this tool, mirroring the
// teacher's configDirForVendor/xdg.New usage.
func ConfigDir() string {
	if env := os.Getenv("MOB_CONFIG_DIR"); env != "" {
		return env
	}
	dirs := xdg.New("ModOrganizer2", projectName())
	return dirs.ConfigHome()
}

func defaultConfigPath() string {
	return filepath.Join(ConfigDir(), "mob.yml")
}

// Load builds the final Tree by merging, in precedence order (lowest to
// highest): defaults, auto-discovered config file (unless disabled), --ini
// files (in order, later overrides earlier), --set overrides, each merged
// right-biased via mergo.WithOverride.
func Load(iniFiles []string, noDefaultInis bool, setOverrides []string) (*Tree, []string, error) {
	tree := Default()
	var loadedFiles []string

	if !noDefaultInis {
		if path := defaultConfigPath(); fileExists(path) {
			if err := mergeFile(&tree, path); err != nil {
				return nil, nil, err
			}
			loadedFiles = append(loadedFiles, path)
		}
	}

	for _, path := range iniFiles {
		if err := mergeFile(&tree, path); err != nil {
			return nil, nil, err
		}
		loadedFiles = append(loadedFiles, path)
	}

	for _, kv := range setOverrides {
		if err := applySet(&tree, kv); err != nil {
			return nil, nil, err
		}
	}

	return &tree, loadedFiles, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func mergeFile(tree *Tree, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var overlay Tree
	if err := yaml.UnmarshalStrict(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return mergo.Merge(tree, overlay, mergo.WithOverride)
}

// applySet applies a single "section/field=value" (or "taskName:field=value"
// scoped to a named task override) scalar assignment, mirroring the
// CLI's --set flag and the build command's to_config_overrides vocabulary
// (see SPEC_FULL.md §8 S1).
func applySet(tree *Tree, kv string) error {
	parts := strings.SplitN(kv, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid --set expression %q: expected KEY=VALUE", kv)
	}
	key, value := parts[0], parts[1]

	if taskName, field, ok := strings.Cut(key, ":"); ok {
		if tree.Tasks == nil {
			tree.Tasks = map[string]map[string]any{}
		}
		if tree.Tasks[taskName] == nil {
			tree.Tasks[taskName] = map[string]any{}
		}
		tree.Tasks[taskName][field] = coerceScalar(value)
		return nil
	}

	section, field, ok := strings.Cut(key, "/")
	if !ok {
		return fmt.Errorf("invalid --set key %q: expected section/field", key)
	}

	switch section {
	case "global":
		return setGlobalField(&tree.Global, field, value)
	case "paths":
		return setPathsField(&tree.Paths, field, value)
	case "task":
		return setTaskField(&tree.Task, field, value)
	case "tools":
		return setToolsField(&tree.Tools, field, value)
	case "cmake":
		switch field {
		case "generator":
			tree.Cmake.Generator = value
		case "architecture":
			tree.Cmake.Architecture = value
		default:
			return fmt.Errorf("unknown cmake field %q", field)
		}
		return nil
	case "tx":
		return setTxField(&tree.Tx, field, value)
	case "github":
		return setGithubField(&tree.Github, field, value)
	default:
		return fmt.Errorf("unknown config section %q", section)
	}
}

func coerceScalar(value string) any {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	return value
}

func setGlobalField(g *GlobalConfig, field, value string) error {
	b, err := strconv.ParseBool(value)
	switch field {
	case "dry":
		g.Dry = b
	case "redownload":
		g.Redownload = b
	case "reextract":
		g.Reextract = b
	case "reconfigure":
		g.Reconfigure = b
	case "rebuild":
		g.Rebuild = b
	case "ignore_uncommitted":
		g.IgnoreUncommitted = b
	default:
		return fmt.Errorf("unknown global field %q", field)
	}
	return err
}

func setPathsField(p *PathsConfig, field, value string) error {
	switch field {
	case "prefix":
		p.Prefix = value
	case "qt_install":
		p.QtInstall = value
	case "vcpkg":
		p.Vcpkg = value
	case "install_libs":
		p.InstallLibs = value
	case "output_dir":
		p.OutputDir = value
	default:
		return fmt.Errorf("unknown paths field %q", field)
	}
	return nil
}

func setTaskField(t *TaskConfig, field, value string) error {
	if field != "enabled" {
		return fmt.Errorf("unknown task field %q", field)
	}
	b, err := strconv.ParseBool(value)
	t.Enabled = b
	return err
}

func setToolsField(t *ToolsConfig, field, value string) error {
	switch field {
	case "cmake":
		t.Cmake = value
	case "msbuild":
		t.Msbuild = value
	case "git":
		t.Git = value
	case "sevenzip":
		t.SevenZip = value
	case "lrelease":
		t.Lrelease = value
	case "iscc":
		t.Iscc = value
	default:
		return fmt.Errorf("unknown tools field %q", field)
	}
	return nil
}

func setTxField(t *TxConfig, field, value string) error {
	switch field {
	case "api_key":
		t.APIKey = value
	case "base_url":
		t.BaseURL = value
	case "min_percent":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		t.MinPercent = n
	default:
		return fmt.Errorf("unknown tx field %q", field)
	}
	return nil
}

func setGithubField(g *GithubConfig, field, value string) error {
	switch field {
	case "owner":
		g.Owner = value
	case "repo":
		g.Repo = value
	case "token":
		g.Token = value
	default:
		return fmt.Errorf("unknown github field %q", field)
	}
	return nil
}

// PrefixPathList builds the composite prefix-path (qt_install, vcpkg,
// install_libs, in that order, empty entries filtered) joined with the
// platform path-list separator, per SPEC_FULL.md §8 S6.
func (t *Tree) PrefixPathList(sep string) string {
	var parts []string
	for _, p := range []string{t.Paths.QtInstall, t.Paths.Vcpkg, t.Paths.InstallLibs} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, sep)
}
