// Package config loads and validates the walletdeck configuration.
//
// walletdeck works without any config file: the three built-in targets
// (Web UI, CLI wallet manager, contract tests) mirror the workspace
// scripts the launcher has always spawned. A walletdeck.jsonc or
// walletdeck.yaml file in the working directory can override those
// targets or add new ones; file entries merge over the built-ins by name.
//
// JSONC (JSON with Comments) is supported via github.com/tidwall/jsonc,
// so config files may carry comments and trailing commas. YAML files are
// parsed with gopkg.in/yaml.v3.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/aoi-kurokawa/walletdeck/internal/model"
)

// Config is the fully resolved launcher configuration: the ordered target
// list the menu is built from, plus the path of the file it came from
// (empty when only built-in defaults are in effect).
type Config struct {
	// Targets is the merged, validated target list in menu order.
	Targets []model.Target

	// Path is the config file that was loaded, or "" for defaults only.
	Path string

	// LogFile overrides the default walletdeck.log location.
	LogFile string
}

// TargetByName returns the target with the given name, or nil if no such
// target is configured.
func (c *Config) TargetByName(name string) *model.Target {
	for i := range c.Targets {
		if c.Targets[i].Name == name {
			return &c.Targets[i]
		}
	}
	return nil
}

// rawConfig is the on-disk shape of walletdeck.jsonc / walletdeck.yaml.
// Unknown fields are silently ignored.
type rawConfig struct {
	Targets []rawTarget `json:"targets" yaml:"targets"`
	LogFile string      `json:"logFile" yaml:"logFile"`
}

// rawTarget mirrors model.Target but keeps Kind as a plain string so an
// omitted kind can default to exec during resolution.
type rawTarget struct {
	Name        string            `json:"name" yaml:"name"`
	Label       string            `json:"label" yaml:"label"`
	Kind        string            `json:"kind" yaml:"kind"`
	Command     string            `json:"command" yaml:"command"`
	Args        []string          `json:"args" yaml:"args"`
	Dir         string            `json:"dir" yaml:"dir"`
	Image       string            `json:"image" yaml:"image"`
	Env         map[string]string `json:"env" yaml:"env"`
	EnvFile     string            `json:"envFile" yaml:"envFile"`
	InstallHint string            `json:"installHint" yaml:"installHint"`
	Port        int               `json:"port" yaml:"port"`
}

// DefaultTargets returns the built-in launch targets. These correspond to
// the three workspace scripts the launcher menu has always offered.
func DefaultTargets() []model.Target {
	return []model.Target{
		{
			Name:        "web",
			Label:       "Launch Web UI",
			Kind:        model.KindExec,
			Command:     "node",
			Args:        []string{"scripts/start-web-ui.js"},
			InstallHint: "npm install",
			Port:        3000,
			Builtin:     true,
		},
		{
			Name:        "cli",
			Label:       "Launch CLI wallet manager",
			Kind:        model.KindExec,
			Command:     "node",
			Args:        []string{"scripts/wallet-manager.js"},
			InstallHint: "npm install",
			Builtin:     true,
		},
		{
			Name:        "test",
			Label:       "Run contract tests",
			Kind:        model.KindExec,
			Command:     "node",
			Args:        []string{"scripts/contract-test.js"},
			InstallHint: "npm install",
			Builtin:     true,
		},
	}
}

// configFileNames lists the recognized config file names in priority order.
var configFileNames = []string{
	"walletdeck.jsonc",
	"walletdeck.json",
	"walletdeck.yaml",
	"walletdeck.yml",
}

// FindConfigFile searches dir for a walletdeck config file. Returns the
// path of the first match, or "" when no config file exists — running
// without a file is the normal case, not an error.
func FindConfigFile(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load resolves the launcher configuration. When path is empty the working
// directory is searched via FindConfigFile; a missing file yields the
// built-in defaults. An explicitly given path that does not exist is an
// error, since the user asked for that specific file.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		path = FindConfigFile(cwd)
	}

	if path == "" {
		return &Config{Targets: DefaultTargets()}, nil
	}

	raw, err := readConfigFile(path, explicit)
	if err != nil {
		return nil, err
	}

	targets, err := mergeTargets(DefaultTargets(), raw.Targets)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigInvalid,
			fmt.Sprintf("invalid config %s", path), err)
	}

	return &Config{Targets: targets, Path: path, LogFile: raw.LogFile}, nil
}

// readConfigFile reads and parses a config file, dispatching on the file
// extension: .yaml/.yml via yaml.v3, anything else via jsonc + encoding/json.
func readConfigFile(path string, explicit bool) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && explicit {
			return nil, model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("config file not found: %s", path), err)
		}
		return nil, model.WrapCLIError(model.ExitConfigInvalid,
			fmt.Sprintf("failed to read config %s", path), err)
	}

	var raw rawConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("failed to parse config %s", path), err)
		}
	default:
		// Strip JSONC comments and trailing commas before handing the
		// bytes to encoding/json.
		if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigInvalid,
				fmt.Sprintf("failed to parse config %s", path), err)
		}
	}

	return &raw, nil
}

// mergeTargets merges file-defined targets over the built-in defaults.
// A file target whose name matches a built-in replaces it in place, so
// overridden targets keep their menu slot; new targets are appended in
// file order.
func mergeTargets(defaults []model.Target, raws []rawTarget) ([]model.Target, error) {
	merged := make([]model.Target, len(defaults))
	copy(merged, defaults)

	index := make(map[string]int, len(merged))
	for i, t := range merged {
		index[t.Name] = i
	}

	seen := make(map[string]bool, len(raws))
	for _, r := range raws {
		target, err := resolveTarget(r)
		if err != nil {
			return nil, err
		}
		if seen[target.Name] {
			return nil, fmt.Errorf("duplicate target %q", target.Name)
		}
		seen[target.Name] = true

		if i, ok := index[target.Name]; ok {
			merged[i] = target
		} else {
			index[target.Name] = len(merged)
			merged = append(merged, target)
		}
	}

	return merged, nil
}

// resolveTarget converts a rawTarget into a validated model.Target.
func resolveTarget(r rawTarget) (model.Target, error) {
	kind, err := model.ParseTargetKind(r.Kind)
	if err != nil {
		return model.Target{}, fmt.Errorf("target %q: %w", r.Name, err)
	}

	target := model.Target{
		Name:        r.Name,
		Label:       r.Label,
		Kind:        kind,
		Command:     r.Command,
		Args:        r.Args,
		Dir:         r.Dir,
		Image:       r.Image,
		Env:         r.Env,
		EnvFile:     r.EnvFile,
		InstallHint: r.InstallHint,
		Port:        r.Port,
	}

	if err := target.Validate(); err != nil {
		return model.Target{}, err
	}
	return target, nil
}
