package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/aoi-kurokawa/walletdeck/internal/model"
)

// BuildEnv assembles the child process environment for a target.
//
// Precedence, lowest to highest: the inherited base environment, entries
// from the target's dotenv file, then the target's inline env map. Later
// entries replace earlier ones with the same key, matching what a user
// expects from "my config overrides my .env overrides my shell".
//
// A configured EnvFile that does not exist is an error — a silently
// ignored dotenv file would launch the wallet components with missing
// secrets and confusing downstream failures.
func BuildEnv(base []string, target *model.Target) ([]string, error) {
	merged := make(map[string]string, len(base))
	order := make([]string, 0, len(base))

	set := func(key, value string) {
		if _, ok := merged[key]; !ok {
			order = append(order, key)
		}
		merged[key] = value
	}

	for _, kv := range base {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		set(key, value)
	}

	if target.EnvFile != "" {
		fileEnv, err := readEnvFile(target.Name, target.EnvFile)
		if err != nil {
			return nil, err
		}
		// godotenv.Read returns a map, so apply keys in sorted order to
		// keep the resulting environment deterministic.
		keys := make([]string, 0, len(fileEnv))
		for k := range fileEnv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			set(k, fileEnv[k])
		}
	}

	if len(target.Env) > 0 {
		keys := make([]string, 0, len(target.Env))
		for k := range target.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			set(k, target.Env[k])
		}
	}

	result := make([]string, 0, len(order))
	for _, key := range order {
		result = append(result, key+"="+merged[key])
	}
	return result, nil
}

// TargetEnv resolves the env entries a target declares itself: dotenv
// file entries overlaid with the inline env map. Container targets pass
// the result to `docker run --env`; the inherited environment is left
// out because a container does not share the parent's environment.
// Returns nil when the target declares nothing.
func TargetEnv(target *model.Target) (map[string]string, error) {
	merged := make(map[string]string, len(target.Env))

	if target.EnvFile != "" {
		fileEnv, err := readEnvFile(target.Name, target.EnvFile)
		if err != nil {
			return nil, err
		}
		for k, v := range fileEnv {
			merged[k] = v
		}
	}
	for k, v := range target.Env {
		merged[k] = v
	}

	if len(merged) == 0 {
		return nil, nil
	}
	return merged, nil
}

// readEnvFile loads a dotenv file. A configured file that does not exist
// is an error rather than being skipped; see BuildEnv.
func readEnvFile(targetName, path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("env file for target %q: %w", targetName, err)
	}
	fileEnv, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env file %s: %w", path, err)
	}
	return fileEnv, nil
}
