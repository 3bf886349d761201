package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rshade/ecoplate/internal/logging"
)

// ProjectDirName is the directory holding a project-local config overlay.
const ProjectDirName = ".ecoplate"

// ResolveProjectDir determines the project-local .ecoplate directory.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. ECOPLATE_PROJECT_DIR env var
//  3. the nearest ancestor of startDir containing .ecoplate/config.yaml
//
// Returns an absolute path, or "" when no project is found. The global home
// directory never counts as a project.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	home, _ := HomeDir()
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ProjectDirName)
		if candidate != home {
			if _, statErr := os.Stat(filepath.Join(candidate, "config.yaml")); statErr == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func toAbsProjectDir(ctx context.Context, dir string) string {
	if filepath.Base(dir) != ProjectDirName {
		dir = filepath.Join(dir, ProjectDirName)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("could not resolve project directory")
		return dir
	}
	return abs
}

// LoadWithProjectDir loads the global config at path and shallow-merges
// projectDir/config.yaml on top. Environment overrides still win.
func LoadWithProjectDir(ctx context.Context, path, projectDir string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if projectDir == "" {
		return cfg, nil
	}

	overlayPath := filepath.Join(projectDir, "config.yaml")
	if _, statErr := os.Stat(overlayPath); statErr != nil {
		if !errors.Is(statErr, os.ErrNotExist) {
			logging.FromContext(ctx).Warn().
				Str("component", "config").
				Err(statErr).
				Str("path", overlayPath).
				Msg("cannot read project config overlay")
		}
		return cfg, nil
	}

	if mergeErr := ApplyOverlay(cfg, overlayPath); mergeErr != nil {
		return nil, mergeErr
	}
	cfg.ApplyEnv()
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return cfg, nil
}
