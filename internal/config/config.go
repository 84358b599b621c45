package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/editor-extensions/extgen/internal/branding"
	"github.com/editor-extensions/extgen/internal/errdef"
	"github.com/editor-extensions/extgen/internal/patch"
	"github.com/editor-extensions/extgen/internal/repoctx"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys lists every supported configuration key.
var Keys = []string{
	"defaults.org",
	"defaults.repo",
	"defaults.ruleset_org",
	"defaults.ruleset_repo",
	"defaults.publisher",
	"layout.extensions_dir",
	"layout.manifest",
	"layout.ci_workflow",
	"layout.collect_assets",
	"layout.copy_dist",
	"layout.package_extensions",
	"layout.launch",
	"layout.workspace",
}

// Dir returns the path to the config directory (~/.extgen/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.extgen/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	defaults := repoctx.Defaults()
	viper.SetDefault("defaults.org", defaults.Org)
	viper.SetDefault("defaults.repo", defaults.Repo)
	viper.SetDefault("defaults.ruleset_org", defaults.RulesetOrg)
	viper.SetDefault("defaults.ruleset_repo", defaults.RulesetRepo)
	viper.SetDefault("defaults.publisher", defaults.Publisher)

	layout := patch.DefaultLayout()
	viper.SetDefault("layout.extensions_dir", layout.ExtensionsDir)
	viper.SetDefault("layout.manifest", layout.Manifest)
	viper.SetDefault("layout.ci_workflow", layout.CIWorkflow)
	viper.SetDefault("layout.collect_assets", layout.CollectAssets)
	viper.SetDefault("layout.copy_dist", layout.CopyDist)
	viper.SetDefault("layout.package_extensions", layout.PackageExtensions)
	viper.SetDefault("layout.launch", layout.Launch)
	viper.SetDefault("layout.workspace", layout.Workspace)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// IsKnown reports whether key is a supported configuration key.
func IsKnown(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnown(key) {
		return errdef.New(errdef.CodeConfig, "unknown config key %q (known keys: %s)", key, strings.Join(Keys, ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Layout returns the configured host repository layout.
func Layout() patch.Layout {
	return patch.Layout{
		ExtensionsDir:     Get("layout.extensions_dir"),
		Manifest:          Get("layout.manifest"),
		CIWorkflow:        Get("layout.ci_workflow"),
		CollectAssets:     Get("layout.collect_assets"),
		CopyDist:          Get("layout.copy_dist"),
		PackageExtensions: Get("layout.package_extensions"),
		Launch:            Get("layout.launch"),
		Workspace:         Get("layout.workspace"),
	}.WithDefaults()
}

// Defaults returns the configured repository facts used where the host
// repository provides none.
func Defaults() repoctx.Context {
	return repoctx.Context{
		Org:         Get("defaults.org"),
		Repo:        Get("defaults.repo"),
		RulesetOrg:  Get("defaults.ruleset_org"),
		RulesetRepo: Get("defaults.ruleset_repo"),
		Publisher:   Get("defaults.publisher"),
	}.Merge(repoctx.Defaults())
}
