package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genRepoConfig() gopter.Gen {
	return gopter.CombineGens(
		gen.RegexMatch(`^[a-z][a-z0-9-]{0,15}$`),
		gen.RegexMatch(`^https://[a-z]{1,10}\.[a-z]{2,4}/m2$`),
	).Map(func(values []interface{}) RepoConfig {
		return RepoConfig{
			Name: values[0].(string),
			URL:  values[1].(string),
		}
	})
}

func genConfig() gopter.Gen {
	return gopter.CombineGens(
		gen.SliceOf(genRepoConfig()),
		gen.IntRange(0, 10),
		gen.IntRange(1, 120),
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	).Map(func(values []interface{}) *Config {
		return &Config{
			Repositories: values[0].([]RepoConfig),
			HTTP: HTTPConfig{
				MaxRetries:     values[1].(int),
				TimeoutSeconds: values[2].(int),
			},
			Updates: UpdateConfig{
				StableOnly:  values[3].(bool),
				Interactive: values[4].(bool),
			},
			Git: GitConfig{
				Disabled: values[5].(bool),
			},
		}
	})
}

func TestConfigRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("SaveTo then LoadFrom preserves the config", prop.ForAll(
		func(cfg *Config) bool {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")

			if err := cfg.SaveTo(path); err != nil {
				return false
			}
			loaded, err := LoadFrom(path)
			if err != nil {
				return false
			}
			if len(cfg.Repositories) == 0 && len(loaded.Repositories) == 0 {
				loaded.Repositories = cfg.Repositories
			}
			return reflect.DeepEqual(cfg, loaded)
		},
		genConfig(),
	))

	properties.TestingRun(t)
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("LoadFrom(missing) = %+v, want defaults", cfg)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("LoadFrom(missing) created a file")
	}
}

func TestLoadFromPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "updates:\n  stable_only: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if !cfg.Updates.StableOnly {
		t.Error("StableOnly = false, want value from file")
	}
	if cfg.HTTP.MaxRetries != 3 || cfg.HTTP.TimeoutSeconds != 30 {
		t.Errorf("HTTP = %+v, want defaults preserved", cfg.HTTP)
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom(invalid) succeeded")
	}
}

func TestConfigPathsOrder(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	paths, err := ConfigPaths()
	if err != nil {
		t.Fatalf("ConfigPaths() error = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v", paths)
	}
	if paths[0] != filepath.Join("/tmp/xdg", "gvc", "config.yaml") {
		t.Errorf("paths[0] = %s", paths[0])
	}
}
