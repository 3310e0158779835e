package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/anim_browser/pack/anim"
	"github.com/mogaika/anim_browser/utils"
)

type Config struct {
	Workers          int    `yaml:"workers"`
	ClassPolicy      string `yaml:"class_policy"`
	RotationSign     string `yaml:"rotation_sign"`
	ParallelSegments bool   `yaml:"parallel_segments"`
	Strict           bool   `yaml:"strict"`
	Verbose          bool   `yaml:"verbose"`
	Listen           string `yaml:"listen"`
	MaxTransforms    int    `yaml:"max_transforms"`
}

func Default() *Config {
	return &Config{
		Workers:       4,
		ClassPolicy:   "default",
		RotationSign:  "positive",
		Listen:        ":8000",
		MaxTransforms: anim.DEFAULT_MAX_TRANSFORMS,
	}
}

// Load reads path over Default(). An empty path or a missing file gives the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, errors.Wrapf(err, "Failed to open config")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal config %q", path)
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "Config %q", path)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MaxTransforms < 0 {
		return errors.Errorf("max_transforms must not be negative, got %d", c.MaxTransforms)
	}
	if _, err := anim.ClassPolicyByName(c.ClassPolicy); err != nil {
		return err
	}
	if _, err := anim.RotationPolicyByName(c.RotationSign); err != nil {
		return err
	}
	return nil
}

// DecoderOptions turns the config into decoder options. l is used only if Verbose is set.
func (c *Config) DecoderOptions(l *utils.Logger) (anim.Options, error) {
	policy, err := anim.ClassPolicyByName(c.ClassPolicy)
	if err != nil {
		return anim.Options{}, err
	}
	opts := anim.Options{
		ClassPolicy:      policy,
		ParallelSegments: c.ParallelSegments,
		Strict:           c.Strict,
		MaxTransforms:    c.MaxTransforms,
	}
	if c.Verbose {
		opts.Logger = l
	}
	return opts, nil
}

func (c *Config) RotationPolicy() (anim.RotationPolicy, error) {
	return anim.RotationPolicyByName(c.RotationSign)
}
