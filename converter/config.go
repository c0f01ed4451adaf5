package converter

import (
	"io/ioutil"

	"github.com/binzume/threemfconv/threemf"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Scale      float32 `yaml:"scale"`
	ForceUnlit bool    `yaml:"forceUnlit"`

	MaterialSettings map[string]*MaterialSetting `yaml:"materialSettings"`
}

type MaterialSetting struct {
	Color      string `yaml:"color"` // #RRGGBB or #RRGGBBAA
	AlphaMode  string `yaml:"alphaMode"`
	ForceUnlit bool   `yaml:"forceUnlit"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf Config
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// ApplyConfig applies color overrides to a decoded document.
func ApplyConfig(doc *threemf.Document, conf *Config) {
	for _, mat := range doc.Materials {
		setting, ok := conf.MaterialSettings[mat.Name]
		if !ok || setting.Color == "" {
			continue
		}
		if col, ok := threemf.ParseColor(setting.Color); ok {
			mat.Color = &col
		}
	}
}

func (c *Config) Option() *ThreeMFToGLTFOption {
	return &ThreeMFToGLTFOption{
		Scale:            c.Scale,
		ForceUnlit:       c.ForceUnlit,
		MaterialSettings: c.MaterialSettings,
	}
}
