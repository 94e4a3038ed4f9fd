package panel

import (
	"os"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/seriesstack/stats"
)

// stackAll is the stacking key of series stacked by the panel-wide switch.
const stackAll = "true"

// Config describes a graph panel.
type Config struct {
	Title           string     `yaml:"title"`
	Lines           bool       `yaml:"lines"`
	Bars            bool       `yaml:"bars"`
	Fill            int        `yaml:"fill"`
	SteppedLine     bool       `yaml:"steppedLine"`
	Stack           bool       `yaml:"stack"`
	Percentage      bool       `yaml:"percentage"`
	Horizontal      bool       `yaml:"horizontal"`
	NullPointMode   string     `yaml:"nullPointMode"`
	Decimals        *int       `yaml:"decimals"`
	Format          string     `yaml:"format"`
	Ticks           int        `yaml:"ticks"`
	HiddenSeries    []string   `yaml:"hiddenSeries"`
	SeriesOverrides []Override `yaml:"seriesOverrides"`
}

// Override changes the settings of the series whose alias matches Alias.
// An alias written as /pattern/ or /pattern/i is a regular expression;
// anything else must match exactly.
type Override struct {
	Alias       string     `yaml:"alias"`
	Lines       *bool      `yaml:"lines"`
	Bars        *bool      `yaml:"bars"`
	Fill        *int       `yaml:"fill"`
	SteppedLine *bool      `yaml:"steppedLine"`
	Stack       *StackFlag `yaml:"stack"`
	ZIndex      *int       `yaml:"zindex"`
}

// StackFlag is an override's stack setting: true or false to follow or
// leave the panel stack, or a name to stack in a separate group.
type StackFlag struct {
	Enabled bool
	Group   string
}

// UnmarshalYAML accepts a boolean or a group name.
func (f *StackFlag) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: stack must be a boolean or a group name", node.Line)
	}
	if node.Tag == "!!bool" {
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*f = StackFlag{Enabled: b}
		return nil
	}
	*f = StackFlag{Enabled: node.Value != "", Group: node.Value}
	return nil
}

// MarshalYAML writes the flag back as a boolean or a group name.
func (f StackFlag) MarshalYAML() (interface{}, error) {
	if f.Group != "" {
		return f.Group, nil
	}
	return f.Enabled, nil
}

// DefaultConfig returns a line panel with a light fill.
func DefaultConfig() *Config {
	return &Config{
		Lines:         true,
		Fill:          1,
		NullPointMode: stats.Null.String(),
		Format:        "short",
		Ticks:         5,
	}
}

// ParseConfig parses a YAML panel on top of DefaultConfig and validates it.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing panel config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML panel file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs *multierror.Error
	if _, err := stats.ParseNullPointMode(c.NullPointMode); err != nil {
		errs = multierror.Append(errs, err)
	}
	if _, err := stats.Formatter(c.Format); err != nil {
		errs = multierror.Append(errs, err)
	}
	if c.Fill < 0 || c.Fill > 10 {
		errs = multierror.Append(errs, errors.Errorf("fill must be between 0 and 10, got %d", c.Fill))
	}
	if c.Ticks < 0 {
		errs = multierror.Append(errs, errors.Errorf("ticks cannot be negative, got %d", c.Ticks))
	}
	for i, o := range c.SeriesOverrides {
		if o.Alias == "" {
			errs = multierror.Append(errs, errors.Errorf("series override %d: alias is required", i))
			continue
		}
		if _, err := aliasMatcher(o.Alias); err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "series override %d", i))
		}
	}
	return errs.ErrorOrNil()
}

// seriesOptions are the resolved drawing settings of one series.
type seriesOptions struct {
	lines  bool
	bars   bool
	fill   int
	steps  bool
	stack  string
	zindex int
}

// optionsFor applies the panel defaults and every matching override, in
// order, to the series named alias.
func (c *Config) optionsFor(alias string) (seriesOptions, error) {
	opts := seriesOptions{
		lines: c.Lines,
		bars:  c.Bars,
		fill:  c.Fill,
		steps: c.SteppedLine,
	}
	if c.Stack {
		opts.stack = stackAll
	}

	for _, o := range c.SeriesOverrides {
		match, err := aliasMatcher(o.Alias)
		if err != nil {
			return opts, err
		}
		if !match(alias) {
			continue
		}
		if o.Lines != nil {
			opts.lines = *o.Lines
		}
		if o.Bars != nil {
			opts.bars = *o.Bars
		}
		if o.Fill != nil {
			opts.fill = *o.Fill
		}
		if o.SteppedLine != nil {
			opts.steps = *o.SteppedLine
		}
		if o.ZIndex != nil {
			opts.zindex = *o.ZIndex
		}
		if o.Stack != nil {
			switch {
			case !o.Stack.Enabled:
				opts.stack = ""
			case o.Stack.Group != "":
				opts.stack = o.Stack.Group
			default:
				opts.stack = stackAll
			}
		}
	}
	return opts, nil
}

var aliasRegex = regexp.MustCompile(`^/(.*?)/([gimy]*)$`)

// aliasMatcher returns a matcher for an override alias.
func aliasMatcher(alias string) (func(string) bool, error) {
	m := aliasRegex.FindStringSubmatch(alias)
	if m == nil {
		return func(s string) bool { return s == alias }, nil
	}
	pattern := m[1]
	if strings.Contains(m[2], "i") {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "alias %q", alias)
	}
	return re.MatchString, nil
}
