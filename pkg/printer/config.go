package printer

const (
	// DefaultPrintWidth is the line width the printer tries to stay within.
	DefaultPrintWidth = 80

	// DefaultTabWidth is the number of spaces added by one indentation level.
	DefaultTabWidth = 4
)

// Config controls a single print run.
type Config struct {
	PrintWidth int `json:"print_width,omitempty" toml:"print_width" yaml:"print_width,omitempty"`
	TabWidth   int `json:"tab_width,omitempty" toml:"tab_width" yaml:"tab_width,omitempty"`
}

// DefaultConfig is used when no configuration is given.
var DefaultConfig = Config{
	PrintWidth: DefaultPrintWidth,
	TabWidth:   DefaultTabWidth,
}

// WithDefaults returns c with zero or negative fields replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.PrintWidth <= 0 {
		c.PrintWidth = DefaultPrintWidth
	}
	if c.TabWidth <= 0 {
		c.TabWidth = DefaultTabWidth
	}
	return c
}
