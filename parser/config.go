package parser

import (
	"io"

	"gopkg.in/yaml.v3"
)

// htmlParserConfig carries the knobs that change tree-construction
// behavior without changing the algorithm itself: whether script
// execution is simulated, whether source locations are tracked, and
// where parse errors should be reported.
type htmlParserConfig struct {
	// scriptingEnabled mirrors the "scripting flag" the spec threads
	// through NOSCRIPT handling; when false, <noscript> content is
	// parsed as markup instead of raw text.
	scriptingEnabled bool

	// sourceCodeLocationInfo turns on best-effort line/col/offset
	// stamping of created nodes. Off by default since most callers just
	// want a tree.
	sourceCodeLocationInfo bool

	// onParseError, if set, receives every non-fatal parse error this
	// package's tree construction or tokenization produces. Installing
	// one implies sourceCodeLocationInfo.
	onParseError ParseErrorSink

	// debug is filled from YAMLConfig's debug key, but nothing in this
	// package reads it; logging verbosity follows logrus's global level.
	debug int
}

// defaultHTMLParserConfig is what NewParser uses when the caller didn't
// ask for anything special: scripting on, no location tracking, errors
// logged rather than collected.
func defaultHTMLParserConfig() htmlParserConfig {
	return htmlParserConfig{scriptingEnabled: true}
}

// DefaultConfig exposes defaultHTMLParserConfig to callers outside this
// package that want to start from the defaults and hand the result to
// NewParserWithConfig.
func DefaultConfig() htmlParserConfig {
	return defaultHTMLParserConfig()
}

// YAMLConfig is the on-disk shape of an htmlParserConfig, for callers
// (the CLI, embedders) that want to configure a parse from a config
// file rather than building the struct in Go.
type YAMLConfig struct {
	ScriptingEnabled       bool `yaml:"scriptingEnabled"`
	SourceCodeLocationInfo bool `yaml:"sourceCodeLocationInfo"`
	Debug                  int  `yaml:"debug"`
}

// LoadConfig reads a YAML-encoded YAMLConfig from r and converts it
// into an htmlParserConfig. onParseError is never set this way; wire
// it up in Go after loading if you need one.
func LoadConfig(r io.Reader) (htmlParserConfig, error) {
	var y YAMLConfig
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&y); err != nil && err != io.EOF {
		return htmlParserConfig{}, err
	}
	return htmlParserConfig{
		scriptingEnabled:       y.ScriptingEnabled,
		sourceCodeLocationInfo: y.SourceCodeLocationInfo,
		debug:                  y.Debug,
	}, nil
}
