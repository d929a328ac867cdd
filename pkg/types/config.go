package types

// Default tool settings mirror the commands the converter was built around.
const (
	DefaultDecoder = "vgmstream-cli"
	DefaultEncoder = "ffmpeg"
	DefaultCodec   = "libvorbis"
	DefaultQuality = 4
)

// ToolConfig holds the external programs and encoder settings.
type ToolConfig struct {
	// Decoder is the vgmstream-cli executable (name on PATH or a path).
	Decoder string `json:"decoder" yaml:"decoder" mapstructure:"decoder"`

	// Encoder is the ffmpeg executable.
	Encoder string `json:"encoder" yaml:"encoder" mapstructure:"encoder"`

	// Codec is the ffmpeg audio codec passed to -c:a.
	Codec string `json:"codec" yaml:"codec" mapstructure:"codec"`

	// Quality is the VBR quality passed to -q:a.
	Quality int `json:"quality" yaml:"quality" mapstructure:"quality"`
}

// HistoryConfig controls the run history database.
type HistoryConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file. Empty selects the state directory default.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LogConfig selects the diagnostic log level and handler format.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings for a conversion run.
type Config struct {
	Tools   ToolConfig    `json:"tools" yaml:"tools" mapstructure:"tools"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}

// WithDefaults fills empty tool settings. Quality is left alone since zero
// is a valid Vorbis quality.
func (c Config) WithDefaults() Config {
	if c.Tools.Decoder == "" {
		c.Tools.Decoder = DefaultDecoder
	}
	if c.Tools.Encoder == "" {
		c.Tools.Encoder = DefaultEncoder
	}
	if c.Tools.Codec == "" {
		c.Tools.Codec = DefaultCodec
	}
	return c
}
