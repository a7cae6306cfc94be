package config

// Config is the root application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Glossary GlossaryConfig `yaml:"glossary"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// GlossaryConfig holds parsing and output settings. They shape the output
// document, so they come from the config file only and have no env names.
type GlossaryConfig struct {
	Format          string   `yaml:"format"           env-default:"json"`
	Indent          int      `yaml:"indent"           env-default:"2"`
	ReportMalformed bool     `yaml:"report_malformed" env-default:"false"`
	LanguageHints   []string `yaml:"language_hints"   env-default:"lang,language"`
	SkipPrefixes    []string `yaml:"skip_prefixes"    env-default:"and there is even more"`
}
