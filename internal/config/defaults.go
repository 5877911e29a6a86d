package config

// Defaults reproduce the original build layout: public/ copied into dist/ next to index.html.
const (
	DefaultSource         = "public"
	DefaultOutputDir      = "dist"
	DefaultPageFile       = "index.html"
	DefaultTitle          = "Public Private Key Demo"
	DefaultStylesheet     = "stylesheets/style.css"
	DefaultHashLibraryURL = "https://cdnjs.cloudflare.com/ajax/libs/crypto-js/4.1.1/crypto-js.min.js"
	DefaultMessage        = "Hello, Blockchain!"
	DefaultServePort      = 8080
)

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Source: DefaultSource,
		Output: OutputConfig{
			Directory: DefaultOutputDir,
			Page:      DefaultPageFile,
		},
		Page: PageConfig{
			Title:          DefaultTitle,
			Stylesheet:     DefaultStylesheet,
			HashLibraryURL: DefaultHashLibraryURL,
			DefaultMessage: DefaultMessage,
		},
		Serve: ServeConfig{
			Port: DefaultServePort,
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
		},
	}
}
