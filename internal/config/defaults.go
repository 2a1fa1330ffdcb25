package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:       "~/.config/growthtrack",
			SQLiteFile: "growthtrack.db",
		},
		Chart: ChartConfig{
			Width:  1080,
			Height: 480,
		},
		Report: ReportConfig{
			FontURL: "https://raw.githubusercontent.com/google/fonts/main/ofl/notosanstc/NotoSansTC%5Bwght%5D.ttf",
			FontDir: "fonts",
		},
		Export: ExportConfig{
			Dir: ".",
		},
	}
}
