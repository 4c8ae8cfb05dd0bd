package config

// Config is the top-level dexview configuration, corresponding to .dexview.yml.
type Config struct {
	Port              int    `yaml:"port" koanf:"port"`
	DataDir           string `yaml:"data_dir" koanf:"data_dir"`
	AllowAllOrigins   bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	APIBaseURL        string `yaml:"api_base_url" koanf:"api_base_url"`
	APITimeoutSeconds int    `yaml:"api_timeout_seconds" koanf:"api_timeout_seconds"`
	CollectionSize    int    `yaml:"collection_size" koanf:"collection_size"`
	PageSize          int    `yaml:"page_size" koanf:"page_size"`
	MinViewportHeight int    `yaml:"min_viewport_height" koanf:"min_viewport_height"`
	SearchMinChars    int    `yaml:"search_min_chars" koanf:"search_min_chars"`
	// FetchConcurrency caps in-flight detail fetches per source. Zero means
	// one request per item with no cap.
	FetchConcurrency int `yaml:"fetch_concurrency" koanf:"fetch_concurrency"`
	NewsEntryIndex   int `yaml:"news_entry_index" koanf:"news_entry_index"`
}
