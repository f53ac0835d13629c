package feed

// Config holds configuration for the catalog feed.
type Config struct {
	// URL is the address of the vendor catalog export.
	URL string `mapstructure:"url" default:""`
	// UserAgent is sent with the fetch request.
	UserAgent string `mapstructure:"user_agent" default:"catalog-sync/1.0"`
	// TimeoutSeconds bounds the whole fetch, download included.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
	// CategoryNameSource selects where a category's name is read from:
	// "text" for the element's own text, "child" for a nested <name>
	// element. Vendor exports differ on this, so it is a deployment choice.
	CategoryNameSource string `mapstructure:"category_name_source" default:"text"`
}
