package config

// Supported media hosts.
const (
	AssetProviderCloudinary = "cloudinary"
	AssetProviderSupabase   = "supabase"
)

// Assets selects and configures the external media host.
type Assets struct {
	Provider   string
	Timeout    Duration
	Cloudinary Cloudinary
	Supabase   Supabase
}

// Cloudinary credentials.
type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Supabase storage credentials.
type Supabase struct {
	URL        string
	ServiceKey string
	Bucket     string
}
