package config

const (
	KeyToken        = "raindrop_token"
	KeyBaseURL      = "raindrop_base_url"
	KeyTimeout      = "request_timeout"
	KeyRateInterval = "rate_limit_interval"
	KeyLogLevel     = "log_level"
	KeyHTTPAddr     = "http_addr"
)
