package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load()
	if root != nil {
		bindFlag(root, KeyBaseURL, "base-url")
		bindFlag(root, KeyTimeout, "request-timeout")
		bindFlag(root, KeyRateInterval, "rate-limit-interval")
		bindFlag(root, KeyLogLevel, "log-level")
		bindFlag(root, KeyHTTPAddr, "http-addr")
	}
	setDefaults()
}

func bindFlag(root *cobra.Command, key, flag string) {
	if f := root.PersistentFlags().Lookup(flag); f != nil {
		_ = viper.BindPFlag(key, f)
	}
}

func setDefaults() {
	viper.SetDefault(KeyBaseURL, "https://api.raindrop.io/rest/v1")
	viper.SetDefault(KeyTimeout, 30*time.Second)
	viper.SetDefault(KeyRateInterval, 1200*time.Millisecond)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyHTTPAddr, "")
}

func Token() string                    { return viper.GetString(KeyToken) }
func BaseURL() string                  { return viper.GetString(KeyBaseURL) }
func RequestTimeout() time.Duration    { return viper.GetDuration(KeyTimeout) }
func RateLimitInterval() time.Duration { return viper.GetDuration(KeyRateInterval) }
func LogLevel() string                 { return viper.GetString(KeyLogLevel) }
func HTTPAddr() string                 { return viper.GetString(KeyHTTPAddr) }
