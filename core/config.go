package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	// Config holds all application settings. It is loaded once at startup
	// and injected everywhere; nothing else reads the environment directly.
	Config struct {
		Env      string // DEV (local; default), TEST, QA, PROD
		Debug    bool
		TestMode bool
		Build    string

		AppName          string
		SecretKey        string
		FrontendBaseURL  string // dashboard UI origin, allowed through CORS
		DefaultFromEmail mail.Address

		Server   ServerConfig
		Upstream UpstreamConfig
		OSS      OSSConfig

		// TokenFile is where the admin CLI caches the upstream session token.
		TokenFile string

		RollbarToken   string
		SendgridAPIKey string
	}

	ServerConfig struct {
		Host                      string
		Port                      int
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	// UpstreamConfig describes the school REST backend this service consumes.
	UpstreamConfig struct {
		BaseURL    string
		Timeout    time.Duration
		RetryDelay time.Duration
		PageSize   int

		// DemoFallback enables canned demo rows when a read path fails.
		// Only useful against a half-deployed backend; keep off outside DEV.
		DemoFallback bool
	}

	OSSConfig struct {
		Endpoint        string
		Bucket          string
		AccessKeyID     string
		AccessKeySecret string
		SignTTL         time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "ShuleDash")
	v.SetDefault("secretKey", "w3r)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy&poq5")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverPort", 8060)
	v.SetDefault("serverShutdownTimeout", 20*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("upstreamBaseURL", "http://localhost:9080")
	v.SetDefault("upstreamTimeout", 15*time.Second)
	v.SetDefault("upstreamRetryDelay", time.Second)
	v.SetDefault("upstreamPageSize", 10000)
	v.SetDefault("upstreamDemoFallback", false)
	v.SetDefault("ossSignTTL", 15*time.Minute)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
		v.SetDefault("upstreamDemoFallback", true)
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	wd := Getwd()
	v.SetDefault("tokenFile", filepath.Join(wd, ".shuledash-token"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:              env,
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		Server: ServerConfig{
			Host:                      v.GetString("serverHost"),
			Port:                      v.GetInt("serverPort"),
			ShutdownTimeout:           v.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta:        v.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("jwtRefreshExpirationDelta"),
		},
		Upstream: UpstreamConfig{
			BaseURL:      v.GetString("upstreamBaseURL"),
			Timeout:      v.GetDuration("upstreamTimeout"),
			RetryDelay:   v.GetDuration("upstreamRetryDelay"),
			PageSize:     v.GetInt("upstreamPageSize"),
			DemoFallback: v.GetBool("upstreamDemoFallback"),
		},
		OSS: OSSConfig{
			Endpoint:        v.GetString("ossEndpoint"),
			Bucket:          v.GetString("ossBucket"),
			AccessKeyID:     v.GetString("ossAccessKeyID"),
			AccessKeySecret: v.GetString("ossAccessKeySecret"),
			SignTTL:         v.GetDuration("ossSignTTL"),
		},
		TokenFile:      v.GetString("tokenFile"),
		RollbarToken:   v.GetString("rollbarToken"),
		SendgridAPIKey: v.GetString("sendgridAPIKey"),
	}
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}
