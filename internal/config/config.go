package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Export  ExportConfig
	CORS    CORSConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type StorageConfig struct {
	Path        string
	Debug       bool
	MaxLogoSize int64
}

type ExportConfig struct {
	// Width is the logical width of the rendered note in CSS pixels;
	// PixelRatio multiplies it for the raster snapshot.
	Width      int
	PixelRatio float64
	Quality    int
	FontPath   string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "notas-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", false)
	viper.SetDefault("STORAGE_PATH", "./data/notas.db")
	viper.SetDefault("UPLOAD_MAX_SIZE", 5242880)
	viper.SetDefault("EXPORT_WIDTH", 794)
	viper.SetDefault("EXPORT_PIXEL_RATIO", 3.0)
	viper.SetDefault("EXPORT_QUALITY", 92)
	viper.SetDefault("EXPORT_FONT_PATH", "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Storage: StorageConfig{
			Path:        viper.GetString("STORAGE_PATH"),
			Debug:       viper.GetBool("APP_DEBUG"),
			MaxLogoSize: viper.GetInt64("UPLOAD_MAX_SIZE"),
		},
		Export: ExportConfig{
			Width:      viper.GetInt("EXPORT_WIDTH"),
			PixelRatio: viper.GetFloat64("EXPORT_PIXEL_RATIO"),
			Quality:    viper.GetInt("EXPORT_QUALITY"),
			FontPath:   viper.GetString("EXPORT_FONT_PATH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
	}
}
