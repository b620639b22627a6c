package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Export  ExportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, production
	Name     string
	LogLevel string
}

// StorageConfig ubicación del documento de datos local.
type StorageConfig struct {
	DataPath string // archivo JSON con las cuatro colecciones
}

// ExportConfig opciones de los exports.
type ExportConfig struct {
	Dir string // directorio destino de CSV/XLSX/PDF/respaldo
}

// Load lee la configuración desde variables de entorno y opcionalmente
// desde archivo (.env o config.env). Las env vars tienen prioridad.
// Nombres esperados: APP_ENV, LOG_LEVEL, DATA_PATH, EXPORT_DIR, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "production"),
			Name:     getString(v, "APP_NAME", "hailang"),
			LogLevel: getString(v, "LOG_LEVEL", "warn"),
		},
		Storage: StorageConfig{
			DataPath: getString(v, "DATA_PATH", defaultDataPath()),
		},
		Export: ExportConfig{
			Dir: getString(v, "EXPORT_DIR", "."),
		},
	}

	return cfg, nil
}

// defaultDataPath es ~/.hailang/data.json, o ./data.json si no se puede
// resolver el home del usuario.
func defaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data.json"
	}
	return filepath.Join(home, ".hailang", "data.json")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}
