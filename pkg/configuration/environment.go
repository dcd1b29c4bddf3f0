package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		panic(err)
	}
	return c
})

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existingFiles = append(existingFiles, file)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"orgtree"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

// GeneratorOptions bound the synthetic forest. Defaults reproduce the
// production dataset: 100 offices, 40-80 departments each, 30-1000 staff
// per department.
type GeneratorOptions struct {
	Offices       int   `env:"GEN_OFFICES" envDefault:"100"`
	DeptMin       int   `env:"GEN_DEPT_MIN" envDefault:"40"`
	DeptMax       int   `env:"GEN_DEPT_MAX" envDefault:"80"`
	StaffMin      int   `env:"GEN_STAFF_MIN" envDefault:"30"`
	StaffMax      int   `env:"GEN_STAFF_MAX" envDefault:"1000"`
	NameSuffixMax int64 `env:"GEN_NAME_SUFFIX_MAX" envDefault:"10000000000"`
}

func (g *GeneratorOptions) Validate() error {
	if g.Offices < 0 {
		return fmt.Errorf("GEN_OFFICES must be non-negative, got %d", g.Offices)
	}
	if g.DeptMin < 0 || g.DeptMax < g.DeptMin {
		return fmt.Errorf("invalid department range [%d, %d]", g.DeptMin, g.DeptMax)
	}
	if g.StaffMin < 0 || g.StaffMax < g.StaffMin {
		return fmt.Errorf("invalid staff range [%d, %d]", g.StaffMin, g.StaffMax)
	}
	return nil
}

type Configuration struct {
	Database  DatabaseOptions
	Generator GeneratorOptions

	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`

	logger *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}

	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator configuration error: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(c.LogrusLogLevel())
	c.logger = logger

	c.Database.Opts = c.Database.ConnectionString()
	return nil
}
