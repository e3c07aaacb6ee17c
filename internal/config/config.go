package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/homed-tools/hddl/internal/catalog"
	"github.com/homed-tools/hddl/internal/source"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Dir         string        `mapstructure:"dir"`
	Output      string        `mapstructure:"output"`
	File        string        `mapstructure:"file"`
	ListingURL  string        `mapstructure:"listing_url"`
	LinkBase    string        `mapstructure:"link_base"`
	AliasesFile string        `mapstructure:"aliases_file"`
	FailFast    bool          `mapstructure:"fail_fast"`
	StrictJSON  bool          `mapstructure:"strict_json"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Verbose     bool          `mapstructure:"verbose"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("dir", "")
	viper.SetDefault("output", "print")
	viper.SetDefault("file", "devs.md")
	viper.SetDefault("listing_url", source.DefaultListingURL)
	viper.SetDefault("link_base", catalog.DefaultLinkBase)
	viper.SetDefault("aliases_file", "")
	viper.SetDefault("fail_fast", false)
	viper.SetDefault("strict_json", false)
	viper.SetDefault("timeout", 30*time.Second)
	viper.SetDefault("verbose", false)

	viper.SetConfigName("hddl")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "hddl"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("HDDL")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// Reload re-reads C from viper, picking up values bound from flags
func Reload() error {
	return viper.Unmarshal(&C)
}

// GetDir returns the local device library directory with tilde expansion.
// Empty means the remote listing is used.
func GetDir() string {
	return expandTilde(viper.GetString("dir"))
}

// GetOutput returns the output mode
func GetOutput() string {
	return viper.GetString("output")
}

// GetFile returns the output file name with tilde expansion
func GetFile() string {
	return expandTilde(viper.GetString("file"))
}

// GetListingURL returns the remote directory listing endpoint
func GetListingURL() string {
	return viper.GetString("listing_url")
}

// GetLinkBase returns the base URL entries link to
func GetLinkBase() string {
	return viper.GetString("link_base")
}

// GetAliasesFile returns the alias override file, if any
func GetAliasesFile() string {
	return expandTilde(viper.GetString("aliases_file"))
}

func GetFailFast() bool {
	return viper.GetBool("fail_fast")
}

func GetStrictJSON() bool {
	return viper.GetBool("strict_json")
}

// GetTimeout returns the per-request HTTP timeout
func GetTimeout() time.Duration {
	return viper.GetDuration("timeout")
}

func GetVerbose() bool {
	return viper.GetBool("verbose")
}

// SetOutput sets output mode at runtime
func SetOutput(mode string) {
	viper.Set("output", mode)
	C.Output = mode
}

// SetFile sets the output file at runtime
func SetFile(path string) {
	viper.Set("file", path)
	C.File = path
}

// SetDir sets the source directory at runtime
func SetDir(dir string) {
	viper.Set("dir", dir)
	C.Dir = dir
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
