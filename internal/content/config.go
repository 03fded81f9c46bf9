package content

import (
	"path/filepath"

	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

// app option keys of the content service
const (
	FlagEnable        = "content.enable"
	FlagListenAddress = "content.address"
	FlagDBDir         = "content.db-dir"
	FlagMaxSize       = "content.max-size"
)

const (
	DefaultListenAddress = "127.0.0.1:26680"
	DefaultMaxSize       = 4 << 20
	dbName               = "content"
)

// Config of the content service
type Config struct {
	ListenAddress string
	DBDir         string
	MaxSize       int
}

// DefaultConfig stores content under <home>/data
func DefaultConfig(home string) Config {
	return Config{
		ListenAddress: DefaultListenAddress,
		DBDir:         filepath.Join(home, "data"),
		MaxSize:       DefaultMaxSize,
	}
}

// ConfigFromAppOptions reads the content service options, falling back to the defaults for
// unset values
func ConfigFromAppOptions(home string, opts servertypes.AppOptions) Config {
	cfg := DefaultConfig(home)
	if v := cast.ToString(opts.Get(FlagListenAddress)); v != "" {
		cfg.ListenAddress = v
	}
	if v := cast.ToString(opts.Get(FlagDBDir)); v != "" {
		cfg.DBDir = v
	}
	if v := cast.ToInt(opts.Get(FlagMaxSize)); v > 0 {
		cfg.MaxSize = v
	}
	return cfg
}

// AddFlags registers the content service options on a node or standalone command
func AddFlags(fs *pflag.FlagSet) {
	fs.String(FlagListenAddress, DefaultListenAddress, "Content service listen address")
	fs.String(FlagDBDir, "", "Content database directory, defaults to <home>/data")
	fs.Int(FlagMaxSize, DefaultMaxSize, "Max content document size in bytes")
}
