package opts

import (
	"github.com/walteh/reword/pkg/config"
	"github.com/walteh/reword/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Config     *config.Config
	UserLogger *log.Logger
}
