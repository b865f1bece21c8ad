package relation

import (
	"github.com/blockinator/lava/infrastructure/logger"
)

var log = logger.RegisterSubSystem("RELN")
