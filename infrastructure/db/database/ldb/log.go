package ldb

import (
	"github.com/blockinator/lava/infrastructure/logger"
)

var log = logger.RegisterSubSystem("LVDB")
