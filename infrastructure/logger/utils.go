package logger

import (
	"time"
)

// LogAndMeasureExecutionTime logs that `functionName` started and returns a
// closure that, when called, logs how long it took.
func LogAndMeasureExecutionTime(log *Logger, functionName string) (onEnd func()) {
	start := time.Now()
	log.Debugf("%s start", functionName)
	return func() {
		log.Debugf("%s end. Took: %s", functionName, time.Since(start))
	}
}
