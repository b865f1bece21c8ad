package logger

import (
	"fmt"
	"os"
	"sync"
)

// backendLog is the logging backend used to create all subsystem loggers.
var backendLog = NewBackend()

var (
	subsystemsMutex sync.Mutex
	subsystems      = make(map[string]*Logger)
)

// RegisterSubSystem returns a logger for the given subsystem tag, creating it
// if it doesn't exist yet. All loggers are created with the info level.
func RegisterSubSystem(subsystem string) *Logger {
	subsystemsMutex.Lock()
	defer subsystemsMutex.Unlock()
	logger, ok := subsystems[subsystem]
	if !ok {
		logger = backendLog.Logger(subsystem)
		logger.SetLevel(LevelInfo)
		subsystems[subsystem] = logger
	}
	return logger
}

// InitLog attaches the log file and error log file to the backend log and
// launches it. It is intended to be called once by the hosting process;
// library consumers that never call it get log output on stderr.
func InitLog(logFile, errLogFile string) {
	err := backendLog.AddLogFile(logFile, LevelTrace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", logFile, LevelTrace, err)
		os.Exit(1)
	}
	err = backendLog.AddLogFile(errLogFile, LevelWarn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", errLogFile, LevelWarn, err)
		os.Exit(1)
	}
	err = backendLog.AddLogWriter(os.Stdout, LevelInfo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding stdout to the loggerfor level %s: %s", LevelInfo, err)
		os.Exit(1)
	}
	err = backendLog.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the logger: %s ", err)
		os.Exit(1)
	}
}

// SetLogLevel sets the logging level of the subsystem identified by the given
// tag. Invalid tags are ignored.
func SetLogLevel(subsystem string, level string) error {
	lvl, ok := LevelFromString(level)
	if !ok {
		return fmt.Errorf("invalid log level %s", level)
	}
	subsystemsMutex.Lock()
	defer subsystemsMutex.Unlock()
	if logger, ok := subsystems[subsystem]; ok {
		logger.SetLevel(lvl)
	}
	return nil
}

// SetLogLevels sets the log level for all registered subsystems.
func SetLogLevels(level string) error {
	lvl, ok := LevelFromString(level)
	if !ok {
		return fmt.Errorf("invalid log level %s", level)
	}
	subsystemsMutex.Lock()
	defer subsystemsMutex.Unlock()
	for _, logger := range subsystems {
		logger.SetLevel(lvl)
	}
	return nil
}
