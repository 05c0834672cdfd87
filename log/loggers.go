package log

// Info takes a pointer subLogger struct and string and logs it at info level
func Info(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.logger.Info(data)
}

// Infoln takes a pointer subLogger struct and interface and logs it at info level
func Infoln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.logger.Infoln(v...)
}

// Infof takes a pointer subLogger struct, string and interface formats and logs it at info level
func Infof(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.logger.Infof(data, v...)
}

// Debug takes a pointer subLogger struct and string and logs it at debug level
func Debug(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.logger.Debug(data)
}

// Debugf takes a pointer subLogger struct, string and interface formats and logs it at debug level
func Debugf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.logger.Debugf(data, v...)
}

// Warn takes a pointer subLogger struct & string and logs it at warn level
func Warn(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.logger.Warn(data)
}

// Warnf takes a pointer subLogger struct, string and interface formats and logs it at warn level
func Warnf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.logger.Warnf(data, v...)
}

// Error takes a pointer subLogger struct & string and logs it at error level
func Error(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.logger.Error(data)
}

// Errorln takes a pointer subLogger struct, string & interface formats and logs it at error level
func Errorln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.logger.Errorln(v...)
}

// Errorf takes a pointer subLogger struct, string and interface formats and logs it at error level
func Errorf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.logger.Errorf(data, v...)
}

