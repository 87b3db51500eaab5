package server

import "github.com/sadlil/gologger"

// Logger is the process-wide file logger, attached in ConfigLoad.
var Logger gologger.GoLogger

func SetLogger(fileLog string) {
	Logger = gologger.GetLogger(gologger.FILE, fileLog)
	Logger.Info("Log file attached: " + fileLog)
}
