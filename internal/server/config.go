package server

import (
	"encoding/json"
	"os"
)

type Config struct {
	Port        string `json:"port"`
	Ssl         bool   `json:"ssl"`
	SslCert     string `json:"sslCert"`
	SslKey      string `json:"sslKey"`
	WorkerSpeed int    `json:"workerSpeed"`
	WorkerQueue int    `json:"workerQueue"`
	FileLog     string `json:"fileLog"`
}

var GlobalConfig Config
var PathFile string

func ConfigLoad() {
	var err error

	GlobalConfig = Config{
		Port:        ":8000",
		WorkerSpeed: 4,
		WorkerQueue: 100,
		FileLog:     "./academy.log",
	}

	if len(os.Args) > 2 {
		PathFile = os.Args[2]
	} else {
		PathFile = "./config.json"
	}

	configFile, err := os.Open(PathFile)
	if err == nil {
		defer configFile.Close()
		jsonParser := json.NewDecoder(configFile)
		jsonParser.Decode(&GlobalConfig)
	}

	SetLogger(GlobalConfig.FileLog)
}
