package app

import (
	"fmt"
	"os"
	"strconv"
)

const (
	modeKey    = "SITE_MODE"
	devModeVal = "development"
	portKey    = "PORT"

	defaultPort = 8080
)

func GetIsDev() bool {
	return os.Getenv(modeKey) == devModeVal
}

func SetModeToDev() {
	os.Setenv(modeKey, devModeVal)
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv(portKey))
	if err != nil || port <= 0 {
		return defaultPort
	}
	return port
}

func SetPort(port int) {
	os.Setenv(portKey, fmt.Sprintf("%d", port))
}
