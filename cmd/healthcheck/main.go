package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ericogr/agent-arena/internal/constants"
)

func main() {
	addr := os.Getenv(constants.EnvServerAddr)
	if addr == "" {
		addr = ":5001"
	}
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + constants.RouteAPIPrefix + constants.RouteHealth)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		os.Exit(1)
	}
	os.Exit(0)
}
