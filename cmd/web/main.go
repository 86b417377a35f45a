package main

import (
	"batarikh-mirror/cmd/web/cli"
)

// @title           Batarikh Mirror API
// @version         1.0
// @description     Read-only JSON view of the archived Telegram channel feed
// @BasePath        /
func main() {
	cli.Execute()
}
