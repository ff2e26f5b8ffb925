package main

import (
	"github.com/ftcdoctor/logdoctor/cmd/logdoctor/commands"
	"github.com/ftcdoctor/logdoctor/internal/utils/logger"
)

func main() {
	defer logger.Sync()
	commands.Execute()
}
