package main

import (
	"catalogscrape/cmd/catalog-cli/commands"
	"catalogscrape/lib/util/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
