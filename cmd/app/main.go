package main

import (
	"github.com/venuraw/streambox/internal/app"
	"github.com/venuraw/streambox/internal/config"
)

func main() {
	app.Go(config.Load())
}
