//go:build tinygo && baremetal

package main

import (
	"tx42/app"
	"tx42/hal"
)

func main() {
	app.Run(hal.New())
}
