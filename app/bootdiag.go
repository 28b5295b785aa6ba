//go:build !(tinygo && bootdebug)

package app

import "tx42/hal"

func bootDiagStart(hal.HAL)    {}
func bootStep(hal.HAL, string) {}
