//go:build tinygo && baremetal && !macropad

package hal

const boardName = "tx42"
