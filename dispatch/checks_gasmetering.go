//go:build gasmetering

package dispatch

const inGasMetering = true
