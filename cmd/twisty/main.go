// twisty - terminal N×N×N twisty puzzle with solve timing and recording.
package main

import (
	"github.com/SeamusWaldron/twisty/internal/cli"
)

func main() {
	cli.Execute()
}
