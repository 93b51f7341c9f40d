package main

import (
	"os"

	"github.com/kayfabe/kayfabe-booker/bookerservice"
)

func main() {
	if err := bookerservice.Run(); err != nil {
		os.Exit(1)
	}
}
