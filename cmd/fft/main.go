package main

import "github.com/fftools/fft/internal/cmd"

func main() {
	cmd.Execute()
}
