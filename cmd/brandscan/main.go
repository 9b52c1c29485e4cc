package main

import "brand-insights-go/internal/cli"

func main() {
	cli.Main()
}
