package main

import "github.com/muhardiansyah15/prophet-forecasting-app/internal/cli"

func main() {
	cli.Execute()
}
