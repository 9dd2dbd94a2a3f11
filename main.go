package main

import "github.com/evanrichards/line-fixer-ts/internal/app"

func main() {
	app.Execute()
}
