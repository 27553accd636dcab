package main

import "github.com/SaaS-team111111/easyNutri-iter2/cmd/easynutri"

func main() {
	easynutri.Execute()
}
