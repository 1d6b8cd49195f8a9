package main

import "github.com/madDev-12/fitnutrition/cmd/fitnutrition"

func main() {
	fitnutrition.Execute()
}
