package main

import "github.com/andresmejia3/facedetect/cmd"

func main() {
	cmd.Execute()
}
