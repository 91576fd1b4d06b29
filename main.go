package main

import "github.com/khanhnv2901/siteprobe/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
