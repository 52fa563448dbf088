package main

import "github.com/GenAICloudDevOps/clio-ai/cmd"

func main() {
	cmd.Execute()
}
