package main

import "github.com/Togather-Foundation/topicdir/cmd/server/cmd"

func main() {
	cmd.Execute()
}
