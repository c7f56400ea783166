// Copyright © 2019 One Concern

package main

import (
	"github.com/oneconcern/datarev/cmd/datarev/cmd"
)

func main() {
	cmd.Execute()
}
