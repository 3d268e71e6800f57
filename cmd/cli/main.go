package main

import (
	"github.com/advcompro/songvault/cmd/cli/root"
	"github.com/advcompro/songvault/cmd/cli/songs"
	"github.com/advcompro/songvault/cmd/cli/users"
)

func main() {
	users.InitUsers(root.GetRoot())
	songs.InitSongs(root.GetRoot())
	root.Execute()
}
