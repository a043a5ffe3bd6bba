package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	crypteeVersion = "0.1.0"
)

func main() {
	b := NewBuild()
	b.Generate().DependsOnRunner("tidy", "", Go().ModTidy())

	cli := NewAppBuild("cryptee", "cmd/cryptee", crypteeVersion)
	cli.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", crypteeVersion).
			CgoEnabled(false)
	})
	cli.Variant("windows", "amd64")
	cli.Variant("linux", "amd64")
	cli.Variant("linux", "arm64")
	cli.Variant("darwin", "amd64")
	cli.Variant("darwin", "arm64")
	b.ImportApp(cli)

	b.Execute()
}
