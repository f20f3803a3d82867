package main

// Version is set at build time via -ldflags "-X main.Version=..."
var Version = "dev"

func getVersionString() string {
	return Version
}
