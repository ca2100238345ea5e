package main

import (
	"mcdevkit/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// mcdevkit is a developer tool for testing Minecraft server plugins. `mcdevkit start` does:
//   - Checks the requested game version against the official Minecraft version manifest
//   - Resolves the download link of the server distribution (currently Paper) and streams
//     the jar into a workspace, either a given directory or a fresh one under the temp root
//   - Accepts the EULA and copies the given plugin jars (or the jars inside plugin bundles)
//     into the workspace's plugins folder
//   - Runs `java -jar server.jar` attached to the terminal until it exits or Ctrl-C is pressed
//
// Error handling strategy:
//   - Plugin inputs that are missing or not files are skipped with a warning
//   - Everything else (unknown version, unreachable APIs, filesystem errors, failed spawn)
//     stops the run with exit status 1; a half-prepared workspace is left on disk
func main() {
	cmd.Execute()
}
