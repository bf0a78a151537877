// Command tasklist manages a categorized to-do list from the terminal.
package main

import "github.com/mesh-intelligence/tasklist/internal/cli"

func main() {
	cli.Execute()
}
