// Command clausebook manages a library of reusable document clauses.
package main

import "github.com/mesh-intelligence/clausebook/internal/cli"

func main() {
	cli.Execute()
}
