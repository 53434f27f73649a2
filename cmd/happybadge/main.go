// Command happybadge checks images against the badge rules and fixes them.
package main

import "os"

func main() {
	os.Exit(Execute(os.Args[1:]))
}
