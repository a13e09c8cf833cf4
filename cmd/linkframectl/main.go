// Command linkframectl is an operator tool for generating and
// rotating linkframe key material and for serving the linkframe
// Prometheus metrics endpoint.
package main

import "github.com/barnettlynn/linkguard/cmd/linkframectl/cmd"

func main() {
	cmd.Execute()
}
