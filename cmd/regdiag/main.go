// Command regdiag loads the Ames housing table, fits an ordinary
// least-squares model on the encoded features, and prints regression
// diagnostics to stdout. All logging goes to stderr.
package main

func main() {
	Execute()
}
