// variables2
//
// Every declared variable has to be used in Go. One of these is not.

// I AM NOT DONE

package main

import "fmt"

func main() {
	answer := 42
	question := "unknown"

	fmt.Println("The answer is", answer)
}
