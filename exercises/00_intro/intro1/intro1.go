// intro1
//
// This exercise already compiles and runs. The `I AM NOT DONE` comment
// below is how you tell the trainer you are finished with an exercise:
// as long as it is present, the exercise counts as pending even when it
// passes. Remove the comment to move on.

// I AM NOT DONE

package main

import "fmt"

func main() {
	fmt.Println("Hello and welcome to the exercises!")
	fmt.Println("Edit a file, save it, and watch mode picks it up.")
}
