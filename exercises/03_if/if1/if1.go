// if1
//
// Implement bigger so it returns the larger of its two arguments, then
// run the exercise to check yourself.

// I AM NOT DONE

package main

import "fmt"

func bigger(a, b int) int {
	// Return the bigger of a and b.
}

func main() {
	fmt.Println(bigger(7, 3))
	fmt.Println(bigger(2, 8))
}
