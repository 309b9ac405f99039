// functions1
//
// The main function calls a function that does not exist yet. Write it.

// I AM NOT DONE

package main

func main() {
	call_me()
}
