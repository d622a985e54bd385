// Command caliper reconciles engineering requirements against test
// reports: it extracts structured facts from free-text requirements,
// validates measurements with unit normalization, and answers free-text
// questions about the result table.
package main

func main() {
	Execute()
}
