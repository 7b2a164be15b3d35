package main

import "gig-market.com/gig-market/cmd"

func main() {
	cmd.Execute()
}
