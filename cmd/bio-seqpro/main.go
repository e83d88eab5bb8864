package main

// See doc.go for documentation
import "github.com/grailbio/seqprep/cmd/bio-seqpro/cmd"

func main() {
	cmd.Run()
}
