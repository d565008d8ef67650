// Package manifest loads build logs and replays them into a history.Graph.
//
// A manifest is an ordered list of steps, each one a command with the files
// it read and wrote. Two encodings are understood, chosen by file extension:
//
// HCL (.hcl):
//
//	step "compile" {
//	  command = "cc -c main.c"
//	  inputs  = ["main.c"]
//	  outputs = ["main.o"]
//	}
//
// YAML (.yaml, .yml):
//
//	steps:
//	  - name: compile
//	    command: cc -c main.c
//	    inputs: [main.c]
//	    outputs: [main.o]
//
// The step name only appears in diagnostics. command defaults to the name,
// inputs may be omitted, outputs is required. Steps are replayed in the order
// they appear, so a later step may overwrite a file an earlier one produced.
package manifest
