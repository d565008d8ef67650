package app

import "github.com/Caian/h1st/manifest"

// demoSteps is the build log replayed when no manifest or script is given:
// out.txt and out.A.txt are rewritten several times, leaving commands 4, 5,
// 6, 7, 9 and 10 alive.
func demoSteps() []manifest.Step {
	step := func(name string, inputs []string, output string) manifest.Step {
		return manifest.Step{Name: name, Command: name, Inputs: inputs, Outputs: []string{output}}
	}
	return []manifest.Step{
		step("args 1", nil, "out.txt"),
		step("args 2", []string{"out.txt"}, "out.A.txt"),
		step("args 3", []string{"out.txt"}, "out.A.txt"),
		step("args 4", nil, "out.txt"),
		step("args 5", []string{"out.txt"}, "out.A.txt"),
		step("args 6", []string{"out.A.txt"}, "out.B.txt"),
		step("args 7", []string{"out.B.txt"}, "out.C.txt"),
		step("args 8", []string{"out.txt"}, "out.A.txt"),
		step("args 9", []string{"out.txt"}, "out.A.txt"),
		step("args 10", []string{"out.A.txt"}, "out.B.txt"),
	}
}
