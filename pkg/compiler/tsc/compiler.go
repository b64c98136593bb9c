package tsc

var Compiler compiler

type compiler struct{}

func (compiler) Name() string {
	return "tsc"
}

func (compiler) Args(outDir string, arg ...string) []string {
	var a = []string{
		"--outDir", outDir,
	}

	if len(arg) != 0 {
		a = append(a, arg...)
	}

	return a
}
