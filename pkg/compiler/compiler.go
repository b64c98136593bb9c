package compiler

// Compiler describes an external compiler binary that can be pointed
// at an output directory.
type Compiler interface {
	Name() string
	Args(outDir string, arg ...string) []string
}
