package cli

import "fmt"

// Plain fmt-based status output; no colored-terminal dependency is wired
// into this CLI.

func printSuccess(format string, args ...any) {
	fmt.Println("✓ " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println("! " + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println("› " + fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Println("  " + fmt.Sprintf(format, args...))
}

func printFile(path string) {
	fmt.Println("  → " + path)
}

func printNewline() {
	fmt.Println()
}
