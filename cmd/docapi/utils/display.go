// Package utils contains helpers for the docapi binary.
package utils

import (
	"fmt"
)

// DisplayLogo prints the docapi ASCII logo with version information
func DisplayLogo(version string) {
	fmt.Println()
	fmt.Println(` ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░
 ░█▀▄░█▀█░█▀▀░█▀█░█▀█░▀█▀░░
 ░█░█░█░█░█░░░█▀█░█▀▀░░█░░░
 ░▀▀░░▀▀▀░▀▀▀░▀░▀░▀░░░▀▀▀░░
 ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░`)
	fmt.Printf("\n docapi v%s - AI Document Processing API\n", version)
	fmt.Println(" Demo workload for Azure Container Apps and Container Instances")
	fmt.Println()
}
