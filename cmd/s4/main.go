// SPDX-License-Identifier: BSD-2-Clause

// Command s4 manages containerized seL4 build environments: workspaces
// checked out from manifest repositories, configured build directories, and
// runs on machine-queue hardware.
package main

func main() {
	Execute()
}
