//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Prints the report for the built-in scene, or for $SCENE when set.
func (Run) Report() error {
	args := []string{"run", ".", "-checks"}
	if scene := os.Getenv("SCENE"); scene != "" {
		args = append(args, "-config", scene)
	}
	fmt.Println("Run report...")
	_, err := executeCmd("go", withArgs(args...), withStream())
	return err
}

// Re-runs the report every time $SCENE is saved.
func (Run) Watch() error {
	scene := os.Getenv("SCENE")
	if scene == "" {
		return fmt.Errorf("SCENE must point at a .toml scene file")
	}
	_, err := executeCmd("go", withArgs("run", ".", "-checks", "-watch", "-config", scene), withStream())
	return err
}
