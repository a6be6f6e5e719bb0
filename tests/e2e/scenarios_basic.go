package main

import (
	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/command"
	"github.com/grovetools/tend/pkg/harness"
)

// VersionScenario tests the 'version' command.
func VersionScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "docnav-basic-version",
		Steps: []harness.Step{
			harness.NewStep("Run 'docnav version'", func(ctx *harness.Context) error {
				binary, err := findDocnavBinary()
				if err != nil {
					return err
				}

				cmd := command.New(binary, "version")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "docnav version should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "docnav ", "Output should name the binary"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "Commit:", "Output should contain Commit"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "Built:", "Output should contain the build date")
			}),
		},
	}
}
