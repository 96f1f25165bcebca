package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestHelpTemplate_NotEmpty(t *testing.T) {
	assert.NotEmpty(t, helpTemplate)
}

func TestHelpTemplate_ContainsKeyFlags(t *testing.T) {
	requiredFlags := []string{
		"--config",
		"--history-file",
		"--log-file",
		"--timezone",
		"--verbose",
		"--force",
		"--commits",
		"--at",
		"--seed",
		"--dry-run",
		"--publish-log",
		"--help",
		"--version",
	}

	for _, flag := range requiredFlags {
		assert.Contains(t, helpTemplate, flag, "help template should document %s", flag)
	}
}

func TestHelpTemplate_ContainsExitCodes(t *testing.T) {
	for _, code := range []string{"0   Success", "1   Error", "130 Interrupted"} {
		assert.Contains(t, helpTemplate, code)
	}
}

func TestHelpTemplate_DocumentsEveryBoundFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	BindFlags(cmd, &Options{})

	check := func(name string) {
		assert.Contains(t, helpTemplate, "--"+name, "flag --%s is not documented", name)
	}
	for _, name := range []string{"config", "history-file", "log-file", "timezone", "verbose",
		"force", "commits", "at", "seed", "dry-run", "publish-log"} {
		check(name)
		assert.NotNil(t, cmd.Flag(name))
	}
}

func TestSetCustomHelp(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	SetCustomHelp(cmd)
	assert.Equal(t, helpTemplate, cmd.HelpTemplate())
}
