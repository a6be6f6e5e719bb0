package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const (
	maxWidth = 72
	minWidth = 40
)

// getTerminalWidth returns the terminal width capped at maxWidth.
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < minWidth {
		return maxWidth
	}
	if width > maxWidth {
		return maxWidth
	}
	return width
}

// wrapText wraps text to width, keeping existing line breaks.
func wrapText(text string, width int) string {
	if width <= 0 {
		width = maxWidth
	}

	var result []string
	for _, paragraph := range strings.Split(text, "\n") {
		if len(paragraph) <= width {
			result = append(result, paragraph)
			continue
		}
		var line string
		for _, word := range strings.Fields(paragraph) {
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= width:
				line += " " + word
			default:
				result = append(result, line)
				line = word
			}
		}
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

// ApplyStyledHelpRecursive installs the styled help on cmd and all its
// subcommands. Call it after every subcommand has been added.
func ApplyStyledHelpRecursive(cmd *cobra.Command) {
	cmd.SetHelpFunc(styledHelpFunc)
	cmd.SetUsageFunc(func(*cobra.Command) error { return nil })
	for _, sub := range cmd.Commands() {
		ApplyStyledHelpRecursive(sub)
	}
}

// PrintError prints a styled error with a help hint.
func PrintError(cmd *cobra.Command, err error) {
	p := DefaultPalette
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", p.Error.Render("Error:"), err.Error())
	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", p.Muted.Render(fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath())))
}

// splitExamples separates an "Examples:" block from a long description.
func splitExamples(long string) (description, examples string) {
	for _, marker := range []string{"\nExamples:\n", "\nExample:\n"} {
		if idx := strings.Index(long, marker); idx != -1 {
			return strings.TrimSpace(long[:idx]), strings.TrimSpace(long[idx+len(marker):])
		}
	}
	return long, ""
}

func styledHelpFunc(cmd *cobra.Command, _ []string) {
	renderHelp(cmd.OutOrStdout(), cmd, getTerminalWidth()-2)
}

func renderHelp(w io.Writer, cmd *cobra.Command, width int) {
	p := DefaultPalette

	fmt.Fprintln(w, " "+p.Title.Render(strings.ToUpper(cmd.CommandPath())))

	description, examples := cmd.Short, cmd.Example
	if cmd.Long != "" {
		var parsed string
		description, parsed = splitExamples(cmd.Long)
		if examples == "" {
			examples = parsed
		}
	}

	if cmd.Short != "" {
		for _, line := range strings.Split(wrapText(cmd.Short, width), "\n") {
			fmt.Fprintln(w, " "+p.Italic.Render(line))
		}
	}
	if description != "" && description != cmd.Short {
		fmt.Fprintln(w)
		for _, line := range strings.Split(wrapText(description, width), "\n") {
			fmt.Fprintln(w, " "+line)
		}
	}

	if cmd.Runnable() || cmd.HasSubCommands() {
		fmt.Fprintln(w, "\n "+p.Section.Render("USAGE"))
		if cmd.Runnable() {
			fmt.Fprintf(w, " %s\n", cmd.UseLine())
		}
		if cmd.HasSubCommands() {
			fmt.Fprintf(w, " %s [command]\n", cmd.CommandPath())
		}
	}

	if cmd.HasAvailableSubCommands() {
		maxLen := 0
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() && len(sub.Name()) > maxLen {
				maxLen = len(sub.Name())
			}
		}
		fmt.Fprintln(w, "\n "+p.Section.Render("COMMANDS"))
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				padding := strings.Repeat(" ", maxLen-len(sub.Name()))
				fmt.Fprintf(w, " %s%s  %s\n", p.Command.Render(sub.Name()), padding, sub.Short)
			}
		}
	}

	renderFlags(w, cmd)

	if examples != "" {
		fmt.Fprintln(w, "\n "+p.Section.Render("EXAMPLES"))
		root := cmd.Root().Name()
		for _, line := range strings.Split(examples, "\n") {
			trimmed := strings.TrimSpace(line)
			switch {
			case trimmed == "":
				fmt.Fprintln(w)
			case strings.HasPrefix(trimmed, "#"):
				fmt.Fprintln(w, " "+p.Muted.Render(trimmed))
			default:
				fmt.Fprintln(w, " "+styleCommandLine(trimmed, root))
			}
		}
	}

	if cmd.HasSubCommands() {
		fmt.Fprintf(w, "\n Use \"%s [command] --help\" for more information.\n", cmd.CommandPath())
	}
}

// renderFlags lists local flags in detail for leaf commands and inline for
// commands with children.
func renderFlags(w io.Writer, cmd *cobra.Command) {
	p := DefaultPalette

	var flags []*pflag.Flag
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			flags = append(flags, f)
		}
	})
	if len(flags) == 0 {
		return
	}

	if cmd.HasAvailableSubCommands() {
		names := make([]string, 0, len(flags))
		for _, f := range flags {
			if f.Shorthand != "" {
				names = append(names, fmt.Sprintf("-%s/--%s", f.Shorthand, f.Name))
			} else {
				names = append(names, "--"+f.Name)
			}
		}
		fmt.Fprintln(w, "\n "+p.Muted.Render("Flags: "+strings.Join(names, ", ")))
		return
	}

	fmt.Fprintln(w, "\n "+p.Section.Render("FLAGS"))
	maxLen := 0
	for _, f := range flags {
		if n := len(flagName(f)); n > maxLen {
			maxLen = n
		}
	}
	for _, f := range flags {
		name := flagName(f)
		usage := f.Usage
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "[]" {
			usage += p.Muted.Render(fmt.Sprintf(" (default: %s)", f.DefValue))
		}
		fmt.Fprintf(w, " %s%s  %s\n", p.Flag.Render(name), strings.Repeat(" ", maxLen-len(name)), usage)
	}
}

// styleCommandLine colors the program name, the subcommand and flags of an
// example line.
func styleCommandLine(line, root string) string {
	p := DefaultPalette
	parts := strings.Fields(line)
	for i, part := range parts {
		switch {
		case i == 0 && part == root:
			parts[i] = p.Command.Render(part)
		case strings.HasPrefix(part, "-"):
			parts[i] = p.Flag.Render(part)
		case i == 1:
			parts[i] = p.Sub.Render(part)
		}
	}
	return "  " + strings.Join(parts, " ")
}

// flagName formats a flag as "-f, --flag" or "    --flag".
func flagName(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	}
	return "    --" + f.Name
}
