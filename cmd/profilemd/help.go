package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: profilemd <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a GitHub profile README, and HTML, text, and PDF exports,")
	fmt.Fprintln(w, "from a YAML or JSON profile file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render      Render profile files to Markdown, HTML, text, and PDF")
	fmt.Fprintln(w, "  preview     Show the rendered README in the terminal")
	fmt.Fprintln(w, "  watch       Re-render a profile whenever it changes")
	fmt.Fprintln(w, "  serve       Serve live previews and downloads over HTTP")
	fmt.Fprintln(w, "  catalog     List known skills, platforms, and categories")
	fmt.Fprintln(w, "  doctor      Check system configuration")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'profilemd help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

func printEngineFlags(w io.Writer) {
	fmt.Fprintln(w, "  -e, --engine <s>          PDF engine: text (default), browser")
	fmt.Fprintln(w, "  -t, --timeout <d>         Browser PDF timeout (e.g., 30s, 2m)")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: profilemd render <profile|dir>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render profile files (.yaml, .yml, .json) into documents.")
	fmt.Fprintln(w, "Directories are searched recursively. When several profiles are")
	fmt.Fprintln(w, "rendered, each one is written to a subdirectory named after its file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to each profile)")
	fmt.Fprintln(w, "  -f, --formats <list>      markdown,html,text,pdf or all (default: markdown)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --width <n>           Wrap plain text at n columns (0 = no wrap)")
	fmt.Fprintln(w, "      --theme <name>        HTML theme: default, dark, print")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	printEngineFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common:")
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Files written:")
	fmt.Fprintln(w, "  README.md, <name>-profile.html, <name>-profile.txt, <name>-README.pdf")
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: profilemd preview <profile> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the README Markdown for a profile in the terminal.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -s, --style <s>           auto, dark, light, notty, dracula (default: auto)")
	fmt.Fprintln(w, "      --width <n>           Word wrap column (default: 80)")
	printCommonFlags(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: profilemd watch <profile> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a profile, then render it again each time the file is saved.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to the profile)")
	fmt.Fprintln(w, "  -f, --formats <list>      markdown,html,text,pdf or all (default: markdown)")
	fmt.Fprintln(w, "      --width <n>           Wrap plain text at n columns (0 = no wrap)")
	fmt.Fprintln(w, "      --theme <name>        HTML theme: default, dark, print")
	printEngineFlags(w)
	printCommonFlags(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: profilemd serve <profile> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve a profile over HTTP. The file is re-read on every request.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Routes:")
	fmt.Fprintln(w, "  GET /                     HTML page")
	fmt.Fprintln(w, "  GET /markdown             README Markdown")
	fmt.Fprintln(w, "  GET /text                 Plain text")
	fmt.Fprintln(w, "  GET /export/{format}      Download markdown, html, text, or pdf")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default: localhost:8080)")
	fmt.Fprintln(w, "      --width <n>           Wrap plain text at n columns (0 = no wrap)")
	fmt.Fprintln(w, "      --theme <name>        HTML theme: default, dark, print")
	printEngineFlags(w)
	printCommonFlags(w)
}

// printCatalogUsage prints usage for the catalog command.
func printCatalogUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: profilemd catalog [skills|platforms|categories]... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the lookup tables used for rendering. Uses catalog.path from")
	fmt.Fprintln(w, "the config file when set.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Output as JSON")
	printCommonFlags(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: profilemd doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check config, Chrome (browser engine), and system requirements.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Output as JSON")
	printCommonFlags(w)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: profilemd completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(profilemd completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(profilemd completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    profilemd completion fish > ~/.config/fish/completions/profilemd.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    profilemd completion powershell | Out-String | Invoke-Expression")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "catalog":
		printCatalogUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: profilemd version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: profilemd help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
