package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

var supportedShells = []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional values
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments (e.g., "*.yaml")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"engine":  {Values: []string{"text", "browser"}},
	"formats": {Values: []string{"all", "markdown", "html", "text", "pdf"}},
	"style":   {Values: []string{"auto", "dark", "light", "notty", "dracula", "tokyo-night", "pink"}},
	"theme":   {Values: []string{"default", "dark", "print"}},
	"config":  {FileGlob: "*.yaml,*.yml"},
	"output":  {IsDir: true},
}

// profileFilePattern matches profile files for positional completion.
const profileFilePattern = "*.yaml,*.yml,*.json"

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets - single source of truth.
func getCommands() []commandDef {
	names := []string{"render", "preview", "watch", "serve", "catalog", "doctor", "completion", "version", "help"}

	return []commandDef{
		{
			Name:        "render",
			Desc:        "Render profile files to Markdown, HTML, text, and PDF",
			Flags:       extractFlagsFromFlagSet(newRenderFlagSet(&renderFlags{})),
			TakesFiles:  true,
			FilePattern: profileFilePattern,
		},
		{
			Name:        "preview",
			Desc:        "Show the rendered README in the terminal",
			Flags:       extractFlagsFromFlagSet(newPreviewFlagSet(&previewFlags{})),
			TakesFiles:  true,
			FilePattern: profileFilePattern,
		},
		{
			Name:        "watch",
			Desc:        "Re-render a profile whenever it changes",
			Flags:       extractFlagsFromFlagSet(newWatchFlagSet(&watchFlags{})),
			TakesFiles:  true,
			FilePattern: profileFilePattern,
		},
		{
			Name:        "serve",
			Desc:        "Serve live previews and downloads over HTTP",
			Flags:       extractFlagsFromFlagSet(newServeFlagSet(&serveFlags{})),
			TakesFiles:  true,
			FilePattern: profileFilePattern,
		},
		{
			Name:  "catalog",
			Desc:  "List known skills, platforms, and categories",
			Flags: extractFlagsFromFlagSet(newCatalogFlagSet(&catalogFlags{})),
			Args:  catalogTables,
		},
		{
			Name:  "doctor",
			Desc:  "Check system configuration",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&doctorFlags{})),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: supportedShells,
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: names,
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	case ShellPowerShell:
		script = generatePowerShell(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(supportedShells, ", "))
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

// flagSwitches returns the "--long|-s" pattern for a bash case arm.
func flagSwitches(f flagDef) string {
	if f.Short != "" {
		return "--" + f.Long + "|-" + f.Short
	}
	return "--" + f.Long
}

func generateBash(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# bash completion for profilemd\n\n")
	b.WriteString("_profilemd_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)

		var valueArms []string
		for _, f := range c.Flags {
			switch f.Type {
			case flagEnum:
				valueArms = append(valueArms, fmt.Sprintf("                %s) COMPREPLY=( $(compgen -W %q -- \"$cur\") ); return ;;\n", flagSwitches(f), strings.Join(f.Values, " ")))
			case flagFile:
				valueArms = append(valueArms, fmt.Sprintf("                %s) COMPREPLY=( $(compgen -f -- \"$cur\") ); return ;;\n", flagSwitches(f)))
			case flagDir:
				valueArms = append(valueArms, fmt.Sprintf("                %s) COMPREPLY=( $(compgen -d -- \"$cur\") ); return ;;\n", flagSwitches(f)))
			case flagString, flagInt:
				valueArms = append(valueArms, fmt.Sprintf("                %s) return ;;\n", flagSwitches(f)))
			}
		}
		if len(valueArms) > 0 {
			b.WriteString("            case \"$prev\" in\n")
			for _, arm := range valueArms {
				b.WriteString(arm)
			}
			b.WriteString("            esac\n")
		}

		b.WriteString("            if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(&b, "                COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(flagWords(c.Flags), " "))
		switch {
		case len(c.Args) > 0:
			b.WriteString("            else\n")
			fmt.Fprintf(&b, "                COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(c.Args, " "))
		case c.TakesFiles:
			b.WriteString("            else\n")
			b.WriteString("                COMPREPLY=( $(compgen -f -- \"$cur\") )\n")
		}
		b.WriteString("            fi\n")
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _profilemd_completions profilemd\n")
	return b.String()
}

// zshEscape makes s safe inside a single-quoted _arguments spec.
func zshEscape(s string) string {
	return strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`).Replace(s)
}

// zshGlob turns "*.yaml,*.yml" into "*.(yaml|yml)".
func zshGlob(patterns string) string {
	var exts []string
	for _, p := range strings.Split(patterns, ",") {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(p), "*."))
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

func generateZsh(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef profilemd\n\n")
	b.WriteString("_profilemd() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            shift words; (( CURRENT-- ))\n")
		b.WriteString("            _arguments")

		for _, f := range c.Flags {
			action := ""
			switch f.Type {
			case flagEnum:
				action = ":value:(" + strings.Join(f.Values, " ") + ")"
			case flagFile:
				action = ":file:_files -g '" + zshGlob(f.FileGlob) + "'"
			case flagDir:
				action = ":directory:_files -/"
			case flagString, flagInt:
				action = ":value:"
			}
			spec := "[" + zshEscape(f.Desc) + "]" + action
			if f.Short != "" {
				fmt.Fprintf(&b, " \\\n                '(-%s --%s)'{-%s,--%s}'%s'", f.Short, f.Long, f.Short, f.Long, spec)
			} else {
				fmt.Fprintf(&b, " \\\n                '--%s%s'", f.Long, spec)
			}
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, " \\\n                '*:argument:(%s)'", strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(&b, " \\\n                '*:file:_files -g \"%s\"'", zshGlob(c.FilePattern))
		}
		b.WriteString("\n            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _profilemd profilemd\n")
	return b.String()
}

// fishQuote single-quotes s for fish.
func fishQuote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s) + "'"
}

func generateFish(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for profilemd\n\n")
	b.WriteString("function __fish_profilemd_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_profilemd_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c profilemd -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c profilemd -n __fish_profilemd_needs_command -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}

	for _, c := range cmds {
		cond := fishQuote("__fish_profilemd_using_command " + c.Name)
		if len(c.Flags) > 0 || len(c.Args) > 0 || c.TakesFiles {
			b.WriteString("\n")
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c profilemd -n %s", cond)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long + " -d " + fishQuote(f.Desc)
			switch f.Type {
			case flagEnum:
				line += " -x -a " + fishQuote(strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagString, flagInt:
				line += " -x"
			}
			b.WriteString(line + "\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c profilemd -n %s -a %s\n", cond, fishQuote(strings.Join(c.Args, " ")))
		case c.TakesFiles:
			fmt.Fprintf(&b, "complete -c profilemd -n %s -F\n", cond)
		}
	}
	return b.String()
}

// psQuote single-quotes s for PowerShell.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func psList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = psQuote(s)
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func generatePowerShell(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# PowerShell completion for profilemd\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName profilemd -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = @{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psQuote(c.Desc))
	}
	b.WriteString("    }\n")

	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		if len(c.Flags) > 0 {
			fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psList(flagWords(c.Flags)))
		}
	}
	b.WriteString("    }\n")

	b.WriteString("    $values = @{\n")
	for _, c := range cmds {
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psList(c.Args))
		}
	}
	for _, f := range enumFlags(cmds) {
		fmt.Fprintf(&b, "        %s = %s\n", psQuote("--"+f.Long), psList(f.Values))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $words = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($words.Count -le 1 -or ($words.Count -eq 2 -and $wordToComplete -ne '')) {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | Sort-Object Key | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $cmd = $words[1]\n")
	b.WriteString("    $prev = if ($wordToComplete -ne '') { $words[-2] } else { $words[-1] }\n")
	b.WriteString("    if ($values.ContainsKey($prev)) {\n")
	b.WriteString("        $candidates = $values[$prev]\n")
	b.WriteString("    } elseif ($wordToComplete -like '-*') {\n")
	b.WriteString("        $candidates = @($flags[$cmd])\n")
	b.WriteString("    } else {\n")
	b.WriteString("        $candidates = @($values[$cmd])\n")
	b.WriteString("    }\n")
	b.WriteString("    $candidates | Where-Object { $_ -and $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

// enumFlags returns each enum flag once, sorted by name.
func enumFlags(cmds []commandDef) []flagDef {
	seen := make(map[string]flagDef)
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type == flagEnum {
				seen[f.Long] = f
			}
		}
	}
	out := make([]flagDef, 0, len(seen))
	for _, f := range seen {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Long < out[j].Long })
	return out
}
