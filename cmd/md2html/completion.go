package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // free-form value
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // flagEnum
	FileGlob string   // flagFile
}

// completionMeta holds completion hints for flags that take a value.
// Flag names, types and descriptions come from the FlagSet.
type completionMeta struct {
	Values   func() []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"highlight-style": {Values: md2html.HighlightStyles},
	"completion":      {Values: func() []string { return []string{string(ShellBash), string(ShellZsh), string(ShellFish)} }},
	"config":          {FileGlob: "*.yaml"},
	"css":             {FileGlob: "*.css"},
	"output":          {IsDir: true},
}

// completionFlags extracts flag definitions from the CLI FlagSet.
func completionFlags() []flagDef {
	var defs []flagDef

	buildFlagSet(&cliFlags{}).VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case meta.Values != nil:
				fd.Type = flagEnum
				fd.Values = meta.Values()
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		defs = append(defs, fd)
	})

	return defs
}

// GenerateCompletion writes a shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	defs := completionFlags()

	var script string
	switch shell {
	case ShellBash:
		script = bashCompletion(defs)
	case ShellZsh:
		script = zshCompletion(defs)
	case ShellFish:
		script = fishCompletion(defs)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, script)
	return err
}

// flagNames returns the spellings of a flag, long form first.
func flagNames(fd flagDef) []string {
	names := []string{"--" + fd.Long}
	if fd.Short != "" {
		names = append(names, "-"+fd.Short)
	}
	return names
}

func bashCompletion(defs []flagDef) string {
	var b strings.Builder
	var all []string

	fmt.Fprintf(&b, "# bash completion for %s\n", Name)
	fmt.Fprintf(&b, "_%s() {\n", Name)
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    case \"$prev\" in\n")
	for _, fd := range defs {
		all = append(all, flagNames(fd)...)
		var action string
		switch fd.Type {
		case flagBool:
			continue
		case flagEnum:
			action = fmt.Sprintf("COMPREPLY=($(compgen -W %q -- \"$cur\"))", strings.Join(fd.Values, " "))
		case flagFile:
			action = "COMPREPLY=($(compgen -f -- \"$cur\"))"
		case flagDir:
			action = "COMPREPLY=($(compgen -d -- \"$cur\"))"
		default:
			action = "COMPREPLY=()"
		}
		fmt.Fprintf(&b, "        %s)\n            %s\n            return ;;\n", strings.Join(flagNames(fd), "|"), action)
	}
	b.WriteString("    esac\n")
	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(all, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    COMPREPLY=($(compgen -f -- \"$cur\"))\n")
	b.WriteString("}\n")
	fmt.Fprintf(&b, "complete -o filenames -F _%s %s\n", Name, Name)
	return b.String()
}

// zshEscaper escapes characters special inside _arguments specs.
var zshEscaper = strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)

func zshCompletion(defs []flagDef) string {
	var b strings.Builder

	fmt.Fprintf(&b, "#compdef %s\n\n", Name)
	b.WriteString("_arguments -s \\\n")
	for _, fd := range defs {
		var action string
		switch fd.Type {
		case flagBool:
		case flagEnum:
			action = ":value:(" + strings.Join(fd.Values, " ") + ")"
		case flagFile:
			action = ":file:_files -g \"" + fd.FileGlob + "\""
		case flagDir:
			action = ":path:_files"
		default:
			action = ":value: "
		}

		desc := "[" + zshEscaper.Replace(fd.Desc) + "]"
		if fd.Short != "" {
			fmt.Fprintf(&b, "  '(-%s --%s)'{-%s,--%s}'%s%s' \\\n", fd.Short, fd.Long, fd.Short, fd.Long, desc, action)
		} else {
			fmt.Fprintf(&b, "  '--%s%s%s' \\\n", fd.Long, desc, action)
		}
	}
	b.WriteString("  '1:input:_files'\n")
	return b.String()
}

func fishCompletion(defs []flagDef) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# fish completion for %s\n", Name)
	for _, fd := range defs {
		fmt.Fprintf(&b, "complete -c %s -l %s", Name, fd.Long)
		if fd.Short != "" {
			fmt.Fprintf(&b, " -s %s", fd.Short)
		}
		switch fd.Type {
		case flagBool:
		case flagEnum:
			fmt.Fprintf(&b, " -x -a '%s'", strings.Join(fd.Values, " "))
		case flagFile:
			b.WriteString(" -r -F")
		case flagDir:
			b.WriteString(" -x -a '(__fish_complete_directories)'")
		default:
			b.WriteString(" -x")
		}
		fmt.Fprintf(&b, " -d '%s'\n", strings.ReplaceAll(fd.Desc, "'", `\'`))
	}
	return b.String()
}
