package compiler

import "strings"

// Options is the CompilerOptions record (§6.3). Compile reads Optimize,
// IOOnly and WireDotOut to choose which optional passes run, and logs
// BackendVariant. Export, Update, ExportDotGraph, PrintAfterAll and
// PrintBeforeBackend are parsed and carried, but Compile does not read them:
// it serializes nothing, replays no block updates and writes no debug dumps.
type Options struct {
	Optimize         bool
	Export           bool
	IOOnly           bool
	Update           bool
	ExportDotGraph   bool
	WireDotOut       bool
	PrintAfterAll    bool
	PrintBeforeBackend bool
	BackendVariant   string
}

// DefaultOptions matches the reference compiler's defaults: optimize and
// io_only on, everything else off, Direct as the only backend variant.
func DefaultOptions() Options {
	return Options{
		Optimize:       true,
		IOOnly:         true,
		BackendVariant: "direct",
	}
}

// shortFlags maps a single-letter flag (§6.3: "short flags o, e, i, u, d")
// to the long option name it toggles.
var shortFlags = map[byte]string{
	'o': "optimize",
	'e': "export",
	'i': "io_only",
	'u': "update",
	'd': "export_dot_graph",
}

// ParseOptionString parses a space-separated sequence of "--long" and
// "-shortflags" tokens into an Options value seeded from DefaultOptions
// (§6.3). An unrecognized token is a warning, not an error (§7, rule 4):
// ParseOptionString never fails, it simply leaves the option unset and
// reports every token it didn't understand.
func ParseOptionString(s string) (Options, []string) {
	opts := DefaultOptions()
	var warnings []string

	for _, tok := range strings.Fields(s) {
		switch {
		case strings.HasPrefix(tok, "--"):
			if !applyLong(&opts, tok[2:]) {
				warnings = append(warnings, "unrecognized option: "+tok)
			}
		case strings.HasPrefix(tok, "-"):
			for i := 1; i < len(tok); i++ {
				long, ok := shortFlags[tok[i]]
				if !ok {
					warnings = append(warnings, "unrecognized flag: -"+string(tok[i]))
					continue
				}
				applyLong(&opts, long)
			}
		default:
			warnings = append(warnings, "unrecognized option: "+tok)
		}
	}

	return opts, warnings
}

func applyLong(opts *Options, name string) bool {
	switch name {
	case "optimize":
		opts.Optimize = true
	case "export":
		opts.Export = true
	case "io_only":
		opts.IOOnly = true
	case "update":
		opts.Update = true
	case "export_dot_graph":
		opts.ExportDotGraph = true
	case "wire_dot_out":
		opts.WireDotOut = true
	case "print_after_all":
		opts.PrintAfterAll = true
	case "print_before_backend":
		opts.PrintBeforeBackend = true
	default:
		return false
	}
	return true
}
