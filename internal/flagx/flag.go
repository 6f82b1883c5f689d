// Package flagx lets several configuration layers parse their own flags
// from os.Args without the flag sets colliding: each layer filters the
// argument list down to the flags it owns before parsing.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the arguments belonging to the flags in
// allowedFlags. Both "-f value" and "--flag=value" spellings are
// recognized; for the former, the following argument is kept as the value
// unless it looks like another flag.
func FilterArgs(args []string, allowedFlags []string) []string {
	keep := make(map[string]struct{}, len(allowedFlags))
	for _, name := range allowedFlags {
		keep[name] = struct{}{}
	}

	// always non-nil so callers can hand the result to flag.Parse
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if eq := strings.Index(arg, "="); eq > 0 && strings.HasPrefix(arg, "-") {
			if _, ok := keep[arg[:eq]]; ok {
				out = append(out, arg)
			}
			continue
		}

		if _, ok := keep[arg]; !ok {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}

	return out
}

// JsonConfigFlags reads the config file path from the -c/-config flags,
// ignoring every other argument. Returns "" when neither flag is present.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
