package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// splitGlobalFlags separates the leading args that name flags in fs from the rest.
// It stops at the first arg that is not a known flag. A "--" ends the flags and is dropped.
// Nothing is applied to fs; pass the flags to fs.Parse.
func splitGlobalFlags(fs *pflag.FlagSet, args []string) (flags, rest []string, err error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return args[:i], args[i+1:], nil
		}
		if len(arg) < 2 || arg[0] != '-' {
			return args[:i], args[i:], nil
		}

		var flag *pflag.Flag
		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if strings.HasPrefix(arg, "--") {
			flag = fs.Lookup(name)
		} else if len(name) == 1 {
			flag = fs.ShorthandLookup(name)
		}
		if flag == nil {
			return args[:i], args[i:], nil
		}

		if !hasValue && flag.NoOptDefVal == "" {
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("flag needs an argument: %s", arg)
			}
			i++
		}
	}
	return args, nil, nil
}

// passThroughArgs returns the words that follow name in args, applying the
// global flags in fs that precede it. Words after name are never parsed.
func passThroughArgs(fs *pflag.FlagSet, name string, args []string) ([]string, error) {
	flags, rest, err := splitGlobalFlags(fs, args)
	if err != nil {
		return nil, err
	}
	if len(rest) == 0 || rest[0] != name {
		if len(rest) > 0 && strings.HasPrefix(rest[0], "-") {
			return nil, fmt.Errorf("unknown flag: %s", rest[0])
		}
		return nil, fmt.Errorf("expected %s after global flags", name)
	}
	if err := fs.Parse(flags); err != nil {
		return nil, err
	}
	return rest[1:], nil
}
