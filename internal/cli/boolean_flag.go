package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName               = "bool"
	booleanFlagTrueLiteral            = "true"
	booleanFlagAcceptedValuesListing  = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidValueErrorLabel = "invalid boolean value"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

type booleanFlagValue struct {
	target  *bool
	flagKey string
}

func (value *booleanFlagValue) Set(input string) error {
	if value == nil || value.target == nil {
		return fmt.Errorf("%s %q for flag %q", booleanFlagInvalidValueErrorLabel, input, value.flagKey)
	}
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = booleanFlagTrueLiteral
	}
	parsed, ok := booleanFlagLiterals[normalized]
	if !ok {
		return fmt.Errorf("%s %q for --%s; accepted values: %s", booleanFlagInvalidValueErrorLabel, input, value.flagKey, booleanFlagAcceptedValuesListing)
	}
	*value.target = parsed
	return nil
}

func (value *booleanFlagValue) String() string {
	if value == nil || value.target == nil {
		return booleanFlagTrueLiteral
	}
	return strconv.FormatBool(*value.target)
}

func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagValue := &booleanFlagValue{
		target:  target,
		flagKey: name,
	}
	flagSet.Var(flagValue, name, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = strconv.FormatBool(defaultValue)
		lookup.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments rewrites "--flag value" into "--flag=value" when flag is a
// boolean flag of the command being invoked and value is a boolean literal. Anything else is
// left for cobra, so "--summary src" keeps src as the positional root.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	if command == nil || len(arguments) == 0 {
		return arguments
	}
	activeCommand := command
	booleanFlags := collectBooleanFlagNames(activeCommand)
	positionalSeen := false
	normalized := make([]string, 0, len(arguments))
	index := 0
	for index < len(arguments) {
		currentArgument := arguments[index]
		if currentArgument == "--" {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if !strings.HasPrefix(currentArgument, "-") {
			if !positionalSeen {
				if subcommand := findSubcommand(activeCommand, currentArgument); subcommand != nil {
					activeCommand = subcommand
					booleanFlags = collectBooleanFlagNames(activeCommand)
					normalized = append(normalized, currentArgument)
					index++
					continue
				}
			}
			positionalSeen = true
			normalized = append(normalized, currentArgument)
			index++
			continue
		}
		if takesSeparateValue(activeCommand, currentArgument) && index+1 < len(arguments) {
			normalized = append(normalized, currentArgument, arguments[index+1])
			index += 2
			continue
		}
		if strings.HasPrefix(currentArgument, "--") && !strings.Contains(currentArgument, "=") {
			flagName := strings.TrimPrefix(currentArgument, "--")
			if _, exists := booleanFlags[flagName]; exists && index+1 < len(arguments) {
				nextArgument := arguments[index+1]
				if !strings.HasPrefix(nextArgument, "-") {
					literal := strings.ToLower(strings.TrimSpace(nextArgument))
					if _, valid := booleanFlagLiterals[literal]; valid {
						normalized = append(normalized, fmt.Sprintf("--%s=%s", flagName, nextArgument))
						index += 2
						continue
					}
				}
			}
		}
		normalized = append(normalized, currentArgument)
		index++
	}
	return normalized
}

// takesSeparateValue reports whether argument names a flag of command that consumes the
// following argument as its value, as in "-o bundle.js".
func takesSeparateValue(command *cobra.Command, argument string) bool {
	if strings.Contains(argument, "=") {
		return false
	}
	var flag *pflag.Flag
	if strings.HasPrefix(argument, "--") {
		flag = command.Flags().Lookup(strings.TrimPrefix(argument, "--"))
	} else if len(argument) == 2 {
		flag = command.Flags().ShorthandLookup(strings.TrimPrefix(argument, "-"))
	}
	return flag != nil && flag.NoOptDefVal == ""
}

func findSubcommand(command *cobra.Command, name string) *cobra.Command {
	for _, child := range command.Commands() {
		if child.Name() == name || child.HasAlias(name) {
			return child
		}
	}
	return nil
}

// collectBooleanFlagNames returns the boolean flags accepted by command, inherited
// persistent flags included.
func collectBooleanFlagNames(command *cobra.Command) map[string]struct{} {
	names := map[string]struct{}{}
	visit := func(flag *pflag.Flag) {
		if flag == nil || flag.Value == nil {
			return
		}
		if flag.Value.Type() == booleanFlagTypeName {
			names[flag.Name] = struct{}{}
		}
	}
	command.Flags().VisitAll(visit)
	command.InheritedFlags().VisitAll(visit)
	return names
}
