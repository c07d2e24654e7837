package commands

// Write prints each argument on its own line, no arguments print an empty
// line.
func Write(args []string, ca *CommandArguments) ReturnValue {
	if len(args) == 0 {
		ca.Output.Println()
		return Success
	}

	for _, arg := range args {
		ca.Output.Println(arg)
	}
	return Success
}

var _ CommandFunc = Write
