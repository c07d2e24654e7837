package commands

import "fmt"

// Cd prints the working folder or changes it.
func Cd(args []string, ca *CommandArguments) ReturnValue {
	switch len(args) {
	case 0:
		ca.Output.Println(ca.WorkingFolder.Path())
		return Text(ca.WorkingFolder.Path())
	case 1:
		if err := ca.WorkingFolder.Set(args[0]); err != nil {
			return ca.Fail(err)
		}
		return Success
	default:
		return ca.Fail(fmt.Errorf("cd: too many arguments"))
	}
}

var _ CommandFunc = Cd
