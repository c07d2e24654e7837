package commands

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/josephlewis42/clic/core/vars"
)

var errNoName = errors.New("no unique variable name given")

// Set creates a variable whose kind is picked from its text.
func Set(args []string, ca *CommandArguments) ReturnValue {
	if len(args) != 3 {
		return ca.FailUsage("set NAME (=|!) TEXT")
	}

	name, op, text := args[0], args[1], args[2]
	if err := checkVariableName(name); err != nil {
		return ca.Fail(err)
	}

	var immutable bool
	switch op {
	case "=":
	case "!":
		immutable = true
	default:
		return ca.Fail(fmt.Errorf("invalid operator for %s (%q)", name, op))
	}

	v, err := vars.Create(name, text, immutable)
	if err != nil {
		return ca.Fail(err)
	}
	if err := ca.Variables.Add(v); err != nil {
		return ca.Fail(err)
	}
	return Success
}

// Get prints a single variable.
func Get(args []string, ca *CommandArguments) ReturnValue {
	v, fail := findVariable(args, ca)
	if v == nil {
		return fail
	}

	text, err := v.Text()
	if err != nil {
		return ca.Fail(err)
	}

	mutability := "is mutable"
	if v.Immutable() {
		mutability = "is immutable"
	}
	ca.Output.Printf("Name: %s; Type: %s; Value: %s, %s\n", v.Name(), v.Kind(), text, mutability)
	return Text(text)
}

// LsVar prints a table of all variables.
func LsVar(args []string, ca *CommandArguments) ReturnValue {
	cmd := &SimpleCommand{
		Use:   "lsvar [--kind KIND]",
		Short: "List all variables.",
	}

	kinds := []string{
		vars.KindString.String(),
		vars.KindDouble.String(),
		vars.KindBool.String(),
		vars.KindOperation.String(),
	}
	kind := cmd.Flags().EnumLong("kind", 'k', kinds, "", "only list variables of KIND ("+strings.Join(kinds, "|")+")")

	return cmd.Run("lsvar", args, ca, func() ReturnValue {
		var listed []*vars.Variable
		for _, v := range ca.Variables.All() {
			if *kind == "" || v.Kind().String() == *kind {
				listed = append(listed, v)
			}
		}

		ca.Output.Printf("Variable count: |%d|\n\n", len(listed))

		tw := tabwriter.NewWriter(ca.Output.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Name\tValue\tType\tImmutable")
		for _, v := range listed {
			text, err := v.Text()
			if err != nil {
				text = "<" + err.Error() + ">"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", v.Name(), text, v.Kind(), v.Immutable())
		}
		tw.Flush()

		return Number(float64(len(listed)))
	})
}

// Cng changes the value of a mutable variable, the new text must fit the
// variable's kind.
func Cng(args []string, ca *CommandArguments) ReturnValue {
	const use = "cng NAME = VALUE"
	if len(args) != 3 || args[1] != "=" {
		return ca.FailUsage(use)
	}

	v, ok := ca.Variables.Find(args[0])
	if !ok {
		return ca.Fail(fmt.Errorf("variable %s does not exist", args[0]))
	}

	if err := v.Assign(args[2]); err != nil {
		return ca.Fail(err)
	}
	return Success
}

// SetOp creates an Operation variable.
func SetOp(args []string, ca *CommandArguments) ReturnValue {
	if len(args) != 4 {
		return ca.FailUsage("setop NAME = DOUBLEVAR EXPRESSION")
	}

	name, op, upstreamName, template := args[0], args[1], args[2], args[3]
	if op != "=" {
		ca.Fail(fmt.Errorf("invalid operator for %s (%q)", name, op))
		return InvalidUsage
	}
	if err := checkVariableName(name); err != nil {
		return ca.Fail(err)
	}

	upstream, ok := ca.Variables.Find(upstreamName)
	if !ok {
		return ca.Fail(fmt.Errorf("variable %s doesn't exist", upstreamName))
	}
	if upstream.Kind() != vars.KindDouble {
		return ca.Fail(fmt.Errorf("variable %s is not a double variable", upstreamName))
	}

	v, err := vars.NewOperation(name, upstream, template)
	if err != nil {
		return ca.Fail(err)
	}
	if err := ca.Variables.Add(v); err != nil {
		return ca.Fail(err)
	}
	return Success
}

// GetOp prints an Operation variable including its expression.
func GetOp(args []string, ca *CommandArguments) ReturnValue {
	v, fail := findVariable(args, ca)
	if v == nil {
		return fail
	}
	if v.Kind() != vars.KindOperation {
		return ca.Fail(fmt.Errorf("%s is no operation variable", v.Name()))
	}

	text, err := v.Text()
	if err != nil {
		return ca.Fail(err)
	}

	ca.Output.Printf("Name: %s; Type: %s; Value: %s; is immutable; Operation: %q; Variable: %s\n",
		v.Name(), v.Kind(), text, v.Template(), v.Upstream().Name())
	if evalErr := v.EvalErr(); evalErr != nil {
		ca.Output.Errorf("%v", evalErr)
	}
	return Text(text)
}

// Del removes a variable. Operations derived from it stop producing values.
func Del(args []string, ca *CommandArguments) ReturnValue {
	if len(args) != 1 {
		return ca.Fail(errNoName)
	}
	if err := ca.Variables.RemoveName(args[0]); err != nil {
		return ca.Fail(err)
	}
	return Success
}

func findVariable(args []string, ca *CommandArguments) (*vars.Variable, ReturnValue) {
	if len(args) != 1 {
		return nil, ca.Fail(errNoName)
	}

	v, ok := ca.Variables.Find(args[0])
	if !ok {
		return nil, ca.Fail(fmt.Errorf("variable %s does not exist", args[0]))
	}
	return v, Success
}

// checkVariableName rejects names that could never be referenced with $.
func checkVariableName(name string) error {
	switch {
	case name == "":
		return errors.New("variable names can't be empty")
	case strings.ContainsAny(name, " \t$"):
		return fmt.Errorf("invalid variable name %q", name)
	}
	return nil
}

var (
	_ CommandFunc = Set
	_ CommandFunc = Get
	_ CommandFunc = LsVar
	_ CommandFunc = Cng
	_ CommandFunc = SetOp
	_ CommandFunc = GetOp
	_ CommandFunc = Del
)
