package commands

import (
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"text/tabwriter"

	fcolor "github.com/fatih/color"
	"github.com/josephlewis42/clic/core/workdir"
)

// Ls lists the files of a folder followed by its sub-folders.
func Ls(args []string, ca *CommandArguments) ReturnValue {
	cmd := &SimpleCommand{
		Use:   "ls [-d] [-h] [PATH]",
		Short: "List the files and folders of PATH (the working folder by default).",
	}

	opts := cmd.Flags()
	dirSizes := opts.Bool('d', "compute folder sizes recursively")
	humanSize := opts.BoolLong("human-readable", 'h', "print human readable sizes")
	cmd.ShowHelp = opts.BoolLong("help", '?', "show help and exit")

	return cmd.Run("ls", args, ca, func() ReturnValue {
		if len(opts.Args()) > 1 {
			return ca.Fail(fmt.Errorf("ls: too many arguments"))
		}

		dir := ca.WorkingFolder.Path()
		if len(opts.Args()) == 1 {
			if !ca.WorkingFolder.Exists(opts.Arg(0)) {
				return ca.Fail(fmt.Errorf("ls: path %q not found", opts.Arg(0)))
			}
			dir = ca.WorkingFolder.Resolve(opts.Arg(0))
		}

		entries, err := workdir.List(ca.WorkingFolder.Fs(), dir, *dirSizes)
		if err != nil {
			return ca.Fail(err)
		}

		sizeHeader := "Size [kB]"
		sizeFmt := func(bytes int64) string {
			return strconv.FormatInt(bytes/1024, 10)
		}
		if *humanSize {
			sizeHeader = "Size"
			sizeFmt = BytesToHuman
		}

		ca.Output.Printf("Directory %s\n\n", dir)

		// The colored name goes last so escape codes don't skew the columns.
		tw := tabwriter.NewWriter(ca.Output.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", sizeHeader, "Type", "Name")
		for _, entry := range entries {
			size, kind := sizeFmt(entry.Size), "file"
			if entry.IsDir {
				kind = "folder"
				if !*dirSizes {
					size = ""
				}
			}

			fmt.Fprintf(tw, "%s\t%s\t%s\n", size, kind, ca.Output.Sprintf(Dircolor(entry), "%s", entry.Name))
		}
		tw.Flush()

		return Success
	})
}

var _ CommandFunc = Ls

type LsColorTest struct {
	color *fcolor.Color
	test  func(entry workdir.Entry) bool
}

// Color listing comes from: https://askubuntu.com/a/884513
var dircolors = []LsColorTest{
	// Directories are bold blue.
	{color: ColorBoldBlue, test: func(e workdir.Entry) bool {
		return e.IsDir
	}},
	// Symlinks are bold cyan.
	{color: ColorBoldCyan, test: func(e workdir.Entry) bool {
		return e.Mode&fs.ModeSymlink > 0
	}},
	// Yellow with black background pipe, block device, char device.
	{color: fcolor.New(fcolor.FgYellow, fcolor.BgBlack, fcolor.Bold), test: func(e workdir.Entry) bool {
		return e.Mode&(fs.ModeDevice|fs.ModeNamedPipe|fs.ModeSocket|fs.ModeCharDevice) > 0
	}},
	// Executables are bold green.
	{color: ColorBoldGreen, test: func(e workdir.Entry) bool {
		return e.Mode.Perm()&0111 > 0
	}},
	// Archives are bold red.
	{color: fcolor.New(fcolor.FgRed, fcolor.Bold), test: func(e workdir.Entry) bool {
		return map[string]bool{
			".tar": true,
			".tgz": true,
			".zip": true,
			".gz":  true,
			".bz2": true,
			".deb": true,
			".rpm": true,
			".jar": true,
			".rar": true,
		}[path.Ext(e.Name)]
	}},
}

func Dircolor(entry workdir.Entry) *fcolor.Color {
	for _, dc := range dircolors {
		if dc.test(entry) {
			return dc.color
		}
	}

	// Anything else defaults to white.
	return fcolor.New(fcolor.FgHiWhite)
}
