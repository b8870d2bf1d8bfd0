package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	gnum "github.com/shabbyrobe/go-gnum"
)

// numconv converts a single value between radices and widths, showing what a
// hex editor would show for it. It is mostly useful for checking gnum's
// output against another tool's.

const usage = `Value converter

Usage: numconv [options] <size> <from-radix> <to-radix> <value>

<size> is byte, word, dword, qword, oword (or 8, 16, ..., 128), or "auto" to
use the narrowest size that holds the value. A radix prefix on <value>
("0x", "0b", "0o") is ignored.

Options:
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("numconv", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	dump := fs.Bool("dump", false, "Dump the parsed value instead of printing it")
	group := fs.Int("group", 0, "Separate digits into groups of this size")
	sep := fs.String("sep", "_", "Group separator")
	upper := fs.Bool("upper", false, "Upper case hex digits")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 4 {
		fs.Usage()
		return fmt.Errorf("expected 4 args, found %d", fs.NArg())
	}
	sizeStr, fromStr, toStr, in := fs.Arg(0), fs.Arg(1), fs.Arg(2), fs.Arg(3)

	from, err := gnum.ParseRadix(fromStr)
	if err != nil {
		return err
	}
	to, err := gnum.ParseRadix(toStr)
	if err != nil {
		return err
	}

	v, ok := gnum.ParsePrefixed(in, from)
	if !ok {
		return fmt.Errorf("%s value %q invalid", from, in)
	}

	if !strings.EqualFold(sizeStr, "auto") {
		size, err := gnum.ParseSizeName(sizeStr)
		if err != nil {
			return err
		}
		v = v.Resize(size)
	}

	if *dump {
		spew.Dump(v)
		return nil
	}

	var out string
	if to == gnum.Hex && *upper {
		out = v.ToHexUpper()
	} else {
		out = v.ToBase(to)
	}
	fmt.Printf("%s %s\n", v.Size(), gnum.Separate(out, *group, *sep))
	return nil
}
