package flagcli

import (
	"fmt"
	"io"
	"strings"
)

func writeHelp(w io.Writer, cmd *Command) {
	if cmd.Short != "" {
		fmt.Fprintf(w, "%s - %s\n", cmd.Name, cmd.Short)
	} else {
		fmt.Fprintf(w, "%s\n", cmd.Name)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", usageLine(cmd))

	flags := flagsForHelp(cmd)
	if len(flags) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		for _, fh := range flags {
			fmt.Fprintln(w, formatFlagHelpLine(fh))
		}
	}
}

func usageLine(cmd *Command) string {
	segments := []string{cmd.Name}
	if len(flagsForHelp(cmd)) > 0 {
		segments = append(segments, "[flags]")
	}
	if cmd.Run != nil {
		segments = append(segments, "[args]")
	}
	return strings.Join(segments, " ")
}

func formatFlagHelpLine(fh flagHelp) string {
	def := fh.def
	var names string
	if def.shorthand != 0 {
		names = fmt.Sprintf("-%c, --%s", def.shorthand, def.name)
	} else {
		names = fmt.Sprintf("    --%s", def.name)
	}
	suffix := ""
	if def.kind != flagBool {
		suffix = fmt.Sprintf(" <%s>", fh.kind)
	}
	usage := strings.TrimSpace(def.usage)
	if usage == "" {
		return fmt.Sprintf("  %s%s", names, suffix)
	}
	return fmt.Sprintf("  %s%s\t%s", names, suffix, usage)
}
