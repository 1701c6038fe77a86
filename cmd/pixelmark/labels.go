package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
)

// labelsCmd prints the configured label palette in class index order.
type labelsCmd struct {
	*root
	fs *flag.FlagSet
}

func (l *labelsCmd) FlagSet() *flag.FlagSet {
	return l.fs
}

func parseLabelsCmd(args []string, r *root) (*labelsCmd, error) {
	fs := flag.NewFlagSet("labels", flag.ExitOnError)
	l := &labelsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(l)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *labelsCmd) Run() error {
	if len(l.config.Labels) == 0 {
		fmt.Fprintln(os.Stderr, "no labels configured; add a [labels] section to the config")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, label := range l.config.Labels {
		color := label.Color
		if color == "" {
			color = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, label.Name, color)
	}
	return w.Flush()
}
