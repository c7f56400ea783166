// Copyright © 2019 One Concern

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Get revision history",
	Long:  `Displays the list of revisions of the workspace, newest first, with their messages`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		ws, err := openWorkspace(ctx)
		if err != nil {
			wrapFatalln("open workspace", err)
			return
		}
		defer func() {
			_ = ws.Close()
		}()

		revisions, err := ws.Log(ctx)
		if err != nil {
			wrapFatalln("list revisions", err)
			return
		}

		out := infoLogger.Writer()
		for _, r := range revisions {
			fmt.Fprint(out, "     ID: ")
			color.New(color.FgMagenta).Fprintln(out, r.ID)
			fmt.Fprint(out, "Authors: ")
			authors := make([]string, 0, len(r.Contributors))
			for i := range r.Contributors {
				authors = append(authors, r.Contributors[i].String())
			}
			color.New(color.FgYellow).Fprintln(out, strings.Join(authors, ", "))
			fmt.Fprint(out, "   Date: ")
			color.New(color.FgYellow).Fprintln(out, r.Timestamp.Format(time.RFC3339))
			fmt.Fprint(out, "Sources: ")
			names := make([]string, 0, len(r.Sources))
			for _, src := range r.Sources {
				names = append(names, src.Name)
			}
			fmt.Fprintln(out, strings.Join(names, ", "))
			fmt.Fprintln(out)
			fmt.Fprintln(out, r.Message)
			fmt.Fprintln(out)
		}
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
}
