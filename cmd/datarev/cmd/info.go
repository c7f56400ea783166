package cmd

import (
	"bytes"
	"context"
	"strings"

	"github.com/spf13/cobra"
)

type infoView struct {
	Revpath   string
	Strategy  string
	Origin    string
	Format    string
	Items     int
	Subsets   string
	Workspace string
}

const infoTemplateString = `revpath:   {{.Revpath}}
resolved:  as {{.Strategy}}
origin:    {{.Origin}}
{{- if .Workspace}}
workspace: {{.Workspace}}
{{- end}}
format:    {{.Format}}
items:     {{.Items}}
subsets:   {{.Subsets}}`

var infoCmd = &cobra.Command{
	Use:   "info <revpath>",
	Short: "Describe the dataset a revpath refers to",
	Long: `Resolve a revpath and describe the resulting dataset.

Prints the dataset summary if the revpath resolves, exits with ENOENT status otherwise,
after reporting why each interpretation of the revpath failed.`,
	Example: `% datarev info HEAD:images.train
revpath:   HEAD:images.train
resolved:  as ambient-revision
origin:    /home/user/project@1INzQ5TV4vAAfU2PbRFgPfnzEwR:images.train
format:    jsonl
items:     2
subsets:   train`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		res, release := resolveRevpath(context.Background(), args[0])
		defer release()
		if res == nil {
			return
		}

		view := infoView{
			Revpath:  args[0],
			Strategy: string(res.Strategy),
			Origin:   res.Dataset.Origin(),
			Format:   res.Dataset.Format(),
			Items:    res.Dataset.Len(),
			Subsets:  strings.Join(res.Dataset.Subsets(), ", "),
		}
		if res.Workspace != nil {
			view.Workspace = res.Workspace.Root()
		}
		var buf bytes.Buffer
		if err := outputTemplate("info", infoTemplateString).Execute(&buf, view); err != nil {
			wrapFatalln("executing template", err)
			return
		}
		infoLogger.Println(buf.String())
	},
}

func init() {
	addTemplateFlag(infoCmd)
	rootCmd.AddCommand(infoCmd)
}
