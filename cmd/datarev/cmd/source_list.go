package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type sourceLine struct {
	Name      string
	Format    string
	URL       string
	Stages    string
	HumanSize string
}

const sourceLineTemplateString = `{{.Name}} , {{.Format}} , {{.HumanSize}} , {{.Stages}} , {{.URL}}`

var sourceList = &cobra.Command{
	Use:   "list",
	Short: "List the sources of the working tree",
	Example: `% datarev source list
images , jsonl , 1.2kB , root > train , /data/images`,
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

		sources, err := ws.Sources(ctx)
		if err != nil {
			wrapFatalln("list sources", err)
			return
		}
		tpl := outputTemplate("source line", sourceLineTemplateString)
		fs := afero.NewOsFs()
		for _, src := range sources {
			size, err := dirSize(fs, filepath.Join(ws.Root(), src.Path))
			if err != nil {
				wrapFatalln("compute source size", err)
				return
			}
			stages := make([]string, 0, len(src.Stages))
			for _, stage := range src.Stages {
				stages = append(stages, stage.Name)
			}
			var buf bytes.Buffer
			if err = tpl.Execute(&buf, sourceLine{
				Name:      src.Name,
				Format:    src.Format,
				URL:       src.URL,
				Stages:    strings.Join(stages, " > "),
				HumanSize: units.HumanSize(float64(size)),
			}); err != nil {
				wrapFatalln("executing template", err)
				return
			}
			infoLogger.Println(buf.String())
		}
	},
}

func init() {
	sourceCmd.AddCommand(sourceList)
}
